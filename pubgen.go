// Package pubgen is a static blog generator built with Go, goldmark, and templ.
// It turns a directory of Markdown posts with front matter into an index,
// one page per post, category listings, an RSS feed and a sitemap.
//
// A build runs Parser → Store → Renderer → Assembler. Problems with a single
// post are collected as diagnostics and the post is skipped or degraded; only
// an empty content set aborts the build, with ErrNoContent.
package pubgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/pubgen/content"
	"github.com/eringen/pubgen/markdown"
	"github.com/eringen/pubgen/render"
)

// Generator runs builds for one site configuration.
type Generator struct {
	Config SiteConfig

	renderer     *render.Renderer
	transformers []Transformer
	logger       zerolog.Logger
}

// New creates a Generator. The built-in transformers fill in the configured
// default author and normalize categories.
func New(cfg SiteConfig, opts ...Option) *Generator {
	cfg.setDefaults()

	g := &Generator{
		Config: cfg,
		renderer: render.New(render.Options{
			Code: markdown.CodeOptions{Highlight: cfg.Highlight, Style: cfg.HighlightStyle},
		}),
		transformers: []Transformer{DefaultAuthor{Name: cfg.Author}, NormalizeCategories},
		logger:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Build parses, stores, renders and assembles units. Units that fail to parse,
// duplicates and colliding slugs are reported in the Report and skipped. If no
// post survives, Build returns ErrNoContent and a nil Site.
func (g *Generator) Build(ctx context.Context, units []Unit) (*Site, *Report, error) {
	report := &Report{BuildID: uuid.NewString(), Units: len(units), Started: time.Now()}
	defer func() {
		report.Finished = time.Now()
		report.Log(g.logger)
	}()

	if len(units) == 0 {
		report.add(KindNoContent, g.Config.ContentDir, ErrNoContent)
		return nil, report, ErrNoContent
	}

	store := NewStore()
	for _, u := range units {
		post, err := content.Parse(u.Source, u.Data)
		if err != nil {
			report.add(KindParseError, u.Source, err)
			continue
		}
		post = applyTransformers(post, g.transformers)
		if err := store.Add(post); err != nil {
			var dup *DuplicatePostError
			if errors.As(err, &dup) {
				report.add(KindDuplicatePost, u.Source, err)
				continue
			}
			return nil, report, err
		}
	}
	if store.Len() == 0 {
		err := fmt.Errorf("%w: none of %d units could be parsed", ErrNoContent, len(units))
		report.add(KindNoContent, g.Config.ContentDir, err)
		return nil, report, err
	}

	docs, err := g.renderAll(ctx, store)
	if err != nil {
		return nil, report, err
	}
	for _, doc := range docs {
		for _, w := range doc.Warnings {
			report.add(KindRenderWarning, w.Source, w)
		}
	}

	site, diags := Assemble(func(yield func(render.Document) bool) {
		for _, d := range docs {
			if !yield(d) {
				return
			}
		}
	})
	report.Diagnostics = append(report.Diagnostics, diags...)
	report.Posts = len(site.Index)
	report.Pages = len(site.Pages)
	return site, report, nil
}

// renderAll renders every stored post. Results are written by index, so the
// output order never depends on which worker finishes first.
func (g *Generator) renderAll(ctx context.Context, store *Store) ([]render.Document, error) {
	posts := make([]content.Post, 0, store.Len())
	for p := range store.All() {
		posts = append(posts, p)
	}
	docs := make([]render.Document, len(posts))

	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(g.Config.Workers)
	for i, p := range posts {
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			docs[i] = g.renderer.Render(p)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return docs, nil
}

// BuildDir loads the configured content directory and builds it. An unreadable
// content directory is reported as ErrNoContent.
func (g *Generator) BuildDir(ctx context.Context) (*Site, *Report, error) {
	units, err := LoadDir(os.DirFS(g.Config.ContentDir))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrNoContent, err)
		report := &Report{BuildID: uuid.NewString(), Started: time.Now(), Finished: time.Now()}
		report.add(KindNoContent, g.Config.ContentDir, err)
		report.Log(g.logger)
		return nil, report, err
	}
	return g.Build(ctx, units)
}

// Publish builds the content directory and writes the site to the output
// directory, plus the SQLite archive when one is configured. Nothing is
// written when the build fails.
func (g *Generator) Publish(ctx context.Context) (*Report, error) {
	site, report, err := g.BuildDir(ctx)
	if err != nil {
		return report, err
	}
	if err := WriteDir(g.Config.OutputDir, g.Config, site); err != nil {
		return report, fmt.Errorf("write site: %w", err)
	}
	if g.Config.ArchivePath != "" {
		if err := ExportSQLite(ctx, g.Config.ArchivePath, site); err != nil {
			return report, fmt.Errorf("export archive: %w", err)
		}
	}
	g.logger.Info().
		Str("build_id", report.BuildID).
		Str("output", g.Config.OutputDir).
		Int("pages", report.Pages).
		Msg("site published")
	return report, nil
}
