package pubgen

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
)

// ErrUnsafeOutput rejects an output directory whose replacement would remove
// the content sources or the working directory.
var ErrUnsafeOutput = errors.New("unsafe output directory")

// WriteDir writes site below dir, replacing whatever was there:
//
//	index.html
//	blog/<slug>/index.html
//	categories/<category>/index.html
//	feed.xml
//	sitemap.xml
//
// dir must not be the working directory, cfg.ContentDir, or an ancestor of
// either.
func WriteDir(dir string, cfg SiteConfig, site *Site) error {
	if err := checkOutputDir(dir, cfg.ContentDir); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clean output directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	ctx := context.Background()
	if err := writeComponent(ctx, filepath.Join(dir, "index.html"), IndexPage(cfg, site)); err != nil {
		return err
	}
	for _, e := range site.Index {
		page := site.Pages[e.Slug]
		path := filepath.Join(dir, "blog", page.Slug, "index.html")
		if err := writeComponent(ctx, path, PostPage(cfg, site, page)); err != nil {
			return err
		}
	}
	for _, c := range site.CategoryNames() {
		path := filepath.Join(dir, "categories", c, "index.html")
		if err := writeComponent(ctx, path, CategoryPage(cfg, site, c)); err != nil {
			return err
		}
	}
	if err := writeFile(filepath.Join(dir, "feed.xml"), func(w io.Writer) error {
		return WriteRSS(w, cfg, site.Index)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "sitemap.xml"), func(w io.Writer) error {
		return WriteSitemap(w, cfg.URL, site)
	})
}

func checkOutputDir(dir, contentDir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: no path given", ErrUnsafeOutput)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve output directory %s: %w", dir, err)
	}
	protected := map[string]string{".": "the working directory"}
	if contentDir != "" {
		protected[contentDir] = "content directory " + contentDir
	}
	for p, label := range protected {
		target, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		rel, err := filepath.Rel(abs, target)
		if err != nil {
			continue
		}
		if rel == "." || filepath.IsLocal(rel) {
			return fmt.Errorf("%w: %s holds %s", ErrUnsafeOutput, dir, label)
		}
	}
	return nil
}

// safePathElem reports whether name can be used as a single directory name
// below the output root.
func safePathElem(name string) bool {
	return filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`)
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	return writeFile(path, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
