package pubgen

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/pubgen/content"
)

// ErrNoContent aborts a build that has nothing to publish.
var ErrNoContent = errors.New("no content to publish")

// DiagnosticKind classifies a problem collected during a build.
type DiagnosticKind string

const (
	KindParseError    DiagnosticKind = "parse_error"
	KindDuplicatePost DiagnosticKind = "duplicate_post"
	KindRenderWarning DiagnosticKind = "render_warning"
	KindSlugCollision DiagnosticKind = "slug_collision"
	KindNoContent     DiagnosticKind = "no_content"
)

// Fatal reports whether a diagnostic of this kind aborts the build.
func (k DiagnosticKind) Fatal() bool {
	return k == KindNoContent
}

// Diagnostic is one reported problem. Only KindNoContent is fatal; the others
// affect a single post or block.
type Diagnostic struct {
	Kind   DiagnosticKind
	Source string
	Err    error
}

func (d Diagnostic) String() string {
	if d.Err == nil {
		return string(d.Kind) + ": " + d.Source
	}
	return string(d.Kind) + ": " + d.Err.Error()
}

// DuplicatePostError is returned by Store.Add when a post with the same title
// and date was already accepted.
type DuplicatePostError struct {
	Post     content.Post
	Existing content.Post
}

func (e *DuplicatePostError) Error() string {
	return fmt.Sprintf("%s: duplicate of %s (%q, %s), dropped",
		e.Post.Source, e.Existing.Source, e.Post.Title, e.Post.Date.Format(time.DateOnly))
}

// SlugCollisionError reports two distinct posts that map to the same slug.
// The later-ingested one is dropped.
type SlugCollisionError struct {
	Slug     string
	Post     content.Post
	Existing content.Post
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("%s: slug %q already taken by %s, dropped", e.Post.Source, e.Slug, e.Existing.Source)
}

// Report summarizes a build.
type Report struct {
	BuildID     string
	Units       int
	Posts       int
	Pages       int
	Diagnostics []Diagnostic
	Started     time.Time
	Finished    time.Time
}

func (r *Report) add(kind DiagnosticKind, source string, err error) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Kind: kind, Source: source, Err: err})
}

// Count returns the number of diagnostics of the given kind.
func (r *Report) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Log writes every diagnostic followed by a summary line.
func (r *Report) Log(logger zerolog.Logger) {
	for _, d := range r.Diagnostics {
		ev := logger.Warn()
		if d.Kind.Fatal() {
			ev = logger.Error()
		}
		ev.Err(d.Err).Str("kind", string(d.Kind)).Str("source", d.Source).Msg("build diagnostic")
	}
	logger.Info().
		Str("build_id", r.BuildID).
		Int("units", r.Units).
		Int("posts", r.Posts).
		Int("pages", r.Pages).
		Int("skipped", r.Count(KindParseError)).
		Int("duplicates", r.Count(KindDuplicatePost)+r.Count(KindSlugCollision)).
		Int("degraded", r.Count(KindRenderWarning)).
		Dur("elapsed", r.Finished.Sub(r.Started)).
		Msg("build finished")
}
