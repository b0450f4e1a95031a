// Package render turns parsed posts into documents of HTML fragments.
package render

import (
	"bytes"
	"fmt"
	"strings"

	stripmd "github.com/writeas/go-strip-markdown/v2"

	"github.com/eringen/pubgen/content"
	"github.com/eringen/pubgen/markdown"
	"github.com/eringen/pubgen/widget"
)

const maxSummaryLength = 200

// Fragment is the rendered form of one Block.
type Fragment struct {
	Kind content.BlockKind
	HTML string
	// Degraded is set when the fragment is a fallback rendering.
	Degraded bool
}

// Warning records a block that was rendered in degraded form.
type Warning struct {
	Source string
	Block  int // index into the post body
	Kind   content.BlockKind
	Reason string
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: block %d (%s): %s", w.Source, w.Block, w.Kind, w.Reason)
}

// Document is a rendered post: one fragment per body block, in order.
type Document struct {
	Post      content.Post
	Fragments []Fragment
	Summary   string
	Warnings  []Warning
}

// HTML concatenates the fragments.
func (d Document) HTML() string {
	var b strings.Builder
	for _, f := range d.Fragments {
		b.WriteString(f.HTML)
	}
	return b.String()
}

// Options configures a Renderer.
type Options struct {
	Code markdown.CodeOptions
}

// Renderer renders posts. It holds no mutable state and is safe for
// concurrent use.
type Renderer struct {
	opts Options
}

// New returns a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render produces the Document for post. It never fails as a whole: blocks
// that cannot be rendered are degraded and reported in Document.Warnings.
func (r *Renderer) Render(post content.Post) Document {
	doc := Document{
		Post:      post,
		Fragments: make([]Fragment, 0, len(post.Body)),
		Summary:   Summary(post),
	}
	for i, b := range post.Body {
		frag, reason := r.renderBlock(b)
		if reason != "" {
			frag.Degraded = true
			doc.Warnings = append(doc.Warnings, Warning{Source: post.Source, Block: i, Kind: b.Kind, Reason: reason})
		}
		doc.Fragments = append(doc.Fragments, frag)
	}
	return doc
}

func (r *Renderer) renderBlock(b content.Block) (Fragment, string) {
	var buf bytes.Buffer
	switch b.Kind {
	case content.Prose:
		out, omitted, err := markdown.Prose(b.Text)
		if err != nil {
			markdown.RenderFallback(&buf, b.Text)
			return Fragment{Kind: content.Prose, HTML: buf.String()}, "prose conversion failed: " + err.Error()
		}
		if omitted > 0 {
			return Fragment{Kind: content.Prose, HTML: out}, fmt.Sprintf("%d raw HTML fragment(s) omitted from prose", omitted)
		}
		return Fragment{Kind: content.Prose, HTML: out}, ""
	case content.CodeSnippet:
		if !b.Terminated {
			markdown.RenderFallback(&buf, b.Text)
			return Fragment{Kind: content.Prose, HTML: buf.String()}, "unterminated code fence"
		}
		lang := b.Lang
		if lang == "" {
			lang = content.UnspecifiedLang
		}
		markdown.RenderCode(&buf, lang, b.Text, r.opts.Code)
		return Fragment{Kind: content.CodeSnippet, HTML: buf.String()}, ""
	case content.EmbeddedWidget:
		if !b.Terminated {
			widget.RenderEmpty(&buf, b.Widget)
			return Fragment{Kind: content.EmbeddedWidget, HTML: buf.String()}, "unterminated embed marker"
		}
		if err := widget.Render(&buf, b.Widget, b.Text); err != nil {
			return Fragment{Kind: content.EmbeddedWidget, HTML: buf.String()}, "widget not isolated: " + err.Error()
		}
		return Fragment{Kind: content.EmbeddedWidget, HTML: buf.String()}, ""
	default:
		markdown.RenderFallback(&buf, b.Text)
		return Fragment{Kind: content.Prose, HTML: buf.String()}, fmt.Sprintf("unknown block kind %d", b.Kind)
	}
}

// Summary returns plain text from the first prose block, truncated at a word
// boundary.
func Summary(post content.Post) string {
	for _, b := range post.Body {
		if b.Kind != content.Prose {
			continue
		}
		text := strings.Join(strings.Fields(stripmd.Strip(b.Text)), " ")
		if text == "" {
			continue
		}
		if len(text) > maxSummaryLength {
			text = strings.ToValidUTF8(text[:maxSummaryLength], "")
			if lastSpace := strings.LastIndexAny(text, " \t"); lastSpace > 0 {
				text = text[:lastSpace]
			}
			text += "..."
		}
		return text
	}
	return ""
}
