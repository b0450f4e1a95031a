// Package markdown renders prose and code regions of a post to HTML.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmtext "github.com/yuin/goldmark/text"
)

// prose is shared across calls. Raw HTML is not enabled, so markup embedded in
// prose is dropped instead of reaching the page.
var prose = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Prose converts markdown text to HTML (paragraphs, emphasis, links, lists).
// It also returns the number of raw HTML nodes that were left out of the
// output.
func Prose(md string) (string, int, error) {
	src := []byte(md)
	doc := prose.Parser().Parse(gmtext.NewReader(src))
	omitted := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (n.Kind() == ast.KindHTMLBlock || n.Kind() == ast.KindRawHTML) {
			omitted++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", 0, err
	}
	var buf bytes.Buffer
	if err := prose.Renderer().Render(&buf, src, doc); err != nil {
		return "", 0, err
	}
	return buf.String(), omitted, nil
}

// Component returns a templ.Component that renders already-produced HTML.
func Component(rendered string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, rendered)
		return err
	})
}

// CodeOptions controls code region rendering.
type CodeOptions struct {
	// Highlight enables chroma syntax highlighting when a lexer for the
	// language exists.
	Highlight bool
	// Style is the chroma style name (default "monokai").
	Style string
}

// RenderCode writes a labeled, read-only code region holding text. Unless
// highlighting applies, the text is escaped and otherwise untouched so the
// browser displays exactly the authored bytes.
func RenderCode(buf *bytes.Buffer, lang, text string, opts CodeOptions) {
	escapedLang := html.EscapeString(lang)
	buf.WriteString(`<div class="code-block-wrapper" data-lang="` + escapedLang + `">`)
	buf.WriteString(`<span class="code-lang code-lang-` + escapedLang + `">` + escapedLang + `</span>`)
	buf.WriteString(`<pre class="code-block" contenteditable="false"><code class="language-` + escapedLang + `">`)
	if !opts.Highlight || !highlight(buf, lang, text, opts.Style) {
		buf.WriteString(html.EscapeString(text))
	}
	buf.WriteString("</code></pre></div>")
}

// highlight writes chroma output for text. It reports false, having written
// nothing, when no lexer matches or formatting fails.
func highlight(buf *bytes.Buffer, lang, text, style string) bool {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return false
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return false
	}
	if style == "" {
		style = "monokai"
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	var out bytes.Buffer
	if err := formatter.Format(&out, styles.Get(style), it); err != nil {
		return false
	}
	buf.Write(out.Bytes())
	return true
}

// RenderFallback writes raw text as an escaped paragraph. It is used when a
// block cannot be rendered as what it claims to be.
func RenderFallback(buf *bytes.Buffer, raw string) {
	buf.WriteString(`<p class="render-fallback">`)
	buf.WriteString(strings.ReplaceAll(html.EscapeString(raw), "\n", "<br/>\n"))
	buf.WriteString("</p>")
}
