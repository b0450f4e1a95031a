package markdown

import (
	"bytes"
	"context"
	"html"
	"strings"
	"testing"
)

func TestProseParagraphsAndEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"first\n\nsecond", "<p>second</p>"},
		{"# Heading", `<h1 id="heading">Heading</h1>`},
	}
	for _, tt := range tests {
		got, omitted, err := Prose(tt.input)
		if err != nil {
			t.Fatalf("Prose(%q) error: %v", tt.input, err)
		}
		if omitted != 0 {
			t.Errorf("Prose(%q) omitted %d nodes", tt.input, omitted)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("Prose(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestProseDropsRawHTML(t *testing.T) {
	tests := []struct {
		input   string
		omitted int
	}{
		{"hello <script>alert(1)</script>", 2},
		{"<div id=\"thread\"></div>\n<script>load()</script>\n", 1},
		{"see <https://example.com> and `<b>`", 0},
	}
	for _, tt := range tests {
		got, omitted, err := Prose(tt.input)
		if err != nil {
			t.Fatalf("Prose(%q) error: %v", tt.input, err)
		}
		if strings.Contains(got, "<script>") || strings.Contains(got, "<div") {
			t.Errorf("raw markup reached output: %q", got)
		}
		if omitted != tt.omitted {
			t.Errorf("Prose(%q) omitted = %d, want %d", tt.input, omitted, tt.omitted)
		}
	}
}

func TestRenderCodeRoundTrip(t *testing.T) {
	inputs := []string{
		`fmt.Println("hello")`,
		"<script>alert('x')</script>",
		"a && b || c < d > e",
		"**not bold** _not italic_ [not](a link)",
		"line one\n\tline two\n\n  line four",
		"&amp; already escaped &lt;",
	}
	for _, text := range inputs {
		var buf bytes.Buffer
		RenderCode(&buf, "go", text, CodeOptions{})
		got := codeRegion(t, buf.String())
		if html.UnescapeString(got) != text {
			t.Errorf("round trip of %q produced %q", text, html.UnescapeString(got))
		}
		if strings.Contains(got, "<strong>") || strings.Contains(got, "<script>") {
			t.Errorf("code text was interpreted as markup: %q", got)
		}
	}
}

func TestRenderCodeLabel(t *testing.T) {
	var buf bytes.Buffer
	RenderCode(&buf, "go", "x := 1", CodeOptions{})
	got := buf.String()
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, `<span class="code-lang code-lang-go">go</span>`) {
		t.Errorf("code block should have language badge: %q", got)
	}
	if !strings.HasPrefix(got, `<div class="code-block-wrapper" data-lang="go">`) || !strings.HasSuffix(got, "</div>") {
		t.Errorf("code block should be wrapped in div: %q", got)
	}
}

func TestRenderCodeEscapesLang(t *testing.T) {
	var buf bytes.Buffer
	RenderCode(&buf, `"><img>`, "x", CodeOptions{})
	if strings.Contains(buf.String(), "<img>") {
		t.Errorf("language tag was not escaped: %q", buf.String())
	}
}

func TestRenderCodeHighlight(t *testing.T) {
	var buf bytes.Buffer
	RenderCode(&buf, "go", "package main", CodeOptions{Highlight: true})
	got := buf.String()
	if !strings.Contains(got, "<span") || !strings.Contains(got, "package") {
		t.Errorf("expected highlighted output, got %q", got)
	}
	if strings.Count(got, "<pre") != 1 {
		t.Errorf("highlighter should not add its own <pre>: %q", got)
	}
}

func TestRenderCodeHighlightUnknownLang(t *testing.T) {
	var buf bytes.Buffer
	RenderCode(&buf, "no-such-language-xyz", "a < b", CodeOptions{Highlight: true})
	if html.UnescapeString(codeRegion(t, buf.String())) != "a < b" {
		t.Errorf("unknown language should fall back to plain text: %q", buf.String())
	}
}

func TestRenderFallback(t *testing.T) {
	var buf bytes.Buffer
	RenderFallback(&buf, "```go\n<b>x</b>")
	got := buf.String()
	if !strings.HasPrefix(got, `<p class="render-fallback">`) {
		t.Errorf("fallback should be a paragraph: %q", got)
	}
	if strings.Contains(got, "<b>") {
		t.Errorf("fallback must escape raw text: %q", got)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Component("<p>x</p>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != "<p>x</p>" {
		t.Errorf("Component wrote %q", buf.String())
	}
}

// codeRegion extracts the contents of the <code> element.
func codeRegion(t *testing.T, s string) string {
	t.Helper()
	start := strings.Index(s, "<code")
	if start < 0 {
		t.Fatalf("no <code> in %q", s)
	}
	start += strings.Index(s[start:], ">") + 1
	end := strings.LastIndex(s, "</code>")
	if end < start {
		t.Fatalf("no </code> in %q", s)
	}
	return s[start:end]
}
