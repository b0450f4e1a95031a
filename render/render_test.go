package render

import (
	"html"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/eringen/pubgen/content"
	"github.com/eringen/pubgen/markdown"
)

func samplePost() content.Post {
	return content.Post{
		Title:  "Polymorphism with Functions in Go",
		Date:   time.Date(2020, 7, 17, 0, 0, 0, 0, time.UTC),
		Source: "polymorphism.md",
		Body: []content.Block{
			{Kind: content.Prose, Text: "A **function** can satisfy an interface.", Terminated: true},
			{Kind: content.CodeSnippet, Lang: "go", Text: "type HandlerFunc func(w ResponseWriter, r *Request)\n// <b>&amp;</b>", Terminated: true},
			{Kind: content.EmbeddedWidget, Widget: "newsletter", Text: `<form action="https://example.com/subscribe"><input type="email"></form>`, Terminated: true},
		},
	}
}

func TestRenderMirrorsBlocks(t *testing.T) {
	doc := New(Options{}).Render(samplePost())
	if len(doc.Fragments) != 3 {
		t.Fatalf("got %d fragments, want 3", len(doc.Fragments))
	}
	want := []content.BlockKind{content.Prose, content.CodeSnippet, content.EmbeddedWidget}
	for i, k := range want {
		if doc.Fragments[i].Kind != k {
			t.Errorf("Fragments[%d].Kind = %v, want %v", i, doc.Fragments[i].Kind, k)
		}
	}
	if len(doc.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", doc.Warnings)
	}
	if !strings.Contains(doc.Fragments[0].HTML, "<strong>function</strong>") {
		t.Errorf("prose not rendered: %q", doc.Fragments[0].HTML)
	}
	if !strings.Contains(doc.Fragments[2].HTML, "<iframe sandbox=") {
		t.Errorf("widget not sandboxed: %q", doc.Fragments[2].HTML)
	}
}

func TestRenderCodeSnippetVerbatim(t *testing.T) {
	post := samplePost()
	doc := New(Options{}).Render(post)
	frag := doc.Fragments[1].HTML
	start := strings.Index(frag, `<code class="language-go">`) + len(`<code class="language-go">`)
	end := strings.Index(frag, "</code>")
	if got := html.UnescapeString(frag[start:end]); got != post.Body[1].Text {
		t.Errorf("code region = %q, want %q", got, post.Body[1].Text)
	}
}

func TestRenderIdempotent(t *testing.T) {
	r := New(Options{Code: markdown.CodeOptions{Highlight: true}})
	post := samplePost()
	a := r.Render(post)
	b := r.Render(post)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("rendering twice produced different documents")
	}
}

func TestRenderUnterminatedFence(t *testing.T) {
	post := content.Post{
		Title:  "Broken",
		Date:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Source: "broken.md",
		Body: []content.Block{
			{Kind: content.Prose, Text: "before", Terminated: true},
			{Kind: content.CodeSnippet, Lang: "go", Text: "```go\nfunc main() {"},
		},
	}
	doc := New(Options{}).Render(post)
	if len(doc.Fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(doc.Fragments))
	}
	if len(doc.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(doc.Warnings))
	}
	if doc.Warnings[0].Block != 1 || doc.Warnings[0].Source != "broken.md" {
		t.Errorf("warning = %+v", doc.Warnings[0])
	}
	frag := doc.Fragments[1]
	if frag.Kind != content.Prose || !frag.Degraded {
		t.Errorf("fragment = %+v, want degraded prose", frag)
	}
	if !strings.Contains(frag.HTML, "func main() {") {
		t.Errorf("fallback lost the raw text: %q", frag.HTML)
	}
}

func TestRenderWidgetFailsClosed(t *testing.T) {
	post := content.Post{
		Source: "w.md",
		Body: []content.Block{
			{Kind: content.EmbeddedWidget, Widget: "comments", Text: "no elements here", Terminated: true},
			{Kind: content.EmbeddedWidget, Widget: "newsletter", Text: "<form>", Terminated: false},
		},
	}
	doc := New(Options{}).Render(post)
	if len(doc.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(doc.Warnings))
	}
	for i, f := range doc.Fragments {
		if strings.Contains(f.HTML, "iframe") || strings.Contains(f.HTML, "<form>") {
			t.Errorf("Fragments[%d] leaked markup: %q", i, f.HTML)
		}
	}
}

func TestRenderWarnsOnOmittedHTML(t *testing.T) {
	post := content.Post{
		Source: "raw.md",
		Body: []content.Block{
			{Kind: content.Prose, Text: "Thanks for reading.\n\n<div id=\"thread\"></div>\n<script>load()</script>", Terminated: true},
		},
	}
	doc := New(Options{}).Render(post)
	if len(doc.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(doc.Warnings))
	}
	if w := doc.Warnings[0]; w.Block != 0 || w.Kind != content.Prose || !strings.Contains(w.Reason, "omitted") {
		t.Errorf("warning = %+v", w)
	}
	if !doc.Fragments[0].Degraded {
		t.Error("fragment not marked degraded")
	}
	if !strings.Contains(doc.Fragments[0].HTML, "Thanks for reading.") {
		t.Errorf("prose lost: %q", doc.Fragments[0].HTML)
	}
}

func TestRenderNativeCommentsLoader(t *testing.T) {
	body := "Thanks for reading.\n\n" +
		"<div id=\"disqus_thread\"></div>\n" +
		"<script>\n(function() { var s = document.createElement('script'); })();\n</script>\n"
	blocks, err := content.ScanBody(body)
	if err != nil {
		t.Fatalf("ScanBody failed: %v", err)
	}
	doc := New(Options{}).Render(content.Post{Source: "c.md", Body: blocks})
	if len(doc.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", doc.Warnings)
	}
	out := doc.HTML()
	if !strings.Contains(out, `data-widget="comments"`) || !strings.Contains(out, "<iframe sandbox=") {
		t.Errorf("comments loader not isolated: %q", out)
	}
	if !strings.Contains(out, "disqus_thread") {
		t.Errorf("loader markup lost: %q", out)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		body []content.Block
		want string
	}{
		{
			name: "strips markdown",
			body: []content.Block{{Kind: content.Prose, Text: "This has **bold** and a [link](https://example.com)."}},
			want: "This has bold and a link.",
		},
		{
			name: "skips code",
			body: []content.Block{
				{Kind: content.CodeSnippet, Text: "code"},
				{Kind: content.Prose, Text: "After code."},
			},
			want: "After code.",
		},
		{
			name: "no prose",
			body: []content.Block{{Kind: content.CodeSnippet, Text: "code"}},
			want: "",
		},
		{
			name: "truncates at word boundary",
			body: []content.Block{{Kind: content.Prose, Text: strings.Repeat("word ", 60)}},
			want: strings.TrimSpace(strings.Repeat("word ", 40)) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summary(content.Post{Body: tt.body})
			if got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
