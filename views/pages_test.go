package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

var testConfig = SiteConfig{Name: "Blog", URL: "https://example.com", Description: "Notes", Author: "Jane"}

func TestIndexEscapesEntries(t *testing.T) {
	entries := []Entry{{Title: "<b>Bold</b> & more", Date: "2020-07-17", Link: "/blog/x/", Slug: "x", Summary: "S"}}
	out := render(t, Index(testConfig, entries, []string{"go"}))
	if strings.Contains(out, "<b>Bold</b>") {
		t.Error("title was not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;Bold&lt;/b&gt; &amp; more") {
		t.Errorf("escaped title missing: %s", out)
	}
	if !strings.Contains(out, `href="/categories/go/"`) {
		t.Error("category link missing")
	}
	if !strings.Contains(out, `"@type":"WebSite"`) {
		t.Error("JSON-LD missing")
	}
}

func TestPostIncludesBodyAndRelated(t *testing.T) {
	a := Article{
		Entry: Entry{Title: "Post", Date: "2020-07-17", Categories: []string{"go"}, Slug: "post", Link: "/blog/post/"},
		Body:  `<p class="body">Trusted</p>`,
	}
	entries := []Entry{
		a.Entry,
		{Title: "Related One", Categories: []string{"go"}, Slug: "r", Link: "/blog/r/"},
		{Title: "Unrelated", Categories: []string{"web"}, Slug: "u", Link: "/blog/u/"},
	}
	out := render(t, Post(testConfig, a, entries))
	if !strings.Contains(out, `<p class="body">Trusted</p>`) {
		t.Error("body not written verbatim")
	}
	if !strings.Contains(out, "Related One") || strings.Contains(out, "Unrelated") {
		t.Error("related posts wrong")
	}
	if !strings.Contains(out, `<meta property="og:type" content="article">`) {
		t.Error("og:type missing")
	}
}

func TestFilterRelated(t *testing.T) {
	cur := Entry{Slug: "a", Categories: []string{"go"}}
	got := FilterRelated(cur, []Entry{cur, {Slug: "b", Categories: []string{"go", "web"}}, {Slug: "c"}})
	if len(got) != 1 || got[0].Slug != "b" {
		t.Errorf("FilterRelated() = %+v", got)
	}
}

func TestBlogPostingJsonLDFallsBackToSiteAuthor(t *testing.T) {
	out := BlogPostingJsonLD(testConfig, Entry{Title: "T", Slug: "t", Date: "2020-01-01"})
	if !strings.Contains(out, `"name":"Jane"`) {
		t.Errorf("author missing: %s", out)
	}
	if !strings.Contains(out, `"url":"https://example.com/blog/t/"`) {
		t.Errorf("url missing: %s", out)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("short", 10); got != "short" {
		t.Errorf("Excerpt = %q", got)
	}
	if got := Excerpt("héllo wörld", 5); got != "héllo..." {
		t.Errorf("Excerpt = %q", got)
	}
}

func TestCategoryMarksActivePill(t *testing.T) {
	entries := []Entry{{Title: "C sharp", Date: "2020-07-17", Link: "/blog/c/", Slug: "c", Categories: []string{"c#"}}}
	out := render(t, Category(testConfig, "c#", entries, []string{"c#", "go"}))
	if !strings.Contains(out, `<a class="tag tag-active" href="/categories/c%23/">c#</a>`) {
		t.Errorf("active pill missing: %s", out)
	}
	if !strings.Contains(out, `<a class="tag" href="/categories/go/">go</a>`) {
		t.Errorf("inactive pill missing: %s", out)
	}
	if !strings.Contains(out, `<link rel="canonical" href="https://example.com/categories/c%23/">`) {
		t.Errorf("canonical link missing: %s", out)
	}
}

func TestNotFound(t *testing.T) {
	out := render(t, NotFound(testConfig))
	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Errorf("not a full document: %s", out)
	}
	if !strings.Contains(out, "<title>Not found | Blog</title>") {
		t.Errorf("title missing: %s", out)
	}
	if strings.Contains(out, "application/ld+json") {
		t.Error("404 page carries JSON-LD")
	}
}
