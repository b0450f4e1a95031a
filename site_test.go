package pubgen

import (
	"errors"
	"slices"
	"testing"

	"github.com/eringen/pubgen/content"
	"github.com/eringen/pubgen/render"
)

func docsOf(posts ...content.Post) []render.Document {
	r := render.New(render.Options{})
	docs := make([]render.Document, len(posts))
	for i, p := range posts {
		p.Ordinal = i
		docs[i] = r.Render(p)
	}
	return docs
}

func TestAssembleOrderAndLinks(t *testing.T) {
	docs := docsOf(
		content.Post{Title: "Old", Date: day(2019, 5, 1), Categories: []string{"go"}},
		content.Post{Title: "New", Date: day(2022, 5, 1)},
		content.Post{Title: "Middle", Date: day(2020, 5, 1), Categories: []string{"go", "web"}},
	)
	// Input order must not matter.
	slices.Reverse(docs)

	site, diags := Assemble(slices.Values(docs))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var got []string
	for _, e := range site.Index {
		got = append(got, e.Title)
	}
	if want := []string{"New", "Middle", "Old"}; !slices.Equal(got, want) {
		t.Errorf("index = %v, want %v", got, want)
	}

	e := site.Index[1]
	if e.Slug != "2020-05-01-middle" || e.Link != "/blog/2020-05-01-middle/" {
		t.Errorf("entry = %+v", e)
	}
	if _, ok := site.Page(e.Slug); !ok {
		t.Errorf("Page(%q) missing", e.Slug)
	}
	if len(site.Pages) != 3 {
		t.Errorf("len(Pages) = %d, want 3", len(site.Pages))
	}
}

func TestAssembleSlugCollisionDropsLater(t *testing.T) {
	// Distinct identities, same slug: punctuation differs only.
	docs := docsOf(
		content.Post{Title: "Hello, World", Date: day(2020, 1, 1), Source: "first.md"},
		content.Post{Title: "Hello World!", Date: day(2020, 1, 1), Source: "second.md"},
	)
	slices.Reverse(docs)

	site, diags := Assemble(slices.Values(docs))
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	var collision *SlugCollisionError
	if d.Kind != KindSlugCollision || !errors.As(d.Err, &collision) {
		t.Fatalf("diagnostic = %+v, want slug collision", d)
	}
	if collision.Slug != "2020-01-01-hello-world" || collision.Post.Source != "second.md" {
		t.Errorf("collision = %+v", collision)
	}
	page, ok := site.Page("2020-01-01-hello-world")
	if !ok || page.Document.Post.Source != "first.md" {
		t.Errorf("page kept %+v, want first.md", page.Document.Post.Source)
	}
	if len(site.Index) != 1 {
		t.Errorf("len(Index) = %d, want 1", len(site.Index))
	}
}

func TestSiteCategories(t *testing.T) {
	docs := docsOf(
		content.Post{Title: "A", Date: day(2020, 1, 1), Categories: []string{"go"}},
		content.Post{Title: "B", Date: day(2021, 1, 1), Categories: []string{"go", "web"}},
		content.Post{Title: "C", Date: day(2022, 1, 1)},
	)
	site, _ := Assemble(slices.Values(docs))

	cats := site.Categories()
	if len(cats["go"]) != 2 || cats["go"][0].Title != "B" {
		t.Errorf("go = %+v, want [B A]", cats["go"])
	}
	if len(cats["web"]) != 1 {
		t.Errorf("web = %+v", cats["web"])
	}
	if got := site.CategoryNames(); !slices.Equal(got, []string{"go", "web"}) {
		t.Errorf("CategoryNames() = %v", got)
	}
	if got := site.Filter("GO"); len(got) != 2 {
		t.Errorf("Filter(GO) = %d entries, want 2", len(got))
	}
	if got := site.Filter(""); len(got) != 3 {
		t.Errorf("Filter(\"\") = %d entries, want 3", len(got))
	}
}

func TestSiteCategoryNamesSkipsUnlinkable(t *testing.T) {
	docs := docsOf(content.Post{Title: "A", Date: day(2020, 1, 1), Categories: []string{"go", "..", "a/b"}})
	site, _ := Assemble(slices.Values(docs))
	if got := site.CategoryNames(); !slices.Equal(got, []string{"go"}) {
		t.Errorf("CategoryNames() = %v, want [go]", got)
	}
}
