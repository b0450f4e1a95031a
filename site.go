package pubgen

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/eringen/pubgen/content"
	"github.com/eringen/pubgen/render"
)

// IndexEntry is one row of the site index.
type IndexEntry struct {
	Title      string
	Date       time.Time
	Categories []string
	Author     string
	Slug       string
	Link       string
	Summary    string
}

// Page is a single published post.
type Page struct {
	Slug     string
	Link     string
	Document render.Document
}

// Site is the assembled output of a build: the index in publication order and
// the pages keyed by slug.
type Site struct {
	Index []IndexEntry
	Pages map[string]Page
}

// Assemble builds a Site from rendered documents, given in any order. When two
// posts map to the same slug the one ingested later is dropped and reported.
func Assemble(docs iter.Seq[render.Document]) (*Site, []Diagnostic) {
	all := slices.SortedFunc(docs, func(a, b render.Document) int {
		return a.Post.Ordinal - b.Post.Ordinal
	})

	site := &Site{Pages: make(map[string]Page, len(all))}
	var diags []Diagnostic
	for _, doc := range all {
		slug := PostSlug(doc.Post)
		if existing, ok := site.Pages[slug]; ok {
			diags = append(diags, Diagnostic{
				Kind:   KindSlugCollision,
				Source: doc.Post.Source,
				Err:    &SlugCollisionError{Slug: slug, Post: doc.Post, Existing: existing.Document.Post},
			})
			continue
		}
		page := Page{Slug: slug, Link: PostLink(slug), Document: doc}
		site.Pages[slug] = page
		site.Index = append(site.Index, IndexEntry{
			Title:      doc.Post.Title,
			Date:       doc.Post.Date,
			Categories: doc.Post.Categories,
			Author:     doc.Post.Author,
			Slug:       slug,
			Link:       page.Link,
			Summary:    doc.Summary,
		})
	}

	slices.SortStableFunc(site.Index, compareEntries)
	return site, diags
}

func compareEntries(a, b IndexEntry) int {
	return content.Compare(
		content.Post{Title: a.Title, Date: a.Date},
		content.Post{Title: b.Title, Date: b.Date},
	)
}

// Page returns the page published under slug.
func (s *Site) Page(slug string) (Page, bool) {
	p, ok := s.Pages[slug]
	return p, ok
}

// Categories maps every category to its index entries, in publication order.
func (s *Site) Categories() map[string][]IndexEntry {
	cats := make(map[string][]IndexEntry)
	for _, e := range s.Index {
		for _, c := range e.Categories {
			cats[c] = append(cats[c], e)
		}
	}
	return cats
}

// CategoryNames returns the sorted names of the categories that get a listing
// page. Names that cannot be a single path element are left out.
func (s *Site) CategoryNames() []string {
	cats := s.Categories()
	names := make([]string, 0, len(cats))
	for c := range cats {
		if safePathElem(c) {
			names = append(names, c)
		}
	}
	slices.Sort(names)
	return names
}

// Filter returns the index entries tagged with cat. An empty cat returns the
// whole index.
func (s *Site) Filter(cat string) []IndexEntry {
	cat = strings.ToLower(strings.TrimSpace(cat))
	if cat == "" {
		return s.Index
	}
	var out []IndexEntry
	for _, e := range s.Index {
		if slices.Contains(e.Categories, cat) {
			out = append(out, e)
		}
	}
	return out
}
