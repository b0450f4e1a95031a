package pubgen

import (
	"context"
	"database/sql"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/eringen/pubgen/content"
)

func sampleSite(t *testing.T, posts ...content.Post) *Site {
	t.Helper()
	site, diags := Assemble(slices.Values(docsOf(posts...)))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return site
}

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "archive.db")
	site := sampleSite(t,
		content.Post{Title: "First", Date: day(2020, 1, 1), Categories: []string{"go", "web"},
			Body: []content.Block{{Kind: content.Prose, Text: "Hello **there**.", Terminated: true}}},
		content.Post{Title: "Second", Date: day(2021, 1, 1)},
	)
	ctx := context.Background()
	if err := ExportSQLite(ctx, path, site); err != nil {
		t.Fatalf("ExportSQLite failed: %v", err)
	}

	a, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive failed: %v", err)
	}
	defer a.Close()

	posts, err := a.ListPosts(ctx, false)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Title != "Second" || posts[1].Title != "First" {
		t.Errorf("order = %q, %q", posts[0].Title, posts[1].Title)
	}
	first := posts[1]
	if first.Slug != "2020-01-01-first" || first.Date != "2020-01-01" {
		t.Errorf("row = %+v", first)
	}
	if !slices.Equal(first.Tags, []string{"go", "web"}) {
		t.Errorf("Tags = %v", first.Tags)
	}
	if !strings.Contains(first.Content, "<strong>there</strong>") {
		t.Errorf("Content = %q", first.Content)
	}
	if first.Summary != "Hello there." {
		t.Errorf("Summary = %q", first.Summary)
	}
}

func TestExportSQLiteUnpublishesRemovedPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	ctx := context.Background()

	both := sampleSite(t,
		content.Post{Title: "Keep", Date: day(2020, 1, 1)},
		content.Post{Title: "Gone", Date: day(2020, 2, 1)},
	)
	if err := ExportSQLite(ctx, path, both); err != nil {
		t.Fatal(err)
	}
	one := sampleSite(t, content.Post{Title: "Keep", Date: day(2020, 1, 1)})
	if err := ExportSQLite(ctx, path, one); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var published, total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts WHERE published = 1`).Scan(&published); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		t.Fatal(err)
	}
	if published != 1 || total != 2 {
		t.Errorf("published = %d, total = %d, want 1 and 2", published, total)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{",go,web,", []string{"go", "web"}},
		{",,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
