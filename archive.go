package pubgen

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ArchivedPost is one row of the SQLite archive.
type ArchivedPost struct {
	Slug      string
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Content   string
	Published bool
}

// Archive is a SQLite database holding the rendered posts of the last build.
// Its posts table is compatible with pubengine, so an archive can be served by
// a pubengine instance.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the SQLite database at path, ensures the
// parent directory exists, and runs schema migrations.
func OpenArchive(path string) (*Archive, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	a := &Archive{db: db}
	if err := a.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) ensureSchema() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
`)
	return err
}

// Export upserts every page of site in one transaction. Rows left over from
// earlier builds whose post is gone are kept but unpublished.
func (a *Archive) Export(ctx context.Context, site *Site) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE posts SET published = 0`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO posts (slug, title, date, tags, summary, content, published) VALUES (?, ?, ?, ?, ?, ?, 1)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range site.Index {
		page := site.Pages[e.Slug]
		if _, err := stmt.ExecContext(ctx, e.Slug, e.Title, e.Date.UTC().Format(time.DateOnly),
			formatTags(e.Categories), e.Summary, page.Document.HTML()); err != nil {
			return fmt.Errorf("archive %s: %w", e.Slug, err)
		}
	}
	return tx.Commit()
}

// ListPosts returns archived posts ordered by date descending, then title.
// Unpublished rows are included only when all is set.
func (a *Archive) ListPosts(ctx context.Context, all bool) ([]ArchivedPost, error) {
	query := `SELECT slug, title, date, tags, summary, content, published FROM posts WHERE published = 1 ORDER BY date DESC, title ASC`
	if all {
		query = `SELECT slug, title, date, tags, summary, content, published FROM posts ORDER BY date DESC, title ASC`
	}
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []ArchivedPost
	for rows.Next() {
		var p ArchivedPost
		var tags string
		var published int
		if err := rows.Scan(&p.Slug, &p.Title, &p.Date, &tags, &p.Summary, &p.Content, &published); err != nil {
			return nil, err
		}
		p.Tags = ParseTags(tags)
		p.Published = published == 1
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ExportSQLite writes site into the archive at path.
func ExportSQLite(ctx context.Context, path string, site *Site) error {
	a, err := OpenArchive(path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", path, err)
	}
	defer a.Close()
	return a.Export(ctx, site)
}

func formatTags(tags []string) string {
	return "," + strings.Join(tags, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
