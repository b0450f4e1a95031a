package views

// SiteConfig holds site-wide settings passed to every page so nothing is
// hardcoded.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Entry is a post as it appears in listings.
type Entry struct {
	Title      string
	Date       string // YYYY-MM-DD
	Categories []string
	Author     string
	Link       string
	Slug       string
	Summary    string
}

// Article is a post page: its listing entry plus the rendered body HTML.
type Article struct {
	Entry
	Body string
}
