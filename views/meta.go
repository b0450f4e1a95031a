// Package views holds the page components of a generated site. Pages are
// templ components so they can be written to files or served over HTTP.
package views

import (
	"strings"

	"github.com/a-h/templ"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate -f pages.templ

func pageTitle(cfg SiteConfig, meta PageMeta) string {
	if meta.Title == "" || meta.Title == cfg.Name {
		return cfg.Name
	}
	return meta.Title + " | " + cfg.Name
}

func pageDescription(cfg SiteConfig, meta PageMeta) string {
	if meta.Description == "" {
		return cfg.Description
	}
	return meta.Description
}

func ogType(meta PageMeta) string {
	if meta.OGType == "" {
		return "website"
	}
	return meta.OGType
}

func indexMeta(cfg SiteConfig) PageMeta {
	return PageMeta{Title: cfg.Name, Description: cfg.Description, URL: buildURL(cfg.URL)}
}

func categoryMeta(cfg SiteConfig, category string) PageMeta {
	return PageMeta{Title: category, URL: buildURL(cfg.URL, "categories", category)}
}

func postMeta(cfg SiteConfig, a Article) PageMeta {
	return PageMeta{
		Title:       a.Title,
		Description: Excerpt(a.Summary, 160),
		URL:         buildURL(cfg.URL, "blog", a.Slug),
		OGType:      "article",
	}
}

func notFoundMeta(cfg SiteConfig) PageMeta {
	return PageMeta{Title: "Not found", URL: buildURL(cfg.URL)}
}

// jsonLDScript embeds a JSON-LD document. json.Marshal escapes '<', so the
// payload cannot close the script element.
func jsonLDScript(jsonLD string) templ.Component {
	return templ.Raw(`<script type="application/ld+json">` + jsonLD + `</script>`)
}

// Excerpt shortens s to at most n runes for meta descriptions.
func Excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
