package pubgen

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pubgen/views"
)

func viewConfig(cfg SiteConfig) views.SiteConfig {
	return views.SiteConfig{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
	}
}

func viewEntry(e IndexEntry) views.Entry {
	return views.Entry{
		Title:      e.Title,
		Date:       e.Date.UTC().Format(time.DateOnly),
		Categories: linkedCategories(e.Categories),
		Author:     e.Author,
		Link:       e.Link,
		Slug:       e.Slug,
		Summary:    e.Summary,
	}
}

// linkedCategories drops categories that have no listing page.
func linkedCategories(cats []string) []string {
	var out []string
	for _, c := range cats {
		if safePathElem(c) {
			out = append(out, c)
		}
	}
	return out
}

func viewEntries(entries []IndexEntry) []views.Entry {
	out := make([]views.Entry, len(entries))
	for i, e := range entries {
		out[i] = viewEntry(e)
	}
	return out
}

// IndexPage returns the component for the site index.
func IndexPage(cfg SiteConfig, site *Site) templ.Component {
	return views.Index(viewConfig(cfg), viewEntries(site.Index), site.CategoryNames())
}

// CategoryPage returns the listing component for cat.
func CategoryPage(cfg SiteConfig, site *Site, cat string) templ.Component {
	return views.Category(viewConfig(cfg), cat, viewEntries(site.Filter(cat)), site.CategoryNames())
}

// PostPage returns the component for a single page.
func PostPage(cfg SiteConfig, site *Site, page Page) templ.Component {
	entry := IndexEntry{
		Title:      page.Document.Post.Title,
		Date:       page.Document.Post.Date,
		Categories: page.Document.Post.Categories,
		Author:     page.Document.Post.Author,
		Slug:       page.Slug,
		Link:       page.Link,
		Summary:    page.Document.Summary,
	}
	article := views.Article{Entry: viewEntry(entry), Body: page.Document.HTML()}
	return views.Post(viewConfig(cfg), article, viewEntries(site.Index))
}

// NotFoundPage returns the 404 component.
func NotFoundPage(cfg SiteConfig) templ.Component {
	return views.NotFound(viewConfig(cfg))
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
