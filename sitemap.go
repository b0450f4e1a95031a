package pubgen

import (
	"encoding/xml"
	"io"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap covering the index, every post and every
// category listing.
func WriteSitemap(w io.Writer, base string, site *Site) error {
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, e := range site.Index {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", e.Slug),
			LastMod: e.Date.UTC().Format(time.DateOnly),
		})
	}
	for _, c := range site.CategoryNames() {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "categories", c)})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
