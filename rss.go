package pubgen

import (
	"encoding/xml"
	"io"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

// WriteRSS writes an RSS 2.0 feed of entries.
func WriteRSS(w io.Writer, cfg SiteConfig, entries []IndexEntry) error {
	base := cfg.URL
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		postURL := BuildURL(base, "blog", e.Slug)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        postURL,
			Description: e.Summary,
			Author:      e.Author,
			Categories:  e.Categories,
			PubDate:     e.Date.UTC().Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        base,
			Description: cfg.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
