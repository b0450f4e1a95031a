package pubgen

import (
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/eringen/pubgen/content"
)

// foldAccents strips combining marks so "Café" slugs to "cafe". Transformers
// carry state, so one is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify converts a title to a slug: lowercased letters and digits of any
// script, with every other run of characters replaced by a single hyphen.
// Latin accents are folded, so "Café" and "Cafe" share a slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(foldAccents(s)))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// PostSlug derives the permalink slug of a post from its date and title.
func PostSlug(p content.Post) string {
	slug := p.Date.UTC().Format(time.DateOnly)
	if title := Slugify(p.Title); title != "" {
		slug += "-" + title
	}
	return slug
}

// PostLink returns the site-relative permalink of a slug.
func PostLink(slug string) string {
	return "/blog/" + slug + "/"
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
