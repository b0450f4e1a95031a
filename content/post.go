// Package content turns raw content units (front matter + body) into Posts.
package content

import (
	"strings"
	"time"
)

// BlockKind tags the variant held by a Block.
type BlockKind int

const (
	Prose BlockKind = iota
	CodeSnippet
	EmbeddedWidget
)

func (k BlockKind) String() string {
	switch k {
	case Prose:
		return "prose"
	case CodeSnippet:
		return "code"
	case EmbeddedWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// UnspecifiedLang is the language tag of a fence opened without one.
const UnspecifiedLang = "unspecified"

// Block is one unit of a post body. Which fields are meaningful depends on Kind:
// Prose uses Text, CodeSnippet uses Lang and Text, EmbeddedWidget uses Widget
// and Text (the opaque markup).
type Block struct {
	Kind   BlockKind
	Lang   string
	Widget string
	Text   string
	// Terminated is false when a fence or embed marker was opened but never
	// closed. Text then holds the raw source, opening line included.
	Terminated bool
}

// Post is a single parsed article.
type Post struct {
	Title      string
	Date       time.Time
	Categories []string
	Author     string
	Body       []Block
	Source     string
	// Ordinal is the ingestion sequence number assigned when the post is
	// accepted into a store.
	Ordinal int
}

// Identity returns the key under which two posts are duplicates.
func (p Post) Identity() string {
	return p.Title + "\x00" + p.Date.UTC().Format(time.RFC3339Nano)
}

// Before reports whether p is published ahead of q: newer dates first,
// then titles in lexical order.
func (p Post) Before(q Post) bool {
	return Compare(p, q) < 0
}

// Compare orders posts for publication. It returns a negative number when a
// comes first.
func Compare(a, b Post) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}
