// Package widget isolates opaque third-party embed markup (signup forms,
// comment loaders) so its scripts cannot touch the surrounding page.
//
// Markup is never rewritten. It is placed in the srcdoc of a sandboxed iframe
// without allow-same-origin, which gives it an opaque origin: scripts inside
// can run and forms can submit, but the parent document is out of reach.
package widget

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxMarkupBytes bounds the size of markup accepted for isolation.
const MaxMarkupBytes = 64 << 10

// Sandbox is the iframe sandbox token list. It deliberately lacks
// allow-same-origin and allow-top-navigation.
const Sandbox = "allow-scripts allow-forms allow-popups"

var (
	ErrEmpty       = errors.New("widget markup is empty")
	ErrTooLarge    = fmt.Errorf("widget markup exceeds %d bytes", MaxMarkupBytes)
	ErrInvalidUTF8 = errors.New("widget markup is not valid UTF-8")
	ErrNoElements  = errors.New("widget markup contains no elements")
)

// Check reports whether markup can be isolated.
func Check(markup string) error {
	if strings.TrimSpace(markup) == "" {
		return ErrEmpty
	}
	if len(markup) > MaxMarkupBytes {
		return ErrTooLarge
	}
	if !utf8.ValidString(markup) {
		return ErrInvalidUTF8
	}
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := nethtml.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return fmt.Errorf("parse widget markup: %w", err)
	}
	for _, n := range nodes {
		if hasElement(n) {
			return nil
		}
	}
	return ErrNoElements
}

func hasElement(n *nethtml.Node) bool {
	if n.Type == nethtml.ElementNode {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasElement(c) {
			return true
		}
	}
	return false
}

// Render writes the isolating container for a widget of the given kind. When
// markup cannot be isolated the container is written empty and the reason is
// returned; the raw markup is never emitted outside the sandbox.
func Render(buf *bytes.Buffer, kind, markup string) error {
	err := Check(markup)
	escapedKind := html.EscapeString(kind)
	buf.WriteString(`<div class="embed embed-` + escapedKind + `" data-widget="` + escapedKind + `">`)
	if err == nil {
		buf.WriteString(`<iframe sandbox="` + Sandbox + `" referrerpolicy="no-referrer" loading="lazy" title="` + escapedKind + `" srcdoc="`)
		buf.WriteString(html.EscapeString(markup))
		buf.WriteString(`"></iframe>`)
	}
	buf.WriteString("</div>")
	return err
}

// RenderEmpty writes an empty container, for widgets known to be unusable.
func RenderEmpty(buf *bytes.Buffer, kind string) {
	escapedKind := html.EscapeString(kind)
	buf.WriteString(`<div class="embed embed-` + escapedKind + `" data-widget="` + escapedKind + `"></div>`)
}
