package content

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
)

var (
	reEmbedOpen  = regexp.MustCompile(`^<!--\s*embed:([A-Za-z0-9_-]+)\s*-->$`)
	reEmbedClose = regexp.MustCompile(`^<!--\s*/embed\s*-->$`)
	// Mailchimp's hosted signup snippet ships with its own begin/end comments.
	reMailchimpOpen  = regexp.MustCompile(`(?i)^<!--\s*Begin Mailchimp Signup Form\s*-->$`)
	reMailchimpClose = regexp.MustCompile(`(?i)^<!--\s*End mc_embed_signup\s*-->$`)
	// Disqus's universal loader has no wrapping comments: the thread div is
	// followed by the loader script and an optional noscript notice.
	reDisqusOpen     = regexp.MustCompile(`(?i)^<div\s+id=["']disqus_thread["']`)
	reScriptClose    = regexp.MustCompile(`(?i)</script>$`)
	reNoscriptNotice = regexp.MustCompile(`(?i)^<noscript>.*</noscript>$`)
)

// Widget kinds recognized in post bodies.
const (
	WidgetNewsletter = "newsletter"
	WidgetComments   = "comments"
)

// header is the front matter of a content unit.
type header struct {
	Title      string       `yaml:"title" toml:"title"`
	Date       dateValue    `yaml:"date" toml:"date"`
	Categories categoryList `yaml:"categories" toml:"categories"`
	Tags       categoryList `yaml:"tags" toml:"tags"`
	Author     string       `yaml:"author" toml:"author"`
}

// dateValue keeps the date as authored so it can be validated separately from
// header decoding. TOML decodes bare dates as time values.
type dateValue string

func (d *dateValue) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case string:
		*d = dateValue(t)
	case time.Time:
		*d = dateValue(t.Format(time.RFC3339))
	default:
		return fmt.Errorf("unsupported date value %v", v)
	}
	return nil
}

// categoryList accepts either a list or a space separated string.
type categoryList []string

func (c *categoryList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*c = list
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*c = strings.Fields(s)
	return nil
}

func (c *categoryList) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case string:
		*c = strings.Fields(t)
	case []interface{}:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("unsupported category %v", item)
			}
			*c = append(*c, s)
		}
	default:
		return fmt.Errorf("unsupported categories value %v", v)
	}
	return nil
}

// Parse turns one content unit into a Post. source names the unit in errors.
// It has no side effects.
func Parse(source string, data []byte) (Post, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var h header
	body, err := frontmatter.Parse(bytes.NewReader(data), &h)
	if err != nil {
		return Post{}, &ParseError{Source: source, Kind: MalformedHeader, Err: err}
	}

	title := strings.TrimSpace(h.Title)
	if title == "" {
		return Post{}, &ParseError{Source: source, Kind: MissingField, Field: "title"}
	}
	rawDate := strings.TrimSpace(string(h.Date))
	if rawDate == "" {
		return Post{}, &ParseError{Source: source, Kind: MissingField, Field: "date"}
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return Post{}, &ParseError{Source: source, Kind: InvalidDate, Field: "date", Err: err}
	}

	offset := bytes.Count(data, []byte("\n")) - bytes.Count(body, []byte("\n"))
	blocks, err := ScanBody(string(body))
	if err != nil {
		var fe *fenceError
		if errors.As(err, &fe) {
			return Post{}, &ParseError{Source: source, Kind: MalformedFence, Line: offset + fe.line, Err: err}
		}
		return Post{}, &ParseError{Source: source, Kind: MalformedFence, Err: err}
	}

	return Post{
		Title:      title,
		Date:       date,
		Categories: NormalizeCategories(append(h.Categories, h.Tags...)),
		Author:     strings.TrimSpace(h.Author),
		Body:       blocks,
		Source:     source,
	}, nil
}

// ParseDate parses an authored date. Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// NormalizeCategories lowercases, trims, deduplicates and sorts categories.
func NormalizeCategories(cats []string) []string {
	var out []string
	for _, c := range cats {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

type fenceError struct {
	line int
	info string
}

func (e *fenceError) Error() string {
	return fmt.Sprintf("fence info string %q contains a backtick", e.info)
}

// fence describes an open code fence.
type fence struct {
	char byte
	size int
	lang string
}

// openFence reports whether line opens a code fence.
func openFence(line string) (fence, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return fence{}, false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return fence{}, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return fence{}, false
	}
	return fence{char: c, size: n, lang: strings.TrimSpace(trimmed[n:])}, true
}

// closes reports whether line closes f.
func (f fence) closes(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < f.size {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != f.char {
			return false
		}
	}
	return true
}

// ScanBody splits a post body into Prose, CodeSnippet and EmbeddedWidget
// blocks, preserving order. Unclosed fences and embed markers yield blocks
// with Terminated set to false rather than an error; only a malformed fence
// opening is an error.
func ScanBody(body string) ([]Block, error) {
	lines := strings.SplitAfter(body, "\n")
	var blocks []Block
	var prose strings.Builder

	flushProse := func() {
		if text := trimBlankLines(prose.String()); text != "" {
			blocks = append(blocks, Block{Kind: Prose, Text: text, Terminated: true})
		}
		prose.Reset()
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		bare := strings.TrimRight(line, "\r\n")

		if f, ok := openFence(bare); ok {
			if f.char == '`' && strings.Contains(f.lang, "`") {
				if hasBacktickRun(f.lang, f.size) {
					// An inline code span at the start of a paragraph.
					prose.WriteString(line)
					continue
				}
				return nil, &fenceError{line: i + 1, info: f.lang}
			}
			flushProse()
			lang := UnspecifiedLang
			if fields := strings.Fields(f.lang); len(fields) > 0 {
				lang = strings.ToLower(fields[0])
			}
			var code strings.Builder
			closed := false
			j := i + 1
			for ; j < len(lines); j++ {
				if f.closes(strings.TrimRight(lines[j], "\r\n")) {
					closed = true
					break
				}
				code.WriteString(lines[j])
			}
			if closed {
				blocks = append(blocks, Block{Kind: CodeSnippet, Lang: lang, Text: trimFinalNewline(code.String()), Terminated: true})
				i = j
				continue
			}
			raw := line + code.String()
			blocks = append(blocks, Block{Kind: CodeSnippet, Lang: lang, Text: trimFinalNewline(raw)})
			i = len(lines)
			continue
		}

		if m, ok := openEmbed(strings.TrimSpace(bare)); ok {
			flushProse()
			var markup strings.Builder
			closed := false
			j := i
			if m.inclusive {
				markup.WriteString(line)
				closed = m.close.MatchString(strings.TrimSpace(bare))
			}
			for !closed && j+1 < len(lines) {
				j++
				if m.close.MatchString(strings.TrimSpace(lines[j])) {
					closed = true
					if m.inclusive {
						markup.WriteString(lines[j])
					}
					break
				}
				markup.WriteString(lines[j])
			}
			if !closed {
				j = len(lines)
			}
			if closed && m.inclusive && j+1 < len(lines) && reNoscriptNotice.MatchString(strings.TrimSpace(lines[j+1])) {
				j++
				markup.WriteString(lines[j])
			}
			blocks = append(blocks, Block{Kind: EmbeddedWidget, Widget: m.kind, Text: trimFinalNewline(markup.String()), Terminated: closed})
			i = j
			continue
		}

		prose.WriteString(line)
	}
	flushProse()
	return blocks, nil
}

// embedMarker describes how a recognized embed begins and ends. Wrapper
// markers are comments around the markup; inclusive markers are part of it.
type embedMarker struct {
	kind      string
	close     *regexp.Regexp
	inclusive bool
}

func openEmbed(line string) (embedMarker, bool) {
	if m := reEmbedOpen.FindStringSubmatch(line); m != nil {
		return embedMarker{kind: strings.ToLower(m[1]), close: reEmbedClose}, true
	}
	if reMailchimpOpen.MatchString(line) {
		return embedMarker{kind: WidgetNewsletter, close: reMailchimpClose}, true
	}
	if reDisqusOpen.MatchString(line) {
		return embedMarker{kind: WidgetComments, close: reScriptClose, inclusive: true}, true
	}
	return embedMarker{}, false
}

// hasBacktickRun reports whether s contains a run of exactly n backticks.
func hasBacktickRun(s string, n int) bool {
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == '`' {
			j++
		}
		if j-i == n {
			return true
		}
		i = j
	}
	return false
}

func trimFinalNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// trimBlankLines drops leading and trailing whitespace-only lines but keeps
// indentation of the first content line.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
