package content

import "fmt"

// ErrorKind classifies why a content unit was rejected.
type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	InvalidDate
	MalformedFence
	MalformedHeader
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case InvalidDate:
		return "invalid date"
	case MalformedFence:
		return "malformed fence"
	case MalformedHeader:
		return "malformed header"
	default:
		return "unknown"
	}
}

// ParseError is returned by Parse when a content unit cannot become a Post.
// It is fatal to that unit only.
type ParseError struct {
	Source string
	Kind   ErrorKind
	Field  string // header field involved, if any
	Line   int    // 1-based line in the unit, 0 when not applicable
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Source + ": " + e.Kind.String()
	if e.Field != "" {
		msg += " " + fmt.Sprintf("%q", e.Field)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
