package mas

import "fmt"

// ParseError represents a single error encountered while parsing a program.
// It is a plain value type, so that multiple errors can be accumulated across
// lines and returned together as ParseErrors.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

// String returns a human-readable representation of the parse error.
func (e ParseError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Error satisfies the error interface so a ParseError (or *ParseErrors) can
// be returned and wrapped with github.com/pkg/errors like any other error.
func (e ParseError) Error() string {
	return e.String()
}

// ParseErrors is an accumulated, non-empty list of ParseError values.
type ParseErrors []ParseError

func (es ParseErrors) Error() string {
	if len(es) == 1 {
		return es[0].String()
	}
	msg := fmt.Sprintf("%d parse errors:", len(es))
	for _, e := range es {
		msg += "\n  " + e.String()
	}
	return msg
}
