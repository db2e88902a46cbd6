package diagnostics

import "fmt"

// Severity constants for entry classification.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
	SeverityTrace   = "trace"
)

// Entry is a single diagnostic event recorded during compilation: what
// happened, where, and how severe it was.
//
// Entries are append-only — once created, their core fields (severity,
// phase, message, location) are immutable. Only the optional Hint field can
// be attached afterwards via WithHint, before the entry is considered
// complete.
type Entry struct {
	severity string
	phase    string
	message  string
	location Location
	hint     string
}

// Severity returns the entry's severity level.
func (e *Entry) Severity() string { return e.severity }

// Phase returns the pipeline phase active when the entry was recorded.
func (e *Entry) Phase() string { return e.phase }

// Message returns the human-readable description.
func (e *Entry) Message() string { return e.message }

// Location returns the source position the entry refers to.
func (e *Entry) Location() Location { return e.location }

// Hint returns the optional fix suggestion, or "" if none was set.
func (e *Entry) Hint() string { return e.hint }

// WithHint attaches a fix suggestion and returns the same *Entry for
// chaining.
func (e *Entry) WithHint(text string) *Entry {
	e.hint = text
	return e
}

// String renders "severity [phase] location: message".
func (e *Entry) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", e.severity, e.phase, e.location, e.message)
}
