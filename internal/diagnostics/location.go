package diagnostics

import "fmt"

// Location identifies a position in MAS source. It is a value type, safe to
// copy and compare.
type Location struct {
	file   string // source file path, or "" for a synthetic location
	line   int    // 1-based line number, or 0 if not applicable
	column int    // 1-based column number, or 0 for "entire line"
}

// Loc creates a Location for the given file, line, and column.
func Loc(file string, line, column int) Location {
	return Location{file: file, line: line, column: column}
}

// Line creates a Location carrying only a line number, column 0 ("entire
// line"). This is the common case: MAS errors are reported per-line, per
// spec.md §4.1 and §7.
func Line(file string, line int) Location {
	return Location{file: file, line: line}
}

// File returns the source file path.
func (l Location) File() string { return l.file }

// LineNo returns the 1-based line number, or 0 if not applicable.
func (l Location) LineNo() int { return l.line }

// Column returns the 1-based column number, or 0 for "entire line".
func (l Location) Column() int { return l.column }

// String renders "file:line:column", dropping trailing zero components.
func (l Location) String() string {
	switch {
	case l.line == 0:
		return l.file
	case l.column == 0:
		return fmt.Sprintf("%s:%d", l.file, l.line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.file, l.line, l.column)
	}
}
