package diagnostics

import "sync"

// Context is a passive, append-only collector of diagnostic entries. It is
// safe for concurrent recording, though mcvm itself is single-threaded
// (spec.md §5) — the mutex exists so the same Context can be shared freely
// across components without each one needing to reason about ownership.
//
// Create a Context exclusively through New(). It is passed by reference
// through parse, dispatch generation, code generation, and file output —
// every stage records entries into the same Context.
type Context struct {
	sourceFile string
	phase      string
	entries    []*Entry
	mu         sync.Mutex
}

// New returns a *Context tagged with the given primary source file path, no
// recorded entries, and no active phase.
func New(sourceFile string) *Context {
	return &Context{sourceFile: sourceFile}
}

// SetPhase sets the current pipeline phase. Subsequent entries are tagged
// with this phase until it changes again. Conventional phase names used by
// the driver: "parse", "dispatch", "codegen", "write".
func (c *Context) SetPhase(name string) {
	c.mu.Lock()
	c.phase = name
	c.mu.Unlock()
}

// Phase returns the current pipeline phase name.
func (c *Context) Phase() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Loc creates a Location using the context's primary source file.
func (c *Context) Loc(line, column int) Location {
	return Loc(c.sourceFile, line, column)
}

func (c *Context) record(severity string, location Location, message string) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry{severity: severity, phase: c.phase, message: message, location: location}
	c.entries = append(c.entries, entry)
	return entry
}

// Error records an "error" entry and returns it for optional WithHint
// chaining.
func (c *Context) Error(location Location, message string) *Entry {
	return c.record(SeverityError, location, message)
}

// Warning records a "warning" entry.
func (c *Context) Warning(location Location, message string) *Entry {
	return c.record(SeverityWarning, location, message)
}

// Info records an "info" entry.
func (c *Context) Info(location Location, message string) *Entry {
	return c.record(SeverityInfo, location, message)
}

// Trace records a "trace" entry, used for the progress note the driver
// leaves as each pipeline phase starts.
func (c *Context) Trace(location Location, message string) *Entry {
	return c.record(SeverityTrace, location, message)
}

// Entries returns all recorded entries in insertion order.
func (c *Context) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]*Entry, len(c.entries))
	copy(result, c.entries)
	return result
}

// HasErrors reports whether at least one "error" entry has been recorded.
// The driver itself aborts on returned errors and does not consult this.
func (c *Context) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.severity == SeverityError {
			return true
		}
	}
	return false
}

// SourceFile returns the primary source file path.
func (c *Context) SourceFile() string {
	return c.sourceFile
}
