// Package diagnostics provides a passive, append-only data structure that
// accumulates diagnostic entries (errors, warnings, info, traces) as the
// mcvm pipeline progresses: parsing, dispatch-tree generation, code
// generation, and file output. It does not perform I/O or formatting — the
// driver decides what to print and when to abort.
package diagnostics
