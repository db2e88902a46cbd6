// Package mcfs abstracts the output side of code generation behind a small
// Writer interface, the same role the teacher's kasm/filesystem package
// plays for PersistedFile/FileInMemory: generator components (dispatch,
// memmodule, codegen) are written against Writer so their tests exercise
// real control flow without touching disk (spec.md §5, "File writes are
// whole-file, non-atomic").
package mcfs

// Writer is the output sink every generator component writes scripts
// through. Paths are always slash-separated and relative to some root the
// concrete implementation owns.
type Writer interface {
	// MkdirAll creates dir and any missing parents. It is not an error if
	// dir already exists.
	MkdirAll(dir string) error
	// RemoveAll recursively removes dir. It is not an error if dir does not
	// exist (spec.md §4.2, "The target directory is cleared before
	// generation").
	RemoveAll(dir string) error
	// WriteFile writes content to name as a whole-file, non-atomic write,
	// creating or truncating as needed.
	WriteFile(name string, content []byte) error
}
