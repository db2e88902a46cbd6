package mcfs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DiskWriter is the production Writer: it wraps os and path/filepath
// directly, rooted at Dir.
type DiskWriter struct {
	Dir string
}

// NewDiskWriter returns a DiskWriter rooted at dir.
func NewDiskWriter(dir string) *DiskWriter {
	return &DiskWriter{Dir: dir}
}

func (w *DiskWriter) resolve(name string) string {
	return filepath.Join(w.Dir, filepath.FromSlash(name))
}

// MkdirAll creates dir (resolved against w.Dir) and any missing parents.
func (w *DiskWriter) MkdirAll(dir string) error {
	if err := os.MkdirAll(w.resolve(dir), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}
	return nil
}

// RemoveAll recursively removes dir (resolved against w.Dir).
func (w *DiskWriter) RemoveAll(dir string) error {
	if err := os.RemoveAll(w.resolve(dir)); err != nil {
		return errors.Wrapf(err, "remove %s", dir)
	}
	return nil
}

// WriteFile writes content to name (resolved against w.Dir), creating
// parent directories as needed.
func (w *DiskWriter) WriteFile(name string, content []byte) error {
	full := w.resolve(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir parent of %s", name)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	return nil
}
