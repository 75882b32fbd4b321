package blob

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Tracker is notified of every temporary file handed out as a result, so
// that the host can delete it when the surrounding transaction ends.
type Tracker interface {
	Track(path string)
}

// TempRegistry is a Tracker that deletes everything it tracked on Dispose.
type TempRegistry struct {
	mu    sync.Mutex
	paths []string
}

// Track records path for later disposal.
func (r *TempRegistry) Track(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

// Len returns the number of tracked files.
func (r *TempRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// Dispose removes all tracked files and returns the first error.
func (r *TempRegistry) Dispose() error {
	r.mu.Lock()
	paths := r.paths
	r.paths = nil
	r.mu.Unlock()

	var first error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && first == nil {
			first = errors.Wrapf(err, "failed to remove %s", p)
		}
	}
	return first
}

// NewTempFile creates an empty temporary file in dir ("" means os.TempDir).
func NewTempFile(dir string) (*os.File, error) {
	f, err := os.CreateTemp(dir, "pdfutils-*.pdf")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp file")
	}
	return f, nil
}

// FromTempFile wraps a temporary file produced by an operation.
func FromTempFile(path, filename, mimeType string) *Blob {
	b := FromFile(path)
	b.Filename = filename
	b.MimeType = mimeType
	b.temp = true
	return b
}

// CopyToTemp copies src into a new temporary file. Filename, mimetype and
// encoding are preserved.
func CopyToTemp(src *Blob, dir string, tracker Tracker) (*Blob, error) {
	r, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := NewTempFile(dir)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, errors.Wrap(err, "failed to copy blob")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, errors.Wrap(err, "failed to close temp file")
	}

	out := FromTempFile(f.Name(), src.Filename, src.MimeType)
	out.Encoding = src.Encoding
	if tracker != nil {
		tracker.Track(f.Name())
	}
	return out, nil
}
