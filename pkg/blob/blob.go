// Package blob holds the byte streams that flow in and out of the PDF
// operations: a filename, a mimetype, an optional encoding and the bytes
// themselves, backed by a file, a buffer or a one-shot reader.
package blob

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// MimeTypePDF is the mimetype of every PDF produced by this module.
const MimeTypePDF = "application/pdf"

type backing int

const (
	backedByFile backing = iota
	backedByBytes
	backedByStream
)

// Blob is a named byte stream.
type Blob struct {
	Filename string
	MimeType string
	Encoding string

	kind backing
	path string
	temp bool

	mu     sync.Mutex
	data   []byte
	stream io.Reader
}

// FromFile returns a blob backed by the file at path. The filename
// defaults to the base name of path.
func FromFile(path string) *Blob {
	return &Blob{
		Filename: filepath.Base(path),
		MimeType: guessMimeType(path),
		kind:     backedByFile,
		path:     path,
	}
}

// FromBytes returns a blob backed by data. The slice is not copied.
func FromBytes(data []byte, filename, mimeType string) *Blob {
	return &Blob{
		Filename: filename,
		MimeType: mimeType,
		kind:     backedByBytes,
		data:     data,
	}
}

// FromReader returns a blob backed by r. The stream is drained into memory
// the first time the blob is opened; its size stays unknown.
func FromReader(r io.Reader, filename, mimeType string) *Blob {
	return &Blob{
		Filename: filename,
		MimeType: mimeType,
		kind:     backedByStream,
		stream:   r,
	}
}

// Path returns the backing file, or "" when the blob is not file-backed.
func (b *Blob) Path() string {
	if b.kind != backedByFile {
		return ""
	}
	return b.path
}

// IsTemp reports whether the blob owns a temporary file.
func (b *Blob) IsTemp() bool {
	return b.temp
}

// Size returns the byte length, or -1 when the blob is stream-backed.
func (b *Blob) Size() int64 {
	switch b.kind {
	case backedByFile:
		fi, err := os.Stat(b.path)
		if err != nil {
			return -1
		}
		return fi.Size()
	case backedByBytes:
		return int64(len(b.data))
	default:
		return -1
	}
}

// ReadSeekCloser is what Open returns.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.ReaderAt
	io.Closer
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// Open returns a fresh reader positioned at the start of the content.
func (b *Blob) Open() (ReadSeekCloser, error) {
	if b == nil {
		return nil, errors.New("blob is nil")
	}
	switch b.kind {
	case backedByFile:
		f, err := os.Open(b.path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", b.path)
		}
		return f, nil
	default:
		data, err := b.buffer()
		if err != nil {
			return nil, err
		}
		return nopCloser{bytes.NewReader(data)}, nil
	}
}

func (b *Blob) buffer() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.kind == backedByStream && b.stream != nil {
		data, err := io.ReadAll(b.stream)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stream")
		}
		b.data = data
		b.stream = nil
	}
	return b.data, nil
}

// Bytes returns the whole content.
func (b *Blob) Bytes() ([]byte, error) {
	if b.kind != backedByFile {
		return b.buffer()
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", b.path)
	}
	return data, nil
}

// Digest returns the hex encoded BLAKE2b-256 sum of the content.
func (b *Blob) Digest() (string, error) {
	r, err := b.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Wrap(err, "failed to hash content")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func guessMimeType(path string) string {
	switch filepath.Ext(path) {
	case ".pdf", ".PDF":
		return MimeTypePDF
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return ""
}
