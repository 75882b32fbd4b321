// Package text extracts the plain text of a PDF and looks up lines in it.
package text

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Extractor extracts a document's text once and answers line lookups from
// the cached result.
type Extractor struct {
	src  *blob.Blob
	conf *pdf.Config

	once  sync.Once
	pages []string
	text  string
	err   error
}

// NewExtractor returns an extractor for src.
func NewExtractor(src *blob.Blob, opts ...pdf.Option) *Extractor {
	return &Extractor{src: src, conf: pdf.NewConfig(opts...)}
}

func (e *Extractor) load() error {
	e.once.Do(func() {
		e.pages, e.err = e.extract()
		if e.err == nil {
			e.text = strings.Join(e.pages, "\n")
		}
	})
	return e.err
}

// Text returns the text of the whole document, pages separated by a
// newline.
func (e *Extractor) Text() (string, error) {
	if err := e.load(); err != nil {
		return "", err
	}
	return e.text, nil
}

// PageTexts returns the text of every page.
func (e *Extractor) PageTexts() ([]string, error) {
	if err := e.load(); err != nil {
		return nil, err
	}
	out := make([]string, len(e.pages))
	copy(out, e.pages)
	return out, nil
}

// LineContaining returns the first line containing needle, trimmed of
// surrounding whitespace. A missing needle is not an error.
func (e *Extractor) LineContaining(needle string) (string, bool, error) {
	text, err := e.Text()
	if err != nil {
		return "", false, err
	}
	line, ok := findLine(text, needle)
	return line, ok, nil
}

// Tail returns the part of the matched line that follows needle.
func (e *Extractor) Tail(needle string) (string, bool, error) {
	line, ok, err := e.LineContaining(needle)
	if err != nil || !ok {
		return "", ok, err
	}
	idx := strings.Index(line, needle)
	if idx < 0 {
		// needle had surrounding whitespace that the trim removed
		idx = strings.Index(line, strings.TrimSpace(needle))
		return line[idx+len(strings.TrimSpace(needle)):], true, nil
	}
	return line[idx+len(needle):], true, nil
}

func findLine(text, needle string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, needle) {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// extract opens the document with the engine first so that non-PDF input
// and bad passwords fail the same way everywhere, then runs the text
// backends on the (decrypted) bytes.
func (e *Extractor) extract() ([]string, error) {
	const op = "extract text"

	doc, err := pdf.OpenConfig(e.src, e.conf)
	if err != nil {
		return nil, err
	}
	encrypted := doc.Encrypted()
	doc.Release()

	data, err := e.src.Bytes()
	if err != nil {
		return nil, pdf.E(pdf.IOError, op, err)
	}
	if encrypted {
		if data, err = decrypt(data, e.conf); err != nil {
			return nil, err
		}
	}

	log := e.conf.Logger.WithField("file", e.src.Filename)
	pages, err := ledongthucPages(data)
	if err == nil {
		return pages, nil
	}
	log.WithError(err).Debug("primary text backend failed, falling back")

	pages, fallbackErr := dslipakPages(data)
	if fallbackErr != nil {
		return nil, pdf.E(pdf.ParseError, op, errors.Wrapf(err, "fallback also failed: %v", fallbackErr))
	}
	return pages, nil
}

func decrypt(data []byte, conf *pdf.Config) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &out, conf.Model()); err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, pdf.E(pdf.BadPassword, "decrypt", err)
		}
		return nil, pdf.E(pdf.ParseError, "decrypt", err)
	}
	return out.Bytes(), nil
}
