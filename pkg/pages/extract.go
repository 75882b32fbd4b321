// Package pages extracts a page range into a new document.
package pages

import (
	"fmt"
	"strings"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Range is a 1-based inclusive page range.
type Range struct {
	Start, End int
}

// Normalize clamps the range to a document of count pages. A start past
// the last page restarts at page 1, which callers have long relied on.
func (r Range) Normalize(count int) (Range, error) {
	if r.Start < 1 || r.Start > count {
		r.Start = 1
	}
	if r.End > count {
		r.End = count
	}
	if r.End < r.Start {
		return r, pdf.Errorf(pdf.PageRangeError, "extract pages", "empty page range %d-%d", r.Start, r.End)
	}
	return r, nil
}

// Len returns the number of pages in the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) pageNumbers() []int {
	nrs := make([]int, 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		nrs = append(nrs, i)
	}
	return nrs
}

// Meta holds the optional name and information of the extracted document.
type Meta struct {
	FileName string
	Title    string
	Subject  string
	Author   string
}

// Extract returns a new document holding pages start..end of src.
func Extract(src *blob.Blob, start, end int, meta Meta, opts ...pdf.Option) (*blob.Blob, error) {
	const op = "extract pages"

	doc, err := pdf.Open(src, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Release()

	r, err := Range{Start: start, End: end}.Normalize(doc.PageCount())
	if err != nil {
		return nil, err
	}
	log := doc.Logger().WithField("range", fmt.Sprintf("%d-%d", r.Start, r.End))
	if r.Start != start || r.End != end {
		log.WithField("requested", fmt.Sprintf("%d-%d", start, end)).Warn("page range adjusted")
	}

	if err := doc.KeepPages(r.pageNumbers()); err != nil {
		return nil, pdf.E(pdf.ParseError, op, err)
	}
	if err := doc.SetInfo(meta.Title, meta.Subject, meta.Author); err != nil {
		return nil, err
	}

	name := meta.FileName
	if name == "" {
		name = DefaultFileName(src.Filename, Range{Start: start, End: end})
	}
	out, err := doc.Save(name)
	if err != nil {
		return nil, err
	}
	log.Debug("extracted pages")
	return out, nil
}

// DefaultFileName builds "{stem}-{start}-{end}.pdf" where stem is name
// without its last ".pdf" (any case), or "extracted" when there is none.
// Extract passes the requested range, not the adjusted one.
func DefaultFileName(name string, r Range) string {
	stem := name
	if pos := strings.LastIndex(strings.ToLower(stem), ".pdf"); pos > 0 {
		stem = stem[:pos]
	}
	if stem == "" {
		stem = "extracted"
	}
	return fmt.Sprintf("%s-%d-%d.pdf", stem, r.Start, r.End)
}
