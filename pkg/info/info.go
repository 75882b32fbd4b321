// Package info reads document information and page geometry from a PDF.
package info

import (
	"fmt"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Size is a width and height in points; -1 when unknown.
type Size struct {
	Width  float64
	Height float64
}

var unknownSize = Size{Width: -1, Height: -1}

// Known reports whether the size was found in the document.
func (s Size) Known() bool {
	return s.Width >= 0 && s.Height >= 0
}

// Info is an immutable snapshot of a document's information.
type Info struct {
	FileName         string
	FileSize         int64
	PDFVersion       string
	PageCount        int
	PageLayout       string
	Title            string
	Author           string
	Subject          string
	Producer         string
	Creator          string
	Keywords         string
	CreationDate     *time.Time
	ModificationDate *time.Time
	Encrypted        bool
	MediaBox         Size
	CropBox          Size
	XMP              *string
}

// Reader parses a document once and caches the result.
type Reader struct {
	src  *blob.Blob
	conf *pdf.Config

	mu       sync.Mutex
	withXMP  bool
	parsed   bool
	info     *Info
	parseErr error
}

// NewReader returns a reader for src. Nothing is parsed until Read.
func NewReader(src *blob.Blob, opts ...pdf.Option) *Reader {
	return &Reader{src: src, conf: pdf.NewConfig(opts...)}
}

// SetParseWithXMP toggles extraction of the XMP metadata packet. It has to
// be decided before the first parse: setting a different value afterwards
// fails with an invalid state error.
func (r *Reader) SetParseWithXMP(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsed && enabled != r.withXMP {
		return pdf.Errorf(pdf.InvalidStateError, "set parse with xmp", "document already parsed with xmp=%t", r.withXMP)
	}
	r.withXMP = enabled
	return nil
}

// Read parses the document on first call and returns the cached snapshot
// (or the cached failure) afterwards.
func (r *Reader) Read() (*Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.parsed {
		r.info, r.parseErr = r.parse()
		r.parsed = true
	}
	return r.info, r.parseErr
}

func (r *Reader) parse() (*Info, error) {
	doc, err := pdf.OpenConfig(r.src, r.conf)
	if err != nil {
		return nil, err
	}
	defer doc.Release()

	info := &Info{
		FileName:   r.src.Filename,
		FileSize:   r.src.Size(),
		PDFVersion: doc.Version(),
		PageCount:  doc.PageCount(),
		Encrypted:  doc.Encrypted(),
		MediaBox:   unknownSize,
		CropBox:    unknownSize,
	}
	if r.src.Path() == "" {
		info.FileSize = -1
	}

	catalog, err := doc.Catalog()
	if err != nil {
		return nil, err
	}
	if layout, ok := catalog["PageLayout"].(types.Name); ok {
		info.PageLayout = string(layout)
	}

	if err := readInfoDict(doc, info); err != nil {
		return nil, pdf.E(pdf.ParseError, "read info", err)
	}
	if err := readBoxes(doc, info); err != nil {
		return nil, err
	}
	if r.withXMP {
		xmp, err := readXMP(doc, catalog)
		if err != nil {
			return nil, pdf.E(pdf.ParseError, "read xmp", err)
		}
		info.XMP = xmp
	}

	doc.Logger().WithField("pages", info.PageCount).Debug("read document info")
	return info, nil
}

func readInfoDict(doc *pdf.Document, info *Info) error {
	dict, err := doc.InfoDict(false)
	if err != nil || dict == nil {
		return err
	}

	str := func(key string) string {
		obj, err := doc.Context().Dereference(dict[key])
		if err != nil {
			return ""
		}
		return pdf.DecodeText(obj)
	}
	date := func(key string) *time.Time {
		if t, ok := pdf.ParseDate(str(key)); ok {
			return &t
		}
		return nil
	}

	info.Title = str("Title")
	info.Author = str("Author")
	info.Subject = str("Subject")
	info.Producer = str("Producer")
	info.Creator = str("Creator")
	info.Keywords = str("Keywords")
	info.CreationDate = date("CreationDate")
	info.ModificationDate = date("ModDate")
	return nil
}

// readBoxes scans the pages until both a media box and a crop box were
// found. A page without a crop box uses its media box.
func readBoxes(doc *pdf.Document, info *Info) error {
	for i := 1; i <= doc.PageCount(); i++ {
		p, err := doc.Page(i)
		if err != nil {
			return err
		}
		if !info.MediaBox.Known() && p.HasMediaBox() {
			info.MediaBox = Size{Width: p.MediaBox.Width(), Height: p.MediaBox.Height()}
		}
		if !info.CropBox.Known() && (p.HasCropBox() || p.HasMediaBox()) {
			info.CropBox = Size{Width: p.CropBox.Width(), Height: p.CropBox.Height()}
		}
		if info.MediaBox.Known() && info.CropBox.Known() {
			break
		}
	}
	return nil
}

func readXMP(doc *pdf.Document, catalog types.Dict) (*string, error) {
	obj, ok := catalog["Metadata"]
	if !ok || obj == nil {
		return nil, nil
	}
	sd, _, err := doc.Context().DereferenceStreamDict(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference metadata: %w", err)
	}
	if sd == nil {
		return nil, nil
	}
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	xmp := string(sd.Content)
	return &xmp, nil
}
