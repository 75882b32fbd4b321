// Package numbering stamps running page numbers onto a document.
package numbering

import (
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// DefaultFontSize is used for sizes <= 0.
const DefaultFontSize = 16

// Spec describes the numbers to add.
type Spec struct {
	StartAtPage   int
	StartAtNumber int
	FontFamily    string
	FontSize      float64
	Color         string // hex, see geometry.HexToRGB
	Position      geometry.Anchor
}

type resolved struct {
	startAtPage   int
	startAtNumber int
	font          pdf.Font
	fontSize      float64
	color         geometry.Color
	position      geometry.Anchor
}

func (s Spec) normalize(pageCount int, log logrus.FieldLogger) resolved {
	r := resolved{
		startAtPage:   s.StartAtPage,
		startAtNumber: s.StartAtNumber,
		font:          pdf.StandardFont(s.FontFamily),
		fontSize:      s.FontSize,
		color:         geometry.HexToRGB(s.Color),
		position:      s.Position,
	}
	if r.startAtPage < 1 {
		r.startAtPage = 1
	}
	if r.startAtNumber < 1 {
		r.startAtNumber = 1
	}
	if r.fontSize <= 0 {
		r.fontSize = DefaultFontSize
	}
	if r.startAtPage > pageCount {
		log.WithFields(logrus.Fields{"startAtPage": r.startAtPage, "pages": pageCount}).
			Warn("start page past the last page, numbering from page 1")
		r.startAtPage = 1
	}
	if s.FontFamily != "" && !pdf.IsStandardFont(s.FontFamily) {
		log.WithField("font", s.FontFamily).Warn("unknown font, using " + pdf.DefaultFont)
	}
	return r
}

// AddPageNumbers stamps numbers on pages StartAtPage..last, counting up
// from StartAtNumber. The output keeps the source filename.
func AddPageNumbers(src *blob.Blob, spec Spec, opts ...pdf.Option) (*blob.Blob, error) {
	doc, err := pdf.Open(src, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Release()

	r := spec.normalize(doc.PageCount(), doc.Logger())
	fontRef, err := doc.FontRef(r.font)
	if err != nil {
		return nil, err
	}

	number := r.startAtNumber
	for i := r.startAtPage; i <= doc.PageCount(); i++ {
		p, err := doc.Page(i)
		if err != nil {
			return nil, err
		}
		if err := stampNumber(doc, p, fontRef, r, strconv.Itoa(number)); err != nil {
			return nil, err
		}
		number++
	}

	return doc.Save(src.Filename)
}

func stampNumber(doc *pdf.Document, p *pdf.Page, fontRef types.IndirectRef, r resolved, label string) error {
	res, err := doc.PageResources(p)
	if err != nil {
		return err
	}
	fontName, err := res.AddFont("PN", fontRef)
	if err != nil {
		return pdf.E(pdf.IOError, "add page number", err)
	}

	width := r.font.TextWidth(label, r.fontSize)
	height := r.font.Height(r.fontSize)
	x, y := geometry.PageNumberPosition(r.position, p.MediaBox, width, height)

	w := pdf.NewContentWriter()
	defer w.Close()
	w.SaveState()
	w.BeginText()
	w.SetFont(fontName, r.fontSize)
	w.MoveText(x, y)
	w.SetFillColor(r.color)
	w.ShowText(r.font.Encode(label))
	w.EndText()
	w.RestoreState()
	if err := w.Close(); err != nil {
		return err
	}
	return doc.AppendContent(p, w.Bytes())
}
