package pdf

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
)

// ContentWriter builds a content stream. Close balances any open text
// object and saved graphics states, so a deferred Close always leaves
// well-formed operators behind.
type ContentWriter struct {
	buf    bytes.Buffer
	depth  int
	inText bool
	closed bool
}

// NewContentWriter returns an empty writer.
func NewContentWriter() *ContentWriter {
	return &ContentWriter{}
}

func (w *ContentWriter) op(name string, operands ...float64) {
	for _, v := range operands {
		w.buf.WriteString(formatNumber(v))
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(name)
	w.buf.WriteByte('\n')
}

// SaveState writes q
func (w *ContentWriter) SaveState() {
	w.depth++
	w.op("q")
}

// RestoreState writes Q
func (w *ContentWriter) RestoreState() {
	if w.depth == 0 {
		return
	}
	if w.inText {
		w.EndText()
	}
	w.depth--
	w.op("Q")
}

// BeginText writes BT
func (w *ContentWriter) BeginText() {
	if w.inText {
		return
	}
	w.inText = true
	w.op("BT")
}

// EndText writes ET
func (w *ContentWriter) EndText() {
	if !w.inText {
		return
	}
	w.inText = false
	w.op("ET")
}

// SetGraphicsState selects an ExtGState resource.
func (w *ContentWriter) SetGraphicsState(name string) {
	w.buf.WriteString("/" + name + " gs\n")
}

// SetFont selects a font resource at size.
func (w *ContentWriter) SetFont(name string, size float64) {
	w.buf.WriteString("/" + name + " " + formatNumber(size) + " Tf\n")
}

// SetFillColor sets the nonstroking DeviceRGB color.
func (w *ContentWriter) SetFillColor(c geometry.Color) {
	r, g, b := c.Components()
	w.op("rg", r, g, b)
}

// SetTextMatrix writes Tm
func (w *ContentWriter) SetTextMatrix(m geometry.Matrix) {
	w.op("Tm", m.Operands()...)
}

// MoveText writes Td
func (w *ContentWriter) MoveText(x, y float64) {
	w.op("Td", x, y)
}

// ShowText writes already encoded bytes as a hex string followed by Tj.
func (w *ContentWriter) ShowText(encoded []byte) {
	w.buf.WriteByte('<')
	w.buf.WriteString(hex.EncodeToString(encoded))
	w.buf.WriteString("> Tj\n")
}

// Transform concatenates m to the CTM.
func (w *ContentWriter) Transform(m geometry.Matrix) {
	w.op("cm", m.Operands()...)
}

// DrawXObject paints an XObject resource.
func (w *ContentWriter) DrawXObject(name string) {
	w.buf.WriteString("/" + name + " Do\n")
}

// Close ends any open text object and restores all saved states.
func (w *ContentWriter) Close() error {
	if w.closed {
		return nil
	}
	w.EndText()
	for w.depth > 0 {
		w.RestoreState()
	}
	w.closed = true
	return nil
}

// Bytes returns the content written so far.
func (w *ContentWriter) Bytes() []byte {
	return w.buf.Bytes()
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
