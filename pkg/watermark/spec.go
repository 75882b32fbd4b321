// Package watermark stamps text, images or another PDF's first page onto
// every page of a document.
package watermark

import (
	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Defaults for text watermarks.
const (
	DefaultFontFamily = pdf.DefaultFont
	DefaultFontSize   = 36.0
	DefaultRotation   = 0.0
	DefaultColor      = "#000000"
	DefaultAlpha      = 0.5
	DefaultScale      = 1.0
)

// Content tells what a Spec stamps.
type Content int

const (
	TextContent Content = iota
	ImageContent
	PDFContent
)

// Spec is an immutable watermark description.
type Spec struct {
	content Content

	text     string
	font     pdf.Font
	fontSize float64
	rotation float64
	color    geometry.Color
	alpha    float64
	invertY  bool

	source *blob.Blob // image or overlay document
	scale  float64

	x, y float64
}

// NewTextSpec builds a text watermark. Invalid properties fall back to the
// defaults: a font size below 1 becomes 36, a rotation below 1 becomes 0,
// an alpha outside [0,1] becomes 0.5 and negative positions become 0.
func NewTextSpec(text string, p Properties) Spec {
	s := Spec{
		content:  TextContent,
		text:     text,
		font:     pdf.StandardFont(p.FontFamily),
		fontSize: p.FontSize,
		rotation: p.TextRotation,
		color:    geometry.HexToRGB(DefaultColor),
		alpha:    DefaultAlpha,
		invertY:  p.InvertY,
		x:        p.X,
		y:        p.Y,
		scale:    DefaultScale,
	}
	if s.fontSize < 1 {
		s.fontSize = DefaultFontSize
	}
	if s.rotation < 1 {
		s.rotation = DefaultRotation
	}
	if p.Color != "" {
		s.color = geometry.HexToRGB(p.Color)
	}
	if p.Alpha != nil && *p.Alpha >= 0 && *p.Alpha <= 1 {
		s.alpha = *p.Alpha
	}
	s.x, s.y = clampPosition(s.x, s.y)
	return s
}

// NewImageSpec builds an image watermark drawn at (x, y), its pixel size
// multiplied by scale. A scale <= 0 means 1.
func NewImageSpec(image *blob.Blob, x, y, scale float64) Spec {
	return newOverlaySpec(ImageContent, image, x, y, scale)
}

// NewPDFSpec builds a watermark from the first page of overlay.
func NewPDFSpec(overlay *blob.Blob, x, y, scale float64) Spec {
	return newOverlaySpec(PDFContent, overlay, x, y, scale)
}

func newOverlaySpec(c Content, src *blob.Blob, x, y, scale float64) Spec {
	if scale <= 0 {
		scale = DefaultScale
	}
	x, y = clampPosition(x, y)
	return Spec{content: c, source: src, x: x, y: y, scale: scale, alpha: 1}
}

func clampPosition(x, y float64) (float64, float64) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

func (s Spec) Content() Content {
	return s.content
}

func (s Spec) Text() string {
	return s.text
}

func (s Spec) FontFamily() string {
	return s.font.Name
}

func (s Spec) FontSize() float64 {
	return s.fontSize
}

func (s Spec) Rotation() float64 {
	return s.rotation
}

func (s Spec) Color() geometry.Color {
	return s.color
}

func (s Spec) Alpha() float64 {
	return s.alpha
}

func (s Spec) InvertY() bool {
	return s.invertY
}

func (s Spec) Position() (x, y float64) {
	return s.x, s.y
}

func (s Spec) Scale() float64 {
	return s.scale
}

func (s Spec) Source() *blob.Blob {
	return s.source
}

// empty reports whether applying the spec would not change anything.
func (s Spec) empty() bool {
	switch s.content {
	case TextContent:
		return s.text == ""
	default:
		return s.source == nil
	}
}
