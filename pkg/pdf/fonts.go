package pdf

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultFont is used whenever a requested font is unknown.
const DefaultFont = "Helvetica"

// Font is one of the standard 14 Type1 fonts.
type Font struct {
	Name string
}

// StandardFont resolves name case-insensitively. Unknown names fall back
// to Helvetica.
func StandardFont(name string) Font {
	if known, ok := coreFont(name); ok {
		return Font{Name: known}
	}
	if strings.EqualFold(strings.TrimSpace(name), "Times") {
		return Font{Name: "Times-Roman"}
	}
	return Font{Name: DefaultFont}
}

// IsStandardFont reports whether name is one of the standard 14 fonts,
// ignoring case.
func IsStandardFont(name string) bool {
	_, ok := coreFont(name)
	return ok
}

func coreFont(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if font.IsCoreFont(name) {
		return name, true
	}
	for _, known := range font.CoreFontNames() {
		if strings.EqualFold(known, name) {
			return known, true
		}
	}
	return "", false
}

// symbolic fonts use their built-in encoding.
func (f Font) symbolic() bool {
	return f.Name == "Symbol" || f.Name == "ZapfDingbats"
}

// TextWidth returns the width of s at size in user space units.
func (f Font) TextWidth(s string, size float64) float64 {
	return font.TextWidth(s, f.Name, 1000) * size / 1000
}

// Height returns the font bounding box height at size.
func (f Font) Height(size float64) float64 {
	return font.BoundingBox(f.Name).Height() * size / 1000
}

// Encode converts s to the byte codes the font dictionary declares.
func (f Font) Encode(s string) []byte {
	if f.symbolic() {
		return []byte(s)
	}
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}

func (f Font) dict() types.Dict {
	d := types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name(f.Name),
	}
	if !f.symbolic() {
		d["Encoding"] = types.Name("WinAnsiEncoding")
	}
	return d
}

// FontRef returns the document-wide font object for f, adding it on first
// use.
func (d *Document) FontRef(f Font) (types.IndirectRef, error) {
	if ref, ok := d.fonts[f.Name]; ok {
		return *ref, nil
	}
	ref, err := d.ctx.IndRefForNewObject(f.dict())
	if err != nil {
		return types.IndirectRef{}, E(IOError, "add font", err)
	}
	d.fonts[f.Name] = ref
	return *ref, nil
}
