package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
)

// Page is a single page together with its inherited attributes.
type Page struct {
	Number    int
	Dict      types.Dict
	Ref       *types.IndirectRef
	MediaBox  geometry.Rectangle
	CropBox   geometry.Rectangle
	Rotate    int
	Resources types.Dict

	hasMediaBox bool
	hasCropBox  bool
}

// HasMediaBox reports whether the page or one of its ancestors declares a
// media box. When none does, MediaBox holds US Letter.
func (p *Page) HasMediaBox() bool {
	return p.hasMediaBox
}

// HasCropBox reports whether a crop box was declared. When none was,
// CropBox equals MediaBox.
func (p *Page) HasCropBox() bool {
	return p.hasCropBox
}

// Page returns page pageNr (1-based).
func (d *Document) Page(pageNr int) (*Page, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return nil, Errorf(PageRangeError, "page", "page number %d out of range [1, %d]", pageNr, d.ctx.PageCount)
	}

	// Get page dictionary and inherited attributes
	pageDict, ref, attrs, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, E(ParseError, "page", fmt.Errorf("failed to get page dict: %w", err))
	}
	if pageDict == nil {
		return nil, Errorf(ParseError, "page", "page %d not found", pageNr)
	}

	p := &Page{
		Number:   pageNr,
		Dict:     pageDict,
		Ref:      ref,
		MediaBox: geometry.Letter,
	}

	if attrs != nil {
		if attrs.MediaBox != nil {
			p.MediaBox = rectFrom(attrs.MediaBox)
			p.hasMediaBox = true
		}
		if attrs.CropBox != nil {
			p.CropBox = rectFrom(attrs.CropBox)
			p.hasCropBox = true
		}
		p.Rotate = attrs.Rotate
	} else if rot, ok := pageDict["Rotate"].(types.Integer); ok {
		p.Rotate = int(rot)
	}
	if !p.hasCropBox {
		p.CropBox = p.MediaBox
	}

	res, err := d.inheritedDict(pageDict, "Resources")
	if err != nil {
		return nil, E(ParseError, "page", err)
	}
	p.Resources = res

	return p, nil
}

// inheritedDict looks key up on the node and then on its ancestors.
func (d *Document) inheritedDict(node types.Dict, key string) (types.Dict, error) {
	for depth := 0; node != nil && depth < 64; depth++ {
		if obj, ok := node[key]; ok && obj != nil {
			dict, err := d.ctx.DereferenceDict(obj)
			if err != nil {
				return nil, fmt.Errorf("failed to dereference %s: %w", key, err)
			}
			return dict, nil
		}
		parent, ok := node["Parent"]
		if !ok {
			return nil, nil
		}
		next, err := d.ctx.DereferenceDict(parent)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference parent: %w", err)
		}
		node = next
	}
	return nil, nil
}

// ForEachPage calls fn for every page in order, stopping at the first error.
func (d *Document) ForEachPage(fn func(*Page) error) error {
	for i := 1; i <= d.ctx.PageCount; i++ {
		p, err := d.Page(i)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func rectFrom(r *types.Rectangle) geometry.Rectangle {
	return geometry.NewRectangle(r.LL.X, r.LL.Y, r.UR.X, r.UR.Y)
}

func rectArray(r geometry.Rectangle) types.Array {
	return types.Array{
		types.Float(r.LLX), types.Float(r.LLY),
		types.Float(r.URX), types.Float(r.URY),
	}
}
