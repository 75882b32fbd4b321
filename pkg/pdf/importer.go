package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Importer deep-copies objects from one document into another, renumbering
// indirect references. Every source object is copied at most once, which
// also takes care of reference cycles. Whole pages move between documents
// with Append; the importer serves resources that end up inside forms.
type Importer struct {
	src, dst *Document
	memo     map[int]types.IndirectRef
}

// NewImporter returns an importer copying from src into dst.
func NewImporter(src, dst *Document) *Importer {
	return &Importer{src: src, dst: dst, memo: make(map[int]types.IndirectRef)}
}

// reserve allocates an object number in dst for the source object ref.
func (im *Importer) reserve(ref types.IndirectRef) (types.IndirectRef, bool, error) {
	if nr, ok := im.memo[int(ref.ObjectNumber)]; ok {
		return nr, false, nil
	}
	nr, err := im.dst.ctx.IndRefForNewObject(nil)
	if err != nil {
		return types.IndirectRef{}, false, fmt.Errorf("failed to allocate object: %w", err)
	}
	im.memo[int(ref.ObjectNumber)] = *nr
	return *nr, true, nil
}

func (im *Importer) set(ref types.IndirectRef, obj types.Object) error {
	entry, ok := im.dst.ctx.Table[int(ref.ObjectNumber)]
	if !ok || entry == nil {
		return fmt.Errorf("object %d missing from target", ref.ObjectNumber)
	}
	entry.Object = obj
	return nil
}

// copy copies obj. Indirect references are followed and copied as new
// objects of dst.
func (im *Importer) copy(obj types.Object) (types.Object, error) {
	switch v := obj.(type) {
	case types.IndirectRef:
		return im.importRef(v)
	case *types.IndirectRef:
		if v == nil {
			return nil, nil
		}
		return im.importRef(*v)
	case types.Dict:
		return im.copyDict(v)
	case types.Array:
		arr := make(types.Array, len(v))
		for i, e := range v {
			c, err := im.copy(e)
			if err != nil {
				return nil, err
			}
			arr[i] = c
		}
		return arr, nil
	case types.StreamDict:
		d, err := im.copyDict(v.Dict)
		if err != nil {
			return nil, err
		}
		v.Dict = d
		return v, nil
	}
	// Scalars are immutable values.
	return obj, nil
}

func (im *Importer) copyDict(d types.Dict) (types.Dict, error) {
	out := types.NewDict()
	for k, e := range d {
		c, err := im.copy(e)
		if err != nil {
			return nil, fmt.Errorf("failed to import /%s: %w", k, err)
		}
		out[k] = c
	}
	return out, nil
}

func (im *Importer) importRef(ref types.IndirectRef) (types.Object, error) {
	nr, fresh, err := im.reserve(ref)
	if err != nil || !fresh {
		return nr, err
	}

	obj, err := im.src.ctx.Dereference(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference object %d: %w", ref.ObjectNumber, err)
	}
	if _, ok := obj.(types.StreamDict); ok {
		sd, _, err := im.src.ctx.DereferenceStreamDict(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load stream %d: %w", ref.ObjectNumber, err)
		}
		if sd != nil {
			obj = *sd
		}
	}

	c, err := im.copy(obj)
	if err != nil {
		return nil, err
	}
	if err := im.set(nr, c); err != nil {
		return nil, err
	}
	return nr, nil
}

// PageAsForm turns a source page into a form XObject of dst, drawn with
// its media box as bounding box.
func (im *Importer) PageAsForm(p *Page) (types.IndirectRef, error) {
	content, err := im.src.PageContent(p)
	if err != nil {
		return types.IndirectRef{}, err
	}

	entries := types.Dict{
		"Type":     types.Name("XObject"),
		"Subtype":  types.Name("Form"),
		"FormType": types.Integer(1),
		"BBox":     rectArray(p.MediaBox),
	}
	if p.Resources != nil {
		res, err := im.copyDict(p.Resources)
		if err != nil {
			return types.IndirectRef{}, err
		}
		entries["Resources"] = res
	}
	ref, err := im.dst.NewStream(content, entries)
	if err != nil {
		return types.IndirectRef{}, err
	}
	return *ref, nil
}
