package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Resources is a page-private resource dictionary. Pages often share one
// inherited dictionary; every insertion goes through a copy installed on
// the page itself so that stamping one page never leaks into another.
type Resources struct {
	doc  *Document
	page *Page
	dict types.Dict
	own  map[string]bool
}

// PageResources installs a private copy of the page's resources and
// returns it.
func (d *Document) PageResources(p *Page) (*Resources, error) {
	dict := types.NewDict()
	for k, v := range p.Resources {
		dict[k] = v
	}
	p.Dict["Resources"] = dict
	p.Resources = dict
	return &Resources{doc: d, page: p, dict: dict, own: map[string]bool{}}, nil
}

// Dict returns the page's resource dictionary.
func (r *Resources) Dict() types.Dict {
	return r.dict
}

// category returns the private copy of a sub-dictionary such as /Font.
func (r *Resources) category(name string) (types.Dict, error) {
	if r.own[name] {
		return r.dict[name].(types.Dict), nil
	}
	sub := types.NewDict()
	if obj, ok := r.dict[name]; ok && obj != nil {
		existing, err := r.doc.ctx.DereferenceDict(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference /%s resources: %w", name, err)
		}
		for k, v := range existing {
			sub[k] = v
		}
	}
	r.dict[name] = sub
	r.own[name] = true
	return sub, nil
}

func (r *Resources) add(category, prefix string, obj types.Object) (string, error) {
	sub, err := r.category(category)
	if err != nil {
		return "", err
	}
	name := uniqueName(sub, prefix)
	sub[name] = obj
	return name, nil
}

// AddFont registers a font and returns its resource name.
func (r *Resources) AddFont(prefix string, font types.Object) (string, error) {
	return r.add("Font", prefix, font)
}

// AddExtGState registers a graphics state parameter dictionary.
func (r *Resources) AddExtGState(prefix string, gs types.Dict) (string, error) {
	return r.add("ExtGState", prefix, gs)
}

// AddXObject registers an image or form XObject.
func (r *Resources) AddXObject(prefix string, ref types.IndirectRef) (string, error) {
	return r.add("XObject", prefix, ref)
}

func uniqueName(d types.Dict, prefix string) string {
	for i := 0; ; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		if _, taken := d[name]; !taken {
			return name
		}
	}
}

// TransparencyState returns a graphics state dictionary with the given
// nonstroking alpha.
func TransparencyState(alpha float64) types.Dict {
	return types.Dict{
		"Type": types.Name("ExtGState"),
		"ca":   types.Float(alpha),
	}
}
