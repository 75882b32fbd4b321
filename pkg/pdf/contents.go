package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// NewStream adds a Flate compressed stream object built from content and
// the extra dictionary entries.
func (d *Document) NewStream(content []byte, entries types.Dict) (*types.IndirectRef, error) {
	sd := types.StreamDict{
		Dict:           types.NewDict(),
		Content:        content,
		FilterPipeline: []types.PDFFilter{{Name: "FlateDecode"}},
	}
	for k, v := range entries {
		sd.Dict[k] = v
	}
	sd.Dict["Filter"] = types.Name("FlateDecode")

	if err := sd.Encode(); err != nil {
		return nil, fmt.Errorf("failed to encode stream: %w", err)
	}
	length := int64(len(sd.Raw))
	sd.StreamLength = &length
	sd.Dict["Length"] = types.Integer(length)

	ref, err := d.ctx.IndRefForNewObject(sd)
	if err != nil {
		return nil, fmt.Errorf("failed to add stream: %w", err)
	}
	return ref, nil
}

// contentRefs returns the page's content streams as an array of references.
func (d *Document) contentRefs(obj types.Object) (types.Array, error) {
	switch v := obj.(type) {
	case nil:
		return nil, nil
	case types.IndirectRef:
		o, err := d.ctx.Dereference(v)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference content: %w", err)
		}
		if arr, ok := o.(types.Array); ok {
			return arr, nil
		}
		return types.Array{v}, nil
	case *types.IndirectRef:
		return d.contentRefs(*v)
	case types.Array:
		return v, nil
	}
	return nil, fmt.Errorf("unexpected content type %T", obj)
}

// AppendContent appends content to the page. Existing content is wrapped in
// q/Q so its graphics state cannot leak into the appended operators.
func (d *Document) AppendContent(p *Page, content []byte) error {
	existing, err := d.contentRefs(p.Dict["Contents"])
	if err != nil {
		return E(ParseError, "append content", err)
	}

	var buf bytes.Buffer
	if len(existing) > 0 {
		buf.WriteString("Q\n")
	}
	buf.Write(content)
	tail, err := d.NewStream(buf.Bytes(), nil)
	if err != nil {
		return E(IOError, "append content", err)
	}

	if len(existing) == 0 {
		p.Dict["Contents"] = *tail
		return nil
	}

	head, err := d.NewStream([]byte("q\n"), nil)
	if err != nil {
		return E(IOError, "append content", err)
	}
	arr := make(types.Array, 0, len(existing)+2)
	arr = append(arr, *head)
	arr = append(arr, existing...)
	arr = append(arr, *tail)
	p.Dict["Contents"] = arr
	return nil
}

// PageContent returns the page's decoded content streams, concatenated.
func (d *Document) PageContent(p *Page) ([]byte, error) {
	refs, err := d.contentRefs(p.Dict["Contents"])
	if err != nil {
		return nil, err
	}

	var contentStreams [][]byte
	for _, obj := range refs {
		ref, ok := obj.(types.IndirectRef)
		if !ok {
			continue
		}
		streamDict, _, err := d.ctx.DereferenceStreamDict(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference stream: %w", err)
		}
		if streamDict == nil {
			continue
		}
		if err := streamDict.Decode(); err != nil {
			return nil, fmt.Errorf("failed to decode stream: %w", err)
		}
		contentStreams = append(contentStreams, streamDict.Content)
	}
	return bytes.Join(contentStreams, []byte("\n")), nil
}
