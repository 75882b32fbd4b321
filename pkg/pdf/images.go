package pdf

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/hhrutter/tiff"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image is an image XObject added to a document.
type Image struct {
	Ref    types.IndirectRef
	Width  int
	Height int
	Format string
}

// EmbedImage adds the encoded image data as an image XObject. JPEG data is
// embedded as is; every other supported format (png, gif, bmp, webp, tiff)
// is stored Flate compressed with a soft mask for transparency.
func (d *Document) EmbedImage(data []byte) (*Image, error) {
	const op = "embed image"
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, E(ParseError, op, errors.Wrap(err, "unsupported image"))
	}

	ref, w, h, err := model.CreateImageResource(d.ctx.XRefTable, bytes.NewReader(data))
	if err != nil {
		return nil, E(ParseError, op, errors.Wrapf(err, "failed to embed %s image", format))
	}
	return &Image{Ref: *ref, Width: w, Height: h, Format: format}, nil
}
