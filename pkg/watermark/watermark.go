package watermark

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Resource name prefixes used in page resource dictionaries.
const (
	fontPrefix  = "WmF"
	statePrefix = "WmGS"
	imagePrefix = "WmIm"
	formPrefix  = "WmFm"
)

// stamper draws a watermark onto one page.
type stamper func(doc *pdf.Document, p *pdf.Page) error

// Apply stamps spec onto every page of src. A spec without text or
// overlay source yields a copy of src. The result keeps the source
// filename.
func Apply(src *blob.Blob, spec Spec, opts ...pdf.Option) (*blob.Blob, error) {
	conf := pdf.NewConfig(opts...)
	if spec.empty() {
		out, err := blob.CopyToTemp(src, conf.TempDir, conf.Tracker)
		if err != nil {
			return nil, pdf.E(pdf.IOError, "watermark", err)
		}
		return out, nil
	}

	doc, err := pdf.OpenConfig(src, conf)
	if err != nil {
		return nil, err
	}
	defer doc.Release()

	var stamp stamper
	switch spec.content {
	case TextContent:
		stamp, err = textStamper(doc, spec)
	case ImageContent:
		stamp, err = imageStamper(doc, spec)
	case PDFContent:
		stamp, err = pdfStamper(doc, spec, conf)
	default:
		err = pdf.Errorf(pdf.InvalidStateError, "watermark", "unknown content %d", spec.content)
	}
	if err != nil {
		return nil, err
	}

	doc.Logger().WithFields(logrus.Fields{
		"file":  src.Filename,
		"pages": doc.PageCount(),
	}).Debug("applying watermark")

	if err := doc.ForEachPage(func(p *pdf.Page) error {
		return stamp(doc, p)
	}); err != nil {
		return nil, err
	}
	return doc.Save(src.Filename)
}

func textStamper(doc *pdf.Document, spec Spec) (stamper, error) {
	fontRef, err := doc.FontRef(spec.font)
	if err != nil {
		return nil, err
	}
	encoded := spec.font.Encode(spec.text)
	textWidth := spec.font.TextWidth(spec.text, spec.fontSize)

	return func(doc *pdf.Document, p *pdf.Page) error {
		res, err := doc.PageResources(p)
		if err != nil {
			return err
		}
		fontName, err := res.AddFont(fontPrefix, fontRef)
		if err != nil {
			return pdf.E(pdf.IOError, "watermark", err)
		}
		gsName, err := res.AddExtGState(statePrefix, pdf.TransparencyState(spec.alpha))
		if err != nil {
			return pdf.E(pdf.IOError, "watermark", err)
		}

		placement := geometry.TextPlacement{
			PageWidth:    p.MediaBox.Width(),
			PageHeight:   p.MediaBox.Height(),
			PageRotation: p.Rotate,
			TextRotation: spec.rotation,
			TextWidth:    textWidth,
			X:            spec.x,
			Y:            spec.y,
			InvertY:      spec.invertY,
		}

		w := pdf.NewContentWriter()
		defer w.Close()
		w.SaveState()
		w.SetGraphicsState(gsName)
		w.BeginText()
		w.SetFont(fontName, spec.fontSize)
		w.SetFillColor(spec.color)
		w.SetTextMatrix(placement.Matrix())
		w.ShowText(encoded)
		w.EndText()
		w.RestoreState()
		if err := w.Close(); err != nil {
			return err
		}
		return doc.AppendContent(p, w.Bytes())
	}, nil
}

func imageStamper(doc *pdf.Document, spec Spec) (stamper, error) {
	data, err := spec.source.Bytes()
	if err != nil {
		return nil, pdf.E(pdf.IOError, "watermark", errors.Wrap(err, "failed to read image"))
	}
	img, err := doc.EmbedImage(data)
	if err != nil {
		return nil, err
	}
	doc.Logger().WithFields(logrus.Fields{
		"format": img.Format,
		"width":  img.Width,
		"height": img.Height,
	}).Debug("embedded watermark image")

	m := geometry.Scale(float64(img.Width)*spec.scale, float64(img.Height)*spec.scale).
		Multiply(geometry.Translate(spec.x, spec.y))
	return xobjectStamper(imagePrefix, img.Ref, m), nil
}

func pdfStamper(doc *pdf.Document, spec Spec, conf *pdf.Config) (stamper, error) {
	// the overlay is opened without the password of the target
	overlay, err := pdf.OpenConfig(spec.source, conf.With(pdf.WithPassword("")))
	if err != nil {
		return nil, errors.WithMessage(err, "watermark overlay")
	}
	defer overlay.Release()

	first, err := overlay.Page(1)
	if err != nil {
		return nil, err
	}
	form, err := pdf.NewImporter(overlay, doc).PageAsForm(first)
	if err != nil {
		return nil, err
	}

	m := geometry.Scale(spec.scale, spec.scale).Multiply(geometry.Translate(spec.x, spec.y))
	return xobjectStamper(formPrefix, form, m), nil
}

func xobjectStamper(prefix string, ref types.IndirectRef, m geometry.Matrix) stamper {
	return func(doc *pdf.Document, p *pdf.Page) error {
		res, err := doc.PageResources(p)
		if err != nil {
			return err
		}
		name, err := res.AddXObject(prefix, ref)
		if err != nil {
			return pdf.E(pdf.IOError, "watermark", err)
		}

		w := pdf.NewContentWriter()
		defer w.Close()
		w.SaveState()
		w.Transform(m)
		w.DrawXObject(name)
		w.RestoreState()
		if err := w.Close(); err != nil {
			return err
		}
		return doc.AppendContent(p, w.Bytes())
	}
}

// Text stamps text using the given properties.
func Text(src *blob.Blob, text string, props Properties, opts ...pdf.Option) (*blob.Blob, error) {
	return Apply(src, NewTextSpec(text, props), opts...)
}

// WithImage stamps an image at (x, y).
func WithImage(src, image *blob.Blob, x, y, scale float64, opts ...pdf.Option) (*blob.Blob, error) {
	return Apply(src, NewImageSpec(image, x, y, scale), opts...)
}

// WithPDF stamps the first page of overlay at (x, y).
func WithPDF(src, overlay *blob.Blob, x, y, scale float64, opts ...pdf.Option) (*blob.Blob, error) {
	return Apply(src, NewPDFSpec(overlay, x, y, scale), opts...)
}
