package watermark

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfutils-golang/internal/testpdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/text"
)

func source(data []byte) *blob.Blob {
	return blob.FromBytes(data, "source.pdf", blob.MimeTypePDF)
}

func reopen(t *testing.T, out *blob.Blob) *pdf.Document {
	t.Helper()
	doc, err := pdf.Open(out)
	require.NoError(t, err)
	t.Cleanup(doc.Release)
	return doc
}

func pageContent(t *testing.T, doc *pdf.Document, nr int) (*pdf.Page, string) {
	t.Helper()
	p, err := doc.Page(nr)
	require.NoError(t, err)
	content, err := doc.PageContent(p)
	require.NoError(t, err)
	return p, string(content)
}

func resource(t *testing.T, doc *pdf.Document, p *pdf.Page, category, name string) types.Object {
	t.Helper()
	sub, err := doc.Context().DereferenceDict(p.Resources[category])
	require.NoError(t, err)
	require.Contains(t, sub, name)
	return sub[name]
}

func TestEmptyTextCopiesSource(t *testing.T) {
	var reg blob.TempRegistry
	defer reg.Dispose()

	src := source(testpdf.Pages(2))
	src.Encoding = "binary"
	out, err := Text(src, "", Properties{}, pdf.WithTracker(&reg), pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	assert.NotSame(t, src, out)
	assert.Equal(t, src.Filename, out.Filename)
	assert.Equal(t, src.MimeType, out.MimeType)
	assert.Equal(t, src.Encoding, out.Encoding)
	assert.Equal(t, 1, reg.Len())

	want, err := src.Digest()
	require.NoError(t, err)
	got, err := out.Digest()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTextWatermark(t *testing.T) {
	alpha := 0.5
	out, err := Text(source(testpdf.Pages(3)), "CONFIDENTIAL", Properties{
		X:     100,
		Y:     200,
		Alpha: &alpha,
	}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "source.pdf", out.Filename)

	pages, err := text.NewExtractor(out).PageTexts()
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for i, page := range pages {
		assert.Contains(t, page, "CONFIDENTIAL", "page %d", i+1)
		assert.Contains(t, page, testpdf.PageText("", i+1))
	}

	doc := reopen(t, out)
	for nr := 1; nr <= doc.PageCount(); nr++ {
		p, content := pageContent(t, doc, nr)
		assert.Contains(t, content, "/WmGS0 gs")
		assert.Contains(t, content, "/WmF0 36 Tf")
		assert.Contains(t, content, "0 0 0 rg")
		assert.Contains(t, content, "1 0 0 1 100 200 Tm")

		gs, err := doc.Context().DereferenceDict(resource(t, doc, p, "ExtGState", "WmGS0"))
		require.NoError(t, err)
		ca, ok := gs["ca"].(types.Float)
		require.True(t, ok)
		assert.InDelta(t, 0.5, float64(ca), 1e-6)
	}
}

func TestTextWatermarkInvertY(t *testing.T) {
	src := source(testpdf.Build(testpdf.Options{Pages: 1, MediaBox: [4]float64{0, 0, 600, 800}}))
	out, err := Text(src, "TOP", Properties{X: 30, Y: 40, InvertY: true}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	_, content := pageContent(t, reopen(t, out), 1)
	assert.Contains(t, content, "1 0 0 1 30 760 Tm")
}

func TestTextWatermarkRotatedPage(t *testing.T) {
	src := source(testpdf.Build(testpdf.Options{Pages: 1, MediaBox: [4]float64{0, 0, 600, 800}, Rotate: 90}))
	out, err := Text(src, "ROTATED", Properties{X: 5, Y: 5}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	_, content := pageContent(t, reopen(t, out), 1)
	assert.Contains(t, content, "0 1 -1 0 300 ")
}

func TestTextWatermarkRotatedText(t *testing.T) {
	out, err := Text(source(testpdf.Pages(1)), "TURNED", Properties{X: 10, Y: 20, TextRotation: 90}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	_, content := pageContent(t, reopen(t, out), 1)
	assert.Contains(t, content, "0 1 -1 0 10 20 Tm")
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageWatermark(t *testing.T) {
	logo := blob.FromBytes(pngImage(t), "logo.png", "image/png")
	out, err := WithImage(source(testpdf.Pages(2)), logo, 10, 20, 2, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	doc := reopen(t, out)
	require.Equal(t, 2, doc.PageCount())
	for nr := 1; nr <= 2; nr++ {
		p, content := pageContent(t, doc, nr)
		assert.Contains(t, content, "8 0 0 4 10 20 cm\n/WmIm0 Do")
		assert.Contains(t, content, "(Page "+testpdf.Label(nr)+") Tj")

		sd, _, err := doc.Context().DereferenceStreamDict(resource(t, doc, p, "XObject", "WmIm0"))
		require.NoError(t, err)
		require.NotNil(t, sd)
		assert.Equal(t, types.Name("Image"), sd.Dict["Subtype"])
		assert.Contains(t, sd.Dict, "SMask")
	}
}

func TestImageWatermarkRejectsGarbage(t *testing.T) {
	garbage := blob.FromBytes([]byte("not an image"), "logo.png", "image/png")
	_, err := WithImage(source(testpdf.Pages(1)), garbage, 0, 0, 1, pdf.WithTempDir(t.TempDir()))
	assert.ErrorIs(t, err, pdf.ErrParse)
}

func TestPDFWatermark(t *testing.T) {
	overlay := blob.FromBytes(testpdf.Build(testpdf.Options{Pages: 2, Prefix: "Overlay"}), "overlay.pdf", blob.MimeTypePDF)
	out, err := WithPDF(source(testpdf.Pages(3)), overlay, 5, 6, 0, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	doc := reopen(t, out)
	require.Equal(t, 3, doc.PageCount())

	var forms []types.Object
	for nr := 1; nr <= 3; nr++ {
		p, content := pageContent(t, doc, nr)
		assert.Contains(t, content, "1 0 0 1 5 6 cm\n/WmFm0 Do")
		forms = append(forms, resource(t, doc, p, "XObject", "WmFm0"))
	}
	// one form shared by all pages
	assert.Equal(t, forms[0], forms[1])
	assert.Equal(t, forms[0], forms[2])

	sd, _, err := doc.Context().DereferenceStreamDict(forms[0])
	require.NoError(t, err)
	require.NotNil(t, sd)
	assert.Equal(t, types.Name("Form"), sd.Dict["Subtype"])
	require.NoError(t, sd.Decode())
	form := string(sd.Content)
	assert.Contains(t, form, "(Overlay A) Tj")
	assert.False(t, strings.Contains(form, "Overlay B"))
}

func TestPDFWatermarkNotPDF(t *testing.T) {
	overlay := blob.FromBytes([]byte("plain text"), "overlay.pdf", blob.MimeTypePDF)
	_, err := WithPDF(source(testpdf.Pages(1)), overlay, 0, 0, 1, pdf.WithTempDir(t.TempDir()))
	assert.ErrorIs(t, err, pdf.ErrParse)
}

func TestMissingOverlayCopiesSource(t *testing.T) {
	var reg blob.TempRegistry
	defer reg.Dispose()

	src := source(testpdf.Pages(2))
	want, err := src.Digest()
	require.NoError(t, err)

	for name, apply := range map[string]func() (*blob.Blob, error){
		"pdf": func() (*blob.Blob, error) {
			return WithPDF(src, nil, 0, 0, 1, pdf.WithTracker(&reg), pdf.WithTempDir(t.TempDir()))
		},
		"image": func() (*blob.Blob, error) {
			return WithImage(src, nil, 0, 0, 1, pdf.WithTracker(&reg), pdf.WithTempDir(t.TempDir()))
		},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := apply()
			require.NoError(t, err)
			assert.NotSame(t, src, out)
			assert.True(t, out.IsTemp())
			assert.Equal(t, src.Filename, out.Filename)
			assert.Equal(t, blob.MimeTypePDF, out.MimeType)

			got, err := out.Digest()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
	assert.Equal(t, 2, reg.Len())
}
