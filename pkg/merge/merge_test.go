package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfutils-golang/internal/testpdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/info"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/text"
)

func fixture(name, prefix string, pages int) *blob.Blob {
	return blob.FromBytes(testpdf.Build(testpdf.Options{Pages: pages, Prefix: prefix}), name, blob.MimeTypePDF)
}

func TestMergeNothing(t *testing.T) {
	out, err := Merge(nil, Request{})
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = Merge([]*blob.Blob{nil, nil}, Request{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMergeSingleSourceIsReturned(t *testing.T) {
	src := fixture("only.pdf", "Only", 2)
	out, err := Merge([]*blob.Blob{nil, src}, Request{OutputName: "ignored.pdf", Title: "ignored"})
	require.NoError(t, err)
	assert.Same(t, src, out)
}

func TestMerge(t *testing.T) {
	var reg blob.TempRegistry
	defer reg.Dispose()

	sources := []*blob.Blob{
		fixture("first.pdf", "First", 2),
		fixture("second.pdf", "Second", 3),
		nil,
		fixture("third.pdf", "Third", 1),
	}
	out, err := Merge(sources, Request{Title: "Merged", Author: "Tester"}, pdf.WithTracker(&reg), pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "first.pdf", out.Filename)
	assert.Equal(t, blob.MimeTypePDF, out.MimeType)
	assert.Equal(t, 1, reg.Len())

	pages, err := text.NewExtractor(out).PageTexts()
	require.NoError(t, err)
	require.Len(t, pages, 6)

	want := []string{
		testpdf.PageText("First", 1),
		testpdf.PageText("First", 2),
		testpdf.PageText("Second", 1),
		testpdf.PageText("Second", 2),
		testpdf.PageText("Second", 3),
		testpdf.PageText("Third", 1),
	}
	for i, w := range want {
		assert.Contains(t, pages[i], w, "page %d", i+1)
	}

	meta, err := info.NewReader(out).Read()
	require.NoError(t, err)
	assert.Equal(t, 6, meta.PageCount)
	assert.Equal(t, "Merged", meta.Title)
	assert.Equal(t, "Tester", meta.Author)
}

func TestMergeKeepsPageBoxes(t *testing.T) {
	small := blob.FromBytes(testpdf.Build(testpdf.Options{Pages: 1, MediaBox: [4]float64{0, 0, 300, 400}, Rotate: 90}), "small.pdf", blob.MimeTypePDF)
	out, err := Merge([]*blob.Blob{fixture("a.pdf", "A", 1), small}, Request{OutputName: "boxes.pdf"}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "boxes.pdf", out.Filename)

	doc, err := pdf.Open(out)
	require.NoError(t, err)
	defer doc.Release()

	first, err := doc.Page(1)
	require.NoError(t, err)
	assert.Equal(t, 612.0, first.MediaBox.Width())

	second, err := doc.Page(2)
	require.NoError(t, err)
	assert.Equal(t, 300.0, second.MediaBox.Width())
	assert.Equal(t, 400.0, second.MediaBox.Height())
	assert.Equal(t, 90, second.Rotate)
}

func TestMergeFailureNamesSource(t *testing.T) {
	bad := blob.FromBytes([]byte("garbage"), "bad.pdf", blob.MimeTypePDF)
	_, err := Merge([]*blob.Blob{fixture("a.pdf", "A", 1), bad}, Request{}, pdf.WithTempDir(t.TempDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, pdf.ErrMerge)
	assert.ErrorIs(t, err, pdf.ErrParse)
	assert.Contains(t, err.Error(), "bad.pdf")
	assert.Equal(t, pdf.MergeError, pdf.KindOf(err))
}

func TestMerger(t *testing.T) {
	m := NewMerger(pdf.WithTempDir(t.TempDir()))
	m.Add(fixture("one.pdf", "One", 1)).Add(nil).AddAll(fixture("two.pdf", "Two", 2), fixture("three.pdf", "Three", 1))
	assert.Equal(t, 3, m.Len())

	out, err := m.Merge(Request{OutputName: "all.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "all.pdf", out.Filename)

	doc, err := pdf.Open(out)
	require.NoError(t, err)
	defer doc.Release()
	assert.Equal(t, 4, doc.PageCount())
}
