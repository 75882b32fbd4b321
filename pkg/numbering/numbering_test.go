package numbering

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfutils-golang/internal/testpdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/text"
)

var digits = regexp.MustCompile(`\d+`)

func numberedPages(t *testing.T, out *blob.Blob) []string {
	t.Helper()
	pages, err := text.NewExtractor(out).PageTexts()
	require.NoError(t, err)
	return pages
}

func TestAddPageNumbersThirteenPages(t *testing.T) {
	var reg blob.TempRegistry
	defer reg.Dispose()

	src := blob.FromBytes(testpdf.Pages(13), "thirteen.pdf", blob.MimeTypePDF)
	out, err := AddPageNumbers(src, Spec{
		StartAtPage:   5,
		StartAtNumber: 3,
		Position:      geometry.BottomLeft,
	}, pdf.WithTracker(&reg))
	require.NoError(t, err)
	assert.Equal(t, "thirteen.pdf", out.Filename)
	assert.Equal(t, blob.MimeTypePDF, out.MimeType)

	pages := numberedPages(t, out)
	require.Len(t, pages, 13)
	for i := 0; i < 4; i++ {
		assert.Empty(t, digits.FindAllString(pages[i], -1), "page %d", i+1)
	}
	for i := 4; i < 13; i++ {
		assert.Equal(t, []string{fmt.Sprint(i - 1)}, digits.FindAllString(pages[i], -1), "page %d", i+1)
		assert.Contains(t, pages[i], testpdf.PageText("", i+1))
	}
}

func TestAddPageNumbersDefaults(t *testing.T) {
	src := blob.FromBytes(testpdf.Pages(3), "doc.pdf", blob.MimeTypePDF)
	out, err := AddPageNumbers(src, Spec{StartAtPage: 99, StartAtNumber: -4, FontFamily: "NoSuchFont", FontSize: -1, Color: "#ff0000"}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	pages := numberedPages(t, out)
	require.Len(t, pages, 3)
	for i, p := range pages {
		assert.Equal(t, []string{fmt.Sprint(i + 1)}, digits.FindAllString(p, -1))
	}
}

func TestStampContent(t *testing.T) {
	src := blob.FromBytes(testpdf.Build(testpdf.Options{Pages: 1, MediaBox: [4]float64{0, 0, 600, 800}}), "doc.pdf", blob.MimeTypePDF)
	out, err := AddPageNumbers(src, Spec{Position: geometry.TopLeft, FontSize: 10, Color: "0x00ff00"}, pdf.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	doc, err := pdf.Open(out)
	require.NoError(t, err)
	defer doc.Release()

	p, err := doc.Page(1)
	require.NoError(t, err)
	content, err := doc.PageContent(p)
	require.NoError(t, err)

	s := string(content)
	// Helvetica bbox height is 1.156 em: 800 - 11.56 - 10
	assert.Contains(t, s, "10 778.44 Td")
	assert.Contains(t, s, "0 1 0 rg")
	assert.Contains(t, s, "<31> Tj")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(s), "q"))
}

func TestNotPDF(t *testing.T) {
	_, err := AddPageNumbers(blob.FromBytes([]byte("hello"), "a.pdf", blob.MimeTypePDF), Spec{})
	assert.ErrorIs(t, err, pdf.ErrParse)
}
