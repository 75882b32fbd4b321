// Package testpdf writes small, valid PDF documents for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Options describes the document to build.
type Options struct {
	Pages  int
	Prefix string // first word of every page line, "Page" by default
	// Lines overrides the generated page text, one slice per page.
	Lines    [][]string
	Title    string
	Author   string
	Subject  string
	Creation string // raw PDF date, e.g. D:20240102030405+01'00'
	MediaBox [4]float64
	CropBox  *[4]float64
	Rotate   int
	// PageMediaBoxes sets a media box on individual pages, keyed by page
	// number.
	PageMediaBoxes map[int][4]float64
	// NoMediaBox leaves the page tree root without a media box.
	NoMediaBox bool
}

// Label returns the letter label of page n: A..Z, AA, AB, ...
func Label(n int) string {
	var sb []byte
	for n > 0 {
		n--
		sb = append([]byte{byte('A' + n%26)}, sb...)
		n /= 26
	}
	return string(sb)
}

// PageText returns the single line written on page n by default.
func PageText(prefix string, n int) string {
	if prefix == "" {
		prefix = "Page"
	}
	return prefix + " " + Label(n)
}

// Build returns the PDF bytes.
func Build(o Options) []byte {
	if o.Pages < 1 {
		o.Pages = 1
	}
	if o.MediaBox == [4]float64{} {
		o.MediaBox = [4]float64{0, 0, 612, 792}
	}

	var objs []string
	add := func(s string) int {
		objs = append(objs, s)
		return len(objs)
	}

	catalog := add("")  // 1
	pages := add("")    // 2
	font := add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	info := 0
	if entries := infoEntries(o); entries != "" {
		info = add("<< " + entries + ">>")
	}

	var kids []string
	for i := 1; i <= o.Pages; i++ {
		lines := []string{PageText(o.Prefix, i)}
		if i <= len(o.Lines) && o.Lines[i-1] != nil {
			lines = o.Lines[i-1]
		}
		content := pageContent(lines)
		contentNr := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

		page := fmt.Sprintf("<< /Type /Page /Parent %d 0 R /Contents %d 0 R", pages, contentNr)
		if b, ok := o.PageMediaBoxes[i]; ok {
			page += " /MediaBox " + box(b)
		}
		if o.CropBox != nil {
			page += " /CropBox " + box(*o.CropBox)
		}
		if o.Rotate != 0 {
			page += fmt.Sprintf(" /Rotate %d", o.Rotate)
		}
		page += " >>"
		kids = append(kids, fmt.Sprintf("%d 0 R", add(page)))
	}

	objs[catalog-1] = fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages)
	root := ""
	if !o.NoMediaBox {
		root = " /MediaBox " + box(o.MediaBox)
	}
	objs[pages-1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d%s /Resources << /Font << /F1 %d 0 R >> >> >>",
		strings.Join(kids, " "), o.Pages, root, font)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R", len(objs)+1, catalog)
	if info != 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", info)
	}
	fmt.Fprintf(&buf, " >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// Pages is Build with n default pages.
func Pages(n int) []byte {
	return Build(Options{Pages: n})
}

func pageContent(lines []string) string {
	var sb strings.Builder
	y := 720
	for _, l := range lines {
		fmt.Fprintf(&sb, "BT /F1 18 Tf 72 %d Td (%s) Tj ET\n", y, escape(l))
		y -= 24
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func infoEntries(o Options) string {
	var sb strings.Builder
	for _, kv := range [][2]string{{"Title", o.Title}, {"Author", o.Author}, {"Subject", o.Subject}, {"CreationDate", o.Creation}} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "/%s (%s) ", kv[0], escape(kv[1]))
		}
	}
	return sb.String()
}

func box(b [4]float64) string {
	return fmt.Sprintf("[%g %g %g %g]", b[0], b[1], b[2], b[3])
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(s)
}

// Encrypt encrypts data with password as both user and owner password.
func Encrypt(data []byte, password string) ([]byte, error) {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return out.Bytes(), nil
}
