package info

import (
	"strconv"
	"strings"

	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Field is one exported label/value pair.
type Field struct {
	Key   string
	Value string
}

// Fields is the ordered export of an Info.
type Fields []Field

// Fields renders the snapshot as label/value pairs in a fixed order.
func (i *Info) Fields() Fields {
	media := i.MediaBox
	return Fields{
		{"File name", i.FileName},
		{"File size", strconv.FormatInt(i.FileSize, 10)},
		{"PDF version", i.PDFVersion},
		{"Page count", strconv.Itoa(i.PageCount)},
		{"Page size", formatPoints(media.Width) + " x " + formatPoints(media.Height) + " points"},
		{"Page width", formatPoints(media.Width)},
		{"Page height", formatPoints(media.Height)},
		{"Page layout", i.PageLayout},
		{"Title", i.Title},
		{"Author", i.Author},
		{"Subject", i.Subject},
		{"PDF producer", i.Producer},
		{"Content creator", i.Creator},
		{"Creation date", pdf.FormatDate(i.CreationDate)},
		{"Modification date", pdf.FormatDate(i.ModificationDate)},
		{"Encrypted", strconv.FormatBool(i.Encrypted)},
		{"Keywords", i.Keywords},
		{"Media box width", formatPoints(media.Width)},
		{"Media box height", formatPoints(media.Height)},
		{"Crop box width", formatPoints(i.CropBox.Width)},
		{"Crop box height", formatPoints(i.CropBox.Height)},
	}
}

// Fields reads the document and returns its exported fields.
func (r *Reader) Fields() (Fields, error) {
	info, err := r.Read()
	if err != nil {
		return nil, err
	}
	return info.Fields(), nil
}

// Get returns the value of key.
func (f Fields) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Map returns the fields as a map, losing the order.
func (f Fields) Map() map[string]string {
	m := make(map[string]string, len(f))
	for _, field := range f {
		m[field.Key] = field.Value
	}
	return m
}

// Project maps destination names to field labels, e.g.
// {"pdfinfo:title": "Title"}, and returns destination name to value.
// Unknown labels map to "".
func (f Fields) Project(mapping map[string]string) map[string]string {
	out := make(map[string]string, len(mapping))
	for dest, label := range mapping {
		out[dest], _ = f.Get(label)
	}
	return out
}

func (f Fields) String() string {
	var sb strings.Builder
	for _, field := range f {
		sb.WriteString(field.Key)
		sb.WriteString(": ")
		sb.WriteString(field.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// formatPoints keeps one decimal for whole numbers: 612 -> "612.0".
func formatPoints(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
