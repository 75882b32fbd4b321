package watermark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
)

func TestPropertiesFromMap(t *testing.T) {
	p := PropertiesFromMap(map[string]string{
		"fontFamily":   "Courier",
		"fontSize":     "24",
		"textRotation": "45",
		"hex255Color":  "#ff0000",
		"alphaColor":   "0.25",
		"xPosition":    "100",
		"yPosition":    "50",
		"invertY":      "true",
	})

	spec := NewTextSpec("DRAFT", p)
	assert.Equal(t, "Courier", spec.FontFamily())
	assert.Equal(t, 24.0, spec.FontSize())
	assert.Equal(t, 45.0, spec.Rotation())
	assert.Equal(t, geometry.Color{R: 255}, spec.Color())
	assert.Equal(t, 0.25, spec.Alpha())
	x, y := spec.Position()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)
	assert.True(t, spec.InvertY())
}

func TestTextSpecDefaults(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]string
	}{
		{"empty", map[string]string{}},
		{"invalid", map[string]string{
			"fontFamily":   "Wingdings",
			"fontSize":     "huge",
			"textRotation": "-30",
			"alphaColor":   "1.5",
			"xPosition":    "-5",
			"yPosition":    "n/a",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewTextSpec("x", PropertiesFromMap(tt.props))
			assert.Equal(t, DefaultFontFamily, spec.FontFamily())
			assert.Equal(t, DefaultFontSize, spec.FontSize())
			assert.Equal(t, DefaultRotation, spec.Rotation())
			assert.Equal(t, geometry.Black, spec.Color())
			assert.Equal(t, DefaultAlpha, spec.Alpha())
			x, y := spec.Position()
			assert.Zero(t, x)
			assert.Zero(t, y)
			assert.False(t, spec.InvertY())
		})
	}
}

func TestZeroAlphaIsKept(t *testing.T) {
	spec := NewTextSpec("x", PropertiesFromMap(map[string]string{"alphaColor": "0"}))
	assert.Zero(t, spec.Alpha())
}

func TestLoadProperties(t *testing.T) {
	p, err := LoadProperties(strings.NewReader(`
fontFamily: Times-Bold
fontSize: 48
hex255Color: "#00ff00"
alphaColor: 0.8
xPosition: 10
yPosition: 20
invertY: true
`))
	require.NoError(t, err)
	assert.Equal(t, "Times-Bold", p.FontFamily)
	assert.Equal(t, 48.0, p.FontSize)
	assert.Equal(t, "#00ff00", p.Color)
	require.NotNil(t, p.Alpha)
	assert.Equal(t, 0.8, *p.Alpha)
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 20.0, p.Y)
	assert.True(t, p.InvertY)

	_, err = LoadProperties(strings.NewReader("fontSize: [1, 2"))
	assert.Error(t, err)
}

func TestOverlaySpecScale(t *testing.T) {
	assert.Equal(t, 1.0, NewImageSpec(nil, 0, 0, 0).Scale())
	assert.Equal(t, 1.0, NewPDFSpec(nil, 0, 0, -2).Scale())
	assert.Equal(t, 0.5, NewPDFSpec(nil, 0, 0, 0.5).Scale())
	assert.Equal(t, ImageContent, NewImageSpec(nil, 0, 0, 1).Content())
	assert.Equal(t, PDFContent, NewPDFSpec(nil, 0, 0, 1).Content())
}
