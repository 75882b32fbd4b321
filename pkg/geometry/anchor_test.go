package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"BOTTOM_LEFT", BottomLeft},
		{"bottom-center", BottomCenter},
		{"Top Right", TopRight},
		{"top_left", TopLeft},
		{"TOP_CENTER", TopCenter},
		{"", BottomRight},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseAnchor("middle")
	assert.Error(t, err)
}

func TestPageNumberPosition(t *testing.T) {
	box := Rectangle{LLX: 0, LLY: 0, URX: 600, URY: 800}
	const w, h = 20.0, 12.0

	tests := []struct {
		anchor Anchor
		x, y   float64
	}{
		{BottomLeft, 10, 10},
		{BottomCenter, 290, 10},
		{BottomRight, 570, 10},
		{TopLeft, 10, 778},
		{TopCenter, 290, 778},
		{TopRight, 570, 778},
	}
	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			x, y := PageNumberPosition(tt.anchor, box, w, h)
			assert.InDelta(t, tt.x, x, 1e-9)
			assert.InDelta(t, tt.y, y, 1e-9)
		})
	}
}

func TestPageNumberPositionOffsetBox(t *testing.T) {
	box := Rectangle{LLX: 0, LLY: 50, URX: 400, URY: 650}
	_, y := PageNumberPosition(BottomLeft, box, 10, 10)
	assert.InDelta(t, 60.0, y, 1e-9)
}

func TestAnchorText(t *testing.T) {
	b, err := TopCenter.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "TOP_CENTER", string(b))

	var a Anchor
	assert.NoError(t, a.UnmarshalText([]byte("top-center")))
	assert.Equal(t, TopCenter, a)
	assert.Error(t, a.UnmarshalText([]byte("middle")))
}
