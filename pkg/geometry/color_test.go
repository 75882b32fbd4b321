package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
	}{
		{"black with hash", "#000000", Color{0, 0, 0}},
		{"white with 0x mixed case", "0xffFFff", Color{255, 255, 255}},
		{"bare digits", "123456", Color{18, 52, 86}},
		{"upper case hash", "#FF8000", Color{255, 128, 0}},
		{"trailing characters ignored", "#10203040", Color{16, 32, 48}},
		{"empty", "", Black},
		{"too short", "#fff", Black},
		{"not hex", "#zzzzzz", Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HexToRGB(tt.in))
		})
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#123456", Color{18, 52, 86}.Hex())

	r, g, b := Color{255, 0, 51}.Components()
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 0.2, b, 1e-9)
}
