package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB color
type Color struct {
	R, G, B uint8
}

// Black is the fallback for every unparseable color.
var Black = Color{}

// HexToRGB parses "#rrggbb", "0xrrggbb" or "rrggbb" (any case).
// Anything shorter than six hex digits, or not hex at all, yields black.
func HexToRGB(hex string) Color {
	s := strings.ToLower(strings.TrimSpace(hex))
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, "0x")
	if len(s) < 6 {
		return Black
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return Black
		}
		rgb[i] = uint8(v)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Components returns the color as DeviceRGB operands in [0,1].
func (c Color) Components() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}
