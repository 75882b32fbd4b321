package geometry

import (
	"fmt"
	"strings"
)

// Anchor is one of the six page number positions.
type Anchor int

const (
	BottomRight Anchor = iota
	BottomLeft
	BottomCenter
	TopLeft
	TopCenter
	TopRight
)

// DefaultAnchor is used when no position is given.
const DefaultAnchor = BottomRight

var anchorNames = map[Anchor]string{
	BottomLeft:   "BOTTOM_LEFT",
	BottomCenter: "BOTTOM_CENTER",
	BottomRight:  "BOTTOM_RIGHT",
	TopLeft:      "TOP_LEFT",
	TopCenter:    "TOP_CENTER",
	TopRight:     "TOP_RIGHT",
}

func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// IsTop reports whether the anchor sits at the top edge.
func (a Anchor) IsTop() bool {
	return a == TopLeft || a == TopCenter || a == TopRight
}

// ParseAnchor accepts the upper-case names as well as "bottom-left",
// "Bottom Left" and similar spellings.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if norm == "" {
		return DefaultAnchor, nil
	}
	for a, name := range anchorNames {
		if name == norm {
			return a, nil
		}
	}
	return DefaultAnchor, fmt.Errorf("unknown page number position %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(b []byte) error {
	v, err := ParseAnchor(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Margin is the distance in points between a page number and the page edge.
const Margin = 10.0

// PageNumberPosition returns the text origin for a string of the given
// width and height. Only the upper right corner and the bottom of the box
// take part, matching how page numbers have always been placed.
func PageNumberPosition(a Anchor, box Rectangle, textWidth, textHeight float64) (x, y float64) {
	switch a {
	case BottomLeft, TopLeft:
		x = Margin
	case BottomCenter, TopCenter:
		x = box.URX/2 - textWidth/2
	default:
		x = box.URX - Margin - textWidth
	}
	if a.IsTop() {
		y = box.Height() - textHeight - Margin
	} else {
		y = box.LLY + Margin
	}
	return x, y
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
