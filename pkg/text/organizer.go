package text

import (
	"math"
	"sort"
	"strings"
)

// Glyph is a positioned piece of text as reported by a content parser.
type Glyph struct {
	S        string
	X, Y     float64
	W        float64
	FontSize float64
}

// Organizer groups glyphs into lines
type Organizer struct {
	xTolerance float64 // Horizontal gap that becomes a space
	yTolerance float64 // Vertical distance still on the same line
}

// NewOrganizer creates an organizer with default tolerances
func NewOrganizer() *Organizer {
	return &Organizer{
		xTolerance: 3.0,
		yTolerance: 3.0,
	}
}

// Organize returns the glyphs as text, top line first.
func (o *Organizer) Organize(glyphs []Glyph) string {
	if len(glyphs) == 0 {
		return ""
	}

	lines := o.groupIntoLines(o.sortGlyphs(glyphs))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, o.lineText(line))
	}
	return strings.Join(out, "\n")
}

// sortGlyphs sorts glyphs top to bottom, then left to right
func (o *Organizer) sortGlyphs(glyphs []Glyph) []Glyph {
	sorted := make([]Glyph, len(glyphs))
	copy(sorted, glyphs)

	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > o.yTolerance {
			return sorted[i].Y > sorted[j].Y // PDF coordinates: Y increases upward
		}
		return sorted[i].X < sorted[j].X
	})
	return sorted
}

func (o *Organizer) groupIntoLines(glyphs []Glyph) [][]Glyph {
	var lines [][]Glyph
	var current []Glyph
	currentY := glyphs[0].Y

	for _, g := range glyphs {
		if math.Abs(g.Y-currentY) > o.yTolerance {
			if len(current) > 0 {
				lines = append(lines, current)
			}
			current = []Glyph{g}
			currentY = g.Y
		} else {
			current = append(current, g)
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func (o *Organizer) lineText(line []Glyph) string {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})

	var sb strings.Builder
	var lastX float64
	for i, g := range line {
		if i > 0 && g.X-lastX > o.xTolerance && !strings.HasPrefix(g.S, " ") {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.S)
		lastX = g.X + g.W
	}
	return strings.TrimSpace(sb.String())
}
