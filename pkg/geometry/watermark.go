package geometry

// TextPlacement describes where a text watermark goes on one page.
type TextPlacement struct {
	PageWidth    float64
	PageHeight   float64
	PageRotation int // degrees, as found in the page's /Rotate
	TextRotation float64
	TextWidth    float64
	X, Y         float64
	InvertY      bool
}

// Rotated reports whether the page is displayed in landscape orientation.
func (p TextPlacement) Rotated() bool {
	r := normalizeRotation(p.PageRotation)
	return r == 90 || r == 270
}

// Matrix computes the text matrix for the placement.
//
// A rotated page gets the watermark centered, turned by the difference
// between page and text rotation. Otherwise the text is placed at (x, y),
// rotated when a text rotation is set.
func (p TextPlacement) Matrix() Matrix {
	// y is inverted against the unrotated media box height
	y := p.Y
	if p.InvertY {
		y = p.PageHeight - y
	}

	width, height := p.PageWidth, p.PageHeight
	rotated := p.Rotated()
	if rotated {
		width, height = height, width
	}
	textRotated := p.TextRotation != 0 && p.TextRotation != 360

	switch {
	case rotated:
		var cx, cy float64
		cx = height / 2
		cy = (width - p.TextWidth) / 2
		total := float64(normalizeRotation(p.PageRotation)) - p.TextRotation
		return RotationAt(total, cx, cy)
	case textRotated:
		return RotationAt(p.TextRotation, p.X, y)
	default:
		return Translate(p.X, y)
	}
}

func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
