package geometry

// Rectangle is a PDF rectangle in user space units, lower-left and
// upper-right corners.
type Rectangle struct {
	LLX, LLY float64
	URX, URY float64
}

// NewRectangle normalizes the corners so that LL is below and left of UR.
func NewRectangle(x0, y0, x1, y1 float64) Rectangle {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle{LLX: x0, LLY: y0, URX: x1, URY: y1}
}

// Width returns the width of the rectangle
func (r Rectangle) Width() float64 {
	return r.URX - r.LLX
}

// Height returns the height of the rectangle
func (r Rectangle) Height() float64 {
	return r.URY - r.LLY
}

// Letter is the US Letter media box used when a page declares none.
var Letter = Rectangle{LLX: 0, LLY: 0, URX: 612, URY: 792}
