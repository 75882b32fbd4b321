package geometry

import "math"

// Matrix is a PDF affine transformation [a b c d e f]
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix
func Identity() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: 0, F: 0}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: tx, F: ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, B: 0, C: 0, D: sy, E: 0, F: 0}
}

// RotationAt returns a rotation by deg degrees (counter-clockwise) followed
// by a translation to (tx, ty).
func RotationAt(deg, tx, ty float64) Matrix {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	// Snap values so that quarter turns produce exact matrices.
	cos = snap(cos)
	sin = snap(sin)
	return Matrix{A: cos, B: sin, C: -sin, D: cos, E: tx, F: ty}
}

// Multiply multiplies two matrices
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
		E: m.E*other.A + m.F*other.C + other.E,
		F: m.E*other.B + m.F*other.D + other.F,
	}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Operands returns the six matrix values in content stream order.
func (m Matrix) Operands() []float64 {
	return []float64{m.A, m.B, m.C, m.D, m.E, m.F}
}

func snap(v float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(v) < eps:
		return 0
	case math.Abs(v-1) < eps:
		return 1
	case math.Abs(v+1) < eps:
		return -1
	}
	return v
}
