package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotationAt(t *testing.T) {
	m := RotationAt(90, 5, 7)
	assert.Equal(t, Matrix{A: 0, B: 1, C: -1, D: 0, E: 5, F: 7}, m)

	x, y := m.Transform(1, 0)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 8.0, y, 1e-9)
}

func TestMultiplyIdentity(t *testing.T) {
	m := Matrix{A: 2, B: 0.5, C: -1, D: 3, E: 10, F: 20}
	assert.Equal(t, m, m.Multiply(Identity()))
	assert.Equal(t, m, Identity().Multiply(m))
}

func TestTextPlacementMatrix(t *testing.T) {
	t.Run("unrotated translates", func(t *testing.T) {
		p := TextPlacement{PageWidth: 600, PageHeight: 800, X: 30, Y: 40}
		assert.Equal(t, Translate(30, 40), p.Matrix())
	})

	t.Run("invert y", func(t *testing.T) {
		p := TextPlacement{PageWidth: 600, PageHeight: 800, X: 30, Y: 40, InvertY: true}
		assert.Equal(t, Translate(30, 760), p.Matrix())
	})

	t.Run("rotated text", func(t *testing.T) {
		p := TextPlacement{PageWidth: 600, PageHeight: 800, X: 30, Y: 40, TextRotation: 90}
		assert.Equal(t, RotationAt(90, 30, 40), p.Matrix())
	})

	t.Run("rotated page is centered", func(t *testing.T) {
		p := TextPlacement{PageWidth: 600, PageHeight: 800, PageRotation: 90, TextWidth: 100}
		assert.True(t, p.Rotated())
		// width and height swap: width=800, height=600
		assert.Equal(t, RotationAt(90, 300, 350), p.Matrix())
	})

	t.Run("negative rotation normalized", func(t *testing.T) {
		p := TextPlacement{PageRotation: -90}
		assert.True(t, p.Rotated())
	})
}
