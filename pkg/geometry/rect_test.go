package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRectangleNormalizes(t *testing.T) {
	r := NewRectangle(100, 200, 10, 20)
	assert.Equal(t, Rectangle{LLX: 10, LLY: 20, URX: 100, URY: 200}, r)
	assert.Equal(t, 90.0, r.Width())
	assert.Equal(t, 180.0, r.Height())

	assert.Equal(t, 612.0, Letter.Width())
	assert.Equal(t, 792.0, Letter.Height())
}
