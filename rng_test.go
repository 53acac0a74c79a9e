package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPCG32_UniformIsInHalfOpenUnitRange(t *testing.T) {
	g := NewPCG32ForPixel(17, 42)
	for i := 0; i < 10000; i++ {
		u := g.Uniform()
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}

func TestPCG32_SamePixelIsReproducible(t *testing.T) {
	a := NewPCG32ForPixel(12, 34)
	b := NewPCG32ForPixel(12, 34)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uniform(), b.Uniform())
	}
}

func TestPCG32_DifferentPixelsDiverge(t *testing.T) {
	a := NewPCG32ForPixel(1, 1)
	b := NewPCG32ForPixel(1, 2)

	same := true
	for i := 0; i < 8; i++ {
		if a.Uniform() != b.Uniform() {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestPCG32_OutputIsNotConstant(t *testing.T) {
	g := NewPCG32ForPixel(5, 9)
	seen := make(map[float64]bool)
	for i := 0; i < 50; i++ {
		seen[g.Uniform()] = true
	}
	assert.Greater(t, len(seen), 40)
}
