package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	r := NewRay(Vec3{}, Vec3{X: 3, Y: 4})
	assert.InDelta(t, 1.0, r.Direction.Length(), 1e-9)
	assert.Equal(t, 0, r.Depth)
}

func TestRay_ReflectedAtIncrementsDepth(t *testing.T) {
	r := Ray{Origin: Vec3{}, Direction: Vec3{X: 1, Y: -1}.Normalize(), Depth: 2}
	refl := r.ReflectedAt(Vec3{}, Vec3{Y: 1}, 1e-4)

	assert.Equal(t, 3, refl.Depth)
	assert.InDelta(t, 1.0, refl.Direction.Length(), 1e-9)
}

func TestRay_RefractedAtReportsTotalInternalReflection(t *testing.T) {
	r := Ray{Origin: Vec3{}, Direction: Vec3{X: 0.999, Y: -0.01}.Normalize(), Depth: 0}
	_, ok := r.RefractedAt(Vec3{}, Vec3{Y: 1}, 1e-4, 1.5, 1.0)
	assert.False(t, ok)
}
