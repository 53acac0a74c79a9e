package tracer

import (
	"math"

	"github.com/lumenray/tracer/utils"
)

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min, Max Vec3
}

// VacuumAABB returns a degenerate box with Min = +Inf and Max = -Inf, so
// that folding Union over a sequence of boxes/points produces the tight
// bound of the sequence.
func VacuumAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Union returns the smallest box containing both a and o.
func (a AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{utils.Min(a.Min.X, o.Min.X), utils.Min(a.Min.Y, o.Min.Y), utils.Min(a.Min.Z, o.Min.Z)},
		Max: Vec3{utils.Max(a.Max.X, o.Max.X), utils.Max(a.Max.Y, o.Max.Y), utils.Max(a.Max.Z, o.Max.Z)},
	}
}

// UnionPoint returns the smallest box containing both a and p.
func (a AABB) UnionPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{utils.Min(a.Min.X, p.X), utils.Min(a.Min.Y, p.Y), utils.Min(a.Min.Z, p.Z)},
		Max: Vec3{utils.Max(a.Max.X, p.X), utils.Max(a.Max.Y, p.Y), utils.Max(a.Max.Z, p.Z)},
	}
}

// Split halves a along axis (0=X, 1=Y, 2=Z) at the midpoint, returning the
// low and high children. left.Max[axis] == right.Min[axis] == midpoint;
// every other extent is unchanged.
func (a AABB) Split(axis int) (left, right AABB) {
	left, right = a, a
	mid := (a.minAxis(axis) + a.maxAxis(axis)) / 2
	left.setMaxAxis(axis, mid)
	right.setMinAxis(axis, mid)
	return left, right
}

// Intersects reports whether a and o overlap on all three axes (including
// touching). This is the standard separating-axis test: the boxes are
// disjoint iff they are separated on at least one axis.
func (a AABB) Intersects(o AABB) bool {
	return a.Min.X <= o.Max.X && a.Max.X >= o.Min.X &&
		a.Min.Y <= o.Max.Y && a.Max.Y >= o.Min.Y &&
		a.Min.Z <= o.Max.Z && a.Max.Z >= o.Min.Z
}

func (a AABB) minAxis(axis int) float64 {
	switch axis {
	case 0:
		return a.Min.X
	case 1:
		return a.Min.Y
	default:
		return a.Min.Z
	}
}

func (a AABB) maxAxis(axis int) float64 {
	switch axis {
	case 0:
		return a.Max.X
	case 1:
		return a.Max.Y
	default:
		return a.Max.Z
	}
}

func (a *AABB) setMinAxis(axis int, v float64) {
	switch axis {
	case 0:
		a.Min.X = v
	case 1:
		a.Min.Y = v
	default:
		a.Min.Z = v
	}
}

func (a *AABB) setMaxAxis(axis int, v float64) {
	switch axis {
	case 0:
		a.Max.X = v
	case 1:
		a.Max.Y = v
	default:
		a.Max.Z = v
	}
}
