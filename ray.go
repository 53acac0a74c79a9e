package tracer

// Ray is a half-line cast through the scene. Direction is assumed to be
// unit-length once constructed. Depth counts the number of bounces this ray
// is from the camera, and bounds the recursion of the shading engine.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Depth     int
}

// NewRay builds a primary ray with depth 0.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// ReflectedAt returns the mirror-reflection ray at surface point p with
// normal n, offset by bias along n to avoid immediate self-intersection.
func (r Ray) ReflectedAt(p, n Vec3, bias float64) Ray {
	return Ray{
		Origin:    p.Add(n.Mul(bias)),
		Direction: r.Direction.Reflect(n),
		Depth:     r.Depth + 1,
	}
}

// RefractedAt computes the refraction ray at surface point p with normal n,
// given the indices of refraction on the outside and inside of the surface.
// It reports false under total internal reflection, in which case the
// returned ray is unchanged aside from an incremented depth and should not
// be traced.
func (r Ray) RefractedAt(p, n Vec3, bias, iorOutside, iorInside float64) (Ray, bool) {
	dir, ok := r.Direction.Refract(n, iorOutside, iorInside)
	if !ok {
		return Ray{Origin: r.Origin, Direction: r.Direction, Depth: r.Depth + 1}, false
	}
	return Ray{
		Origin:    p.Sub(n.Mul(bias)),
		Direction: dir,
		Depth:     r.Depth + 1,
	}, true
}
