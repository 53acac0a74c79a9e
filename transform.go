package tracer

// Transform is a location paired with an orientation, used by the camera
// and, in principle, by any object placed in the scene.
type Transform struct {
	Location Vec3
	Rotation Mat3
}

// NewTransform returns a Transform at the origin with no rotation.
func NewTransform() Transform {
	return Transform{Rotation: Identity3()}
}

// Apply transforms v from local space to the space described by t: rotate
// then translate.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.Rotation.MulVec3(v).Add(t.Location)
}

// ApplyDirection rotates a direction vector without translating it.
func (t Transform) ApplyDirection(v Vec3) Vec3 {
	return t.Rotation.MulVec3(v)
}
