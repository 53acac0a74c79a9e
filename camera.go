package tracer

import "math"

// Camera generates primary rays for the rasterization grid and exposes pose
// mutators (dolly, pan, orbit, ...) for external animation tooling; a
// single still render only ever calls RayForPixel.
type Camera struct {
	Transform  Transform
	FOVDegrees float64
}

// DefaultFOVDegrees is the horizontal field of view used when a scene file
// omits camera.fov_degrees.
const DefaultFOVDegrees = 90.0

// NewCamera builds a Camera with the given transform and horizontal FOV in
// degrees. A FOV of 0 selects DefaultFOVDegrees.
func NewCamera(t Transform, fovDegrees float64) *Camera {
	if fovDegrees == 0 {
		fovDegrees = DefaultFOVDegrees
	}
	return &Camera{Transform: t, FOVDegrees: fovDegrees}
}

// RayForPixel generates the primary ray through the center of pixel (x, y)
// of a width x height raster.
func (c *Camera) RayForPixel(x, y, width, height int) Ray {
	w, h := float64(width), float64(height)
	sx := (2*(float64(x)+0.5)/w - 1) * (w / h)
	sy := 1 - 2*(float64(y)+0.5)/h

	scale := math.Tan(c.FOVDegrees * math.Pi / 180 / 2)
	dir := Vec3{X: sx * scale, Y: sy * scale, Z: -1}
	dir = c.Transform.ApplyDirection(dir)

	return Ray{
		Origin:    c.Transform.Location,
		Direction: dir.Normalize(),
		Depth:     0,
	}
}

// --- Pose mutators, used by external animation tooling. ---

// Dolly translates the camera along its local Z axis.
func (c *Camera) Dolly(d float64) {
	c.translateLocal(Vec3{Z: d})
}

// Truck translates the camera along its local X axis.
func (c *Camera) Truck(d float64) {
	c.translateLocal(Vec3{X: d})
}

// Pedestal translates the camera along its local Y axis.
func (c *Camera) Pedestal(d float64) {
	c.translateLocal(Vec3{Y: d})
}

func (c *Camera) translateLocal(v Vec3) {
	c.Transform.Location = c.Transform.Location.Add(c.Transform.Rotation.MulVec3(v))
}

// Pan rotates the camera about the world Y axis by rad radians.
func (c *Camera) Pan(rad float64) {
	c.Transform.Rotation = c.Transform.Rotation.Mul(RotateY(rad))
}

// Tilt rotates the camera about its local X axis by rad radians.
func (c *Camera) Tilt(rad float64) {
	c.Transform.Rotation = RotateX(rad).Mul(c.Transform.Rotation)
}

// Roll rotates the camera about its local Z axis by rad radians.
func (c *Camera) Roll(rad float64) {
	c.Transform.Rotation = RotateZ(rad).Mul(c.Transform.Rotation)
}

// PanAround rotates the camera about the world Y axis around anchor.
func (c *Camera) PanAround(anchor Vec3, rad float64) {
	c.rotateAround(anchor, RotateY(rad))
}

// TiltAround rotates the camera about the X axis around anchor.
func (c *Camera) TiltAround(anchor Vec3, rad float64) {
	c.rotateAround(anchor, RotateX(rad))
}

// RollAround rotates the camera about the Z axis around anchor.
func (c *Camera) RollAround(anchor Vec3, rad float64) {
	c.rotateAround(anchor, RotateZ(rad))
}

func (c *Camera) rotateAround(anchor Vec3, rot Mat3) {
	rel := c.Transform.Location.Sub(anchor)
	c.Transform.Location = anchor.Add(rot.MulVec3(rel))
	c.Transform.Rotation = c.Transform.Rotation.Mul(rot)
}
