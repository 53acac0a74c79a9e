package tracer

// Light is an omnidirectional point source. Intensity is a watts-equivalent
// scalar normalized over the sphere of radius r to the receiving point (see
// Scene.shadeDiffuse).
type Light struct {
	Position  Vec3
	Intensity float64
}
