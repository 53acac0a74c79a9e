package tracer

// RenderSettings bundles the integrator's tunable knobs: recursion depth,
// diffuse sample count, and the bias epsilons used to push secondary rays
// off the surface they were spawned from.
type RenderSettings struct {
	MaxRayDepth            int
	DiffuseReflectionCount int

	ShadowBias            float64
	ReflectionBias        float64
	RefractionBias        float64
	DiffuseReflectionBias float64

	// Threads overrides the hardware-concurrency worker count; 0 selects
	// runtime.NumCPU().
	Threads int
}

// DefaultRenderSettings returns the settings used when a scene file leaves
// the render tuning knobs unset.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		MaxRayDepth:            4,
		DiffuseReflectionCount: 16,
		ShadowBias:             1e-4,
		ReflectionBias:         1e-4,
		RefractionBias:         1e-4,
		DiffuseReflectionBias:  1e-4,
	}
}
