package tracer

import "math"

// Shade recursively evaluates the color seen along r, dispatching on the
// material kind of the nearest hit.
func Shade(r Ray, scene *Scene, settings *RenderSettings, rng *PCG32) Vec3 {
	if r.Depth > settings.MaxRayDepth {
		return Vec3{}
	}

	hit, ok := scene.Trace(r)
	if !ok {
		return scene.Background
	}

	mat := scene.Materials[hit.MaterialIndex]
	switch mat.Kind {
	case Diffuse:
		return scene.shadeDiffuse(r, hit, mat, settings, rng)
	case Reflective:
		return scene.shadeReflective(r, hit, mat, settings, rng)
	case Refractive:
		return scene.shadeRefractive(r, hit, mat, settings, rng)
	case Constant:
		return scene.albedoAt(mat, hit)
	default:
		return Vec3{}
	}
}

// albedoAt samples a material's albedo texture at a hit. Refractive
// materials have no albedo texture; callers never call this for them.
func (s *Scene) albedoAt(mat Material, hit Intersection) Vec3 {
	tex := &s.Textures[mat.AlbedoTexture]
	return tex.Sample(hit.UV, hit.U, hit.V)
}

// shadeDiffuse accumulates direct lighting from every point light, plus,
// when global illumination is enabled, indirect lighting averaged over
// DiffuseReflectionCount hemisphere samples, each at an angle from the
// tangent uniform in [0, pi) and rotated about the normal by an angle
// uniform in [0, 2pi). The average divides by (count + 1), not count; see
// DESIGN.md's open question.
func (s *Scene) shadeDiffuse(r Ray, hit Intersection, mat Material, settings *RenderSettings, rng *PCG32) Vec3 {
	albedo := s.albedoAt(mat, hit)
	n := hit.Normal

	var direct Vec3
	for _, light := range s.Lights {
		toLight := light.Position.Sub(hit.Point)
		r2 := toLight.LengthSquared()
		ld := toLight.Normalize()

		cos := math.Max(0, ld.Dot(n))
		if cos == 0 {
			continue
		}
		area := 4 * math.Pi * r2

		shadowRay := Ray{Origin: hit.Point.Add(n.Mul(settings.ShadowBias)), Direction: ld, Depth: r.Depth + 1}
		dist, occluded := s.traceShadowThroughRefraction(shadowRay, settings)
		if occluded && dist*dist <= r2 {
			continue
		}

		direct = direct.Add(albedo.Mul(light.Intensity / area * cos))
	}

	if !s.GIOn || settings.MaxRayDepth <= r.Depth {
		return direct
	}

	right := r.Direction.Cross(n).Normalize()
	up := n
	forward := right.Cross(up)

	var indirect Vec3
	for i := 0; i < settings.DiffuseReflectionCount; i++ {
		alpha := rng.Uniform() * math.Pi
		beta := rng.Uniform() * 2 * math.Pi

		local := Vec3{X: math.Cos(alpha), Y: math.Sin(alpha), Z: 0}
		local = RotateY(beta).MulVec3(local)

		dir := right.Mul(local.X).Add(up.Mul(local.Y)).Add(forward.Mul(local.Z)).Normalize()
		sampleRay := Ray{
			Origin:    hit.Point.Add(n.Mul(settings.DiffuseReflectionBias)),
			Direction: dir,
			Depth:     r.Depth + 1,
		}
		indirect = indirect.Add(albedo.MulVec(Shade(sampleRay, s, settings, rng)))
	}

	total := direct.Add(indirect)
	return total.Mul(1 / float64(settings.DiffuseReflectionCount+1))
}

// shadeReflective spawns a single mirror-reflection ray. With
// ReflectionsOn false, no reflection ray is cast and the surface
// contributes nothing.
func (s *Scene) shadeReflective(r Ray, hit Intersection, mat Material, settings *RenderSettings, rng *PCG32) Vec3 {
	if !s.ReflectionsOn {
		return Vec3{}
	}
	reflRay := r.ReflectedAt(hit.Point, hit.Normal, settings.ReflectionBias)
	albedo := s.albedoAt(mat, hit)
	return albedo.MulVec(Shade(reflRay, s, settings, rng))
}

// schlickLike computes the renderer's non-standard Fresnel factor:
// 0.5*(1+d.n)^5. With n facing against the ray, it is 0 at normal
// incidence (d.n = -1) and 0.5 at grazing incidence (d.n = 0); it is not a
// physically calibrated Schlick approximation and is deliberately kept
// as-is rather than corrected (see DESIGN.md).
func schlickLike(cosTheta float64) float64 {
	t := 1 + cosTheta
	t2 := t * t
	return 0.5 * t2 * t2 * t
}

// shadeRefractive handles dielectric materials: it computes both the
// reflection and refraction contributions and blends them with the
// Fresnel-like factor, falling back to pure reflection under total
// internal reflection or when RefractionsOn is false. With ReflectionsOn
// false the reflection contribution is black.
func (s *Scene) shadeRefractive(r Ray, hit Intersection, mat Material, settings *RenderSettings, rng *PCG32) Vec3 {
	n := hit.Normal
	iorOutside, iorInside := DefaultIOR, mat.IOR

	entering := r.Direction.Dot(n) <= 0
	if !entering {
		n = n.Neg()
		iorOutside, iorInside = iorInside, iorOutside
	}

	var reflColor Vec3
	if s.ReflectionsOn {
		reflRay := r.ReflectedAt(hit.Point, n, settings.ReflectionBias)
		reflColor = Shade(reflRay, s, settings, rng)
	}

	if !s.RefractionsOn {
		return reflColor
	}

	refrRay, ok := r.RefractedAt(hit.Point, n, settings.RefractionBias, iorOutside, iorInside)
	if !ok {
		// Total internal reflection: only the reflection ray contributes.
		return reflColor
	}

	refrColor := Shade(refrRay, s, settings, rng)
	f := schlickLike(r.Direction.Dot(n))
	return reflColor.Mul(f).Add(refrColor.Mul(1 - f))
}

// traceShadowThroughRefraction walks a shadow ray through any refractive
// surfaces it meets, re-tracing from the refracted direction up to
// MaxRayDepth bounces. It returns the cumulative
// distance traveled to the first non-refractive hit and true, or
// (undefined, false) if no such hit is found within the bounce budget.
func (s *Scene) traceShadowThroughRefraction(r Ray, settings *RenderSettings) (float64, bool) {
	total := 0.0
	for bounce := 0; bounce <= settings.MaxRayDepth; bounce++ {
		hit, ok := s.Trace(r)
		if !ok {
			return 0, false
		}
		mat := s.Materials[hit.MaterialIndex]
		if mat.Kind != Refractive {
			return total + hit.Distance, true
		}

		total += hit.Distance
		n := hit.Normal
		iorOutside, iorInside := DefaultIOR, mat.IOR
		if r.Direction.Dot(n) > 0 {
			n = n.Neg()
			iorOutside, iorInside = iorInside, iorOutside
		}
		refracted, ok := r.RefractedAt(hit.Point, n, settings.RefractionBias, iorOutside, iorInside)
		if !ok {
			// Total internal reflection inside the refractive occluder: it
			// has nowhere transparent to send the shadow ray, so it acts
			// as an opaque blocker.
			return total, true
		}
		r = refracted
	}
	return 0, false
}
