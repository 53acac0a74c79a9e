package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func diffuseTestScene(t *testing.T, giOn bool) *Scene {
	t.Helper()
	cam := NewCamera(Transform{Location: Vec3{Z: -5}, Rotation: Identity3()}, 90)
	mesh := MeshData{
		Positions: []Vec3{{-5, -5, 0}, {5, -5, 0}, {0, 5, 0}},
		// Wound so the face normal is -Z, toward the camera and the light.
		Indices:       []int{0, 2, 1},
		MaterialIndex: 0,
	}
	mats := []Material{NewMaterial(Diffuse, 0, 0)}
	texs := []Texture{{Kind: TextureAlbedo, Albedo: Vec3{1, 1, 1}}}
	lights := []Light{{Position: Vec3{Z: -10}, Intensity: 1000}}

	s, err := NewScene(Vec3{0.1, 0.1, 0.1}, cam, []MeshData{mesh}, lights, texs, mats)
	assert.NoError(t, err)
	s.GIOn = giOn
	return s
}

func TestShade_BackgroundOnMiss(t *testing.T) {
	s := diffuseTestScene(t, false)
	s.Background = Vec3{0.2, 0.3, 0.4}
	settings := DefaultRenderSettings()

	r := NewRay(Vec3{Z: -5}, Vec3{X: 1})
	c := Shade(r, s, &settings, NewPCG32ForPixel(0, 0))
	assert.Equal(t, s.Background, c)
}

func TestShade_ConstantMaterialIgnoresLighting(t *testing.T) {
	cam := NewCamera(Transform{Location: Vec3{Z: -5}, Rotation: Identity3()}, 90)
	mesh := MeshData{Positions: []Vec3{{-5, -5, 0}, {5, -5, 0}, {0, 5, 0}}, Indices: []int{0, 1, 2}}
	mats := []Material{NewMaterial(Constant, 0, 0)}
	texs := []Texture{{Kind: TextureAlbedo, Albedo: Vec3{0.3, 0.6, 0.9}}}
	s, err := NewScene(Vec3{}, cam, []MeshData{mesh}, nil, texs, mats)
	assert.NoError(t, err)

	settings := DefaultRenderSettings()
	r := NewRay(Vec3{Z: -5}, Vec3{Z: 1})
	c := Shade(r, s, &settings, NewPCG32ForPixel(1, 1))
	assert.Equal(t, Vec3{0.3, 0.6, 0.9}, c)
}

func TestShade_DiffuseIsBrighterFacingTheLight(t *testing.T) {
	s := diffuseTestScene(t, false)
	settings := DefaultRenderSettings()

	lit := Shade(NewRay(Vec3{Z: -5}, Vec3{Z: 1}), s, &settings, NewPCG32ForPixel(0, 0))
	assert.Greater(t, lit.X, 0.0)
}

func TestShade_DepthGuardStopsRecursion(t *testing.T) {
	s := diffuseTestScene(t, false)
	settings := DefaultRenderSettings()
	settings.MaxRayDepth = 0

	r := NewRay(Vec3{Z: -5}, Vec3{Z: 1})
	r.Depth = 1
	c := Shade(r, s, &settings, NewPCG32ForPixel(0, 0))
	assert.Equal(t, Vec3{}, c)
}

func TestSchlickLike_IsZeroAtNormalIncidence(t *testing.T) {
	assert.InDelta(t, 0.0, schlickLike(-1), 1e-9)
}

func TestSchlickLike_IsOneHalfAtGrazingAngle(t *testing.T) {
	assert.InDelta(t, 0.5, schlickLike(0), 1e-9)
}

func TestShadeRefractive_NormalIncidenceReturnsFiniteColor(t *testing.T) {
	cam := NewCamera(Transform{Location: Vec3{Z: -5}, Rotation: Identity3()}, 90)
	mesh := MeshData{Positions: []Vec3{{-5, -5, 0}, {5, -5, 0}, {0, 5, 0}}, Indices: []int{0, 1, 2}}
	mats := []Material{NewMaterial(Refractive, -1, 1.5)}
	s, err := NewScene(Vec3{0.7, 0.7, 0.7}, cam, []MeshData{mesh}, nil, nil, mats)
	assert.NoError(t, err)

	settings := DefaultRenderSettings()
	// A grazing ray entering a denser medium is likely to refract rather
	// than TIR on entry (TIR happens leaving a denser medium), so instead
	// directly exercise the refractive branch for a normal-incidence ray
	// and confirm it returns a finite blended color.
	r := NewRay(Vec3{Z: -5}, Vec3{Z: 1})
	c := Shade(r, s, &settings, NewPCG32ForPixel(2, 2))
	assert.False(t, isNaNVec(c))
}

func isNaNVec(v Vec3) bool {
	return v.X != v.X || v.Y != v.Y || v.Z != v.Z
}

func TestShadeReflective_ReflectionsOffContributesNothing(t *testing.T) {
	cam := NewCamera(Transform{Location: Vec3{Z: -5}, Rotation: Identity3()}, 90)
	mesh := MeshData{Positions: []Vec3{{-5, -5, 0}, {5, -5, 0}, {0, 5, 0}}, Indices: []int{0, 1, 2}}
	mats := []Material{NewMaterial(Reflective, 0, 0)}
	texs := []Texture{{Kind: TextureAlbedo, Albedo: Vec3{1, 1, 1}}}
	s, err := NewScene(Vec3{0.4, 0.4, 0.4}, cam, []MeshData{mesh}, nil, texs, mats)
	assert.NoError(t, err)
	s.ReflectionsOn = false

	settings := DefaultRenderSettings()
	r := NewRay(Vec3{Z: -5}, Vec3{Z: 1})
	c := Shade(r, s, &settings, NewPCG32ForPixel(0, 0))
	assert.Equal(t, Vec3{}, c)
}

func TestShadeRefractive_RefractionsOffFallsBackToReflectionOnly(t *testing.T) {
	cam := NewCamera(Transform{Location: Vec3{Z: -5}, Rotation: Identity3()}, 90)
	mesh := MeshData{Positions: []Vec3{{-5, -5, 0}, {5, -5, 0}, {0, 5, 0}}, Indices: []int{0, 1, 2}}
	mats := []Material{NewMaterial(Refractive, -1, 1.5)}
	s, err := NewScene(Vec3{0.6, 0.6, 0.6}, cam, []MeshData{mesh}, nil, nil, mats)
	assert.NoError(t, err)
	s.RefractionsOn = false

	settings := DefaultRenderSettings()
	r := NewRay(Vec3{Z: -5}, Vec3{Z: 1})
	withRefractions := Shade(r, s, &settings, NewPCG32ForPixel(3, 3))

	s.ReflectionsOn = false
	blackedOut := Shade(r, s, &settings, NewPCG32ForPixel(3, 3))

	assert.NotEqual(t, withRefractions, blackedOut)
	assert.Equal(t, Vec3{}, blackedOut)
}
