package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBuckets_CoversEveryPixelExactlyOnce(t *testing.T) {
	buckets := buildBuckets(37, 23, 8)
	covered := make([]bool, 37*23)

	for _, b := range buckets {
		for y := b.Y0; y < b.Y1; y++ {
			for x := b.X0; x < b.X1; x++ {
				idx := y*37 + x
				assert.False(t, covered[idx], "pixel (%d,%d) covered twice", x, y)
				covered[idx] = true
			}
		}
	}
	for i, c := range covered {
		assert.True(t, c, "pixel index %d never covered", i)
	}
}

func TestBuildBuckets_DefaultsBucketSizeWhenNonPositive(t *testing.T) {
	buckets := buildBuckets(100, 100, 0)
	assert.NotEmpty(t, buckets)
}

func TestBucketQueue_PopDrainsInOrderThenReportsEmpty(t *testing.T) {
	q := &bucketQueue{buckets: []Bucket{{X1: 1}, {X1: 2}, {X1: 3}}}

	for i := 0; i < 3; i++ {
		b, ok := q.pop()
		assert.True(t, ok)
		assert.Equal(t, i+1, b.X1)
	}
	_, ok := q.pop()
	assert.False(t, ok)
}

func renderTestScene(t *testing.T) *Scene {
	t.Helper()
	cam := NewCamera(Transform{Location: Vec3{Z: -5}, Rotation: Identity3()}, 90)
	mesh := MeshData{
		Positions:     []Vec3{{-5, -5, 0}, {5, -5, 0}, {0, 5, 0}},
		Indices:       []int{0, 1, 2},
		MaterialIndex: 0,
	}
	mats := []Material{NewMaterial(Diffuse, 0, 0)}
	texs := []Texture{{Kind: TextureAlbedo, Albedo: Vec3{0.8, 0.1, 0.1}}}
	lights := []Light{{Position: Vec3{Z: -10}, Intensity: 500}}

	s, err := NewScene(Vec3{0.05, 0.05, 0.08}, cam, []MeshData{mesh}, lights, texs, mats)
	assert.NoError(t, err)
	s.BucketSize = 4
	return s
}

func TestRenderImage_IsReproducibleAcrossWorkerCounts(t *testing.T) {
	scene := renderTestScene(t)
	settings := DefaultRenderSettings()

	settings.Threads = 1
	single := RenderImage(scene, settings, 16, 12, nil)

	settings.Threads = 8
	multi := RenderImage(scene, settings, 16, 12, nil)

	assert.Equal(t, single.Pixels, multi.Pixels)
}

func TestRenderImage_ReportsProgressForEveryBucket(t *testing.T) {
	scene := renderTestScene(t)
	settings := DefaultRenderSettings()
	settings.Threads = 4

	var calls []int
	RenderImage(scene, settings, 16, 12, func(done, total int) {
		calls = append(calls, done)
		assert.LessOrEqual(t, done, total)
	})

	assert.NotEmpty(t, calls)
	assert.Equal(t, len(calls), calls[len(calls)-1])
}
