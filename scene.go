package tracer

// Scene owns every piece of geometry, shading, and lighting data the
// renderer needs. It is built once and never mutated once worker threads
// start rendering.
type Scene struct {
	Background Vec3
	Camera     *Camera

	Vertices  []Vertex
	Triangles []Triangle
	Tree      *Tree

	Lights    []Light
	Textures  []Texture
	Materials []Material

	BucketSize int

	GIOn          bool
	ReflectionsOn bool
	RefractionsOn bool
}

// DefaultBucketSize is used when a scene file omits
// settings.image_settings.bucket_size.
const DefaultBucketSize = 24

// NewScene assembles a Scene from already-built meshes, wiring up the
// acceleration tree over the combined triangle list.
func NewScene(background Vec3, camera *Camera, meshes []MeshData, lights []Light, textures []Texture, materials []Material) (*Scene, error) {
	totalVerts := 0
	for _, m := range meshes {
		totalVerts += len(m.Positions)
	}

	b := newMeshBuilder(totalVerts)
	for _, m := range meshes {
		if err := b.addMesh(m); err != nil {
			return nil, err
		}
	}
	verts, tris := b.finish()

	s := &Scene{
		Background: background,
		Camera:     camera,
		Vertices:   verts,
		Triangles:  tris,
		Tree:       BuildTree(verts, tris),
		Lights:     lights,
		Textures:   textures,
		Materials:  materials,
		BucketSize: DefaultBucketSize,

		// ReflectionsOn/RefractionsOn default to true, matching
		// LoadSceneFile's defaults when a scene file omits them.
		ReflectionsOn: true,
		RefractionsOn: true,
	}
	return s, nil
}

// Trace finds the nearest intersection of r against the scene's
// acceleration tree.
func (s *Scene) Trace(r Ray) (Intersection, bool) {
	return TraverseNearest(s.Tree, s.Vertices, s.Triangles, r)
}
