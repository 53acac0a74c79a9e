package tracer

import "fmt"

// MeshData is the per-mesh input to vertex/triangle assembly: flat position
// and (optional) uv arrays, a flat index array (a multiple of 3), a
// material id, and the triangle flags that material implies.
type MeshData struct {
	Positions     []Vec3
	UVs           []Vec3 // may be nil or empty; zero-uv is used when absent
	Indices       []int
	MaterialIndex int
	Flags         TriangleFlags
}

// meshBuilder accumulates vertices and triangles across every mesh of a
// scene, then resolves smooth normals once all meshes have been added.
//
// Capacity for the final vertex array is reserved up front as an
// allocation hint; it is not required for correctness since vertices are
// referenced by index rather than by pointer.
type meshBuilder struct {
	vertices  []Vertex
	triangles []Triangle
}

func newMeshBuilder(totalVertexHint int) *meshBuilder {
	return &meshBuilder{
		vertices: make([]Vertex, 0, totalVertexHint),
	}
}

// addMesh appends a mesh's vertices and triangles, accumulating each
// triangle's face normal into its three vertices' smoothed-normal
// accumulator.
func (b *meshBuilder) addMesh(m MeshData) error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh assembly: index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("mesh assembly: uv count %d does not match position count %d", len(m.UVs), len(m.Positions))
	}

	base := len(b.vertices)
	for i, p := range m.Positions {
		uv := Vec3{}
		if len(m.UVs) != 0 {
			uv = m.UVs[i]
		}
		b.vertices = append(b.vertices, Vertex{Position: p, UV: uv})
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := base+m.Indices[i], base+m.Indices[i+1], base+m.Indices[i+2]
		if i0 < 0 || i0 >= len(b.vertices) || i1 < 0 || i1 >= len(b.vertices) || i2 < 0 || i2 >= len(b.vertices) {
			return fmt.Errorf("mesh assembly: triangle index out of range for mesh with %d vertices", len(m.Positions))
		}

		p0, p1, p2 := b.vertices[i0].Position, b.vertices[i1].Position, b.vertices[i2].Position
		tri := NewTriangle(i0, i1, i2, p0, p1, p2, m.MaterialIndex, m.Flags)
		b.triangles = append(b.triangles, tri)

		b.vertices[i0].Normal = b.vertices[i0].Normal.Add(tri.FaceNormal)
		b.vertices[i1].Normal = b.vertices[i1].Normal.Add(tri.FaceNormal)
		b.vertices[i2].Normal = b.vertices[i2].Normal.Add(tri.FaceNormal)
	}
	return nil
}

// finish normalizes every vertex's accumulated normal, producing the final
// smooth normal. Vertices touched by zero triangles keep a zero normal.
func (b *meshBuilder) finish() ([]Vertex, []Triangle) {
	for i := range b.vertices {
		n := b.vertices[i].Normal
		if n.LengthSquared() > 0 {
			b.vertices[i].Normal = n.Normalize()
		}
	}
	return b.vertices, b.triangles
}
