package tracer

// Vertex is a point in the scene's flat vertex array: a position, a
// smoothed normal accumulated from incident face normals and normalized
// once assembly finishes, and a uv (stored as a Vec3; only X, Y are used).
type Vertex struct {
	Position Vec3
	Normal   Vec3
	UV       Vec3
}

// TriangleFlags is a bitmask of the per-triangle shading toggles derived
// from the owning material.
type TriangleFlags uint8

const (
	// FlagSmoothShading interpolates the shading normal barycentrically
	// from the three vertex normals rather than using the face normal.
	FlagSmoothShading TriangleFlags = 1 << iota
	// FlagBackFaceCulling discards intersections where the ray origin is
	// at or behind the triangle's outward face.
	FlagBackFaceCulling
)

// Triangle references three vertices by index into the owning Scene's
// vertex array rather than by pointer, so the vertex slice can reallocate
// freely during assembly (see DESIGN.md). FaceNormal is precomputed at
// construction time, assuming CCW winding.
type Triangle struct {
	V0, V1, V2    int
	FaceNormal    Vec3
	MaterialIndex int
	Flags         TriangleFlags
}

// NewTriangle builds a Triangle over three vertex indices, precomputing its
// face normal from the given vertex positions: normalize((v1-v0)x(v2-v0)).
func NewTriangle(i0, i1, i2 int, p0, p1, p2 Vec3, materialIndex int, flags TriangleFlags) Triangle {
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	return Triangle{
		V0: i0, V1: i1, V2: i2,
		FaceNormal:    n,
		MaterialIndex: materialIndex,
		Flags:         flags,
	}
}

// edges returns e0 = v1-v0, e1 = v2-v1, e2 = v0-v2 given the triangle's
// resolved vertex positions.
func edges(p0, p1, p2 Vec3) (e0, e1, e2 Vec3) {
	return p1.Sub(p0), p2.Sub(p1), p0.Sub(p2)
}

// AABB returns the tight bounding box of the triangle given its resolved
// vertex positions.
func triangleAABB(p0, p1, p2 Vec3) AABB {
	b := VacuumAABB()
	b = b.UnionPoint(p0)
	b = b.UnionPoint(p1)
	b = b.UnionPoint(p2)
	return b
}
