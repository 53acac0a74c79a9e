package tracer

import "math"

const epsilon = 1e-6

// Intersection is the result of a successful ray/triangle or tree traversal
// hit. It is never stored; it is produced fresh for each query.
type Intersection struct {
	Distance      float64
	Point         Vec3
	Normal        Vec3
	UV            Vec3
	U, V          float64
	MaterialIndex int
}

// intersectAABB is the "ray enters the box" slab test. For
// each of the six slab planes, rays parallel to that axis are skipped, as
// are planes behind the ray origin. A ray whose origin already lies
// inside the box is treated as hitting at t=0, since otherwise a ray cast
// from inside a leaf's bounds would incorrectly miss it.
func intersectAABB(r Ray, b AABB) bool {
	if r.Origin.X >= b.Min.X && r.Origin.X <= b.Max.X &&
		r.Origin.Y >= b.Min.Y && r.Origin.Y <= b.Max.Y &&
		r.Origin.Z >= b.Min.Z && r.Origin.Z <= b.Max.Z {
		return true
	}

	planes := [6]struct {
		axis  int
		value float64
	}{
		{0, b.Min.X}, {0, b.Max.X},
		{1, b.Min.Y}, {1, b.Max.Y},
		{2, b.Min.Z}, {2, b.Max.Z},
	}

	for _, pl := range planes {
		var dirComp, originComp float64
		switch pl.axis {
		case 0:
			dirComp, originComp = r.Direction.X, r.Origin.X
		case 1:
			dirComp, originComp = r.Direction.Y, r.Origin.Y
		default:
			dirComp, originComp = r.Direction.Z, r.Origin.Z
		}
		if math.Abs(dirComp) < epsilon {
			continue
		}
		t := (pl.value - originComp) / dirComp
		if t < 0 {
			continue
		}
		p := r.Origin.Add(r.Direction.Mul(t))
		if onBoxFace(p, b, pl.axis) {
			return true
		}
	}
	return false
}

// onBoxFace reports whether p lies within box b on the two axes other than
// axis (the axis the candidate face is perpendicular to).
func onBoxFace(p Vec3, b AABB, axis int) bool {
	switch axis {
	case 0:
		return p.Y >= b.Min.Y && p.Y <= b.Max.Y && p.Z >= b.Min.Z && p.Z <= b.Max.Z
	case 1:
		return p.X >= b.Min.X && p.X <= b.Max.X && p.Z >= b.Min.Z && p.Z <= b.Max.Z
	default:
		return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
	}
}

// intersectTriangle is the Möller-style ray/triangle test.
// It returns (Intersection, true) on a hit, or (zero, false) on a miss.
func intersectTriangle(r Ray, tri Triangle, verts []Vertex) (Intersection, bool) {
	v0, v1, v2 := verts[tri.V0], verts[tri.V1], verts[tri.V2]
	n := tri.FaceNormal

	dDotN := r.Direction.Dot(n)
	if math.Abs(dDotN) < epsilon {
		return Intersection{}, false
	}

	s := n.Dot(v0.Position.Sub(r.Origin))
	if tri.Flags&FlagBackFaceCulling != 0 && s >= 0 {
		return Intersection{}, false
	}

	t := s / dDotN
	if t < 0 {
		return Intersection{}, false
	}

	p := r.Origin.Add(r.Direction.Mul(t))

	e0, e1, e2 := edges(v0.Position, v1.Position, v2.Position)
	c0 := n.Dot(e0.Cross(p.Sub(v0.Position)))
	c1 := n.Dot(e1.Cross(p.Sub(v1.Position)))
	c2 := n.Dot(e2.Cross(p.Sub(v2.Position)))
	if c0 < 0 || c1 < 0 || c2 < 0 {
		return Intersection{}, false
	}

	v0v1 := v1.Position.Sub(v0.Position)
	v0v2 := v2.Position.Sub(v0.Position)
	v0p := p.Sub(v0.Position)
	areaABC := v0v1.Cross(v0v2).Length()
	u := v0p.Cross(v0v2).Length() / areaABC
	v := v0v1.Cross(v0p).Length() / areaABC
	w := 1 - u - v

	// u is the weight of v1, v the weight of v2 and w the weight of v0.
	shadingNormal := n
	if tri.Flags&FlagSmoothShading != 0 {
		shadingNormal = v1.Normal.Mul(u).Add(v2.Normal.Mul(v)).Add(v0.Normal.Mul(w)).Normalize()
	}
	uv := v1.UV.Mul(u).Add(v2.UV.Mul(v)).Add(v0.UV.Mul(w))

	return Intersection{
		Distance:      t,
		Point:         p,
		Normal:        shadingNormal,
		UV:            uv,
		U:             u,
		V:             v,
		MaterialIndex: tri.MaterialIndex,
	}, true
}

// traversalStack is a fixed-capacity LIFO of node indices. The traversal
// holds at most one pending sibling per tree level plus the two children
// just pushed (MaxTreeDepth+2 entries), well under the capacity of
// 2*MaxTreeDepth+4. Using a fixed array instead of a slice keeps the hot
// traversal path allocation-free.
type traversalStack struct {
	data [2*MaxTreeDepth + 4]int32
	n    int
}

func (s *traversalStack) push(v int32) {
	s.data[s.n] = v
	s.n++
}

func (s *traversalStack) pop() (int32, bool) {
	if s.n == 0 {
		return 0, false
	}
	s.n--
	return s.data[s.n], true
}

// TraverseNearest walks the tree depth-first via an explicit LIFO stack and
// returns the nearest intersection across every triangle in every leaf
// whose bounds the ray enters. Traversal order is not front-to-back;
// correctness holds regardless because every candidate leaf is visited.
func TraverseNearest(tree *Tree, verts []Vertex, tris []Triangle, r Ray) (Intersection, bool) {
	var stack traversalStack
	stack.push(0)

	var best Intersection
	found := false

	for {
		idx, ok := stack.pop()
		if !ok {
			break
		}
		node := &tree.Nodes[idx]
		if !intersectAABB(r, node.Bounds) {
			continue
		}
		if node.isLeaf() {
			for _, ti := range node.TriangleIndices {
				hit, ok := intersectTriangle(r, tris[ti], verts)
				if ok && (!found || hit.Distance < best.Distance) {
					best = hit
					found = true
				}
			}
			continue
		}
		if node.Left >= 0 {
			stack.push(node.Left)
		}
		if node.Right >= 0 {
			stack.push(node.Right)
		}
	}

	return best, found
}
