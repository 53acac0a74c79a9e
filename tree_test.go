package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTree_EmptySceneHasAVacuumRoot(t *testing.T) {
	tree := BuildTree(nil, nil)
	assert.Len(t, tree.Nodes, 1)
	assert.False(t, tree.Nodes[0].isLeaf())
	assert.Empty(t, tree.Nodes[0].TriangleIndices)
}

func TestBuildTree_RootBoundsContainEveryTriangle(t *testing.T) {
	verts, tris := manyScatteredTriangles(t, 50)
	tree := BuildTree(verts, tris)

	for _, tri := range tris {
		b := triangleAABB(verts[tri.V0].Position, verts[tri.V1].Position, verts[tri.V2].Position)
		assert.True(t, tree.Nodes[0].Bounds.Intersects(b))
	}
}

func TestBuildTree_LeavesRespectMaxTriangleCountOrDepth(t *testing.T) {
	verts, tris := manyScatteredTriangles(t, 200)
	tree := BuildTree(verts, tris)

	for depth := range tree.Nodes {
		n := &tree.Nodes[depth]
		if n.isLeaf() {
			assert.True(t, len(n.TriangleIndices) <= MaxLeafTriangles || nodeDepth(tree, depth) > MaxTreeDepth)
		}
	}
}

func TestBuildTree_EveryTriangleReachableFromRoot(t *testing.T) {
	verts, tris := manyScatteredTriangles(t, 80)
	tree := BuildTree(verts, tris)

	seen := make(map[int]bool)
	var walk func(idx int32)
	walk = func(idx int32) {
		n := &tree.Nodes[idx]
		if n.isLeaf() {
			for _, ti := range n.TriangleIndices {
				seen[ti] = true
			}
			return
		}
		if n.Left >= 0 {
			walk(n.Left)
		}
		if n.Right >= 0 {
			walk(n.Right)
		}
	}
	walk(0)

	for i := range tris {
		assert.True(t, seen[i], "triangle %d unreachable from root", i)
	}
}

func nodeDepth(t *Tree, idx int) int {
	depth := 0
	for t.Nodes[idx].Parent >= 0 {
		idx = int(t.Nodes[idx].Parent)
		depth++
	}
	return depth
}

func manyScatteredTriangles(t *testing.T, n int) ([]Vertex, []Triangle) {
	t.Helper()
	b := newMeshBuilder(n * 3)
	for i := 0; i < n; i++ {
		x := float64(i)
		err := b.addMesh(MeshData{
			Positions: []Vec3{{x, 0, 0}, {x + 1, 0, 0}, {x, 1, 0}},
			Indices:   []int{0, 1, 2},
		})
		assert.NoError(t, err)
	}
	return b.finish()
}
