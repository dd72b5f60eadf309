package picking

import (
	"testing"

	"github.com/fibroview/fibroview/internal/engine/mesh"
)

func zRay(x, y float32) Ray {
	return Ray{Origin: [3]float32{x, y, 5}, Direction: [3]float32{0, 0, -1}}
}

func TestIntersectTriangleHit(t *testing.T) {
	// CCW triangle in the XY plane facing +Z.
	v0 := [3]float32{-1, -1, 0}
	v1 := [3]float32{1, -1, 0}
	v2 := [3]float32{0, 1, 0}

	dist, hit := zRay(0, 0).IntersectTriangle(v0, v1, v2)
	if !hit {
		t.Fatal("expected hit at triangle center")
	}
	if dist < 4.99 || dist > 5.01 {
		t.Errorf("hit distance = %v, want ~5", dist)
	}
}

func TestIntersectTriangleMiss(t *testing.T) {
	v0 := [3]float32{-1, -1, 0}
	v1 := [3]float32{1, -1, 0}
	v2 := [3]float32{0, 1, 0}

	if _, hit := zRay(3, 3).IntersectTriangle(v0, v1, v2); hit {
		t.Error("ray outside triangle reported a hit")
	}

	// Back face is culled.
	back := Ray{Origin: [3]float32{0, 0, -5}, Direction: [3]float32{0, 0, 1}}
	if _, hit := back.IntersectTriangle(v0, v1, v2); hit {
		t.Error("back-facing hit was not culled")
	}
}

func TestIntersectAABB(t *testing.T) {
	boxMin := [3]float32{-1, -1, -1}
	boxMax := [3]float32{1, 1, 1}

	if !zRay(0, 0).IntersectAABB(boxMin, boxMax) {
		t.Error("ray through box center missed")
	}
	if zRay(5, 5).IntersectAABB(boxMin, boxMax) {
		t.Error("ray far outside box hit")
	}
}

func TestPickMeshNearestFace(t *testing.T) {
	// Two stacked triangles; the pick must return the nearer one.
	m := &mesh.Mesh{
		Positions: [][3]float32{
			{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}, // face 0 at z=0
			{-1, -1, 2}, {1, -1, 2}, {0, 1, 2}, // face 1 at z=2, closer to origin at z=5
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
		Bounds:  mesh.Bounds{Min: [3]float32{-1, -1, 0}, Max: [3]float32{1, 1, 2}},
	}

	fq, ok := zRay(0, 0).PickMesh(m)
	if !ok {
		t.Fatal("expected a hit")
	}
	if fq.Face != 1 {
		t.Errorf("hit face %d, want nearer face 1", fq.Face)
	}
	if fq.A != 3 || fq.B != 4 || fq.C != 5 {
		t.Errorf("face vertices = (%d, %d, %d), want (3, 4, 5)", fq.A, fq.B, fq.C)
	}
}

func TestPickMeshMiss(t *testing.T) {
	m := &mesh.Mesh{
		Positions: [][3]float32{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
		Bounds:    mesh.Bounds{Min: [3]float32{-1, -1, 0}, Max: [3]float32{1, 1, 0}},
	}
	if _, ok := zRay(10, 10).PickMesh(m); ok {
		t.Error("pointer off the mesh reported a hit")
	}
	if _, ok := zRay(0, 0).PickMesh(nil); ok {
		t.Error("nil mesh reported a hit")
	}
}
