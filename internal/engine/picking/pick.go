package picking

import (
	"github.com/fibroview/fibroview/internal/engine/mesh"
)

// FaceQuery identifies the triangle hit by a pointer ray: the face index and
// its three vertex indices. Ephemeral; valid only for the query that produced
// it.
type FaceQuery struct {
	Face    int
	A, B, C uint32
}

// IntersectTriangle tests the ray against a single triangle using the
// Moeller-Trumbore algorithm. Returns the ray parameter t and whether the
// triangle was hit in front of the origin. Back faces are culled so interior
// surfaces never shadow the visible wall.
func (r Ray) IntersectTriangle(v0, v1, v2 [3]float32) (t float32, hit bool) {
	const epsilon = 1e-7

	e1 := [3]float32{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	e2 := [3]float32{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}

	// p = dir x e2
	p := [3]float32{
		r.Direction[1]*e2[2] - r.Direction[2]*e2[1],
		r.Direction[2]*e2[0] - r.Direction[0]*e2[2],
		r.Direction[0]*e2[1] - r.Direction[1]*e2[0],
	}
	det := e1[0]*p[0] + e1[1]*p[1] + e1[2]*p[2]
	if det < epsilon {
		return 0, false
	}
	invDet := 1 / det

	s := [3]float32{r.Origin[0] - v0[0], r.Origin[1] - v0[1], r.Origin[2] - v0[2]}
	u := (s[0]*p[0] + s[1]*p[1] + s[2]*p[2]) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	// q = s x e1
	q := [3]float32{
		s[1]*e1[2] - s[2]*e1[1],
		s[2]*e1[0] - s[0]*e1[2],
		s[0]*e1[1] - s[1]*e1[0],
	}
	v := (r.Direction[0]*q[0] + r.Direction[1]*q[1] + r.Direction[2]*q[2]) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = (e2[0]*q[0] + e2[1]*q[1] + e2[2]*q[2]) * invDet
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// PickMesh finds the nearest front-facing triangle hit by the ray, returning
// its FaceQuery. Linear scan over the index buffer after an AABB reject;
// fine at this mesh scale (a few thousand triangles per pointer move).
func (r Ray) PickMesh(m *mesh.Mesh) (FaceQuery, bool) {
	if m == nil || !r.IntersectAABB(m.Bounds.Min, m.Bounds.Max) {
		return FaceQuery{}, false
	}

	best := FaceQuery{}
	bestT := float32(0)
	found := false

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		t, hit := r.IntersectTriangle(m.Positions[ia], m.Positions[ib], m.Positions[ic])
		if hit && (!found || t < bestT) {
			best = FaceQuery{Face: i / 3, A: ia, B: ib, C: ic}
			bestT = t
			found = true
		}
	}
	return best, found
}
