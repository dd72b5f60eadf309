// Package mesh provides the anatomical surface meshes the stiffness overlay
// renders: a GLB-loaded patient mesh and a procedural capsule fallback.
package mesh

import gomath "math"

// Mesh is an immutable triangle mesh in mesh-local space. The field engine
// only ever reads it; the per-vertex stiffness field animates, the geometry
// does not.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
	Bounds    Bounds
}

// Bounds is an axis-aligned bounding box over the mesh positions.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Source supplies mesh geometry. The two implementations (GLB asset and
// procedural capsule) share this contract so the synthesizer, attribute
// channel and material are identical across both.
type Source interface {
	// Load produces the mesh. Called once per session.
	Load() (*Mesh, error)
	// Name identifies the source for logs.
	Name() string
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// computeBounds scans positions for the axis-aligned bounding box.
func computeBounds(positions [][3]float32) Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, p := range positions {
		for a := 0; a < 3; a++ {
			if p[a] < b.Min[a] {
				b.Min[a] = p[a]
			}
			if p[a] > b.Max[a] {
				b.Max[a] = p[a]
			}
		}
	}
	return b
}

// ComputeNormals derives smooth per-vertex normals by accumulating
// area-weighted face normals over the index buffer.
func ComputeNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i], indices[i+1], indices[i+2]
		a, b, c := positions[ia], positions[ib], positions[ic]

		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}

		for _, idx := range []uint32{ia, ib, ic} {
			normals[idx][0] += n[0]
			normals[idx][1] += n[1]
			normals[idx][2] += n[2]
		}
	}
	for i := range normals {
		n := normals[i]
		mag := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		if mag > 1e-8 {
			normals[i] = [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}
		} else {
			normals[i] = [3]float32{0, 1, 0}
		}
	}
	return normals
}

// center translates the mesh so its bounding box midpoint sits at the origin,
// then recomputes bounds.
func (m *Mesh) center() {
	c := m.Bounds.Center()
	for i := range m.Positions {
		m.Positions[i][0] -= c[0]
		m.Positions[i][1] -= c[1]
		m.Positions[i][2] -= c[2]
	}
	m.Bounds = computeBounds(m.Positions)
}
