package mesh

import gomath "math"

// CapsuleSource generates the procedural fallback anatomy: a capsule body with
// a narrower neck capsule below it, approximating the uterine shape used by
// the demo dataset. Used whenever no GLB asset is configured or loading fails.
type CapsuleSource struct {
	// Sections controls tessellation density around the axis. Zero means
	// the default of 32.
	Sections int
}

// Name identifies the source for logs.
func (c CapsuleSource) Name() string { return "procedural-capsule" }

// Load builds the capsule mesh. Never fails; the error return satisfies the
// Source contract.
func (c CapsuleSource) Load() (*Mesh, error) {
	sections := c.Sections
	if sections <= 0 {
		sections = 32
	}

	// Body chamber and lower neck, dimensions in mesh-local units.
	body := buildCapsule(2.5, 6.0, sections)
	neck := buildCapsule(1.0, 3.0, sections/2)
	neck.translate(0, -4.0, 0)

	m := merge(body, neck)
	m.Bounds = computeBounds(m.Positions)
	m.center()
	m.Normals = ComputeNormals(m.Positions, m.Indices)
	return m, nil
}

// buildCapsule creates a capsule aligned to the Y axis: a cylinder of the
// given height capped with hemispheres of the given radius.
func buildCapsule(radius, height float32, sections int) *Mesh {
	half := height / 2
	stacks := sections // latitudinal resolution across both hemispheres

	// Ring profile: (y offset, ring radius) from the top pole down to the
	// bottom pole, with the equator doubled to form the cylinder wall.
	type ring struct {
		y, r float32
	}
	var rings []ring
	for i := 0; i <= stacks/2; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		rings = append(rings, ring{
			y: half + radius*float32(gomath.Cos(phi)),
			r: radius * float32(gomath.Sin(phi)),
		})
	}
	for i := stacks / 2; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		rings = append(rings, ring{
			y: -half + radius*float32(gomath.Cos(phi)),
			r: radius * float32(gomath.Sin(phi)),
		})
	}

	var positions [][3]float32
	for _, rg := range rings {
		for j := 0; j < sections; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(sections)
			positions = append(positions, [3]float32{
				rg.r * float32(gomath.Cos(theta)),
				rg.y,
				rg.r * float32(gomath.Sin(theta)),
			})
		}
	}

	var indices []uint32
	for i := 0; i+1 < len(rings); i++ {
		// Skip degenerate bands between a pole ring and itself.
		if rings[i].r == 0 && rings[i+1].r == 0 {
			continue
		}
		for j := 0; j < sections; j++ {
			jn := (j + 1) % sections
			a := uint32(i*sections + j)
			b := uint32(i*sections + jn)
			cIdx := uint32((i+1)*sections + j)
			d := uint32((i+1)*sections + jn)
			// Wound counterclockwise seen from outside, so ray picking's
			// back-face cull keeps the near surface.
			if rings[i].r > 0 {
				indices = append(indices, a, b, cIdx)
			}
			if rings[i+1].r > 0 {
				indices = append(indices, b, d, cIdx)
			}
		}
	}

	return &Mesh{Positions: positions, Indices: indices}
}

// translate shifts all positions by the given offset.
func (m *Mesh) translate(x, y, z float32) {
	for i := range m.Positions {
		m.Positions[i][0] += x
		m.Positions[i][1] += y
		m.Positions[i][2] += z
	}
}

// merge concatenates two meshes into one, offsetting the second index buffer.
func merge(a, b *Mesh) *Mesh {
	out := &Mesh{
		Positions: append(a.Positions, b.Positions...),
		Indices:   append([]uint32{}, a.Indices...),
	}
	offset := uint32(len(a.Positions))
	for _, idx := range b.Indices {
		out.Indices = append(out.Indices, idx+offset)
	}
	return out
}
