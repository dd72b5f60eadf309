// Package scene renders the anatomical mesh with the holographic stiffness
// overlay.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/fibroview/fibroview/internal/engine/attribute"
	"github.com/fibroview/fibroview/internal/engine/holo"
	"github.com/fibroview/fibroview/internal/engine/mesh"
	"github.com/fibroview/fibroview/internal/logger"
)

// OverlayRenderer owns the mesh geometry buffers, the stiffness attribute
// channel and the holographic material, and draws the overlay once per frame.
type OverlayRenderer struct {
	material *holo.Material
	channel  *attribute.Channel

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	mesh *mesh.Mesh
}

// NewOverlayRenderer compiles the material and prepares an empty renderer.
// Requires a current GL context.
func NewOverlayRenderer() (*OverlayRenderer, error) {
	material, err := holo.NewMaterial()
	if err != nil {
		return nil, fmt.Errorf("overlay material: %w", err)
	}
	return &OverlayRenderer{
		material: material,
		channel:  attribute.NewChannel(),
	}, nil
}

// SetMesh uploads the mesh geometry and attaches the stiffness channel sized
// to its vertex count. Replaces any previously loaded mesh.
func (r *OverlayRenderer) SetMesh(m *mesh.Mesh) {
	r.releaseGeometry()
	r.mesh = m

	// Interleave position and normal: 6 floats per vertex.
	interleaved := make([]float32, 0, m.VertexCount()*6)
	for i := range m.Positions {
		p := m.Positions[i]
		n := m.Normals[i]
		interleaved = append(interleaved, p[0], p[1], p[2], n[0], n[1], n[2])
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, unsafe.Pointer(&interleaved[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(holo.AttribPosition, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(holo.AttribPosition)
	gl.VertexAttribPointerWithOffset(holo.AttribNormal, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.EnableVertexAttribArray(holo.AttribNormal)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	r.indexCount = int32(len(m.Indices))

	// Per-vertex stiffness rides in the channel's own buffer so field
	// updates never touch the static geometry.
	r.channel.Attach(m.VertexCount())
	r.channel.Bind(holo.AttribStiffness)

	gl.BindVertexArray(0)

	logger.Info("overlay mesh ready",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
}

// SetField commits a freshly synthesized stiffness field. On error the
// previous field keeps rendering and the failed refresh is logged; the render
// loop is never interrupted.
func (r *OverlayRenderer) SetField(field []float32) error {
	if err := r.channel.Update(field); err != nil {
		logger.Error("stiffness field rejected", zap.Error(err))
		return err
	}
	return nil
}

// ClearField detaches the attribute channel, dropping the shader to uniform
// global-scalar shading.
func (r *OverlayRenderer) ClearField() {
	r.channel.Detach()
}

// Mesh returns the currently loaded mesh, nil before SetMesh.
func (r *OverlayRenderer) Mesh() *mesh.Mesh {
	return r.mesh
}

// Field returns the committed CPU-side field for point queries.
func (r *OverlayRenderer) Field() []float32 {
	return r.channel.Field()
}

// Render flushes pending attribute data and draws the overlay.
func (r *OverlayRenderer) Render(ctx *holo.RenderContext) {
	if r.vao == 0 || r.indexCount == 0 {
		return
	}

	// Frame-boundary upload: updates committed since the last frame become
	// visible here, never mid-frame.
	r.channel.Flush()

	ctx.PerVertex = r.channel.PerVertex()
	r.material.Use(ctx)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *OverlayRenderer) releaseGeometry() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.indexCount = 0
	r.channel.Detach()
	r.mesh = nil
}

// Destroy releases all GPU resources.
func (r *OverlayRenderer) Destroy() {
	r.releaseGeometry()
	if r.material != nil {
		r.material.Destroy()
	}
}
