// Package attribute owns the GPU-resident per-vertex stiffness buffer and its
// CPU-side mirror, and keeps the two consistent across field recomputes.
package attribute

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// deviceBuffer abstracts the GPU scalar buffer so the channel's bookkeeping
// can be exercised in tests without a GL context. glBuffer is the only
// production implementation.
type deviceBuffer interface {
	// allocate creates storage for count float32 scalars, zero-filled.
	allocate(count int)
	// upload overwrites the existing storage in place.
	upload(data []float32)
	// bind attaches the buffer to the given vertex attribute index.
	bind(attribIndex uint32)
	// release frees the storage.
	release()
}

// glBuffer is the OpenGL implementation of deviceBuffer. All methods must run
// on the render thread with a current GL context.
type glBuffer struct {
	vbo uint32
}

func (b *glBuffer) allocate(count int) {
	if b.vbo == 0 {
		gl.GenBuffers(1, &b.vbo)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	zeros := make([]float32, count)
	var ptr unsafe.Pointer
	if count > 0 {
		ptr = unsafe.Pointer(&zeros[0])
	}
	// DYNAMIC_DRAW: the field is rewritten on every prediction update.
	gl.BufferData(gl.ARRAY_BUFFER, count*4, ptr, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *glBuffer) upload(data []float32) {
	if b.vbo == 0 || len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *glBuffer) bind(attribIndex uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointerWithOffset(attribIndex, 1, gl.FLOAT, false, 4, 0)
	gl.EnableVertexAttribArray(attribIndex)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *glBuffer) release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}
