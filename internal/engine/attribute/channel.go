package attribute

import (
	"errors"
	"fmt"
)

// Sentinel errors for buffer misuse. Both indicate call-ordering bugs (for
// example a prediction arriving before the mesh finished loading) and must
// fail loudly rather than truncate or pad.
var (
	ErrNotAttached       = errors.New("attribute channel not attached")
	ErrDimensionMismatch = errors.New("field length does not match vertex count")
)

// Channel owns the per-vertex stiffness scalar attribute: a CPU mirror array
// plus the GPU buffer it flushes into. The mirror is the committed field the
// point-query resolver reads; the GPU copy only ever changes at a frame
// boundary via Flush.
type Channel struct {
	device      deviceBuffer
	mirror      []float32
	vertexCount int
	attached    bool
	perVertex   bool
	committed   bool
	dirty       bool
}

// NewChannel creates a channel backed by an OpenGL buffer. Requires a current
// GL context for all later buffer operations.
func NewChannel() *Channel {
	return &Channel{device: &glBuffer{}}
}

func newChannelWithDevice(d deviceBuffer) *Channel {
	return &Channel{device: d}
}

// Attach allocates the GPU buffer for vertexCount scalars, zero-filled, and
// switches the shader selection flag to the per-vertex path. Attaching while
// already attached reallocates for the new mesh.
func (c *Channel) Attach(vertexCount int) {
	c.device.allocate(vertexCount)
	c.mirror = make([]float32, vertexCount)
	c.vertexCount = vertexCount
	c.attached = true
	c.perVertex = true
	c.committed = false
	c.dirty = false
}

// Update overwrites the committed field with a freshly synthesized one. The
// previous mirror stays untouched on error. GPU visibility is deferred to the
// next Flush; callers must not assume synchronous visibility.
func (c *Channel) Update(field []float32) error {
	if !c.attached {
		return ErrNotAttached
	}
	if len(field) != c.vertexCount {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(field), c.vertexCount)
	}
	copy(c.mirror, field)
	c.committed = true
	c.dirty = true
	return nil
}

// Flush uploads the mirror to the GPU if it changed since the last flush.
// Called once per frame from the render loop.
func (c *Channel) Flush() {
	if !c.attached || !c.dirty {
		return
	}
	c.device.upload(c.mirror)
	c.dirty = false
}

// Bind attaches the GPU buffer to the given vertex attribute index. No-op
// when detached.
func (c *Channel) Bind(attribIndex uint32) {
	if !c.attached {
		return
	}
	c.device.bind(attribIndex)
}

// Detach releases the GPU buffer and clears the per-vertex flag, dropping the
// shader back to uniform global-scalar shading. Safe to call when already
// detached.
func (c *Channel) Detach() {
	if !c.attached {
		return
	}
	c.device.release()
	c.mirror = nil
	c.vertexCount = 0
	c.attached = false
	c.perVertex = false
	c.committed = false
	c.dirty = false
}

// PerVertex reports whether the shader should read the per-vertex attribute
// instead of the global stiffness uniform.
func (c *Channel) PerVertex() bool {
	return c.perVertex
}

// Field returns the committed CPU mirror, or nil when detached or when no
// update has been committed yet. Callers must not retain the slice across an
// Update; re-fetch after every recompute.
func (c *Channel) Field() []float32 {
	if !c.attached || !c.committed {
		return nil
	}
	return c.mirror
}

// VertexCount returns the attached vertex count, zero when detached.
func (c *Channel) VertexCount() int {
	return c.vertexCount
}
