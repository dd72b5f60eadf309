package holo

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/fibroview/fibroview/internal/engine/holo/shaders"
	"github.com/fibroview/fibroview/internal/engine/shader"
)

// Vertex attribute layout shared by the material and the mesh VAO setup.
const (
	AttribPosition  uint32 = 0
	AttribNormal    uint32 = 1
	AttribStiffness uint32 = 2
)

// Material is the compiled holographic overlay program plus its cached
// uniform locations. One instance serves both mesh sources; only the
// geometry differs.
type Material struct {
	program uint32

	locMVP             int32
	locModel           int32
	locTime            int32
	locGlitchAmp       int32
	locCameraPos       int32
	locGlobalStiffness int32
	locUseVertex       int32
	locBaseColor       int32
	locAccentColor     int32
	locBaseOpacity     int32

	// Cosmetic palette; fixed at creation.
	baseColor   [3]float32
	accentColor [3]float32
	baseOpacity float32
}

// NewMaterial compiles the holographic shader program. Requires a current GL
// context.
func NewMaterial() (*Material, error) {
	program, err := shader.CompileProgram(shaders.HoloVertexShader, shaders.HoloFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("holo shader: %w", err)
	}

	m := &Material{
		program:     program,
		baseColor:   [3]float32{0.15, 0.85, 0.95}, // holographic cyan
		accentColor: [3]float32{0.9, 0.25, 0.85},  // magenta sweep
		baseOpacity: 0.25,
	}

	m.locMVP = shader.GetUniform(program, "uMVP")
	m.locModel = shader.GetUniform(program, "uModel")
	m.locTime = shader.GetUniform(program, "uTime")
	m.locGlitchAmp = shader.GetUniform(program, "uGlitchAmp")
	m.locCameraPos = shader.GetUniform(program, "uCameraPos")
	m.locGlobalStiffness = shader.GetUniform(program, "uGlobalStiffness")
	m.locUseVertex = shader.GetUniform(program, "uUseVertexStiffness")
	m.locBaseColor = shader.GetUniform(program, "uBaseColor")
	m.locAccentColor = shader.GetUniform(program, "uAccentColor")
	m.locBaseOpacity = shader.GetUniform(program, "uBaseOpacity")

	return m, nil
}

// Use activates the program and applies the per-frame render context.
func (m *Material) Use(ctx *RenderContext) {
	gl.UseProgram(m.program)

	mvp := ctx.MVP
	model := ctx.Model
	gl.UniformMatrix4fv(m.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(m.locModel, 1, false, model.Ptr())
	gl.Uniform1f(m.locTime, ctx.Time)
	gl.Uniform1f(m.locGlitchAmp, ctx.GlitchAmp)
	gl.Uniform3f(m.locCameraPos, ctx.CameraPos.X, ctx.CameraPos.Y, ctx.CameraPos.Z)
	gl.Uniform1f(m.locGlobalStiffness, ctx.GlobalStiffness)
	if ctx.PerVertex {
		gl.Uniform1i(m.locUseVertex, 1)
	} else {
		gl.Uniform1i(m.locUseVertex, 0)
	}
	gl.Uniform3f(m.locBaseColor, m.baseColor[0], m.baseColor[1], m.baseColor[2])
	gl.Uniform3f(m.locAccentColor, m.accentColor[0], m.accentColor[1], m.accentColor[2])
	gl.Uniform1f(m.locBaseOpacity, m.baseOpacity)
}

// Destroy releases the shader program.
func (m *Material) Destroy() {
	if m.program != 0 {
		gl.DeleteProgram(m.program)
		m.program = 0
	}
}
