package holo

import "github.com/fibroview/fibroview/pkg/math"

// RenderContext carries every frame-varying input the material consumes.
// Populated once per frame from current application state and passed into the
// draw call; the material keeps no ambient mutable state between frames.
type RenderContext struct {
	MVP       math.Mat4
	Model     math.Mat4
	CameraPos math.Vec3
	// Elapsed seconds since the viewer started, drives all animation.
	Time float32
	// GlobalStiffness is the uniform fallback used when PerVertex is false.
	GlobalStiffness float32
	// PerVertex selects the attribute path over the global uniform.
	PerVertex bool
	// GlitchAmp scales the cosmetic vertex displacement; 0 disables it.
	GlitchAmp float32
}
