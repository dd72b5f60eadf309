package app

import (
	gomath "math"

	"github.com/fibroview/fibroview/pkg/math"
)

// orbitCamera circles the mesh origin: drag rotates, wheel zooms.
type orbitCamera struct {
	yaw      float32 // radians around Y
	pitch    float32 // radians above the horizon
	distance float32
}

func newOrbitCamera() *orbitCamera {
	return &orbitCamera{
		yaw:      0.6,
		pitch:    0.35,
		distance: 16,
	}
}

// rotate applies a mouse drag delta in pixels.
func (c *orbitCamera) rotate(dx, dy float32) {
	const sensitivity = 0.008
	c.yaw += dx * sensitivity
	c.pitch += dy * sensitivity

	// Keep away from the poles so LookAt stays stable.
	limit := float32(gomath.Pi/2 - 0.05)
	c.pitch = math.Clamp(c.pitch, -limit, limit)
}

// zoom applies a wheel step.
func (c *orbitCamera) zoom(steps float32) {
	c.distance = math.Clamp(c.distance-steps*1.2, 5, 60)
}

// eye returns the camera position in world space.
func (c *orbitCamera) eye() math.Vec3 {
	cosP := float32(gomath.Cos(float64(c.pitch)))
	return math.Vec3{
		X: c.distance * cosP * float32(gomath.Sin(float64(c.yaw))),
		Y: c.distance * float32(gomath.Sin(float64(c.pitch))),
		Z: c.distance * cosP * float32(gomath.Cos(float64(c.yaw))),
	}
}

// viewProj builds the combined view-projection matrix.
func (c *orbitCamera) viewProj(aspect float32) math.Mat4 {
	proj := math.Perspective(float32(gomath.Pi/4), aspect, 0.1, 200)
	view := math.LookAt(c.eye(), math.Vec3{}, math.Vec3{Y: 1})
	return proj.Mul(view)
}
