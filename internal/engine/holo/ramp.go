// Package holo implements the holographic overlay material: the shader
// program, its per-frame render context, and the stiffness heatmap ramp
// shared between the fragment shader and the HUD.
package holo

import "github.com/fibroview/fibroview/pkg/math"

// Clinical stiffness thresholds in kPa. The fragment shader uses the same
// constants, so the rendered colors and HUD labels always agree.
const (
	HealthyMax  float32 = 2.0
	ModerateMax float32 = 5.0
	// lesionFull is where the yellow-to-red blend saturates.
	lesionFull float32 = 9.0
)

// Grade is the qualitative tier of a stiffness value.
type Grade string

const (
	GradeHealthy  Grade = "healthy"
	GradeModerate Grade = "moderate"
	GradeLesion   Grade = "lesion"
)

// GradeStiffness maps a stiffness value (kPa) to its clinical tier.
func GradeStiffness(kpa float32) Grade {
	switch {
	case kpa < HealthyMax:
		return GradeHealthy
	case kpa <= ModerateMax:
		return GradeModerate
	default:
		return GradeLesion
	}
}

// RampColor maps a stiffness value (kPa) through the three-stop heatmap:
// green below HealthyMax, green-to-yellow up to ModerateMax, yellow-to-red
// above. This is the CPU mirror of the rampColor function in holo.frag.
func RampColor(kpa float32) (r, g, b float32) {
	const (
		greenR, greenG, greenB = 0.1, 0.9, 0.3
		yellR, yellG, yellB    = 0.95, 0.85, 0.1
		redR, redG, redB       = 0.95, 0.15, 0.1
	)
	switch {
	case kpa < HealthyMax:
		return greenR, greenG, greenB
	case kpa <= ModerateMax:
		t := (kpa - HealthyMax) / (ModerateMax - HealthyMax)
		return math.Lerp(greenR, yellR, t), math.Lerp(greenG, yellG, t), math.Lerp(greenB, yellB, t)
	default:
		t := math.Clamp((kpa-ModerateMax)/(lesionFull-ModerateMax), 0, 1)
		return math.Lerp(yellR, redR, t), math.Lerp(yellG, redG, t), math.Lerp(yellB, redB, t)
	}
}
