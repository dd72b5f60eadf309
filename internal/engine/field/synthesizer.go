package field

import (
	gomath "math"

	"github.com/fibroview/fibroview/pkg/math"
)

// Physiological stiffness bounds in kPa. Every synthesized value is clamped
// into this range no matter what the upstream prediction reports.
const (
	MinStiffness float32 = 0.5
	MaxStiffness float32 = 15.0
)

// neutralRatio is the stiffness multiplier applied to vertices that lie far
// from every hotspot. A vertex with no measurable hotspot influence resolves
// to clamp(global * neutralRatio), never to zero or NaN.
const neutralRatio float32 = 0.5

// weightEpsilon guards the weighted average against denormal weight sums for
// vertices hundreds of sigmas away from all hotspots.
const weightEpsilon = 1e-6

// ComputeField synthesizes one stiffness value per vertex by Gaussian-weighted
// blending of hotspot contributions. For vertex v and hotspot h the weight is
// exp(-d^2 / (2*sigma^2)) with d the Euclidean distance to h. The hotspot
// weights blend against an implicit neutral background carrying weight
// max(0, 1-sum(w)) at neutralRatio, so the field falls off smoothly from each
// hotspot's relative stiffness to the neutral value instead of plateauing.
// The result is globalStiffness scaled by that blended ratio, clamped to
// [MinStiffness, MaxStiffness].
//
// Pure function of its inputs: no hidden state, no randomness, safe to call
// from any goroutine. O(V*H) with H a small constant.
func ComputeField(vertices [][3]float32, hotspots []Hotspot, globalStiffness float32) []float32 {
	out := make([]float32, len(vertices))
	for i, p := range vertices {
		v := math.Vec3{X: p[0], Y: p[1], Z: p[2]}

		var weightSum, weighted float32
		for _, h := range hotspots {
			d := v.Distance(h.Position)
			sigma2 := h.InfluenceRadius * h.InfluenceRadius
			w := float32(gomath.Exp(float64(-d * d / (2 * sigma2))))
			weightSum += w
			weighted += w * h.RelativeStiffness
		}

		ratio := neutralRatio
		if weightSum > weightEpsilon {
			background := float32(0)
			if weightSum < 1 {
				background = 1 - weightSum
			}
			ratio = (weighted + background*neutralRatio) / (weightSum + background)
		}
		out[i] = math.Clamp(globalStiffness*ratio, MinStiffness, MaxStiffness)
	}
	return out
}
