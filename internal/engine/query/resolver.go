// Package query resolves pointer-ray face hits against the committed
// stiffness field for tooltip/HUD display.
package query

import (
	"github.com/fibroview/fibroview/internal/engine/holo"
	"github.com/fibroview/fibroview/internal/engine/picking"
)

// Result is the HUD-facing outcome of a hover query: the interpolated local
// stiffness and its clinical tier, derived from the same thresholds as the
// heatmap ramp so text and pixels never disagree.
type Result struct {
	Stiffness float32
	Grade     holo.Grade
}

// Resolve reads the committed field at the hit face's three vertices and
// returns their arithmetic mean. The coarse mean stands in for barycentric
// interpolation; triangles are small against the smooth Gaussian field.
//
// Returns ok=false when there is no field yet (mesh loaded, no prediction
// received) or when the face indices fall outside the field; callers treat
// that as "hide the tooltip", never as zero. No side effects; safe on every
// pointer-move event.
func Resolve(face picking.FaceQuery, field []float32) (Result, bool) {
	if field == nil {
		return Result{}, false
	}
	n := uint32(len(field))
	if face.A >= n || face.B >= n || face.C >= n {
		return Result{}, false
	}

	mean := (field[face.A] + field[face.B] + field[face.C]) / 3
	return Result{
		Stiffness: mean,
		Grade:     holo.GradeStiffness(mean),
	}, true
}
