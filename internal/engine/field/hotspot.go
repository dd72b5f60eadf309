// Package field synthesizes the per-vertex tissue stiffness field from a
// global stiffness prediction and a fixed set of anatomical hotspots.
package field

import (
	"fmt"

	"github.com/fibroview/fibroview/pkg/math"
)

// Hotspot is a fixed anatomical landmark that shapes the stiffness field.
// Hotspots are configuration, not runtime state; they never change after load.
type Hotspot struct {
	// Label identifies the landmark for logs and lesion matching.
	Label string
	// Position is the landmark center in mesh-local space.
	Position math.Vec3
	// RelativeStiffness scales the global stiffness near this landmark.
	// Typical range 0.3 to 1.5.
	RelativeStiffness float32
	// InfluenceRadius is the Gaussian sigma, in mesh-local units. Must be > 0.
	InfluenceRadius float32
}

// Validate checks hotspot invariants.
func (h Hotspot) Validate() error {
	if h.InfluenceRadius <= 0 {
		return fmt.Errorf("hotspot %q: influence radius must be positive, got %g", h.Label, h.InfluenceRadius)
	}
	return nil
}

// DefaultHotspots returns the reference landmark table used when the config
// file does not override it. Positions are in the capsule mesh's local space.
func DefaultHotspots() []Hotspot {
	return []Hotspot{
		{
			Label:             "fundus",
			Position:          math.Vec3{X: 0, Y: 2.8, Z: 0},
			RelativeStiffness: 1.4,
			InfluenceRadius:   1.6,
		},
		{
			Label:             "posterior_wall",
			Position:          math.Vec3{X: 0, Y: 0.4, Z: -2.0},
			RelativeStiffness: 1.1,
			InfluenceRadius:   1.2,
		},
		{
			Label:             "cervix",
			Position:          math.Vec3{X: 0, Y: -4.0, Z: 0},
			RelativeStiffness: 0.6,
			InfluenceRadius:   1.0,
		},
	}
}

// ActiveForLesions filters hotspots down to those matching the labeled lesion
// sites reported with a prediction. An empty lesion list keeps every hotspot
// active, so the overlay stays informative before site data arrives.
func ActiveForLesions(hotspots []Hotspot, lesionLabels []string) []Hotspot {
	if len(lesionLabels) == 0 {
		return hotspots
	}
	byLabel := make(map[string]bool, len(lesionLabels))
	for _, l := range lesionLabels {
		byLabel[l] = true
	}
	var active []Hotspot
	for _, h := range hotspots {
		if byLabel[h.Label] {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		// No label matched; fall back to the full table rather than
		// rendering a hotspot-free (flat) field.
		return hotspots
	}
	return active
}
