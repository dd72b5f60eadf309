package field

import (
	gomath "math"
	"testing"

	"github.com/fibroview/fibroview/pkg/math"
)

func singleHotspot() []Hotspot {
	return []Hotspot{{
		Label:             "lesion",
		Position:          math.Vec3{},
		RelativeStiffness: 1.5,
		InfluenceRadius:   1.0,
	}}
}

func TestComputeFieldLength(t *testing.T) {
	cases := []int{0, 1, 4, 257}
	for _, n := range cases {
		verts := make([][3]float32, n)
		got := ComputeField(verts, singleHotspot(), 3.0)
		if len(got) != n {
			t.Errorf("ComputeField() length = %d, want %d", len(got), n)
		}
	}
}

func TestComputeFieldNoHotspots(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}, {5, 5, 5}}
	got := ComputeField(verts, nil, 4.0)
	for i, v := range got {
		if v != 2.0 {
			t.Errorf("vertex %d = %v, want neutral 2.0", i, v)
		}
	}
}

func TestComputeFieldClamping(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}}
	for _, global := range []float32{0, -10, 1e6} {
		got := ComputeField(verts, singleHotspot(), global)
		if got[0] < MinStiffness || got[0] > MaxStiffness {
			t.Errorf("global=%v: value %v outside [%v, %v]", global, got[0], MinStiffness, MaxStiffness)
		}
	}
}

func TestComputeFieldDeterministic(t *testing.T) {
	verts := [][3]float32{{0.1, 0.2, 0.3}, {1, 2, 3}, {-4, 0, 4}}
	a := ComputeField(verts, DefaultHotspots(), 3.7)
	b := ComputeField(verts, DefaultHotspots(), 3.7)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("vertex %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestComputeFieldMonotonicNearHotspot(t *testing.T) {
	// Moving toward a single dominant hotspot must not decrease stiffness.
	hs := singleHotspot()
	prev := float32(-1)
	for d := float32(3.0); d >= 0; d -= 0.25 {
		got := ComputeField([][3]float32{{d, 0, 0}}, hs, 4.0)
		if got[0] < prev {
			t.Errorf("distance %v: stiffness %v decreased from %v", d, got[0], prev)
		}
		prev = got[0]
	}
}

func TestComputeFieldFarFallback(t *testing.T) {
	// 100x the largest radius away: documented neutral ratio, not NaN or zero.
	verts := [][3]float32{{100, 0, 0}}
	got := ComputeField(verts, singleHotspot(), 4.0)
	if gomath.IsNaN(float64(got[0])) {
		t.Fatal("far vertex produced NaN")
	}
	if got[0] != 2.0 {
		t.Errorf("far vertex = %v, want neutral 0.5*4.0 = 2.0", got[0])
	}
}

func TestComputeFieldEndToEnd(t *testing.T) {
	// Quad with one hotspot at the origin.
	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	got := ComputeField(verts, singleHotspot(), 4.0)

	if got[0] != 6.0 {
		t.Errorf("vertex 0 = %v, want 6.0", got[0])
	}
	// Vertex 3 sits sqrt(2) away: strictly between the neutral bound and the peak.
	if got[3] <= 2.0 || got[3] >= 6.0 {
		t.Errorf("vertex 3 = %v, want in (2.0, 6.0)", got[3])
	}
	// Stiffness decreases with distance from the hotspot.
	if got[1] <= got[3] {
		t.Errorf("vertex 1 (%v) should exceed vertex 3 (%v)", got[1], got[3])
	}
}

func TestHotspotValidate(t *testing.T) {
	bad := Hotspot{Label: "x", InfluenceRadius: 0}
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted zero influence radius")
	}
	good := Hotspot{Label: "x", InfluenceRadius: 0.5}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() rejected valid hotspot: %v", err)
	}
}

func TestActiveForLesions(t *testing.T) {
	hs := DefaultHotspots()

	all := ActiveForLesions(hs, nil)
	if len(all) != len(hs) {
		t.Errorf("empty lesion list: got %d hotspots, want %d", len(all), len(hs))
	}

	matched := ActiveForLesions(hs, []string{"cervix"})
	if len(matched) != 1 || matched[0].Label != "cervix" {
		t.Errorf("matched = %+v, want single cervix hotspot", matched)
	}

	unmatched := ActiveForLesions(hs, []string{"unknown_site"})
	if len(unmatched) != len(hs) {
		t.Errorf("unmatched labels: got %d hotspots, want full table %d", len(unmatched), len(hs))
	}
}
