package holo

import "testing"

func TestGradeStiffness(t *testing.T) {
	cases := []struct {
		kpa  float32
		want Grade
	}{
		{0.5, GradeHealthy},
		{1.99, GradeHealthy},
		{2.0, GradeModerate},
		{5.0, GradeModerate},
		{5.01, GradeLesion},
		{15.0, GradeLesion},
	}
	for _, c := range cases {
		if got := GradeStiffness(c.kpa); got != c.want {
			t.Errorf("GradeStiffness(%v) = %v, want %v", c.kpa, got, c.want)
		}
	}
}

func TestRampColorStops(t *testing.T) {
	// Healthy values are pure green.
	r, g, b := RampColor(1.0)
	if g < r || g < b {
		t.Errorf("RampColor(1.0) = (%v, %v, %v), want green dominant", r, g, b)
	}

	// The moderate band blends continuously: its endpoints match the
	// neighboring stops.
	r2, g2, b2 := RampColor(HealthyMax)
	if r2 != r || g2 != g || b2 != b {
		t.Errorf("ramp discontinuous at healthy threshold: (%v,%v,%v) vs (%v,%v,%v)", r2, g2, b2, r, g, b)
	}

	// Deep lesion values are red dominant.
	r3, g3, b3 := RampColor(12.0)
	if r3 < g3 || r3 < b3 {
		t.Errorf("RampColor(12.0) = (%v, %v, %v), want red dominant", r3, g3, b3)
	}
}

func TestRampColorSaturates(t *testing.T) {
	r1, g1, b1 := RampColor(9.0)
	r2, g2, b2 := RampColor(15.0)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Errorf("ramp should saturate past %v kPa", lesionFull)
	}
}
