package query

import (
	"testing"

	"github.com/fibroview/fibroview/internal/engine/holo"
	"github.com/fibroview/fibroview/internal/engine/picking"
)

func TestResolveMean(t *testing.T) {
	field := []float32{2.0, 4.0, 6.0}
	res, ok := Resolve(picking.FaceQuery{A: 0, B: 1, C: 2}, field)
	if !ok {
		t.Fatal("expected a result")
	}
	if res.Stiffness != 4.0 {
		t.Errorf("Stiffness = %v, want 4.0 (mean)", res.Stiffness)
	}
	if res.Grade != holo.GradeModerate {
		t.Errorf("Grade = %v, want moderate", res.Grade)
	}
}

func TestResolveNilField(t *testing.T) {
	if _, ok := Resolve(picking.FaceQuery{}, nil); ok {
		t.Error("Resolve() with nil field returned ok")
	}
}

func TestResolveOutOfRangeIndices(t *testing.T) {
	field := []float32{1.0, 2.0}
	if _, ok := Resolve(picking.FaceQuery{A: 0, B: 1, C: 7}, field); ok {
		t.Error("Resolve() with out-of-range index returned ok")
	}
}

func TestResolveGradeAgreesWithRamp(t *testing.T) {
	cases := []struct {
		field []float32
		want  holo.Grade
	}{
		{[]float32{1.0, 1.2, 1.1}, holo.GradeHealthy},
		{[]float32{3.0, 3.0, 3.0}, holo.GradeModerate},
		{[]float32{8.0, 9.0, 10.0}, holo.GradeLesion},
	}
	for _, c := range cases {
		res, ok := Resolve(picking.FaceQuery{A: 0, B: 1, C: 2}, c.field)
		if !ok {
			t.Fatalf("Resolve(%v) not ok", c.field)
		}
		if res.Grade != c.want {
			t.Errorf("Resolve(%v).Grade = %v, want %v", c.field, res.Grade, c.want)
		}
	}
}
