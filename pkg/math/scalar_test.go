package math

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5, 0, 1) = %v, want 0.5", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp(2, 4, 0.5) = %v, want 3", got)
	}
	if got := Lerp(2, 4, 0); got != 2 {
		t.Errorf("Lerp(2, 4, 0) = %v, want 2", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, -1); got != 0 {
		t.Errorf("Smoothstep below edge0 = %v, want 0", got)
	}
	if got := Smoothstep(0, 1, 2); got != 1 {
		t.Errorf("Smoothstep above edge1 = %v, want 1", got)
	}
	if got := Smoothstep(0, 1, 0.5); got != 0.5 {
		t.Errorf("Smoothstep(0, 1, 0.5) = %v, want 0.5", got)
	}
}
