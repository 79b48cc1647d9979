package interp

import "testing"

func TestLinear(t *testing.T) {
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 2.0},
		{t: 0.25, w: 2.5},
		{t: 0.5, w: 3.0},
		{t: 1.0, w: 4.0},
	} {
		if got := Linear(tc.t, 2, 4); got != tc.w {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	// On a linear ramp the cubic terms cancel and Hermite4 must agree
	// with linear interpolation exactly.
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestHermite4Endpoints(t *testing.T) {
	// t=0 collapses to the c0 term and is bitwise exact; t=1 sums the
	// Horner coefficients and only lands on x1 up to rounding.
	xm1, x0, x1, x2 := 0.3, -1.2, 0.8, 2.1
	if got := Hermite4(0, xm1, x0, x1, x2); got != x0 {
		t.Fatalf("t=0: got %v want %v", got, x0)
	}

	got := Hermite4(1, xm1, x0, x1, x2)
	if diff := got - x1; diff < -1e-12 || diff > 1e-12 {
		t.Fatalf("t=1: got %v want %v", got, x1)
	}
}
