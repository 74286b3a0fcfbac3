package interp

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestLinear2Endpoints(t *testing.T) {
	if got := Linear2(0, 3, 7); got != 3 {
		t.Fatalf("Linear2(0) = %v, want 3", got)
	}
	if got := Linear2(1, 3, 7); got != 7 {
		t.Fatalf("Linear2(1) = %v, want 7", got)
	}
	if got := Linear2(0.5, 3, 7); got != 5 {
		t.Fatalf("Linear2(0.5) = %v, want 5", got)
	}
}

func TestHermite4Endpoints(t *testing.T) {
	// At t=0 the interpolant must pass through x0, at t=1 through x1.
	if got := Hermite4(0, 1, 2, 3, 4); got != 2 {
		t.Fatalf("Hermite4(t=0) = %v, want 2", got)
	}
	if got := Hermite4(1, 1, 2, 3, 4); got != 3 {
		t.Fatalf("Hermite4(t=1) = %v, want 3", got)
	}
}

func TestHermite4LinearRampExact(t *testing.T) {
	// Cubic interpolation reproduces a linear ramp exactly.
	for _, frac := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := Hermite4(frac, 0, 1, 2, 3)
		want := 1 + frac
		if !approxEqual(got, want, 1e-12) {
			t.Fatalf("Hermite4(%v) on ramp = %v, want %v", frac, got, want)
		}
	}
}

func TestHermite4DCPreservation(t *testing.T) {
	for _, frac := range []float64{0, 0.3, 0.7, 1} {
		got := Hermite4(frac, 42, 42, 42, 42)
		if !approxEqual(got, 42, 1e-12) {
			t.Fatalf("Hermite4(%v) on DC = %v, want 42", frac, got)
		}
	}
}

func TestHermite4SineAccuracy(t *testing.T) {
	// Low-frequency sine: cubic Hermite should track the analytic value closely.
	freq := 0.02
	sample := func(i float64) float64 { return math.Sin(2 * math.Pi * freq * i) }

	pos := 100.37
	p := math.Floor(pos)
	frac := pos - p

	got := Hermite4(frac, sample(p-1), sample(p), sample(p+1), sample(p+2))
	want := sample(pos)
	if !approxEqual(got, want, 1e-4) {
		t.Fatalf("Hermite4 sine = %v, want %v", got, want)
	}
}

func BenchmarkHermite4(b *testing.B) {
	var acc float64
	for i := 0; i < b.N; i++ {
		acc += Hermite4(0.37, 0.1, 0.2, 0.3, 0.4)
	}
	_ = acc
}
