package preseq

import (
	"math"
	"testing"
)

// quadratic builds an approximant that evaluates to exactly x - x^2,
// whose single maximum sits at 0.5.
func quadratic() ContinuedFraction {
	return NewContinuedFraction([]float64{1, -1}, 1, 2)
}

func TestQuadraticShape(t *testing.T) {
	cf := quadratic()
	for _, x := range []float64{0, 0.25, 0.5, 1, 2} {
		if got, want := cf.Evaluate(x), x-x*x; !within(got, want, 1e-12) {
			t.Fatalf("at %v: expected %v, got %v", x, want, got)
		}
	}
	if got := cf.ComplexDeriv(0.3); !within(got, 0.4, 1e-6) {
		t.Fatalf("expected derivative 0.4, got %v", got)
	}
}

func TestLocateZeroDeriv(t *testing.T) {
	// The bracket is deliberately asymmetric around the stationary
	// point: a midpoint landing exactly on it has derivative zero,
	// which the sign test cannot classify.
	cf := quadratic()
	got := LocateZeroDeriv(cf, 1.0, 0.125)
	if math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("expected stationary point 0.5 within 1e-6, got %v", got)
	}
}

func TestLocateZeroDerivNoSignChange(t *testing.T) {
	// The derivative of x - x^2 stays positive on (0, 0.4), so the
	// bracket collapses onto its upper endpoint.
	cf := quadratic()
	got := LocateZeroDeriv(cf, 0.4, 0.0)
	if math.Abs(got-0.4) > 1e-6 {
		t.Fatalf("expected collapse to 0.4, got %v", got)
	}
}

func TestLocalMaxQuadratic(t *testing.T) {
	cf := quadratic()
	got := localMax(cf, Options{StepSize: 0.25, MaxValue: 1.0})
	if math.Abs(got-0.25) > 1e-6 {
		t.Fatalf("expected maximum 0.25, got %v", got)
	}
}

func TestMovement(t *testing.T) {
	if got := movement(1, 2); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := movement(2, 1); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}
