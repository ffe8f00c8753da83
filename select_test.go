package preseq

import (
	"errors"
	"math"
	"testing"
)

// powerLawHistogram falls off as 1/(j+1)^3, a completely monotone
// profile every candidate degree approximates cleanly.
func powerLawHistogram(terms int) []float64 {
	hist := make([]float64, terms+1)
	for j := 0; j < terms; j++ {
		d := float64(j + 1)
		hist[j+1] = 1e6 / (d * d * d)
	}
	return hist
}

func TestEstimatesStable(t *testing.T) {
	cases := []struct {
		estimates []float64
		want      bool
	}{
		{[]float64{10, 12, 13, 13.5}, true},
		{[]float64{10, 12, 11}, false},
		{[]float64{10, 12, 15, 19}, false},
		{[]float64{10, math.NaN(), 12}, false},
		{[]float64{10, math.Inf(1)}, false},
		{[]float64{5}, true},
	}
	for _, c := range cases {
		if got := estimatesStable(c.estimates); got != c.want {
			t.Fatalf("estimates %v: expected %v, got %v", c.estimates, c.want, got)
		}
	}
}

func TestOptimalContinuedFractionPowerLaw(t *testing.T) {
	hist := powerLawHistogram(20)
	cf, err := OptimalContinuedFraction(hist, Options{MaxTerms: 12})
	if err != nil {
		t.Fatalf("expected a stable fit, got %v", err)
	}
	if !cf.Valid() || cf.Degree != 12 {
		t.Fatalf("expected the full degree 12, got %d", cf.Degree)
	}
	if cf.Diagonal != 0 || len(cf.OffsetCoeffs) != 0 {
		t.Fatalf("expected an on-diagonal fit, got offset %d", cf.Diagonal)
	}

	// The fitted curve must itself pass the screen it was selected by.
	estimates := cf.ExtrapolateDistinct(hist, DefaultMaxValue, DefaultStepSize)
	if !estimatesStable(estimates) {
		t.Fatal("expected the selected curve to be stable")
	}
}

func TestOptimalContinuedFractionPathological(t *testing.T) {
	cf, err := OptimalContinuedFraction([]float64{0, 5}, Options{})
	if !errors.Is(err, ErrNoStableFit) {
		t.Fatalf("expected ErrNoStableFit, got %v", err)
	}
	if cf.Valid() {
		t.Fatal("expected an invalid zero value alongside the error")
	}
}

func TestDegreeSelectionMonotonic(t *testing.T) {
	hist := powerLawHistogram(20)
	prev := 0
	for _, maxTerms := range []int{8, 9, 10, 12} {
		cf, err := OptimalContinuedFraction(hist, Options{MaxTerms: maxTerms})
		if err != nil {
			t.Fatalf("max terms %d: expected a fit, got %v", maxTerms, err)
		}
		if cf.Degree < MinDegree || cf.Degree%2 != 0 {
			t.Fatalf("max terms %d: unusable degree %d", maxTerms, cf.Degree)
		}
		if cf.Degree < prev {
			t.Fatalf("max terms %d: degree %d fell below %d", maxTerms, cf.Degree, prev)
		}
		if cf.Degree > maxTerms {
			t.Fatalf("max terms %d: degree %d exceeds the cap", maxTerms, cf.Degree)
		}
		prev = cf.Degree
	}
}

func TestLowerBoundLibrarySize(t *testing.T) {
	hist := powerLawHistogram(20)
	bound, err := LowerBoundLibrarySize(hist, 1e9, Options{MaxTerms: 12})
	if err != nil {
		t.Fatalf("expected a bound, got %v", err)
	}
	if math.IsNaN(bound) || math.IsInf(bound, 0) || bound <= 0 {
		t.Fatalf("expected a positive finite bound, got %v", bound)
	}

	// The bound tracks curve maxima over the whole grid, so it must
	// clear the fitted yield near the origin.
	cf, err := OptimalContinuedFraction(hist, Options{MaxTerms: 12})
	if err != nil {
		t.Fatalf("expected a stable fit, got %v", err)
	}
	if floor := 0.9 * cf.Evaluate(1.0); bound < floor {
		t.Fatalf("expected bound above %v, got %v", floor, bound)
	}
}

func TestLowerBoundLibrarySizeTooFewTerms(t *testing.T) {
	hist := powerLawHistogram(6)
	if _, err := LowerBoundLibrarySize(hist, 1e9, Options{}); err == nil {
		t.Fatal("expected an error for a six-term series")
	}
}
