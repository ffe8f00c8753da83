package preseq

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrNoStableFit is returned when no degree between MinDegree and the
// configured maximum yields a stable extrapolation. Histograms from very
// shallow or very skewed samples commonly end up here.
var ErrNoStableFit = errors.New("no stable continued fraction fit")

// estimatesStable reports whether an extrapolated curve is usable: every
// value finite, the sequence non-decreasing, and its increments
// non-increasing. Yield curves are necessarily increasing and concave,
// so violations mean the approximant has a pole or spurious oscillation
// inside the screened range.
func estimatesStable(estimates []float64) bool {
	total := 0.0
	for _, e := range estimates {
		total += e
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return false
	}
	for i := 1; i < len(estimates); i++ {
		if estimates[i] < estimates[i-1] {
			return false
		}
		if i >= 2 && estimates[i]-estimates[i-1] > estimates[i-1]-estimates[i-2] {
			return false
		}
	}
	return true
}

// evenTerms trims a power series to an even length so candidate degrees
// step from it by two.
func evenTerms(ps []float64) []float64 {
	return ps[:len(ps)-len(ps)%2]
}

// OptimalContinuedFraction fits the highest-degree stable approximant to
// a frequency histogram. Candidate degrees start at the even-rounded
// term cap and decrease by two until a candidate's extrapolated curve
// passes the stability test; running out of degrees returns
// ErrNoStableFit.
func OptimalContinuedFraction(hist []float64, opts Options) (ContinuedFraction, error) {
	opts = opts.withDefaults()

	ps := evenTerms(powerSeries(hist, opts.MaxTerms))
	log := opts.Logger
	log.Debug("degree search",
		zap.Int("max_terms", len(ps)),
		zap.Stringer("mode", modeOf(opts.Diagonal)))

	for degree := len(ps); degree >= MinDegree; degree -= 2 {
		cf := NewContinuedFraction(ps, opts.Diagonal, degree)
		estimates := cf.ExtrapolateDistinct(hist, opts.MaxValue, opts.StepSize)
		if estimatesStable(estimates) {
			log.Debug("stable degree found", zap.Int("degree", degree))
			return cf, nil
		}
		log.Debug("degree rejected", zap.Int("degree", degree))
	}
	return ContinuedFraction{}, ErrNoStableFit
}

// LowerBoundLibrarySize bounds the asymptotic population size from
// below: for each candidate degree it takes the largest local maximum of
// the approximant over the screening grid, then returns the smallest of
// those maxima across degrees. Taking the minimum over degrees keeps the
// bound conservative when individual approximants diverge. upperBound is
// reported in diagnostics only.
func LowerBoundLibrarySize(hist []float64, upperBound float64, opts Options) (float64, error) {
	opts = opts.withDefaults()

	distinct := 0.0
	for _, v := range hist {
		distinct += v
	}

	ps := evenTerms(powerSeries(hist, opts.MaxTerms))
	if len(ps) <= MinDegree {
		return 0, fmt.Errorf("library size bound needs more than %d terms, have %d",
			MinDegree, len(ps))
	}

	log := opts.Logger
	log.Debug("library size bound search",
		zap.Int("max_terms", len(ps)),
		zap.Float64("upper_bound", upperBound),
		zap.Float64("distinct", distinct),
		zap.Stringer("mode", modeOf(opts.Diagonal)))

	best := math.MaxFloat64
	for degree := len(ps); degree > MinDegree; degree -= 2 {
		cf := NewContinuedFraction(ps, opts.Diagonal, degree)
		candidate := localMax(cf, opts)
		log.Debug("bound candidate",
			zap.Int("degree", degree),
			zap.Float64("local_max", candidate))
		if candidate < best {
			best = candidate
		}
	}
	return best, nil
}
