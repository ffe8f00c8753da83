// Package preseq predicts how many new distinct items continued sampling
// would yield, starting from a frequency histogram of the items already
// observed. It is the numerical core behind library complexity estimation
// for sequencing experiments, where reads are sampled from an unknown
// population of molecules and deeper sequencing returns diminishing
// numbers of new molecules.
//
// The histogram is turned into a sign-alternating power series and the
// series into a continued fraction by the quotient-difference recurrence.
// Truncating the fraction gives a Pade-type rational approximant that
// remains accurate far outside the radius of convergence of the raw
// series. Approximants are tried from the largest configured degree
// downward, and the first whose extrapolated curve is increasing and
// concave wins:
//
//   - OptimalContinuedFraction fits the highest stable approximant.
//   - ContinuedFraction.Evaluate extrapolates the expected yield.
//   - ContinuedFraction.ComplexDeriv differentiates the approximant.
//   - LowerBoundLibrarySize bounds the asymptotic population size.
//
// Basic usage:
//
//	hist := []float64{0, 793465, 176777, 64150, 31250, 17889, 11340, 7714, 5524}
//	cf, err := preseq.OptimalContinuedFraction(hist, preseq.Options{})
//	if err != nil {
//		// no stable approximant for this histogram
//	}
//	extra := cf.Evaluate(9.0) // expected new items at 10x the effort
//
// All values are immutable after construction and all operations are
// pure, so a fitted ContinuedFraction may be shared between goroutines.
package preseq
