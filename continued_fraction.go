package preseq

import (
	"fmt"
	"strings"
)

// ContinuedFraction is a truncated continued fraction approximant derived
// from a power series. Construct one with NewContinuedFraction or
// OptimalContinuedFraction; the fields are exported for diagnostics and
// must not be modified afterwards.
type ContinuedFraction struct {
	// PSCoeffs is the power series the approximant was built from.
	PSCoeffs []float64

	// CFCoeffs are the continued fraction coefficients produced by the
	// quotient-difference recurrence.
	CFCoeffs []float64

	// OffsetCoeffs is the leading polynomial correction used away from
	// the main diagonal; its length is the magnitude of Diagonal.
	OffsetCoeffs []float64

	// Diagonal is the numerator-minus-denominator degree offset.
	Diagonal int

	// Degree is the recurrence depth used during evaluation.
	Degree int
}

// NewContinuedFraction builds the approximant for ps at the given
// diagonal offset, to be evaluated at the given degree. The leading
// series coefficient must be non-zero for the recurrences to be defined.
// An offset whose magnitude reaches the series length yields an invalid
// value, as does an empty series.
func NewContinuedFraction(ps []float64, diagonal, degree int) ContinuedFraction {
	cf := ContinuedFraction{
		PSCoeffs: append([]float64(nil), ps...),
		Diagonal: diagonal,
		Degree:   degree,
	}
	switch {
	case len(ps) == 0:
	case diagonal == 0:
		cf.CFCoeffs = quotdiff(ps)
	case diagonal > 0:
		if diagonal >= len(ps) {
			return cf
		}
		cf.OffsetCoeffs = append([]float64(nil), ps[:diagonal]...)
		cf.CFCoeffs = quotdiff(ps[diagonal:])
	default:
		offset := -diagonal
		if offset >= len(ps) {
			return cf
		}
		recip := reciprocal(ps)
		cf.OffsetCoeffs = recip[:offset:offset]
		cf.CFCoeffs = quotdiff(recip[offset:])
	}
	return cf
}

// Valid reports whether construction produced usable coefficients.
func (cf ContinuedFraction) Valid() bool {
	return len(cf.CFCoeffs) > 0
}

// ExtrapolateDistinct predicts the total distinct count along the grid
// {0, stepSize, 2*stepSize, ...} up to maxValue, in multiples of the
// observed sample. The first entry is exactly the histogram total; each
// later entry adds the approximant evaluated at the grid point.
func (cf ContinuedFraction) ExtrapolateDistinct(hist []float64, maxValue, stepSize float64) []float64 {
	observed := 0.0
	for _, v := range hist {
		observed += v
	}
	estimates := []float64{observed}
	for t := stepSize; t <= maxValue; t += stepSize {
		estimates = append(estimates, observed+cf.Evaluate(t))
	}
	return estimates
}

// String renders the coefficient tables: offset coefficients beside the
// leading series coefficients, then continued fraction coefficients
// beside the series coefficients they were derived from.
func (cf ContinuedFraction) String() string {
	var b strings.Builder
	b.WriteString("OFFSET_COEFFS\n")
	for i, c := range cf.OffsetCoeffs {
		fmt.Fprintf(&b, "%12.2f\t%12.2f\n", c, cf.PSCoeffs[i])
	}
	b.WriteString("CF_COEFFS\n")
	offset := len(cf.OffsetCoeffs)
	for i, c := range cf.CFCoeffs {
		fmt.Fprintf(&b, "%12.2f\t%12.2f\n", c, cf.PSCoeffs[i+offset])
	}
	return b.String()
}
