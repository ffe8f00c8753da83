package preseq

// Curve is the surface the searches need from a fitted approximant: its
// value and its derivative at a point. ContinuedFraction satisfies it.
type Curve interface {
	// Evaluate returns the curve's value at x.
	Evaluate(x float64) float64

	// ComplexDeriv returns the curve's derivative at x, computed by
	// complex-step differentiation.
	ComplexDeriv(x float64) float64
}

var _ Curve = ContinuedFraction{}
