package preseq

import "go.uber.org/zap"

// Numerical constants shared by the recurrences and searches.
const (
	// Tolerance bounds the rescaling band inside the evaluation
	// recurrence and serves as the convergence threshold for the
	// derivative-zero bisection.
	Tolerance = 1e-20

	// DerivDelta is the imaginary perturbation used by complex-step
	// differentiation.
	DerivDelta = 1e-8

	// MinDegree is the smallest approximant degree the searches will
	// accept. Below this the fraction carries too little of the
	// histogram to extrapolate.
	MinDegree = 6
)

// Defaults applied by Options.withDefaults.
const (
	// DefaultMaxTerms caps the number of power series terms consumed
	// from the histogram.
	DefaultMaxTerms = 100

	// DefaultStepSize spaces the grid, in multiples of the observed
	// sample, on which candidate approximants are screened.
	DefaultStepSize = 0.05

	// DefaultMaxValue ends the screening grid.
	DefaultMaxValue = 100.0
)

// diagMode classifies an approximant by the sign of its diagonal offset,
// which decides how the continued fraction is assembled from the series.
type diagMode int

const (
	// diagOn keeps numerator and denominator degrees equal.
	diagOn diagMode = iota

	// diagAbove gives the numerator the higher degree; leading series
	// coefficients pass through as a polynomial offset.
	diagAbove

	// diagBelow gives the denominator the higher degree; the fraction
	// is built from the reciprocal series.
	diagBelow
)

func modeOf(diagonal int) diagMode {
	switch {
	case diagonal > 0:
		return diagAbove
	case diagonal < 0:
		return diagBelow
	default:
		return diagOn
	}
}

func (m diagMode) String() string {
	switch m {
	case diagAbove:
		return "above_diagonal"
	case diagBelow:
		return "below_diagonal"
	default:
		return "on_diagonal"
	}
}

// Options configures the degree searches. The zero value selects the
// defaults, which match the published estimator.
type Options struct {
	// Diagonal is the numerator-minus-denominator degree offset of the
	// fitted approximant. Default: 0, equal degrees.
	Diagonal int

	// MaxTerms caps how many power series terms the searches may use.
	// Odd values are rounded down to even so candidate degrees step
	// cleanly by two. Default: DefaultMaxTerms.
	MaxTerms int

	// StepSize is the spacing of the screening grid, in multiples of
	// the observed sample size. Default: DefaultStepSize.
	StepSize float64

	// MaxValue is the end of the screening grid. Default:
	// DefaultMaxValue.
	MaxValue float64

	// Logger receives per-degree diagnostics at debug level.
	// Default: zap.NewNop().
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxTerms == 0 {
		o.MaxTerms = DefaultMaxTerms
	}
	if o.StepSize == 0 {
		o.StepSize = DefaultStepSize
	}
	if o.MaxValue == 0 {
		o.MaxValue = DefaultMaxValue
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
