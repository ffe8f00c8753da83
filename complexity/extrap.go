package complexity

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/stevetsa/preseq"
)

// MinRequiredCounts is the shortest run of positive low frequencies a
// histogram needs before extrapolation is attempted.
const MinRequiredCounts = 4

// Defaults applied by Options.withDefaults.
const (
	// DefaultMaxTerms caps the power series terms fed to the fit.
	DefaultMaxTerms = 100

	// DefaultStepSize spaces the output grid, in reads.
	DefaultStepSize = 1e6

	// DefaultMaxExtrapolation ends the output grid, in reads.
	DefaultMaxExtrapolation = 1e10

	// DefaultBootstraps is the number of successful resample fits
	// required for confidence intervals.
	DefaultBootstraps = 100

	// DefaultConfidence is the confidence level of the intervals.
	DefaultConfidence = 0.95
)

var (
	// ErrSaturated means the doubling estimate is negative: the library
	// is expected to saturate within a doubling of effort, so
	// extrapolation would only restate the observed count.
	ErrSaturated = errors.New("library expected to saturate within a doubling of experiment size")

	// ErrTooShallow means the histogram's low frequencies are too
	// sparse to anchor the power series.
	ErrTooShallow = errors.New("sample not sufficiently deep or duplicates removed")

	// ErrPoorSample means too many bootstrap resamples failed to fit.
	ErrPoorSample = errors.New("too many failed bootstrap iterations, poor sample")
)

// Options configures extrapolation runs. The zero value selects the
// defaults above.
type Options struct {
	// MaxTerms caps the power series terms used by the fit.
	// Default: DefaultMaxTerms.
	MaxTerms int

	// Diagonal is the degree offset passed through to the fit.
	// Default: 0.
	Diagonal int

	// StepSize is the output grid spacing in reads.
	// Default: DefaultStepSize.
	StepSize float64

	// MaxExtrapolation is the largest effort, in reads, the yield
	// curve extends to. Default: DefaultMaxExtrapolation.
	MaxExtrapolation float64

	// Bootstraps is the number of successful resample fits required.
	// Default: DefaultBootstraps.
	Bootstraps int

	// Confidence is the level of the bootstrap intervals.
	// Default: DefaultConfidence.
	Confidence float64

	// Logger receives progress and fit diagnostics at debug level.
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
	if o.MaxExtrapolation == 0 {
		o.MaxExtrapolation = DefaultMaxExtrapolation
	}
	if o.Bootstraps == 0 {
		o.Bootstraps = DefaultBootstraps
	}
	if o.Confidence == 0 {
		o.Confidence = DefaultConfidence
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// goodToulmin is the alternating-sum estimate of the yield from doubling
// the experiment. A negative value means the library saturates first.
func goodToulmin(h Histogram) float64 {
	total := 0.0
	sign := -1.0
	for _, v := range h {
		total += sign * v
		sign = -sign
	}
	return total
}

// adjustStep widens steps that are tiny against the observed depth so
// the output grid keeps a workable number of rows.
func adjustStep(step, reads float64) float64 {
	if step < reads/20 {
		step = math.Max(step, step*math.Round(reads/(20*step)))
	}
	return step
}

// Prepare validates a histogram for extrapolation and locks in the
// effective options: the step is widened for deep samples and the term
// cap is reduced to what the histogram supports. ErrSaturated and
// ErrTooShallow come from here.
func Prepare(h Histogram, opts Options) (Options, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	// Echo only the occupied bins.
	var freqs []int
	var counts []float64
	for i, v := range h {
		if v > 0 {
			freqs = append(freqs, i)
			counts = append(counts, v)
		}
	}

	reads := h.Reads()
	log.Debug("histogram loaded",
		zap.Float64("total_reads", reads),
		zap.Float64("distinct_reads", h.Distinct()),
		zap.Int("distinct_counts", h.PositiveBins()),
		zap.Int("max_observed_count", len(h)-1),
		zap.Ints("observed_frequencies", freqs),
		zap.Float64s("observed_counts", counts))

	if step := adjustStep(opts.StepSize, reads); step != opts.StepSize {
		log.Debug("step size adjusted", zap.Float64("step_size", step))
		opts.StepSize = step
	}

	if goodToulmin(h) < 0 {
		return opts, ErrSaturated
	}

	terms := h.UsableTerms(opts.MaxTerms)
	if terms < MinRequiredCounts {
		return opts, ErrTooShallow
	}
	opts.MaxTerms = terms
	return opts, nil
}

// YieldCurve produces the single-estimate yield curve: distinct counts
// interpolated by subsampling up to the observed depth, then
// extrapolated by one fitted approximant. Entries sit at (i+1)*StepSize
// reads.
func YieldCurve(rng *rand.Rand, h Histogram, opts Options) ([]float64, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	reads := h.Reads()
	distinct := h.Distinct()
	curve := interpolate(rng, h, opts.StepSize)

	cf, err := preseq.OptimalContinuedFraction(h, preseq.Options{
		Diagonal: opts.Diagonal,
		MaxTerms: h.UsableTerms(opts.MaxTerms),
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("yield curve fit: %w", err)
	}
	log.Debug("approximant fitted",
		zap.Int("degree", cf.Degree),
		zap.Stringer("coefficients", cf))

	for sample := opts.StepSize * float64(len(curve)+1); sample < opts.MaxExtrapolation; sample += opts.StepSize {
		t := (sample - reads) / reads
		curve = append(curve, distinct+cf.Evaluate(t))
	}
	return curve, nil
}

// interpolate samples the expected distinct count at each step strictly
// below the observed depth.
func interpolate(rng *rand.Rand, h Histogram, step float64) []float64 {
	reads := h.Reads()
	pool := expandReads(h)
	var curve []float64
	for sample := step; sample < reads; sample += step {
		curve = append(curve, sampleDistinct(rng, pool, int(sample)))
	}
	return curve
}

// ObservedCurve interpolates the complexity curve of the sample itself
// at step multiples up to and including limit. A zero limit means the
// observed depth.
func ObservedCurve(rng *rand.Rand, h Histogram, step, limit float64) []float64 {
	if limit == 0 {
		limit = h.Reads()
	}
	pool := expandReads(h)
	var curve []float64
	for sample := step; sample <= limit; sample += step {
		curve = append(curve, sampleDistinct(rng, pool, int(sample)))
	}
	return curve
}
