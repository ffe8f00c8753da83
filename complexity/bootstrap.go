package complexity

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stevetsa/preseq"
)

// bootstrapAttemptFactor bounds the total resample attempts at this
// multiple of the requested successes.
const bootstrapAttemptFactor = 4

// Bootstrap fits yield curves on multinomial resamples of the histogram
// until Bootstraps of them succeed. Resamples whose fit fails or whose
// curve misbehaves are discarded; running out of attempts returns
// ErrPoorSample. Every curve is extrapolated against its own resampled
// depth but anchored at the original distinct count.
func Bootstrap(rng *rand.Rand, h Histogram, opts Options) ([][]float64, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	distinct := h.Distinct()
	maxAttempts := bootstrapAttemptFactor * opts.Bootstraps

	curves := make([][]float64, 0, opts.Bootstraps)
	for attempt := 0; attempt < maxAttempts && len(curves) < opts.Bootstraps; attempt++ {
		boot := ResampleHistogram(rng, h)
		for len(boot) > 0 && boot[len(boot)-1] == 0 {
			boot = boot[:len(boot)-1]
		}
		bootReads := boot.Reads()

		curve := interpolate(rng, boot, opts.StepSize)

		cf, err := preseq.OptimalContinuedFraction(boot, preseq.Options{
			Diagonal: opts.Diagonal,
			MaxTerms: boot.UsableTerms(opts.MaxTerms),
			Logger:   log,
		})
		if err != nil {
			log.Debug("bootstrap fit rejected", zap.Int("attempt", attempt))
			continue
		}

		for sample := opts.StepSize * float64(len(curve)+1); sample < opts.MaxExtrapolation; sample += opts.StepSize {
			t := (sample - bootReads) / bootReads
			curve = append(curve, distinct+cf.Evaluate(t))
		}
		if !yieldAcceptable(curve) {
			log.Debug("bootstrap curve rejected", zap.Int("attempt", attempt))
			continue
		}
		curves = append(curves, curve)
		log.Debug("bootstrap curve accepted",
			zap.Int("attempt", attempt),
			zap.Int("accepted", len(curves)))
	}
	if len(curves) < opts.Bootstraps {
		return nil, ErrPoorSample
	}
	return curves, nil
}

// yieldAcceptable mirrors the fit's stability screen on a finished
// curve, with a sign guard added: finite throughout, non-negative,
// non-decreasing, and concave.
func yieldAcceptable(curve []float64) bool {
	if len(curve) == 0 {
		return false
	}
	total := 0.0
	for _, v := range curve {
		total += v
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return false
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] || curve[i] < 0 {
			return false
		}
		if i >= 2 && curve[i]-curve[i-1] > curve[i-1]-curve[i-2] {
			return false
		}
	}
	return true
}

// MedianCI reduces bootstrap curves to a median curve with lognormal
// confidence bounds at each grid point. Curves are truncated to the
// shortest, since resampled depths shift the interpolation boundary by
// a row or two.
func MedianCI(curves [][]float64, confidence float64) (median, lower, upper []float64) {
	if len(curves) == 0 {
		return nil, nil, nil
	}
	width := len(curves[0])
	for _, c := range curves[1:] {
		if len(c) < width {
			width = len(c)
		}
	}

	column := make([]float64, len(curves))
	for i := 0; i < width; i++ {
		for k, c := range curves {
			column[k] = c[i]
		}
		sort.Float64s(column)

		med := sortedMedian(column)
		mult := logConfidenceMultiplier(med, stat.Variance(column, nil), 1-confidence)
		median = append(median, med)
		lower = append(lower, med/mult)
		upper = append(upper, med*mult)
	}
	return median, lower, upper
}

// logConfidenceMultiplier is the two-sided lognormal interval factor
// exp(z * sqrt(log(1 + var/estimate^2))) with z the upper alpha/2
// standard normal quantile.
func logConfidenceMultiplier(estimate, variance, alpha float64) float64 {
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)
	return math.Exp(z * math.Sqrt(math.Log(1+variance/(estimate*estimate))))
}

func sortedMedian(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
