package preseq

import "math"

// maxBisectIterations caps the bisection loop. Both stopping tests
// tighten monotonically, so the cap only fires on brackets the
// derivative cannot separate.
const maxBisectIterations = 200

// movement is the relative distance between two successive bracket
// endpoints.
func movement(a, b float64) float64 {
	return math.Abs((a - b) / math.Max(a, b))
}

// LocateZeroDeriv searches (prevVal, val) for a zero of the curve's
// derivative by bisection and returns the final midpoint. The search
// stops once the bracket or the derivative stops moving in relative
// terms. If the derivative does not change sign inside the bracket the
// midpoint collapses toward the endpoint, which callers treat as the
// extremum candidate for that interval.
func LocateZeroDeriv(c Curve, val, prevVal float64) float64 {
	low, high := prevVal, val
	derivLow := c.ComplexDeriv(low)

	mid := (val - prevVal) / 2.0
	prevDeriv := math.MaxFloat64
	diff := math.MaxFloat64

	for iter := 0; diff > Tolerance && movement(low, high) > Tolerance &&
		iter < maxBisectIterations; iter++ {
		mid = (low + high) / 2.0
		derivMid := c.ComplexDeriv(mid)

		if (derivMid > 0 && derivLow < 0) || (derivMid < 0 && derivLow > 0) {
			high = mid
		} else {
			low = mid
			derivLow = derivMid
		}

		diff = math.Abs((prevDeriv - derivMid) / prevDeriv)
		prevDeriv = derivMid
	}
	return mid
}

// localMax walks the screening grid, bisects every interval for a
// stationary point, and returns the largest curve value found. The value
// at zero seeds the maximum.
func localMax(c Curve, opts Options) float64 {
	best := c.Evaluate(0.0)
	for t := opts.StepSize; t <= opts.MaxValue; t += opts.StepSize {
		v := c.Evaluate(LocateZeroDeriv(c, t, t-opts.StepSize))
		if v > best {
			best = v
		}
	}
	return best
}
