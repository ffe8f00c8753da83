package preseq

// powerSeries converts a frequency histogram into the coefficients of its
// alternating yield series: ps[j] = hist[j+1] * (-1)^j. The number of
// terms is capped by the histogram length; entries beyond the histogram
// do not exist and must not be invented.
func powerSeries(hist []float64, terms int) []float64 {
	if terms > len(hist)-1 {
		terms = len(hist) - 1
	}
	if terms < 0 {
		terms = 0
	}
	ps := make([]float64, terms)
	sign := 1.0
	for j := range ps {
		ps[j] = sign * hist[j+1]
		sign = -sign
	}
	return ps
}

// quotdiff runs the quotient-difference recurrence on a power series and
// returns one continued fraction coefficient per input term.
//
// Only column zero of each quotient and error row ever reaches the
// output, so rows are kept pairwise and shrink by one entry per level
// instead of filling full triangular tables. The error row of level zero
// is identically zero.
func quotdiff(ps []float64) []float64 {
	depth := len(ps)
	if depth == 0 {
		return nil
	}
	cf := make([]float64, 0, depth)
	cf = append(cf, ps[0])
	if depth == 1 {
		return cf
	}

	q := make([]float64, depth-1)
	for j := range q {
		q[j] = ps[j+1] / ps[j]
	}
	e := make([]float64, depth-1)

	for {
		cf = append(cf, -q[0])
		if len(cf) == depth {
			return cf
		}

		eNext := make([]float64, len(q)-1)
		for j := range eNext {
			eNext[j] = q[j+1] - q[j] + e[j+1]
		}
		cf = append(cf, -eNext[0])
		if len(cf) == depth {
			return cf
		}

		qNext := make([]float64, len(eNext)-1)
		for j := range qNext {
			qNext[j] = q[j+1] * eNext[j+1] / eNext[j]
		}
		q, e = qNext, eNext
	}
}

// reciprocal computes the power series of 1/f by the convolution
// recurrence. The leading coefficient of f must be non-zero.
func reciprocal(f []float64) []float64 {
	g := make([]float64, len(f))
	g[0] = 1.0 / f[0]
	for i := 1; i < len(f); i++ {
		acc := 0.0
		for j := 0; j < i; j++ {
			acc += f[i-j] * g[j]
		}
		g[i] = -acc / f[0]
	}
	return g
}
