package preseq

import "math"

// rescaleFactor returns the multiplier that pulls the recurrence state
// back inside [Tolerance, 1/Tolerance] when its magnitude has drifted
// out, and 1 otherwise. Numerator and denominator share one factor so
// their ratio is unchanged.
func rescaleFactor(mag float64) float64 {
	if mag > 1.0/Tolerance || mag < Tolerance {
		return 1.0 / mag
	}
	return 1.0
}

// norm is the squared magnitude. The complex recurrence tracks squared
// magnitudes to avoid the square root on every term.
func norm(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// ratio runs Euler's two-term recurrence over the continued fraction
// coefficients, returning the numerator and denominator of the depth-th
// convergent at x. Both are periodically rescaled; only their ratio is
// meaningful.
func ratio(coeffs []float64, x float64, depth int) (num, den float64) {
	if len(coeffs) == 0 {
		return math.NaN(), 1.0
	}
	num, den = coeffs[0], 1.0
	prevNum, prevDen := 0.0, 1.0
	for i := 1; i < depth; i++ {
		curNum := num + coeffs[i]*x*prevNum
		curDen := den + coeffs[i]*x*prevDen
		prevNum, num = num, curNum
		prevDen, den = den, curDen

		scale := rescaleFactor(math.Abs(num) + math.Abs(den))
		num *= scale
		den *= scale
		prevNum *= scale
		prevDen *= scale
	}
	return num, den
}

// ratioComplex is ratio evaluated off the real axis, for complex-step
// differentiation.
func ratioComplex(coeffs []float64, z complex128, depth int) (num, den complex128) {
	if len(coeffs) == 0 {
		return complex(math.NaN(), 0), 1
	}
	num, den = complex(coeffs[0], 0), 1
	var prevNum complex128
	prevDen := complex128(1)
	for i := 1; i < depth; i++ {
		c := complex(coeffs[i], 0)
		curNum := num + c*z*prevNum
		curDen := den + c*z*prevDen
		prevNum, num = num, curNum
		prevDen, den = den, curDen

		scale := complex(rescaleFactor(norm(num)+norm(den)), 0)
		num *= scale
		den *= scale
		prevNum *= scale
		prevDen *= scale
	}
	return num, den
}

// depth clamps the evaluation depth to the coefficients actually held.
// With fewer than two coefficients the recurrence degenerates to the
// leading term over one.
func (cf ContinuedFraction) depth() int {
	return min(cf.Degree, len(cf.CFCoeffs))
}

// offsetPoly evaluates the polynomial of leading offset coefficients and
// returns it together with x raised to the number of terms consumed, the
// power at which the fraction part re-enters.
func offsetPoly(coeffs []float64, x float64, depth int) (poly, xpow float64) {
	n := min(len(coeffs), depth)
	xpow = 1.0
	for i := 0; i < n; i++ {
		poly += coeffs[i] * xpow
		xpow *= x
	}
	return poly, xpow
}

func offsetPolyComplex(coeffs []float64, z complex128, depth int) (poly, zpow complex128) {
	n := min(len(coeffs), depth)
	zpow = 1
	for i := 0; i < n; i++ {
		poly += complex(coeffs[i], 0) * zpow
		zpow *= z
	}
	return poly, zpow
}

// Evaluate computes the approximant at x. The assembly depends on the
// diagonal mode: equal degrees give x times the convergent, a positive
// offset adds the fraction to the offset polynomial, and a negative
// offset divides by the reciprocal-series assembly.
func (cf ContinuedFraction) Evaluate(x float64) float64 {
	depth := cf.depth()
	num, den := ratio(cf.CFCoeffs, x, depth)
	switch {
	case cf.Diagonal > 0:
		poly, xpow := offsetPoly(cf.OffsetCoeffs, x, depth)
		return x * (poly + xpow*num/den)
	case cf.Diagonal < 0:
		poly, xpow := offsetPoly(cf.OffsetCoeffs, x, depth)
		return x / (poly + xpow*num/den)
	default:
		return x * num / den
	}
}

// ComplexDeriv estimates the derivative of the approximant at x by one
// evaluation at x + i*DerivDelta. The imaginary part of the result over
// the step is the derivative, with no subtractive cancellation.
func (cf ContinuedFraction) ComplexDeriv(x float64) float64 {
	z := complex(x, DerivDelta)
	depth := cf.depth()
	num, den := ratioComplex(cf.CFCoeffs, z, depth)

	var df complex128
	switch {
	case cf.Diagonal > 0:
		poly, zpow := offsetPolyComplex(cf.OffsetCoeffs, z, depth)
		df = z * (poly + zpow*num/den)
	case cf.Diagonal < 0:
		poly, zpow := offsetPolyComplex(cf.OffsetCoeffs, z, depth)
		df = z / (poly + zpow*num/den)
	default:
		df = z * num / den
	}
	return imag(df) / DerivDelta
}
