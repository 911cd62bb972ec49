package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf value in xs,
// or -1 when every value is finite.
func FirstNonFinite(xs []float64) int {
	for i, v := range xs {
		if !IsFinite(v) {
			return i
		}
	}

	return -1
}

// SafeRatio returns num/den, or 0 when den is not strictly positive or the
// quotient is not finite. It never returns NaN or Inf.
func SafeRatio(num, den float64) float64 {
	if !(den > 0) || !IsFinite(den) {
		return 0
	}

	r := num / den
	if !IsFinite(r) {
		return 0
	}

	return r
}

// NonNegative maps negative values (typically integration rounding noise)
// and NaN to exact zero.
func NonNegative(x float64) float64 {
	if !(x > 0) {
		return 0
	}

	return x
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in long IIR runs.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}
