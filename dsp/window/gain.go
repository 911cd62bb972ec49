package window

import "math"

// Gains summarizes the normalisation factors a spectral estimator needs for a
// concrete set of coefficients.
type Gains struct {
	// Sum is Σw[n]; Sum/N is the coherent gain.
	Sum float64
	// SumSquares is Σw[n]²; density scaling divides by fs·SumSquares.
	SumSquares float64
	// ENBW is N·Σw²/(Σw)², in bins.
	ENBW float64
	// ScallopLossdB is the amplitude error half a bin off-centre.
	ScallopLossdB float64
}

// Measure computes Gains for coeffs numerically.
func Measure(coeffs []float64) (Gains, error) {
	if len(coeffs) == 0 {
		return Gains{}, errEmptyCoeffs
	}

	var g Gains
	for _, c := range coeffs {
		g.Sum += c
		g.SumSquares += c * c
	}

	if g.Sum == 0 {
		return g, errZeroCoherentGain
	}

	n := float64(len(coeffs))
	g.ENBW = n * g.SumSquares / (g.Sum * g.Sum)

	dc := dftMagSq(coeffs, 0)
	half := dftMagSq(coeffs, 0.5/n)
	if dc > 0 && half > 0 {
		g.ScallopLossdB = 10 * math.Log10(half/dc)
	}

	return g, nil
}

// dftMagSq evaluates |W(f)|² at normalized frequency f (cycles/sample).
func dftMagSq(coeffs []float64, f float64) float64 {
	var re, im float64
	for i, c := range coeffs {
		phi := -2 * math.Pi * f * float64(i)
		re += c * math.Cos(phi)
		im += c * math.Sin(phi)
	}
	return re*re + im*im
}

// Hann returns periodic-or-symmetric Hann coefficients, validating size.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}
