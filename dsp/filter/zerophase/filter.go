package zerophase

import (
	"github.com/cwbudde/bandpower/dsp/core"
	"github.com/cwbudde/bandpower/dsp/filter/biquad"
)

// PadLen returns the odd-extension length used at each edge: three times
// the cascade order, capped at n-1.
func PadLen(order, n int) int {
	pad := 3 * order
	if pad > n-1 {
		pad = n - 1
	}
	if pad < 0 {
		pad = 0
	}
	return pad
}

// Filter runs coeffs over x forward, then over the reversed result, and
// reverses again. The series is extended at both ends by odd reflection
// and each pass starts from the steady state of its first sample, which
// keeps start-up transients out of the returned samples. The output has the
// same length as x; x is not modified.
func Filter(coeffs []biquad.Coefficients, x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if len(coeffs) == 0 {
		copy(out, x)
		return out
	}

	chain := biquad.NewChain(coeffs)
	pad := PadLen(chain.Order(), n)
	ext := oddExtend(x, pad)

	pass(chain, ext)
	core.Reverse(ext)
	pass(chain, ext)
	core.Reverse(ext)

	copy(out, ext[pad:pad+n])
	return out
}

func pass(chain *biquad.Chain, buf []float64) {
	chain.Reset()
	chain.Prime(buf[0])
	chain.ProcessBlock(buf)
}

// oddExtend returns x with pad samples reflected about each end point:
// 2*x[0]-x[pad..1] before and 2*x[n-1]-x[n-2..n-1-pad] after.
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)

	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)

	return ext
}
