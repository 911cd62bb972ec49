package spectrum

import (
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// realDFT returns the non-negative-frequency half (n/2+1 bins) of the DFT of
// a real sequence. Power-of-two lengths use an algo-fft plan; every other
// length goes through gonum's mixed-radix transform so arbitrary window
// lengths (e.g. 500 samples at 500 Hz) keep their exact resolution.
func realDFT(x []float64) []complex128 {
	n := len(x)
	if isPowerOfTwo(n) {
		if out, ok := algoDFT(x); ok {
			return out
		}
	}
	return gonumPlan(n).Coefficients(nil, x)
}

func isPowerOfTwo(n int) bool {
	return n > 1 && bits.OnesCount(uint(n)) == 1
}

func algoDFT(x []float64) ([]complex128, bool) {
	n := len(x)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, false
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, false
	}

	return out[:n/2+1], true
}

func gonumPlan(n int) *fourier.FFT {
	return fourier.NewFFT(n)
}
