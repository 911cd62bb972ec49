package design

import (
	"math"

	"github.com/cwbudde/bandpower/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0). Returns nil
// for order <= 0 or a cutoff outside (0, sampleRate/2).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Highpass(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBandpass cascades ButterworthHP(low) and ButterworthLP(high),
// each of the given order. Both edges sit at -3 dB when the band is wide
// relative to its skirts. Returns nil unless 0 < low < high < sampleRate/2.
func ButterworthBandpass(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	if !(low < high) {
		return nil
	}

	hp := ButterworthHP(low, order, sampleRate)
	lp := ButterworthLP(high, order, sampleRate)
	if hp == nil || lp == nil {
		return nil
	}

	return append(hp, lp...)
}

// butterworthQ returns the Q of the index-th conjugate pole pair.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}
	return 1 / (2 * s)
}

func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func butterworthFirstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
