// Package amplitude computes time-domain quality figures of one recorded
// channel: offset, level, excursion and the shape of the sample
// distribution. Flat or clipped electrodes show up here before they
// distort the band powers.
package amplitude

import "math"

// Stats summarizes a series in its recorded units.
type Stats struct {
	Samples int
	// Mean is the DC offset.
	Mean       float64
	RMS        float64
	Std        float64
	Min        float64
	Max        float64
	PeakToPeak float64
	// CrestFactor is max(|x - mean|) / Std; zero for a flat series.
	CrestFactor float64
	// CrossingRate counts mean crossings per second.
	CrossingRate float64
	Skewness     float64
	// Kurtosis is the excess kurtosis; zero for a normal distribution.
	Kurtosis float64
}

// Flat reports whether the series never leaves its mean by more than tol.
func (s Stats) Flat(tol float64) bool {
	return s.Samples > 0 && s.PeakToPeak <= tol
}

// Calculate computes the statistics in one pass. fs converts the crossing
// count to a rate; with fs <= 0 CrossingRate stays zero.
func Calculate(series []float64, fs float64) Stats {
	n := len(series)
	if n == 0 {
		return Stats{}
	}

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		lo, hi           = series[0], series[0]
	)
	for i, x := range series {
		// Welford; m4 before m3 before m2.
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	nf := float64(n)
	s := Stats{
		Samples:    n,
		Mean:       mean,
		RMS:        math.Sqrt(sumSq / nf),
		Min:        lo,
		Max:        hi,
		PeakToPeak: hi - lo,
	}

	variance := m2 / nf
	if variance <= 0 {
		return s
	}
	s.Std = math.Sqrt(variance)
	s.Skewness = (m3 / nf) / (variance * s.Std)
	s.Kurtosis = (m4/nf)/(variance*variance) - 3
	s.CrestFactor = math.Max(hi-mean, mean-lo) / s.Std

	if fs > 0 && n > 1 {
		s.CrossingRate = float64(crossings(series, mean)) * fs / nf
	}
	return s
}

// crossings counts sign changes of x - ref; samples equal to ref carry the
// previous sign.
func crossings(series []float64, ref float64) int {
	var (
		count int
		prev  float64
	)
	for _, x := range series {
		d := x - ref
		if d == 0 {
			continue
		}
		if prev != 0 && (d > 0) != (prev > 0) {
			count++
		}
		prev = d
	}
	return count
}
