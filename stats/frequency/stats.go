// Package frequency computes shape descriptors of a one-sided power
// spectrum given as explicit (frequency, power) points: peak frequency,
// centroid, spread, median and edge frequencies, flatness and half-power
// bandwidth.
//
// Points need not be evenly spaced, but frequencies must be increasing.
// Power values are assumed non-negative.
package frequency

import "math"

// DefaultEdge is the cumulative power fraction of the spectral edge
// frequency (SEF95).
const DefaultEdge = 0.95

// Descriptors summarizes the shape of one spectrum.
type Descriptors struct {
	PeakHz     float64 // frequency of the largest power point
	CentroidHz float64 // power-weighted mean frequency
	SpreadHz   float64 // power-weighted standard deviation around the centroid
	MedianHz   float64 // frequency below which half the power lies
	EdgeHz     float64 // frequency below which DefaultEdge of the power lies
	Flatness   float64 // Wiener entropy, 0..1
	// BandwidthHz is the half-power (-3 dB) width around the peak.
	BandwidthHz float64
}

// Describe computes every descriptor. An empty or all-zero spectrum yields
// zero descriptors.
func Describe(freqs, power []float64) Descriptors {
	n := min(len(freqs), len(power))
	if n == 0 {
		return Descriptors{}
	}
	freqs, power = freqs[:n], power[:n]

	sum := 0.0
	for _, p := range power {
		sum += p
	}
	if sum == 0 {
		return Descriptors{}
	}

	c := centroid(freqs, power, sum)
	return Descriptors{
		PeakHz:      freqs[peakIndex(power)],
		CentroidHz:  c,
		SpreadHz:    spread(freqs, power, c, sum),
		MedianHz:    edge(freqs, power, 0.5, sum),
		EdgeHz:      edge(freqs, power, DefaultEdge, sum),
		Flatness:    flatness(freqs, power),
		BandwidthHz: bandwidth(freqs, power),
	}
}

// Peak returns the frequency of the largest power point, or 0 for an empty
// spectrum. Ties resolve to the lowest frequency.
func Peak(freqs, power []float64) float64 {
	if len(freqs) == 0 || len(power) == 0 {
		return 0
	}
	return freqs[peakIndex(power[:min(len(freqs), len(power))])]
}

func peakIndex(power []float64) int {
	best := 0
	for i, p := range power {
		if p > power[best] {
			best = i
		}
	}
	return best
}

// Centroid returns the power-weighted mean frequency.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(freqs, power []float64) float64 {
	sum := 0.0
	for _, p := range power {
		sum += p
	}
	return centroid(freqs, power, sum)
}

func centroid(freqs, power []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, p := range power {
		weighted += freqs[i] * p
	}
	return weighted / sum
}

func spread(freqs, power []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, p := range power {
		d := freqs[i] - cent
		weighted += d * d * p
	}
	return math.Sqrt(weighted / sum)
}

// Edge returns the lowest frequency at which the cumulative power reaches
// fraction (0..1) of the total. Edge(f, p, 0.5) is the median frequency.
func Edge(freqs, power []float64, fraction float64) float64 {
	sum := 0.0
	for _, p := range power {
		sum += p
	}
	return edge(freqs, power, fraction, sum)
}

func edge(freqs, power []float64, fraction, sum float64) float64 {
	n := len(power)
	if n == 0 || sum == 0 {
		return 0
	}
	threshold := fraction * sum
	cum := 0.0
	for i, p := range power {
		cum += p
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[n-1]
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(P_i))) / mean(P_i)
//
// A point at 0 Hz is excluded. If any considered point is zero the
// geometric mean is zero and 0 is returned.
func Flatness(freqs, power []float64) float64 {
	return flatness(freqs, power)
}

func flatness(freqs, power []float64) float64 {
	sumLin, sumLog := 0.0, 0.0
	count := 0
	for i, p := range power {
		if freqs[i] == 0 {
			continue
		}
		if p <= 0 {
			return 0
		}
		sumLin += p
		sumLog += math.Log(p)
		count++
	}
	if count == 0 || sumLin == 0 {
		return 0
	}

	meanLin := sumLin / float64(count)
	geoMean := math.Exp(sumLog / float64(count))
	return math.Min(geoMean/meanLin, 1)
}

// Bandwidth returns the half-power bandwidth around the peak in Hz.
//
// The -3 dB points are where power drops to half the peak on each side,
// located by linear interpolation between neighbouring points. A side that
// never drops below half power extends to the spectrum edge.
func Bandwidth(freqs, power []float64) float64 {
	return bandwidth(freqs, power)
}

func bandwidth(freqs, power []float64) float64 {
	n := len(power)
	if n < 2 {
		return 0
	}

	peak := peakIndex(power)
	if power[peak] == 0 {
		return 0
	}
	threshold := power[peak] / 2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if power[i-1] <= threshold && power[i] > threshold {
			lower = interpFreq(freqs[i-1], freqs[i], power[i-1], power[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if power[i+1] <= threshold && power[i] > threshold {
			upper = interpFreq(freqs[i], freqs[i+1], power[i], power[i+1], threshold)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

// interpFreq finds where the segment (fLow, pLow)-(fHigh, pHigh) crosses
// threshold.
func interpFreq(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	denom := pHigh - pLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - pLow) / denom
	return fLow + t*(fHigh-fLow)
}
