package core

import "math"

// Nyquist returns half the sample rate.
func Nyquist(sampleRate float64) float64 {
	return sampleRate / 2
}

// SamplesFor converts a duration in seconds into a whole number of samples at
// sampleRate, truncating toward zero.
func SamplesFor(seconds, sampleRate float64) int {
	if seconds <= 0 || sampleRate <= 0 || !IsFinite(seconds*sampleRate) {
		return 0
	}

	// Guard against 0.999999 style products of decimal inputs.
	return int(math.Floor(seconds*sampleRate + 1e-9))
}
