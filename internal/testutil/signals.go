// Package testutil generates reproducible test recordings and compares
// sample slices.
package testutil

import (
	"math"
	"math/rand"
)

// Tone is one sinusoidal component of a synthetic recording.
type Tone struct {
	Hz        float64
	Amplitude float64
}

// DeterministicSine is a zero-phase sine of freqHz sampled at sampleRate.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return Tones(sampleRate, length, Tone{Hz: freqHz, Amplitude: amplitude})
}

// Tones sums zero-phase sines, e.g. an alpha rhythm plus line noise.
func Tones(sampleRate float64, length int, tones ...Tone) []float64 {
	out := make([]float64, length)
	for _, tone := range tones {
		step := 2 * math.Pi * tone.Hz / sampleRate
		for i := range out {
			out[i] += tone.Amplitude * math.Sin(step*float64(i))
		}
	}
	return out
}

// DeterministicNoise is uniform white noise in [-amplitude, amplitude)
// drawn from a seeded source.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse is a unit sample at pos; out-of-range positions give silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC is a flat channel, e.g. a disconnected electrode.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
