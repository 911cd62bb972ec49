// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ cookbook lowpass and
// highpass sections, Butterworth cascades built from them, and a Butterworth
// bandpass formed by a highpass cascade at the lower edge followed by a
// lowpass cascade at the upper edge.
package design
