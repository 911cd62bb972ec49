// Package bandpower integrates power spectra over named frequency bands.
//
// Absolute band power is the integral of a [spectrum.Estimate] over the
// closed band interval: Simpson's rule when at least three spectral points
// fall inside the band, the trapezoidal rule for exactly two, and zero
// otherwise. Relative power divides by a total computed once per window over
// a configurable reference range.
package bandpower
