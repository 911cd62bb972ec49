// Package spectrum estimates one-sided power spectra of analysis windows.
//
// Three estimators are available:
//
//   - [MethodDirect]: squared DFT magnitude of the whole window.
//   - [MethodAveraged]: single-segment periodogram scaled as a power spectral
//     density (power per Hz), one segment per window.
//   - [MethodWelch]: true Welch averaging of overlapping sub-segments inside
//     each window.
//
// All estimators return frequencies in Hz together with the power values;
// callers must use the frequency values rather than bin indices.
package spectrum
