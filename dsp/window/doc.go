// Package window provides the tapers applied to analysis segments before a
// DFT, together with the gain figures needed to scale power spectral density
// estimates.
package window
