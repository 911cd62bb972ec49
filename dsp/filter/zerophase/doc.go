// Package zerophase applies IIR cascades forward and backward so the
// result has zero phase distortion, and builds band-limited reconstructions
// of whole channel series from band definitions.
package zerophase
