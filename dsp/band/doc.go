// Package band defines named frequency bands and ordered band tables.
//
// A [Table] preserves insertion order so that every report derived from it
// lists bands in the same sequence. Presets reproduce the EEG band layouts
// commonly used for clinical band-power analysis.
package band
