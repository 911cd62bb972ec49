// Package biquad provides second-order IIR section runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for one
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain] for higher-order filters. Coefficient design lives in
// dsp/filter/design; forward-backward application lives in
// dsp/filter/zerophase.
package biquad
