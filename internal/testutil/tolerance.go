package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails tb unless got and want have the same length
// and every pair differs by at most eps.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()
	if len(got) != len(want) {
		tb.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			tb.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails tb on the first NaN or Inf.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
