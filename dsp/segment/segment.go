// Package segment splits a sampled series into fixed-length, possibly
// overlapping analysis windows.
package segment

import (
	"math"

	"github.com/cwbudde/bandpower/internal/errs"
)

// Window is a view into a series starting at Start. Samples aliases the
// caller's slice and must not be modified.
type Window struct {
	Start   int
	Samples []float64
}

// End returns the exclusive end offset of the window.
func (w Window) End() int { return w.Start + len(w.Samples) }

// StepFromOverlap converts an overlap fraction in [0, 1) into a hop size in
// samples, truncating toward zero.
func StepFromOverlap(windowLen int, overlap float64) (int, error) {
	if windowLen <= 0 {
		return 0, errs.Configf("segment", "window length must be > 0: %d", windowLen)
	}
	if math.IsNaN(overlap) || overlap < 0 || overlap >= 1 {
		return 0, errs.Configf("segment", "overlap fraction must be in [0,1): %g", overlap)
	}

	step := int(float64(windowLen) * (1 - overlap))
	if step <= 0 {
		return 0, errs.Configf("segment", "overlap %g leaves no hop for window length %d", overlap, windowLen)
	}
	return step, nil
}

// Count returns the number of whole windows Segment produces for a series
// of length n. It returns 0 when windowLen > n or the parameters are invalid.
func Count(n, windowLen, step int) int {
	if windowLen <= 0 || step <= 0 || windowLen > n {
		return 0
	}
	return (n-windowLen)/step + 1
}

// Segment returns windows starting at 0, step, 2*step, … while the window
// fits inside series. The trailing partial window is dropped. A series
// shorter than windowLen yields no windows and no error.
func Segment(series []float64, windowLen, step int) ([]Window, error) {
	if windowLen <= 0 {
		return nil, errs.Configf("segment", "window length must be > 0: %d", windowLen)
	}
	if step <= 0 {
		return nil, errs.Configf("segment", "step must be > 0: %d", step)
	}

	n := Count(len(series), windowLen, step)
	if n == 0 {
		return nil, nil
	}

	out := make([]Window, n)
	for i := range out {
		start := i * step
		out[i] = Window{Start: start, Samples: series[start : start+windowLen : start+windowLen]}
	}
	return out, nil
}

// Whole returns the entire series as a single window.
func Whole(series []float64) []Window {
	if len(series) == 0 {
		return nil
	}
	return []Window{{Start: 0, Samples: series[:len(series):len(series)]}}
}
