package segment

import (
	"testing"

	"github.com/cwbudde/bandpower/internal/errs"
)

func TestSegmentScenarioHalfOverlap(t *testing.T) {
	series := make([]float64, 1000)
	for i := range series {
		series[i] = float64(i)
	}

	step, err := StepFromOverlap(500, 0.5)
	if err != nil {
		t.Fatalf("StepFromOverlap error: %v", err)
	}
	if step != 250 {
		t.Fatalf("step = %d, want 250", step)
	}

	windows, err := Segment(series, 500, step)
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}

	wantStarts := []int{0, 250, 500}
	if len(windows) != len(wantStarts) {
		t.Fatalf("len(windows) = %d, want %d", len(windows), len(wantStarts))
	}
	for i, w := range windows {
		if w.Start != wantStarts[i] {
			t.Fatalf("windows[%d].Start = %d, want %d", i, w.Start, wantStarts[i])
		}
		if len(w.Samples) != 500 {
			t.Fatalf("windows[%d] len = %d, want 500", i, len(w.Samples))
		}
		if w.Samples[0] != float64(w.Start) {
			t.Fatalf("windows[%d] first sample = %v, want %d", i, w.Samples[0], w.Start)
		}
	}
}

func TestSegmentCountProperty(t *testing.T) {
	for n := 1; n <= 64; n++ {
		for windowLen := 1; windowLen <= n; windowLen++ {
			for step := 1; step <= windowLen+3; step++ {
				windows, err := Segment(make([]float64, n), windowLen, step)
				if err != nil {
					t.Fatalf("Segment(%d,%d,%d) error: %v", n, windowLen, step, err)
				}

				want := (n-windowLen)/step + 1
				if len(windows) != want || Count(n, windowLen, step) != want {
					t.Fatalf("Segment(%d,%d,%d) produced %d windows, want %d", n, windowLen, step, len(windows), want)
				}

				for i, w := range windows {
					if w.Start > n-windowLen {
						t.Fatalf("window %d start %d exceeds %d", i, w.Start, n-windowLen)
					}
					if i > 0 && w.Start <= windows[i-1].Start {
						t.Fatalf("window starts not increasing at %d", i)
					}
				}
			}
		}
	}
}

func TestSegmentShortSeriesIsEmpty(t *testing.T) {
	windows, err := Segment(make([]float64, 10), 20, 5)
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("len(windows) = %d, want 0", len(windows))
	}
}

func TestSegmentInvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		windowLen int
		step      int
	}{
		{name: "zero window", windowLen: 0, step: 1},
		{name: "negative window", windowLen: -5, step: 1},
		{name: "zero step", windowLen: 4, step: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segment(make([]float64, 16), tt.windowLen, tt.step)
			if !errs.Is(err, errs.Configuration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestStepFromOverlapRejects(t *testing.T) {
	for _, overlap := range []float64{1, 1.5, -0.1} {
		if _, err := StepFromOverlap(100, overlap); !errs.Is(err, errs.Configuration) {
			t.Fatalf("overlap %v: expected configuration error, got %v", overlap, err)
		}
	}

	// 0.999 of a 100-sample window truncates to a zero hop.
	if _, err := StepFromOverlap(100, 0.999); !errs.Is(err, errs.Configuration) {
		t.Fatalf("expected zero-hop configuration error, got %v", err)
	}
}

func TestSegmentWindowsDoNotGrow(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6}
	windows, _ := Segment(series, 3, 3)
	if cap(windows[0].Samples) != 3 {
		t.Fatalf("cap = %d, want 3 so appends cannot clobber the next window", cap(windows[0].Samples))
	}
}

func TestWhole(t *testing.T) {
	if Whole(nil) != nil {
		t.Fatal("Whole(nil) should be empty")
	}
	w := Whole([]float64{1, 2, 3})
	if len(w) != 1 || w[0].Start != 0 || w[0].End() != 3 {
		t.Fatalf("Whole() = %+v", w)
	}
}
