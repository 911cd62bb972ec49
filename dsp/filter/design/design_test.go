package design

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/bandpower/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	h := c.Response(freq, sr)
	return cmplx.Abs(h)
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	sr := 500.0
	f := 20.0
	q := 1 / math.Sqrt2

	lp := Lowpass(f, q, sr)
	if !(mag(lp, 2, sr) > mag(lp, 200, sr)) {
		t.Fatal("lowpass shape check failed")
	}
	if !almostEqual(mag(lp, 0, sr), 1, 1e-12) {
		t.Fatalf("lowpass DC gain=%v want 1", mag(lp, 0, sr))
	}

	hp := Highpass(f, q, sr)
	if !(mag(hp, 200, sr) > mag(hp, 2, sr)) {
		t.Fatal("highpass shape check failed")
	}
	if !almostEqual(mag(hp, 250, sr), 1, 1e-9) {
		t.Fatalf("highpass Nyquist gain=%v want 1", mag(hp, 250, sr))
	}
}

func TestDesigners_InvalidFrequency(t *testing.T) {
	for _, f := range []float64{0, -1, 250, 300, math.NaN()} {
		if got := Lowpass(f, 0.7, 500); got != (biquad.Coefficients{}) {
			t.Fatalf("Lowpass(%v) = %+v, want zero", f, got)
		}
		if got := Highpass(f, 0.7, 500); got != (biquad.Coefficients{}) {
			t.Fatalf("Highpass(%v) = %+v, want zero", f, got)
		}
	}
}

func TestButterworthCutoffIsMinus3dB(t *testing.T) {
	sr := 500.0
	for _, order := range []int{1, 2, 3, 4, 5, 8} {
		lp := biquad.NewChain(ButterworthLP(30, order, sr))
		if got := lp.MagnitudeDB(30, sr); !almostEqual(got, -3.0103, 1e-3) {
			t.Errorf("LP order %d: %.4f dB at cutoff", order, got)
		}
		if lp.Order() != order {
			t.Errorf("LP order %d: chain order %d", order, lp.Order())
		}

		hp := biquad.NewChain(ButterworthHP(8, order, sr))
		if got := hp.MagnitudeDB(8, sr); !almostEqual(got, -3.0103, 1e-3) {
			t.Errorf("HP order %d: %.4f dB at cutoff", order, got)
		}
		if !hp.Stable() || !lp.Stable() {
			t.Errorf("order %d: unstable cascade", order)
		}
	}
}

func TestButterworthRolloffSteepensWithOrder(t *testing.T) {
	sr := 500.0
	prev := 0.0
	for _, order := range []int{1, 2, 4, 6} {
		got := biquad.NewChain(ButterworthLP(20, order, sr)).MagnitudeDB(80, sr)
		if !(got < prev) {
			t.Fatalf("order %d: %.2f dB at 80 Hz not below %.2f dB", order, got, prev)
		}
		prev = got
	}
}

func TestButterworthBandpass(t *testing.T) {
	sr := 500.0
	coeffs := ButterworthBandpass(8, 13, 4, sr)
	if len(coeffs) != 4 {
		t.Fatalf("sections=%d want 4", len(coeffs))
	}

	chain := biquad.NewChain(coeffs)
	if !chain.Stable() {
		t.Fatal("bandpass cascade unstable")
	}

	center := chain.MagnitudeDB(10, sr)
	for _, f := range []float64{1, 3, 30, 60, 200} {
		if got := chain.MagnitudeDB(f, sr); !(got < center-20) {
			t.Errorf("%v Hz: %.2f dB, want well below %.2f dB at 10 Hz", f, got, center)
		}
	}
	if math.Abs(center) > 2 {
		t.Errorf("passband gain %.2f dB", center)
	}
}

func TestButterworthBandpass_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		order     int
	}{
		{name: "inverted", low: 13, high: 8, order: 4},
		{name: "equal", low: 8, high: 8, order: 4},
		{name: "zero low", low: 0, high: 8, order: 4},
		{name: "high at nyquist", low: 8, high: 250, order: 4},
		{name: "zero order", low: 8, high: 13, order: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ButterworthBandpass(tt.low, tt.high, tt.order, 500); got != nil {
				t.Fatalf("got %d sections, want nil", len(got))
			}
		})
	}
}

func TestButterworthQ(t *testing.T) {
	if got := butterworthQ(2, 0); !almostEqual(got, defaultQ, 1e-12) {
		t.Fatalf("order 2 Q=%v want %v", got, defaultQ)
	}
	// Order 4 pole pairs: 1/(2 sin(pi/8)) and 1/(2 sin(3pi/8)).
	if got := butterworthQ(4, 0); !almostEqual(got, 1.3065629648763766, 1e-12) {
		t.Fatalf("order 4 Q0=%v", got)
	}
	if got := butterworthQ(4, 1); !almostEqual(got, 0.5411961001461970, 1e-12) {
		t.Fatalf("order 4 Q1=%v", got)
	}
}
