package bandpower

import (
	"math"
	"testing"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/spectrum"
)

func rampEstimate(n int, f func(float64) float64) spectrum.Estimate {
	est := spectrum.Estimate{Freqs: make([]float64, n), Power: make([]float64, n)}
	for i := range est.Freqs {
		est.Freqs[i] = float64(i)
		est.Power[i] = f(float64(i))
	}
	return est
}

func TestIntegrateSimpsonExactForQuadratic(t *testing.T) {
	est := rampEstimate(9, func(x float64) float64 { return x * x })

	abs, rule := IntegrateRule(est, band.Definition{Name: "q", LowHz: 0, HighHz: 4})
	if rule != RuleSimpson {
		t.Fatalf("rule=%s want simpson", rule)
	}
	if want := 64.0 / 3; math.Abs(abs-want) > 1e-9 {
		t.Fatalf("abs=%.12f want %.12f", abs, want)
	}
}

func TestIntegrateTwoPointsFallsBackToTrapezoid(t *testing.T) {
	est := spectrum.Estimate{
		Freqs: []float64{0, 1, 2, 3},
		Power: []float64{1, 2, 4, 8},
	}
	d := band.Definition{Name: "narrow", LowHz: 0.9, HighHz: 2.5}

	abs, rule := IntegrateRule(est, d)
	if rule != RuleTrapezoid {
		t.Fatalf("rule=%s want trapezoid", rule)
	}
	if abs != 3 {
		t.Fatalf("abs=%g want 3", abs)
	}
	if math.IsNaN(abs) || math.IsInf(abs, 0) || abs < 0 {
		t.Fatalf("abs=%g must be finite and non-negative", abs)
	}

	_, covered := Integrate(est, d)
	if want := 1 / 1.6; math.Abs(covered-want) > 1e-12 {
		t.Fatalf("covered=%g want %g", covered, want)
	}
}

func TestIntegrateSparseBands(t *testing.T) {
	est := spectrum.Estimate{Freqs: []float64{0, 1, 2}, Power: []float64{5, 5, 5}}

	tests := []struct {
		name string
		d    band.Definition
	}{
		{name: "single point", d: band.Definition{Name: "a", LowHz: 0.5, HighHz: 1.5}},
		{name: "no points", d: band.Definition{Name: "b", LowHz: 1.2, HighHz: 1.8}},
		{name: "above spectrum", d: band.Definition{Name: "c", LowHz: 10, HighHz: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, covered := Integrate(est, tt.d)
			if abs != 0 || covered != 0 {
				t.Fatalf("got (%g, %g), want (0, 0)", abs, covered)
			}
		})
	}
}

func TestIntegrateInclusiveBounds(t *testing.T) {
	est := rampEstimate(5, func(float64) float64 { return 2 })

	abs, covered := Integrate(est, band.Definition{Name: "all", LowHz: 1, HighHz: 3})
	if math.Abs(abs-4) > 1e-12 {
		t.Fatalf("abs=%g want 4", abs)
	}
	if covered != 1 {
		t.Fatalf("covered=%g want 1", covered)
	}
}

func TestIntegrateIdempotent(t *testing.T) {
	est := rampEstimate(64, func(x float64) float64 { return math.Exp(-x / 10) })
	d := band.Definition{Name: "x", LowHz: 3.3, HighHz: 17.2}

	a1, c1 := Integrate(est, d)
	a2, c2 := Integrate(est, d)
	if a1 != a2 || c1 != c2 {
		t.Fatalf("results differ: (%v,%v) vs (%v,%v)", a1, c1, a2, c2)
	}
}

func TestRuleString(t *testing.T) {
	for rule, want := range map[Rule]string{RuleNone: "none", RuleTrapezoid: "trapezoid", RuleSimpson: "simpson"} {
		if got := rule.String(); got != want {
			t.Fatalf("%d.String()=%q want %q", int(rule), got, want)
		}
	}
}
