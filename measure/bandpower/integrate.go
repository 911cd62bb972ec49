package bandpower

import (
	"sort"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/core"
	"github.com/cwbudde/bandpower/dsp/spectrum"
)

// Rule names the quadrature used for one integral.
type Rule int

const (
	RuleNone Rule = iota
	RuleTrapezoid
	RuleSimpson
)

func (r Rule) String() string {
	switch r {
	case RuleSimpson:
		return "simpson"
	case RuleTrapezoid:
		return "trapezoid"
	default:
		return "none"
	}
}

// Integrate returns the absolute power of est inside d and the fraction of
// the band width spanned by the selected spectral points.
func Integrate(est spectrum.Estimate, d band.Definition) (absolute, covered float64) {
	absolute, covered, _ = integrateRange(est.Freqs, est.Power, d.LowHz, d.HighHz)
	return absolute, covered
}

// IntegrateRule is Integrate plus the quadrature rule that was applied.
func IntegrateRule(est spectrum.Estimate, d band.Definition) (absolute float64, rule Rule) {
	absolute, _, rule = integrateRange(est.Freqs, est.Power, d.LowHz, d.HighHz)
	return absolute, rule
}

func integrateRange(freqs, power []float64, lo, hi float64) (float64, float64, Rule) {
	i0 := sort.SearchFloat64s(freqs, lo)
	i1 := sort.Search(len(freqs), func(k int) bool { return freqs[k] > hi })
	if i1 <= i0 {
		return 0, 0, RuleNone
	}

	x := freqs[i0:i1]
	f := power[i0:i1]

	var (
		v    float64
		rule Rule
	)
	switch {
	case len(x) >= 3:
		v, rule = integrate.Simpsons(x, f), RuleSimpson
	case len(x) == 2:
		// Too few points for a quadratic fit; narrow bands at coarse
		// resolution fall back to the trapezoid rule.
		v, rule = integrate.Trapezoidal(x, f), RuleTrapezoid
	default:
		return 0, 0, RuleNone
	}

	covered := core.Clamp((x[len(x)-1]-x[0])/(hi-lo), 0, 1)
	return core.NonNegative(v), covered, rule
}
