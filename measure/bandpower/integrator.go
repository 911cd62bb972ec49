package bandpower

import (
	"fmt"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/core"
	"github.com/cwbudde/bandpower/dsp/spectrum"
	"github.com/cwbudde/bandpower/internal/errs"
	"github.com/cwbudde/bandpower/stats/frequency"
)

// ReferenceKind selects how total power is computed for normalization.
type ReferenceKind int

const (
	// ReferenceRange integrates over a fixed [LowHz, HighHz] range.
	ReferenceRange ReferenceKind = iota
	// ReferenceUnion integrates over [min band low, max band high].
	ReferenceUnion
	// ReferenceSum adds the absolute powers of all bands.
	ReferenceSum
)

// Reference describes the normalization denominator for relative power.
type Reference struct {
	Kind   ReferenceKind
	LowHz  float64
	HighHz float64
}

// DefaultReference is the 0.5-100 Hz range used for EEG total power.
var DefaultReference = FixedRange(0.5, 100)

// FixedRange normalizes by the power in [lo, hi].
func FixedRange(lo, hi float64) Reference {
	return Reference{Kind: ReferenceRange, LowHz: lo, HighHz: hi}
}

// UnionOfBands normalizes by the power over the span of all bands.
func UnionOfBands() Reference { return Reference{Kind: ReferenceUnion} }

// SumOfBands normalizes by the sum of the band powers.
func SumOfBands() Reference { return Reference{Kind: ReferenceSum} }

func (r Reference) String() string {
	switch r.Kind {
	case ReferenceUnion:
		return "union of bands"
	case ReferenceSum:
		return "sum of bands"
	default:
		return fmt.Sprintf("%g-%g Hz", r.LowHz, r.HighHz)
	}
}

// Result is the power of one band in one window.
type Result struct {
	Band     string
	Absolute float64
	// Relative is Absolute/Total in [0,1], or in [0,100] in percentage mode.
	Relative float64
	Covered  float64
}

// WindowResult holds every band of one window, in table order.
type WindowResult struct {
	Start int
	Total float64
	Bands []Result
	// Shape describes the spectrum inside the reference range.
	Shape frequency.Descriptors
}

// Option configures an Integrator.
type Option func(*Integrator)

// WithReference sets the total-power reference. Default DefaultReference.
func WithReference(r Reference) Option {
	return func(in *Integrator) { in.ref = r }
}

// WithPercentage reports relative power in percent.
func WithPercentage(on bool) Option {
	return func(in *Integrator) { in.percentage = on }
}

// Integrator computes per-window band powers for a band table.
// It is immutable and safe for concurrent use.
type Integrator struct {
	table      *band.Table
	defs       []band.Definition
	ref        Reference
	percentage bool

	// shape range; the band union for ReferenceSum
	shapeLo, shapeHi float64
}

// NewIntegrator validates the reference against the table.
func NewIntegrator(table *band.Table, opts ...Option) (*Integrator, error) {
	if table == nil || table.Len() == 0 {
		return nil, errs.Configf("bandpower", "band table must not be empty")
	}

	in := &Integrator{table: table, defs: table.Definitions(), ref: DefaultReference}
	for _, o := range opts {
		if o != nil {
			o(in)
		}
	}

	switch in.ref.Kind {
	case ReferenceRange:
		if in.ref.LowHz < 0 || !(in.ref.LowHz < in.ref.HighHz) {
			return nil, errs.Configf("bandpower", "invalid reference range %s", in.ref)
		}
	case ReferenceUnion:
		lo, hi := table.Union()
		in.ref = Reference{Kind: ReferenceUnion, LowHz: lo, HighHz: hi}
	case ReferenceSum:
	default:
		return nil, errs.Configf("bandpower", "unknown reference kind %d", int(in.ref.Kind))
	}

	in.shapeLo, in.shapeHi = in.ref.LowHz, in.ref.HighHz
	if in.ref.Kind == ReferenceSum {
		in.shapeLo, in.shapeHi = table.Union()
	}

	return in, nil
}

// Names returns the band names in table order.
func (in *Integrator) Names() []string { return in.table.Names() }

// Table returns the band table.
func (in *Integrator) Table() *band.Table { return in.table }

// Reference returns the resolved reference.
func (in *Integrator) Reference() Reference { return in.ref }

// Percentage reports whether relative power is scaled to percent.
func (in *Integrator) Percentage() bool { return in.percentage }

// Window integrates every band of one estimate. Total power is computed
// once and shared by all bands.
//
// Bands and the reference are integrated separately, so Simpson weights can
// fall differently on the same spectral point: a narrow peak may count more
// in a band than in the reference range. Relative power is then clamped to
// 1 (100 in percentage mode) while Absolute keeps the integrated value.
func (in *Integrator) Window(start int, est spectrum.Estimate) WindowResult {
	res := WindowResult{Start: start, Bands: make([]Result, len(in.defs))}

	for i, d := range in.defs {
		abs, covered := Integrate(est, d)
		res.Bands[i] = Result{Band: d.Name, Absolute: abs, Covered: covered}
	}

	switch in.ref.Kind {
	case ReferenceSum:
		for _, b := range res.Bands {
			res.Total += b.Absolute
		}
	default:
		res.Total, _, _ = integrateRange(est.Freqs, est.Power, in.ref.LowHz, in.ref.HighHz)
	}

	scale := 1.0
	if in.percentage {
		scale = 100
	}
	for i := range res.Bands {
		// Quadrature over a band may exceed the reference total.
		rel := core.Clamp(core.SafeRatio(res.Bands[i].Absolute, res.Total), 0, 1)
		res.Bands[i].Relative = rel * scale
	}

	shaped := est.Restrict(in.shapeLo, in.shapeHi)
	res.Shape = frequency.Describe(shaped.Freqs, shaped.Power)

	return res
}
