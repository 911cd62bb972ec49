package zerophase

import (
	"fmt"
	"strings"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/core"
	"github.com/cwbudde/bandpower/dsp/filter/biquad"
	"github.com/cwbudde/bandpower/dsp/filter/design"
	"github.com/cwbudde/bandpower/internal/errs"
)

// DefaultOrder is the per-edge Butterworth order used when Order is zero.
const DefaultOrder = 4

// Family selects the bandpass prototype.
type Family int

const (
	FamilyButterworth Family = iota
)

func (f Family) String() string {
	switch f {
	case FamilyButterworth:
		return "butterworth"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily resolves a family name. The empty string selects Butterworth.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "butterworth", "butter":
		return FamilyButterworth, nil
	default:
		return 0, errs.Configf("zerophase", "unknown filter family %q", name)
	}
}

// Reconstructor produces band-limited copies of a channel series.
// The zero value is a fourth-order Butterworth reconstructor.
type Reconstructor struct {
	Order  int
	Family Family
}

func (r Reconstructor) order() int {
	if r.Order == 0 {
		return DefaultOrder
	}
	return r.Order
}

// Design validates the band against fs and returns the bandpass cascade.
func (r Reconstructor) Design(d band.Definition, fs float64) ([]biquad.Coefficients, error) {
	const op = "reconstruct"

	switch {
	case !(fs > 0) || !core.IsFinite(fs):
		return nil, errs.Configf(op, "sampling rate must be > 0: %g", fs)
	case r.order() < 1:
		return nil, errs.Configf(op, "filter order must be >= 1: %d", r.Order)
	case !(d.LowHz > 0):
		return nil, errs.Configf(op, "band %s: low cutoff must be > 0 Hz", d)
	case d.HighHz >= core.Nyquist(fs):
		return nil, errs.Configf(op, "band %s: high cutoff must be below Nyquist %g Hz", d, core.Nyquist(fs))
	case !(d.LowHz < d.HighHz):
		return nil, errs.Configf(op, "band %s: low cutoff must be below high cutoff", d)
	}

	var coeffs []biquad.Coefficients
	switch r.Family {
	case FamilyButterworth:
		coeffs = design.ButterworthBandpass(d.LowHz, d.HighHz, r.order(), fs)
	default:
		return nil, errs.Configf(op, "unsupported filter family %s", r.Family)
	}

	if coeffs == nil {
		return nil, errs.Configf(op, "band %s: no realizable bandpass at %g Hz", d, fs)
	}
	if !biquad.NewChain(coeffs).Stable() {
		return nil, errs.Numericalf(op, "band %s: bandpass at %g Hz is numerically unstable", d, fs)
	}

	return coeffs, nil
}

// Reconstruct bandpass filters the whole series with zero phase. The result
// has len(series) samples.
func (r Reconstructor) Reconstruct(series []float64, d band.Definition, fs float64) ([]float64, error) {
	coeffs, err := r.Design(d, fs)
	if err != nil {
		return nil, err
	}
	if i := core.FirstNonFinite(series); i >= 0 {
		return nil, errs.Numericalf("reconstruct", "non-finite input sample at index %d", i)
	}

	out := Filter(coeffs, series)
	if i := core.FirstNonFinite(out); i >= 0 {
		return nil, errs.Numericalf("reconstruct", "band %s: non-finite output at index %d", d, i)
	}

	return out, nil
}

// PowerGain returns the zero-phase power response |H(f)|^4 at f Hz, i.e. the
// squared magnitude applied twice.
func (r Reconstructor) PowerGain(d band.Definition, fs, f float64) (float64, error) {
	coeffs, err := r.Design(d, fs)
	if err != nil {
		return 0, err
	}
	m := biquad.NewChain(coeffs).MagnitudeSquared(f, fs)
	return m * m, nil
}
