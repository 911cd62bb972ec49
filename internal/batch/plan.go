package batch

import (
	"math"
	"strings"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/core"
	"github.com/cwbudde/bandpower/dsp/segment"
	"github.com/cwbudde/bandpower/dsp/spectrum"
	"github.com/cwbudde/bandpower/dsp/window"
	"github.com/cwbudde/bandpower/internal/config"
	"github.com/cwbudde/bandpower/internal/errs"
	"github.com/cwbudde/bandpower/measure/bandpower"
)

// plan holds the rate-independent part of a run, resolved once from the
// configuration.
type plan struct {
	cfg        *config.Config
	bands      *band.Table
	integrator *bandpower.Integrator
	method     spectrum.Method
	// taper is nil when the method default applies.
	taper      *window.Type

	rates map[float64]*ratePlan
}

// ratePlan is the per-sampling-rate part: window sizes in samples and an
// estimator whose segment length depends on fs.
type ratePlan struct {
	fs        float64
	windowLen int
	step      int
	est       *spectrum.Estimator
}

func newPlan(cfg *config.Config) (*plan, error) {
	bands, err := cfg.BandTable()
	if err != nil {
		return nil, err
	}

	var ref bandpower.Reference
	switch cfg.Relative.Reference {
	case config.ReferenceUnion:
		ref = bandpower.UnionOfBands()
	case config.ReferenceSum:
		ref = bandpower.SumOfBands()
	default:
		ref = bandpower.FixedRange(cfg.Relative.LowHz, cfg.Relative.HighHz)
	}
	integrator, err := bandpower.NewIntegrator(bands,
		bandpower.WithReference(ref),
		bandpower.WithPercentage(cfg.Relative.Percentage),
	)
	if err != nil {
		return nil, err
	}

	method, err := spectrum.ParseMethod(cfg.Spectrum.Method)
	if err != nil {
		return nil, errs.New(errs.Configuration, "plan", err)
	}
	var taper *window.Type
	if strings.TrimSpace(cfg.Spectrum.Taper) != "" {
		t, err := window.Parse(cfg.Spectrum.Taper)
		if err != nil {
			return nil, errs.New(errs.Configuration, "plan", err)
		}
		taper = &t
	}

	return &plan{
		cfg:        cfg,
		bands:      bands,
		integrator: integrator,
		method:     method,
		taper:      taper,
		rates:      make(map[float64]*ratePlan),
	}, nil
}

// forRate resolves the plan for one sampling rate. Errors are
// configuration errors scoped to the file that carries this rate.
func (p *plan) forRate(fs float64) (*ratePlan, error) {
	if rp, ok := p.rates[fs]; ok {
		return rp, nil
	}

	const op = "plan"
	if !(fs > 0) || !core.IsFinite(fs) {
		return nil, errs.Configf(op, "sampling rate unknown or invalid: %g Hz", fs)
	}
	if err := p.bands.Validate(core.Nyquist(fs)); err != nil {
		return nil, err
	}

	rp := &ratePlan{fs: fs}
	if p.cfg.Window.Sliding {
		rp.windowLen = int(math.Round(p.cfg.Window.Seconds * fs))
		if rp.windowLen < 2 {
			return nil, errs.Configf(op, "window of %g s is shorter than 2 samples at %g Hz", p.cfg.Window.Seconds, fs)
		}
		step, err := segment.StepFromOverlap(rp.windowLen, p.cfg.Window.OverlapPercent/100)
		if err != nil {
			return nil, err
		}
		rp.step = step
	}

	opts := []spectrum.Option{
		spectrum.WithMethod(p.method),
		spectrum.WithSegmentLength(int(math.Round(p.cfg.Spectrum.SegmentSeconds * fs))),
		spectrum.WithSegmentOverlap(p.cfg.Spectrum.SegmentOverlapPercent / 100),
	}
	if p.taper != nil {
		opts = append(opts, spectrum.WithTaper(*p.taper))
	}
	if p.cfg.Spectrum.MinHz != 0 || p.cfg.Spectrum.MaxHz != 0 {
		opts = append(opts, spectrum.WithFrequencyRange(p.cfg.Spectrum.MinHz, p.cfg.Spectrum.MaxHz))
	}
	est, err := spectrum.New(opts...)
	if err != nil {
		return nil, err
	}
	rp.est = est

	p.rates[fs] = rp
	return rp, nil
}

// windows segments one channel series.
func (rp *ratePlan) windows(series []float64) ([]segment.Window, error) {
	if rp.windowLen == 0 {
		return segment.Whole(series), nil
	}
	return segment.Segment(series, rp.windowLen, rp.step)
}
