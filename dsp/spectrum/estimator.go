package spectrum

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/spectral"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/bandpower/dsp/core"
	"github.com/cwbudde/bandpower/dsp/window"
	"github.com/cwbudde/bandpower/internal/errs"
)

// Method selects the spectral estimator.
type Method int

const (
	// MethodDirect is the squared DFT magnitude of the whole window.
	MethodDirect Method = iota
	// MethodAveraged is a single-segment PSD periodogram per window.
	MethodAveraged
	// MethodWelch averages overlapping sub-segments inside each window.
	MethodWelch
)

func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodAveraged:
		return "averaged"
	case MethodWelch:
		return "welch"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod resolves a method name.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct", "fft", "":
		return MethodDirect, nil
	case "averaged", "periodogram", "psd":
		return MethodAveraged, nil
	case "welch":
		return MethodWelch, nil
	default:
		return 0, errs.Configf("spectrum", "unknown spectral method %q", name)
	}
}

// Estimate is a one-sided spectrum: Power[i] belongs to Freqs[i].
// Freqs is strictly increasing and Power is non-negative.
type Estimate struct {
	Freqs []float64
	Power []float64
	// Density is true when Power is in units per Hz.
	Density bool
}

// Len returns the number of frequency points.
func (e Estimate) Len() int { return len(e.Freqs) }

// Resolution returns the spacing of the first two frequency points, or 0.
func (e Estimate) Resolution() float64 {
	if len(e.Freqs) < 2 {
		return 0
	}
	return e.Freqs[1] - e.Freqs[0]
}

// Option configures an Estimator.
type Option func(*config)

type config struct {
	method         Method
	taper          window.Type
	taperSet       bool
	segmentLen     int
	segmentOverlap float64
	minHz, maxHz   float64
	rangeSet       bool
}

// WithMethod selects the estimator. Default is MethodDirect.
func WithMethod(m Method) Option {
	return func(c *config) { c.method = m }
}

// WithTaper overrides the taper. Direct defaults to rectangular, the
// density estimators default to a periodic Hann window.
func WithTaper(t window.Type) Option {
	return func(c *config) {
		c.taper = t
		c.taperSet = true
	}
}

// WithSegmentLength sets the Welch sub-segment length in samples. Zero
// means half the window. Ignored by the other methods.
func WithSegmentLength(n int) Option {
	return func(c *config) { c.segmentLen = n }
}

// WithSegmentOverlap sets the Welch sub-segment overlap fraction in [0,1).
// Default 0.5.
func WithSegmentOverlap(f float64) Option {
	return func(c *config) { c.segmentOverlap = f }
}

// WithFrequencyRange restricts the returned points to [lo, hi] Hz.
func WithFrequencyRange(lo, hi float64) Option {
	return func(c *config) {
		c.minHz, c.maxHz = lo, hi
		c.rangeSet = true
	}
}

// Estimator converts windows into spectra. It holds no mutable state and is
// safe for concurrent use.
type Estimator struct {
	cfg config
}

// New builds an Estimator, validating the option set.
func New(opts ...Option) (*Estimator, error) {
	cfg := config{segmentOverlap: 0.5}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if !cfg.taperSet {
		cfg.taper = window.TypeRectangular
		if cfg.method != MethodDirect {
			cfg.taper = window.TypeHann
		}
	}

	switch cfg.method {
	case MethodDirect, MethodAveraged, MethodWelch:
	default:
		return nil, errs.Configf("spectrum", "unknown spectral method %d", int(cfg.method))
	}
	if cfg.segmentLen < 0 {
		return nil, errs.Configf("spectrum", "segment length must be >= 0: %d", cfg.segmentLen)
	}
	if cfg.segmentOverlap < 0 || cfg.segmentOverlap >= 1 {
		return nil, errs.Configf("spectrum", "segment overlap must be in [0,1): %g", cfg.segmentOverlap)
	}
	if cfg.rangeSet && (cfg.minHz < 0 || !(cfg.minHz < cfg.maxHz)) {
		return nil, errs.Configf("spectrum", "invalid frequency range [%g, %g]", cfg.minHz, cfg.maxHz)
	}

	return &Estimator{cfg: cfg}, nil
}

// Method reports the configured method.
func (e *Estimator) Method() Method { return e.cfg.method }

// Estimate computes the spectrum of samples recorded at fs Hz.
func (e *Estimator) Estimate(samples []float64, fs float64) (Estimate, error) {
	if !(fs > 0) || !core.IsFinite(fs) {
		return Estimate{}, errs.Configf("spectrum", "sample rate must be > 0: %g", fs)
	}
	if len(samples) < 2 {
		return Estimate{}, errs.Numericalf("spectrum", "window needs at least 2 samples, got %d", len(samples))
	}
	if i := core.FirstNonFinite(samples); i >= 0 {
		return Estimate{}, errs.Numericalf("spectrum", "non-finite sample %v at index %d", samples[i], i)
	}

	var est Estimate
	switch e.cfg.method {
	case MethodAveraged:
		est = e.periodogram(samples, fs)
	case MethodWelch:
		est = e.welch(samples, fs)
	default:
		est = e.direct(samples, fs)
	}

	for i, p := range est.Power {
		est.Power[i] = core.NonNegative(p)
	}

	if e.cfg.rangeSet {
		est = est.Restrict(e.cfg.minHz, e.cfg.maxHz)
	}
	return est, nil
}

func (e *Estimator) direct(samples []float64, fs float64) Estimate {
	x := append([]float64(nil), samples...)
	window.Apply(e.cfg.taper, x, window.WithPeriodic())

	bins := realDFT(x)
	return Estimate{
		Freqs: Frequencies(len(bins), len(x), fs),
		Power: Power(bins),
	}
}

// periodogram computes a mean-removed, tapered, density-scaled one-sided
// periodogram over the whole window.
func (e *Estimator) periodogram(samples []float64, fs float64) Estimate {
	n := len(samples)
	x := append([]float64(nil), samples...)
	floats.AddConst(-floats.Sum(x)/float64(n), x)

	w := window.Generate(e.cfg.taper, n, window.WithPeriodic())
	_ = window.ApplyCoefficientsInPlace(x, w)

	bins := realDFT(x)
	power := Power(bins)

	scale := 1 / (fs * floats.Dot(w, w))
	last := len(power) - 1
	for k := range power {
		power[k] *= scale
		// One-sided: fold negative frequencies, except DC and an exact Nyquist bin.
		if k > 0 && !(k == last && n%2 == 0) {
			power[k] *= 2
		}
	}

	return Estimate{
		Freqs:   Frequencies(len(power), n, fs),
		Power:   power,
		Density: true,
	}
}

// welch averages overlapping sub-segments. Segment length defaults to half
// the window, is forced even, and never exceeds the window.
func (e *Estimator) welch(samples []float64, fs float64) Estimate {
	n := len(samples)

	seg := e.cfg.segmentLen
	if seg <= 0 {
		seg = n / 2
	}
	if seg > n {
		seg = n
	}
	seg &^= 1
	if seg < 2 {
		seg = 2
	}

	x := append([]float64(nil), samples...)
	floats.AddConst(-floats.Sum(x)/float64(n), x)

	taper := e.cfg.taper
	pxx, freqs := spectral.Pwelch(x, fs, &spectral.PwelchOptions{
		NFFT:     seg,
		Noverlap: int(float64(seg) * e.cfg.segmentOverlap),
		Window: func(m int) []float64 {
			return window.Generate(taper, m, window.WithPeriodic())
		},
	})

	return Estimate{Freqs: freqs, Power: pxx, Density: true}
}

// Restrict returns the points with lo <= f <= hi. The returned slices are
// sub-slices of e.
func (e Estimate) Restrict(lo, hi float64) Estimate {
	start, end := len(e.Freqs), len(e.Freqs)
	for i, f := range e.Freqs {
		if f >= lo {
			start = i
			break
		}
	}
	for i := start; i < len(e.Freqs); i++ {
		if e.Freqs[i] > hi {
			end = i
			break
		}
	}
	return Estimate{
		Freqs:   e.Freqs[start:end:end],
		Power:   e.Power[start:end:end],
		Density: e.Density,
	}
}
