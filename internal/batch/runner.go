// Package batch runs the band-power pipeline over a set of recordings and
// collects summaries, detail rows and reconstructions into a Report.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cwbudde/bandpower/dsp/filter/zerophase"
	"github.com/cwbudde/bandpower/internal/config"
	"github.com/cwbudde/bandpower/internal/errs"
	"github.com/cwbudde/bandpower/internal/logging"
	"github.com/cwbudde/bandpower/internal/table"
	"github.com/cwbudde/bandpower/measure/bandpower"
	"github.com/cwbudde/bandpower/stats/aggregate"
	"github.com/cwbudde/bandpower/stats/amplitude"
)

// ErrNoDataProcessed means no (file, channel) pair produced a result.
var ErrNoDataProcessed = errors.New("batch: no data processed")

// Runner processes files one at a time. A Runner is not safe for
// concurrent use.
type Runner struct {
	Loader   table.Loader
	Config   *config.Config
	Logger   *zap.Logger
	Progress logging.Progress
	// Reconstruct enables band-limited exports; nil disables them.
	Reconstruct *zerophase.Reconstructor
}

// NewRunner wires a runner from a validated configuration.
func NewRunner(cfg *config.Config, loader table.Loader, log *zap.Logger) (*Runner, error) {
	r := &Runner{Loader: loader, Config: cfg, Logger: log, Progress: logging.NewProgress(log)}
	if cfg.Reconstruct.Enabled {
		family, err := zerophase.ParseFamily(cfg.Reconstruct.Family)
		if err != nil {
			return nil, err
		}
		r.Reconstruct = &zerophase.Reconstructor{Order: cfg.Reconstruct.Order, Family: family}
	}
	return r, nil
}

// Run analyzes files in order. selectors name the channels to analyze;
// when empty the configured columns are used, and when those are empty
// every numeric column is.
//
// A configuration error is returned before any file is read. Per-file,
// per-channel and per-window failures are recorded in Report.Issues and
// processing continues. Cancellation is honored between files. When no
// channel succeeds, the partial report is returned with ErrNoDataProcessed.
func (r *Runner) Run(ctx context.Context, files, selectors []string) (*Report, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	progress := r.Progress
	if progress == nil {
		progress = logging.Discard{}
	}
	if r.Config == nil {
		return nil, errs.Configf("batch", "no configuration")
	}
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	p, err := newPlan(r.Config)
	if err != nil {
		return nil, err
	}
	if len(selectors) == 0 {
		selectors = r.Config.Columns
	}

	rep := &Report{Bands: p.bands.Names()}
	fr := fileRun{Runner: r, log: log, progress: progress, plan: p, report: rep}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("batch canceled", zap.Int("done", i), zap.Int("total", len(files)))
			return rep, fmt.Errorf("batch canceled after %d of %d files: %w", i, len(files), err)
		}
		fr.file(path, selectors)
		progress.OnProgress(i+1, len(files))
	}

	if rep.Processed == 0 {
		return rep, ErrNoDataProcessed
	}
	log.Info("batch finished",
		zap.Int("files", len(files)),
		zap.Int("channels", rep.Processed),
		zap.Int("issues", len(rep.Issues)),
	)
	return rep, nil
}

// fileRun carries the per-run state shared by the per-file steps.
type fileRun struct {
	*Runner
	log      *zap.Logger
	progress logging.Progress
	plan     *plan
	report   *Report
}

func (fr *fileRun) file(path string, selectors []string) {
	name := filepath.Base(path)
	log := fr.log.With(zap.String("file", name))

	tab, err := fr.Loader.Load(path)
	if err != nil {
		fr.issue(log, Issue{File: name, Kind: errs.KindOf(err), Reason: "unreadable file", Err: err})
		return
	}

	fs := fr.Config.SamplingRate
	if fs == 0 {
		fs = tab.SampleRate
	}
	rp, err := fr.plan.forRate(fs)
	if err != nil {
		fr.issue(log, Issue{File: name, Kind: errs.KindOf(err), Reason: "unusable sampling rate or bands", Err: err})
		return
	}

	processed := 0
	for _, ch := range selectColumns(tab, selectors) {
		if !ch.found {
			fr.issue(log, Issue{File: name, Channel: ch.name, Kind: errs.MissingColumn, Reason: "missing column", Err: errs.Missing("select", ch.name)})
			continue
		}
		if fr.channel(log, rp, name, ch.name, ch.samples) {
			processed++
		}
	}

	if processed > 0 {
		fr.report.Files = append(fr.report.Files, name)
		fr.report.Processed += processed
		fr.progress.OnMessage(fmt.Sprintf("processed %s (%d channels)", name, processed))
	}
}

// channel analyzes one series and reports whether it produced a summary.
func (fr *fileRun) channel(log *zap.Logger, rp *ratePlan, file, channel string, series []float64) bool {
	log = log.With(zap.String("channel", channel))

	windows, err := rp.windows(series)
	if err != nil {
		fr.issue(log, Issue{File: file, Channel: channel, Kind: errs.KindOf(err), Reason: "segmentation failed", Err: err})
		return false
	}
	if len(windows) == 0 {
		if !fr.Config.RequireWindow {
			log.Debug("channel has no complete window", zap.Int("samples", len(series)), zap.Int("window", rp.windowLen))
			return false
		}
		fr.issue(log, Issue{
			File: file, Channel: channel, Kind: errs.Numerical, Reason: "series shorter than one window",
			Err: errs.Numericalf("segment", "%d samples, window needs %d", len(series), rp.windowLen),
		})
		return false
	}

	results := make([]bandpower.WindowResult, 0, len(windows))
	for i, w := range windows {
		est, err := rp.est.Estimate(w.Samples, rp.fs)
		if err != nil {
			fr.issue(log, Issue{File: file, Channel: channel, Window: i + 1, Kind: errs.KindOf(err), Reason: "window skipped", Err: err})
			continue
		}
		results = append(results, fr.plan.integrator.Window(w.Start, est))
	}

	names := fr.plan.bands.Names()
	summary, ok := aggregate.Summarize(file, channel, names, results)
	if !ok {
		return false
	}
	summary.Amplitude = amplitude.Calculate(series, rp.fs)
	if summary.Amplitude.Flat(0) {
		log.Warn("channel is flat", zap.Float64("value", summary.Amplitude.Mean))
	}
	fr.report.Summaries = append(fr.report.Summaries, summary)
	if fr.Config.Output.Detail {
		fr.report.Details = append(fr.report.Details, aggregate.Detail(file, channel, names, results)...)
	}

	if fr.Reconstruct != nil {
		fr.reconstruct(log, rp.fs, file, channel, series)
	}

	log.Debug("channel processed", zap.Int("windows", len(results)), zap.Float64("fs", rp.fs))
	return true
}

func (fr *fileRun) reconstruct(log *zap.Logger, fs float64, file, channel string, series []float64) {
	for _, d := range fr.plan.bands.Definitions() {
		out, err := fr.Reconstruct.Reconstruct(series, d, fs)
		if err != nil {
			fr.issue(log.With(zap.String("band", d.Name)), Issue{
				File: file, Channel: channel, Kind: errs.KindOf(err),
				Reason: "band " + d.Name + " not reconstructed", Err: err,
			})
			continue
		}
		fr.report.Reconstructions = append(fr.report.Reconstructions, Reconstruction{
			File: file, Channel: channel, Band: d.Name, SampleRate: fs, Samples: out,
		})
	}
}

// issue records iss with file and channel context. Errors of unknown kind
// are filed as IO errors.
func (fr *fileRun) issue(log *zap.Logger, iss Issue) {
	if iss.Kind == 0 {
		iss.Kind = errs.IO
	}
	if iss.Err != nil {
		iss.Err = errs.WithContext(iss.Err, iss.Kind, iss.File, iss.Channel)
	}
	fr.report.Issues = append(fr.report.Issues, iss)

	fields := []zap.Field{zap.String("reason", iss.Reason), zap.Stringer("kind", iss.Kind)}
	if iss.Window > 0 {
		fields = append(fields, zap.Int("window", iss.Window))
	}
	if iss.Err != nil {
		fields = append(fields, zap.Error(iss.Err))
	}
	switch iss.Kind {
	case errs.MissingColumn:
		log.Info("skipping channel", fields...)
		fr.progress.OnMessage("skipped " + iss.String())
	default:
		log.Warn("processing error", fields...)
		fr.progress.OnMessage("error " + iss.String())
	}
}

type selection struct {
	name    string
	samples []float64
	found   bool
}

// selectColumns resolves selectors against a table. Empty selectors pick
// every column under its header name; otherwise channels keep the
// selector's spelling so rows line up across files.
func selectColumns(tab *table.Table, selectors []string) []selection {
	if len(selectors) == 0 {
		out := make([]selection, len(tab.Columns))
		for i, c := range tab.Columns {
			out[i] = selection{name: c.Name, samples: c.Samples, found: true}
		}
		return out
	}

	out := make([]selection, 0, len(selectors))
	for _, s := range selectors {
		c, ok := tab.Lookup(s)
		out = append(out, selection{name: s, samples: c.Samples, found: ok})
	}
	return out
}
