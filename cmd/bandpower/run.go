package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/bandpower/internal/batch"
	"github.com/cwbudde/bandpower/internal/notify"
	"github.com/cwbudde/bandpower/internal/table"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Analyze every recording in a directory",
		Long: `Analyze every recording in dir (default: current directory) whose
extension is listed in the configuration. Results go to output.directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.run(cmd, dir)
		},
	}

	f := cmd.Flags()
	f.Float64("sampling-rate", 0, "sampling rate in Hz (0 infers it from a time column)")
	f.String("preset", "", "band preset (see 'bandpower bands')")
	f.Float64("window", 0, "window length in seconds")
	f.Float64("overlap", 0, "window overlap in percent")
	f.String("method", "", "spectral method: direct, averaged or welch")
	f.String("taper", "", "taper: rectangular, hann, hamming or blackman (default: rectangular for direct, hann otherwise)")
	f.String("reference", "", "relative power reference: range, union or sum")
	f.Bool("percentage", false, "report relative power in percent")
	f.StringP("output", "o", "", "output directory")
	f.String("base", "", "output file base name")
	f.String("layout", "", "summary layout: flat or per-channel")
	f.String("format", "", "output format: csv, xlsx or parquet")
	f.Bool("detail", false, "also write one row per window")
	f.StringSlice("columns", nil, "channels to analyze (default: all numeric columns)")
	f.Bool("reconstruct", false, "export zero-phase band-limited waveforms")
	f.Bool("require-window", false, "report channels shorter than one window as errors")
	f.Bool("open", false, "open the output folder when done")
	return cmd
}

func (a *app) run(cmd *cobra.Command, dir string) error {
	cfg, log := a.cfg, a.log
	out := cmd.OutOrStdout()

	files, err := batch.Discover(dir, cfg.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %v files in %s", cfg.Extensions, dir)
	}
	log.Info("starting batch", zap.String("dir", dir), zap.Int("files", len(files)))

	runner, err := batch.NewRunner(cfg, table.DefaultLoader(), log)
	if err != nil {
		return err
	}
	rep, err := runner.Run(cmd.Context(), files, nil)
	if err != nil {
		if errors.Is(err, batch.ErrNoDataProcessed) {
			return fmt.Errorf("%w: %d files, %d issues", err, len(files), len(rep.Issues))
		}
		return err
	}

	w, err := table.NewWriter(cfg.Output.Format)
	if err != nil {
		return err
	}
	written, err := batch.Write(rep, cfg, w)
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	fmt.Fprintf(out, "Processed %d channels in %d of %d files.\n", rep.Processed, len(rep.Files), len(files))
	for _, iss := range rep.Issues {
		fmt.Fprintf(out, "  skipped %s\n", iss)
	}
	for _, f := range written {
		fmt.Fprintf(out, "Wrote %s\n", f)
	}

	notifiers, err := notify.FromConfig(cmd.Context(), cfg.Notify)
	if err != nil {
		log.Warn("notifier unavailable", zap.Error(err))
	}
	notify.Run(cmd.Context(), log, notify.Result{Directory: cfg.Output.Directory, Files: written}, notifiers...)
	return nil
}
