package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/bandpower/internal/config"
	"github.com/cwbudde/bandpower/internal/logging"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	verbose int

	cfg *config.Config
	log *zap.Logger
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"sampling-rate":  "sampling_rate",
	"preset":         "bands.preset",
	"window":         "window.seconds",
	"overlap":        "window.overlap_percent",
	"method":         "spectrum.method",
	"taper":          "spectrum.taper",
	"reference":      "relative.reference",
	"percentage":     "relative.percentage",
	"output":         "output.directory",
	"base":           "output.base",
	"layout":         "output.layout",
	"format":         "output.format",
	"detail":         "output.detail",
	"columns":        "columns",
	"reconstruct":    "reconstruct.enabled",
	"require-window": "require_window",
	"open":           "notify.open_folder",
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bandpower",
		Short: "Windowed spectral band-power analysis for EEG/ECG recordings",
		Long: `bandpower splits every channel of a folder of CSV/XLSX recordings into
overlapping windows, estimates each window's power spectrum, integrates it
over named frequency bands and writes absolute and relative band powers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync(a.log)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/bandpower.yaml)")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (-v debug)")

	root.AddCommand(newRunCmd(a), newBandsCmd(a), newTapersCmd(), newConfigCmd(a))
	return root
}

// load resolves the configuration from defaults, file, environment and the
// flags the command defines, then builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	a.cfg, err = config.Decode(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.log, err = logging.NewTo(cmd.ErrOrStderr(), logging.VerbosityLevel(a.cfg.Log.Level, a.verbose), a.cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
