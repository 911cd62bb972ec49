// Package config loads and validates the immutable run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/filter/zerophase"
	"github.com/cwbudde/bandpower/dsp/spectrum"
	"github.com/cwbudde/bandpower/internal/errs"
)

// EnvPrefix prefixes environment overrides, e.g. BANDPOWER_WINDOW_SECONDS.
const EnvPrefix = "BANDPOWER"

// Layout and format names accepted in output.layout / output.format.
const (
	LayoutFlat       = "flat"
	LayoutPerChannel = "per-channel"

	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
)

// Reference names accepted in relative.reference.
const (
	ReferenceRange = "range"
	ReferenceUnion = "union"
	ReferenceSum   = "sum"
)

type BandsConfig struct {
	Preset    string            `mapstructure:"preset" yaml:"preset"`
	Overrides []band.Definition `mapstructure:"overrides" yaml:"overrides,omitempty"`
}

type WindowConfig struct {
	Seconds        float64 `mapstructure:"seconds" yaml:"seconds"`
	OverlapPercent float64 `mapstructure:"overlap_percent" yaml:"overlap_percent"`
	// Sliding=false analyzes each channel as one whole-series window.
	Sliding bool `mapstructure:"sliding" yaml:"sliding"`
}

type SpectrumConfig struct {
	Method                string  `mapstructure:"method" yaml:"method"`
	// Taper overrides the method's own taper: rectangular for direct,
	// hann for averaged and welch. Empty keeps the method default.
	Taper                 string  `mapstructure:"taper" yaml:"taper"`
	SegmentSeconds        float64 `mapstructure:"segment_seconds" yaml:"segment_seconds"`
	SegmentOverlapPercent float64 `mapstructure:"segment_overlap_percent" yaml:"segment_overlap_percent"`
	MinHz                 float64 `mapstructure:"min_hz" yaml:"min_hz"`
	MaxHz                 float64 `mapstructure:"max_hz" yaml:"max_hz"`
}

type RelativeConfig struct {
	Reference  string  `mapstructure:"reference" yaml:"reference"`
	LowHz      float64 `mapstructure:"low_hz" yaml:"low_hz"`
	HighHz     float64 `mapstructure:"high_hz" yaml:"high_hz"`
	Percentage bool    `mapstructure:"percentage" yaml:"percentage"`
}

type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	// Base names the result files, e.g. <base>_relative_band_power.xlsx.
	Base    string `mapstructure:"base" yaml:"base"`
	Layout  string `mapstructure:"layout" yaml:"layout"`
	Format  string `mapstructure:"format" yaml:"format"`
	Summary bool   `mapstructure:"summary" yaml:"summary"`
	Detail  bool   `mapstructure:"detail" yaml:"detail"`
}

type ReconstructConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Order   int    `mapstructure:"order" yaml:"order"`
	Family  string `mapstructure:"family" yaml:"family"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	Region    string `mapstructure:"region" yaml:"region"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	PathStyle bool   `mapstructure:"path_style" yaml:"path_style"`
	// Static credentials; empty uses the default AWS credential chain.
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"-"`
}

type NotifyConfig struct {
	OpenFolder bool     `mapstructure:"open_folder" yaml:"open_folder"`
	S3         S3Config `mapstructure:"s3" yaml:"s3"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Config is the full run configuration. Treat it as read-only once
// Validate has succeeded.
type Config struct {
	// SamplingRate in Hz; 0 infers it from a time column.
	SamplingRate  float64           `mapstructure:"sampling_rate" yaml:"sampling_rate"`
	Bands         BandsConfig       `mapstructure:"bands" yaml:"bands"`
	Window        WindowConfig      `mapstructure:"window" yaml:"window"`
	Spectrum      SpectrumConfig    `mapstructure:"spectrum" yaml:"spectrum"`
	Relative      RelativeConfig    `mapstructure:"relative" yaml:"relative"`
	Output        OutputConfig      `mapstructure:"output" yaml:"output"`
	Reconstruct   ReconstructConfig `mapstructure:"reconstruct" yaml:"reconstruct"`
	Columns       []string          `mapstructure:"columns" yaml:"columns"`
	Extensions    []string          `mapstructure:"extensions" yaml:"extensions"`
	RequireWindow bool              `mapstructure:"require_window" yaml:"require_window"`
	Notify        NotifyConfig      `mapstructure:"notify" yaml:"notify"`
	Log           LogConfig         `mapstructure:"log" yaml:"log"`
}

// Default returns the built-in configuration: 500 Hz, 2 s windows with 50 %
// overlap, Hann periodogram PSD, classic EEG bands over 0.5-100 Hz.
func Default() Config {
	return Config{
		SamplingRate: 500,
		Bands:        BandsConfig{Preset: band.PresetEEGClassic},
		Window:       WindowConfig{Seconds: 2, OverlapPercent: 50, Sliding: true},
		Spectrum: SpectrumConfig{
			Method:                spectrum.MethodAveraged.String(),
			SegmentOverlapPercent: 50,
			MinHz:                 0.5,
			MaxHz:                 100,
		},
		Relative: RelativeConfig{Reference: ReferenceRange, LowHz: 0.5, HighHz: 100},
		Output: OutputConfig{
			Directory: "output",
			Base:      "EEG",
			Layout:    LayoutFlat,
			Format:    FormatXLSX,
			Summary:   true,
		},
		Reconstruct: ReconstructConfig{Order: zerophase.DefaultOrder, Family: zerophase.FamilyButterworth.String()},
		Extensions:  []string{".csv", ".xlsx"},
		Log:         LogConfig{Level: "info", Format: "console"},
	}
}

// DefaultPath is the config file consulted when none is given.
func DefaultPath() string {
	return os.ExpandEnv("$HOME/.config/bandpower.yaml")
}

// NewViper returns a viper instance seeded with defaults, environment
// overrides and, when it exists, the config file. An explicit file that
// cannot be read is an error; a missing default file is not.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.New(errs.Configuration, "config", fmt.Errorf("error reading config file %s: %w", file, err))
		}
		return v, nil
	}

	v.SetConfigName("bandpower")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Dir(DefaultPath()))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errs.New(errs.Configuration, "config", fmt.Errorf("error reading config: %w", err))
		}
	}
	return v, nil
}

// Decode unmarshals and validates a configured viper instance.
func Decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errs.New(errs.Configuration, "config", fmt.Errorf("error unmarshaling config: %w", err))
	}

	c.Output.Directory = expandPath(c.Output.Directory)
	c.Extensions = normalizeExtensions(c.Extensions)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load is NewViper followed by Decode.
func Load(file string) (*Config, error) {
	v, err := NewViper(file)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("sampling_rate", d.SamplingRate)
	v.SetDefault("bands.preset", d.Bands.Preset)
	v.SetDefault("window.seconds", d.Window.Seconds)
	v.SetDefault("window.overlap_percent", d.Window.OverlapPercent)
	v.SetDefault("window.sliding", d.Window.Sliding)
	v.SetDefault("spectrum.method", d.Spectrum.Method)
	v.SetDefault("spectrum.taper", d.Spectrum.Taper)
	v.SetDefault("spectrum.segment_seconds", d.Spectrum.SegmentSeconds)
	v.SetDefault("spectrum.segment_overlap_percent", d.Spectrum.SegmentOverlapPercent)
	v.SetDefault("spectrum.min_hz", d.Spectrum.MinHz)
	v.SetDefault("spectrum.max_hz", d.Spectrum.MaxHz)
	v.SetDefault("relative.reference", d.Relative.Reference)
	v.SetDefault("relative.low_hz", d.Relative.LowHz)
	v.SetDefault("relative.high_hz", d.Relative.HighHz)
	v.SetDefault("relative.percentage", d.Relative.Percentage)
	v.SetDefault("output.directory", d.Output.Directory)
	v.SetDefault("output.base", d.Output.Base)
	v.SetDefault("output.layout", d.Output.Layout)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.summary", d.Output.Summary)
	v.SetDefault("output.detail", d.Output.Detail)
	v.SetDefault("reconstruct.enabled", d.Reconstruct.Enabled)
	v.SetDefault("reconstruct.order", d.Reconstruct.Order)
	v.SetDefault("reconstruct.family", d.Reconstruct.Family)
	v.SetDefault("columns", d.Columns)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("require_window", d.RequireWindow)
	v.SetDefault("notify.open_folder", d.Notify.OpenFolder)
	v.SetDefault("notify.s3.bucket", "")
	v.SetDefault("notify.s3.prefix", "")
	v.SetDefault("notify.s3.region", "")
	v.SetDefault("notify.s3.endpoint", "")
	v.SetDefault("notify.s3.path_style", false)
	v.SetDefault("notify.s3.access_key_id", "")
	v.SetDefault("notify.s3.secret_access_key", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
