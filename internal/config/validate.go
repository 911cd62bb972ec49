package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/bandpower/dsp/band"
	"github.com/cwbudde/bandpower/dsp/filter/zerophase"
	"github.com/cwbudde/bandpower/dsp/spectrum"
	"github.com/cwbudde/bandpower/dsp/window"
	"github.com/cwbudde/bandpower/internal/errs"
)

// Validate reports every invalid setting at once as a single
// configuration error.
func (c *Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if c.SamplingRate < 0 {
		add("sampling_rate must be >= 0, got %g", c.SamplingRate)
	}

	if _, err := c.BandTable(); err != nil {
		problems = append(problems, fmt.Errorf("bands: %w", err))
	}

	if c.Window.Sliding && !(c.Window.Seconds > 0) {
		add("window.seconds must be > 0, got %g", c.Window.Seconds)
	}
	if c.Window.OverlapPercent < 0 || c.Window.OverlapPercent >= 100 {
		add("window.overlap_percent must be in [0, 100), got %g", c.Window.OverlapPercent)
	}

	if _, err := spectrum.ParseMethod(c.Spectrum.Method); err != nil {
		add("spectrum.method: %v", err)
	}
	if _, err := window.Parse(c.Spectrum.Taper); err != nil {
		add("spectrum.taper: %v", err)
	}
	if c.Spectrum.SegmentSeconds < 0 {
		add("spectrum.segment_seconds must be >= 0, got %g", c.Spectrum.SegmentSeconds)
	}
	if c.Spectrum.SegmentOverlapPercent < 0 || c.Spectrum.SegmentOverlapPercent >= 100 {
		add("spectrum.segment_overlap_percent must be in [0, 100), got %g", c.Spectrum.SegmentOverlapPercent)
	}
	if c.Spectrum.MinHz != 0 || c.Spectrum.MaxHz != 0 {
		if c.Spectrum.MinHz < 0 || !(c.Spectrum.MinHz < c.Spectrum.MaxHz) {
			add("spectrum.min_hz/max_hz must satisfy 0 <= min < max, got %g/%g", c.Spectrum.MinHz, c.Spectrum.MaxHz)
		}
	}

	switch c.Relative.Reference {
	case ReferenceRange:
		if c.Relative.LowHz < 0 || !(c.Relative.LowHz < c.Relative.HighHz) {
			add("relative.low_hz/high_hz must satisfy 0 <= low < high, got %g/%g", c.Relative.LowHz, c.Relative.HighHz)
		}
	case ReferenceUnion, ReferenceSum:
	default:
		add("relative.reference must be %q, %q or %q, got %q", ReferenceRange, ReferenceUnion, ReferenceSum, c.Relative.Reference)
	}

	switch c.Output.Layout {
	case LayoutFlat, LayoutPerChannel:
	default:
		add("output.layout must be %q or %q, got %q", LayoutFlat, LayoutPerChannel, c.Output.Layout)
	}
	switch c.Output.Format {
	case FormatCSV, FormatXLSX, FormatParquet:
	default:
		add("output.format must be one of csv, xlsx, parquet, got %q", c.Output.Format)
	}
	if !c.Output.Summary && !c.Output.Detail {
		add("output: at least one of summary or detail must be enabled")
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		add("output.directory must not be empty")
	}

	if c.Reconstruct.Enabled {
		if c.Reconstruct.Order < 1 {
			add("reconstruct.order must be >= 1, got %d", c.Reconstruct.Order)
		}
		if _, err := zerophase.ParseFamily(c.Reconstruct.Family); err != nil {
			add("reconstruct.family: %v", err)
		}
	}

	if len(c.Extensions) == 0 {
		add("extensions must list at least one file extension")
	}
	for i, col := range c.Columns {
		if strings.TrimSpace(col) == "" {
			add("columns[%d] must not be blank", i)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errs.New(errs.Configuration, "config", errors.Join(problems...))
}

// BandTable resolves the preset and applies the overrides. A blank preset
// with overrides uses the overrides alone.
func (c *Config) BandTable() (*band.Table, error) {
	if strings.TrimSpace(c.Bands.Preset) == "" {
		return band.NewTable(c.Bands.Overrides...)
	}

	table, err := band.Preset(c.Bands.Preset)
	if err != nil {
		return nil, err
	}
	if len(c.Bands.Overrides) == 0 {
		return table, nil
	}
	return table.WithOverrides(c.Bands.Overrides...)
}
