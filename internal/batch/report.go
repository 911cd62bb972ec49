package batch

import (
	"fmt"

	"github.com/cwbudde/bandpower/internal/config"
	"github.com/cwbudde/bandpower/internal/errs"
	"github.com/cwbudde/bandpower/internal/table"
	"github.com/cwbudde/bandpower/stats/aggregate"
	"github.com/cwbudde/bandpower/stats/amplitude"
	"github.com/cwbudde/bandpower/stats/frequency"
)

// Issue is one recoverable failure recorded during a run.
type Issue struct {
	File    string
	Channel string
	// Window is 1-based; 0 when the issue is not tied to a window.
	Window int
	Kind   errs.Kind
	Reason string
	Err    error
}

func (i Issue) String() string {
	s := i.File
	if i.Channel != "" {
		s += ", channel " + i.Channel
	}
	if i.Window > 0 {
		s += fmt.Sprintf(", window %d", i.Window)
	}
	return s + ": " + i.Reason
}

// Reconstruction is one band-limited copy of a channel.
type Reconstruction struct {
	File       string
	Channel    string
	Band       string
	SampleRate float64
	Samples    []float64
}

// Report is the outcome of a run. Rows of every table carry Bands in order.
type Report struct {
	Bands []string
	// Files lists the files with at least one processed channel, in run order.
	Files           []string
	Summaries       []aggregate.Summary
	Details         []aggregate.DetailRow
	Reconstructions []Reconstruction
	Issues          []Issue
	// Processed counts successful (file, channel) pairs.
	Processed int
}

// Channels returns channel names in order of first appearance.
func (r *Report) Channels() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range r.Summaries {
		if !seen[s.Channel] {
			seen[s.Channel] = true
			out = append(out, s.Channel)
		}
	}
	return out
}

type fileChannel struct{ file, channel string }

func (r *Report) summaryIndex() map[fileChannel]aggregate.Summary {
	idx := make(map[fileChannel]aggregate.Summary, len(r.Summaries))
	for _, s := range r.Summaries {
		idx[fileChannel{s.File, s.Channel}] = s
	}
	return idx
}

// Flatten returns one row per file with channel x band x {absolute,
// relative} columns. Cells of channels a file lacks are left empty.
func (r *Report) Flatten() table.Sheet {
	channels := r.Channels()
	header := []string{"file"}
	for _, ch := range channels {
		for _, b := range r.Bands {
			header = append(header, ch+"_"+b+"_absolute", ch+"_"+b+"_relative")
		}
	}

	idx := r.summaryIndex()
	rows := make([][]any, 0, len(r.Files))
	for _, f := range r.Files {
		row := make([]any, 0, len(header))
		row = append(row, f)
		for _, ch := range channels {
			s, ok := idx[fileChannel{f, ch}]
			for i := range r.Bands {
				if !ok {
					row = append(row, nil, nil)
					continue
				}
				row = append(row, s.Bands[i].Absolute, s.Bands[i].Relative)
			}
		}
		rows = append(rows, row)
	}

	return table.Sheet{Name: "relative_band_power", Header: header, Rows: rows}
}

// PerChannel returns one table per channel with a row per file.
func (r *Report) PerChannel() []table.Sheet {
	header := []string{"file", "windows", "total_power"}
	for _, b := range r.Bands {
		header = append(header, b+"_absolute", b+"_relative", b+"_absolute_std", b+"_relative_std")
	}
	header = append(header, amplitudeHeader...)
	header = append(header, shapeHeader...)

	var sheets []table.Sheet
	for _, ch := range r.Channels() {
		sheet := table.Sheet{Name: ch, Header: header}
		for _, s := range r.Summaries {
			if s.Channel != ch {
				continue
			}
			row := []any{s.File, s.Windows, s.Total}
			for _, b := range s.Bands {
				row = append(row, b.Absolute, b.Relative, b.AbsoluteStd, b.RelativeStd)
			}
			row = append(row, amplitudeCells(s.Amplitude)...)
			row = append(row, shapeCells(s.Shape)...)
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}

// DetailSheet returns the per-window rows.
func (r *Report) DetailSheet() table.Sheet {
	header := []string{"file", "channel", "window", "start_sample", "total_power"}
	for _, b := range r.Bands {
		header = append(header, b+"_absolute", b+"_relative")
	}
	header = append(header, shapeHeader...)

	rows := make([][]any, 0, len(r.Details))
	for _, d := range r.Details {
		row := []any{d.File, d.Channel, d.Window, d.StartSample, d.Total}
		for _, b := range d.Bands {
			row = append(row, b.Absolute, b.Relative)
		}
		row = append(row, shapeCells(d.Shape)...)
		rows = append(rows, row)
	}
	return table.Sheet{Name: "detail", Header: header, Rows: rows}
}

var amplitudeHeader = []string{"dc_offset", "rms", "peak_to_peak", "kurtosis", "crossing_rate_hz"}

func amplitudeCells(a amplitude.Stats) []any {
	return []any{a.Mean, a.RMS, a.PeakToPeak, a.Kurtosis, a.CrossingRate}
}

var shapeHeader = []string{"peak_hz", "centroid_hz", "median_hz", "edge_hz", "flatness"}

func shapeCells(d frequency.Descriptors) []any {
	return []any{d.PeakHz, d.CentroidHz, d.MedianHz, d.EdgeHz, d.Flatness}
}

// IssueSheet lists every recorded issue.
func (r *Report) IssueSheet() table.Sheet {
	s := table.Sheet{Name: "issues", Header: []string{"file", "channel", "window", "kind", "reason"}}
	for _, i := range r.Issues {
		s.Rows = append(s.Rows, []any{i.File, i.Channel, i.Window, i.Kind.String(), i.Reason})
	}
	return s
}

// Sheets assembles the output tables for a layout. Summary tables come
// first, then the detail table, then issues when there are any.
func (r *Report) Sheets(layout string, summary, detail bool) []table.Sheet {
	var out []table.Sheet
	if summary {
		if layout == config.LayoutPerChannel {
			out = append(out, r.PerChannel()...)
		} else {
			out = append(out, r.Flatten())
		}
	}
	if detail {
		out = append(out, r.DetailSheet())
	}
	if len(r.Issues) > 0 {
		out = append(out, r.IssueSheet())
	}
	return out
}
