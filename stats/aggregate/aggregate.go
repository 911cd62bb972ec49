// Package aggregate reduces per-window band powers to per-channel report
// rows: a mean summary or one detail row per window.
package aggregate

import (
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/bandpower/measure/bandpower"
	"github.com/cwbudde/bandpower/stats/amplitude"
	"github.com/cwbudde/bandpower/stats/frequency"
)

// BandStat is the across-window statistic of one band.
type BandStat struct {
	Band     string
	Absolute float64
	Relative float64
	// Standard deviations across windows; zero for a single window.
	AbsoluteStd float64
	RelativeStd float64
}

// Summary is the aggregate-mode row of one (file, channel) pair.
type Summary struct {
	File    string
	Channel string
	Windows int
	// Total is the mean reference power across windows.
	Total float64
	Bands []BandStat
	// Shape holds the across-window mean of each spectral descriptor.
	Shape frequency.Descriptors
	// Amplitude describes the whole series, not individual windows.
	Amplitude amplitude.Stats
}

// Band returns the statistic of a named band.
func (s Summary) Band(name string) (BandStat, bool) {
	for _, b := range s.Bands {
		if b.Band == name {
			return b, true
		}
	}
	return BandStat{}, false
}

// DetailRow is one window of one (file, channel) pair.
type DetailRow struct {
	File        string
	Channel     string
	Window      int // 1-based
	StartSample int
	Total       float64
	Bands       []bandpower.Result
	Shape       frequency.Descriptors
}

// Summarize averages every band over the windows. Band i of every window
// must correspond to names[i]. With no windows the channel has no summary
// and ok is false.
func Summarize(file, channel string, names []string, windows []bandpower.WindowResult) (s Summary, ok bool) {
	if len(windows) == 0 {
		return Summary{}, false
	}

	s = Summary{
		File:    file,
		Channel: channel,
		Windows: len(windows),
		Bands:   make([]BandStat, len(names)),
	}

	abs := make([]float64, len(windows))
	rel := make([]float64, len(windows))
	for i, name := range names {
		for w := range windows {
			abs[w] = windows[w].Bands[i].Absolute
			rel[w] = windows[w].Bands[i].Relative
		}
		s.Bands[i] = BandStat{Band: name}
		s.Bands[i].Absolute, s.Bands[i].AbsoluteStd = meanStd(abs)
		s.Bands[i].Relative, s.Bands[i].RelativeStd = meanStd(rel)
	}

	for w := range windows {
		abs[w] = windows[w].Total
	}
	s.Total = stat.Mean(abs, nil)
	s.Shape = meanShape(windows)

	return s, true
}

// Detail emits one row per window with contiguous 1-based indices.
func Detail(file, channel string, names []string, windows []bandpower.WindowResult) []DetailRow {
	if len(windows) == 0 {
		return nil
	}

	rows := make([]DetailRow, len(windows))
	for w, win := range windows {
		bands := make([]bandpower.Result, len(names))
		for i, name := range names {
			bands[i] = win.Bands[i]
			bands[i].Band = name
		}
		rows[w] = DetailRow{
			File:        file,
			Channel:     channel,
			Window:      w + 1,
			StartSample: win.Start,
			Total:       win.Total,
			Bands:       bands,
			Shape:       win.Shape,
		}
	}
	return rows
}

func meanStd(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

func meanShape(windows []bandpower.WindowResult) frequency.Descriptors {
	field := func(get func(frequency.Descriptors) float64) float64 {
		x := make([]float64, len(windows))
		for i, w := range windows {
			x[i] = get(w.Shape)
		}
		return stat.Mean(x, nil)
	}
	return frequency.Descriptors{
		PeakHz:      field(func(d frequency.Descriptors) float64 { return d.PeakHz }),
		CentroidHz:  field(func(d frequency.Descriptors) float64 { return d.CentroidHz }),
		SpreadHz:    field(func(d frequency.Descriptors) float64 { return d.SpreadHz }),
		MedianHz:    field(func(d frequency.Descriptors) float64 { return d.MedianHz }),
		EdgeHz:      field(func(d frequency.Descriptors) float64 { return d.EdgeHz }),
		Flatness:    field(func(d frequency.Descriptors) float64 { return d.Flatness }),
		BandwidthHz: field(func(d frequency.Descriptors) float64 { return d.BandwidthHz }),
	}
}
