// Package table reads recordings stored as header-plus-rows tables and
// writes result tables as CSV, XLSX or Parquet.
package table

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Column is one numeric channel of a loaded table.
type Column struct {
	// Name is the header text as found in the file.
	Name string
	// Key is Normalize(Name), used for lookups.
	Key     string
	Samples []float64
}

// Table is a loaded recording. Columns keep file order.
type Table struct {
	Path    string
	Columns []Column
	// Time holds the dropped leading time column, if any.
	Time     []float64
	TimeName string
	// SampleRate is inferred from Time; 0 when unknown.
	SampleRate float64

	index map[string]int
}

// Normalize lowercases a column name, trims it and collapses inner
// whitespace, so " Fp1 " and "fp1" select the same channel.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// New builds a table from columns, filling in missing keys.
func New(path string, cols []Column) *Table {
	t := &Table{Path: path, Columns: cols, index: make(map[string]int, len(cols))}
	for i := range t.Columns {
		if t.Columns[i].Key == "" {
			t.Columns[i].Key = Normalize(t.Columns[i].Name)
		}
		if _, dup := t.index[t.Columns[i].Key]; !dup {
			t.index[t.Columns[i].Key] = i
		}
	}
	return t
}

// Lookup finds a column by name after normalization. The first of several
// columns with the same normalized name wins.
func (t *Table) Lookup(name string) (Column, bool) {
	i, ok := t.index[Normalize(name)]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// Names returns the column names in file order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Rows returns the longest column length.
func (t *Table) Rows() int {
	n := 0
	for _, c := range t.Columns {
		n = max(n, len(c.Samples))
	}
	return n
}

// timeHeaders maps normalized time-axis headers to their scale in seconds.
// Other names, such as "timing" or "timeline", are channels.
var timeHeaders = map[string]float64{
	"t":            1,
	"time":         1,
	"timestamp":    1,
	"seconds":      1,
	"time_s":       1,
	"time (s)":     1,
	"time(s)":      1,
	"time [s]":     1,
	"ms":           1e-3,
	"time_ms":      1e-3,
	"timestamp_ms": 1e-3,
	"time (ms)":    1e-3,
	"time(ms)":     1e-3,
	"time [ms]":    1e-3,
}

// isTimeHeader reports whether a header names a time axis.
func isTimeHeader(name string) (ok bool, scale float64) {
	scale, ok = timeHeaders[Normalize(name)]
	return ok, scale
}

// inferRate returns 1/median(diff(t)), or 0 if t is too short or not
// increasing.
func inferRate(t []float64, scale float64) float64 {
	if len(t) < 2 {
		return 0
	}
	d := make([]float64, len(t)-1)
	for i := range d {
		d[i] = (t[i+1] - t[i]) * scale
	}
	sort.Float64s(d)

	dt := stat.Quantile(0.5, stat.Empirical, d, nil)
	if !(dt > 0) {
		return 0
	}
	return 1 / dt
}
