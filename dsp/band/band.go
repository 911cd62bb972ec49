package band

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/bandpower/internal/errs"
)

// Definition is a named closed frequency interval [LowHz, HighHz].
type Definition struct {
	Name   string  `mapstructure:"name" yaml:"name"`
	LowHz  float64 `mapstructure:"low_hz" yaml:"low_hz"`
	HighHz float64 `mapstructure:"high_hz" yaml:"high_hz"`
}

// Width returns HighHz - LowHz.
func (d Definition) Width() float64 { return d.HighHz - d.LowHz }

// Contains reports whether f lies inside the closed interval.
func (d Definition) Contains(f float64) bool { return f >= d.LowHz && f <= d.HighHz }

func (d Definition) String() string {
	return fmt.Sprintf("%s (%g-%g Hz)", d.Name, d.LowHz, d.HighHz)
}

func (d Definition) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errs.Configf("band", "band name must not be empty")
	}
	if math.IsNaN(d.LowHz) || math.IsNaN(d.HighHz) || math.IsInf(d.LowHz, 0) || math.IsInf(d.HighHz, 0) {
		return errs.Configf("band", "band %q has non-finite bounds", d.Name)
	}
	if d.LowHz < 0 {
		return errs.Configf("band", "band %q low bound must be >= 0: %g", d.Name, d.LowHz)
	}
	if !(d.LowHz < d.HighHz) {
		return errs.Configf("band", "band %q requires low < high: %g >= %g", d.Name, d.LowHz, d.HighHz)
	}
	return nil
}

// Table is an ordered set of uniquely named band definitions.
// A Table is immutable once built.
type Table struct {
	defs  []Definition
	index map[string]int
}

// NewTable builds a table, rejecting empty tables, duplicate names and
// inverted bounds.
func NewTable(defs ...Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, errs.Configf("band", "band table must contain at least one band")
	}

	t := &Table{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		d.Name = strings.TrimSpace(d.Name)
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := t.index[d.Name]; dup {
			return nil, errs.Configf("band", "duplicate band name %q", d.Name)
		}
		t.index[d.Name] = len(t.defs)
		t.defs = append(t.defs, d)
	}

	return t, nil
}

// Len returns the number of bands.
func (t *Table) Len() int { return len(t.defs) }

// Definitions returns a copy of the bands in table order.
func (t *Table) Definitions() []Definition {
	return append([]Definition(nil), t.defs...)
}

// Names returns the band names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.defs))
	for i, d := range t.defs {
		out[i] = d.Name
	}
	return out
}

// At returns the i-th band.
func (t *Table) At(i int) Definition { return t.defs[i] }

// Lookup returns the band with the given name.
func (t *Table) Lookup(name string) (Definition, bool) {
	i, ok := t.index[name]
	if !ok {
		return Definition{}, false
	}
	return t.defs[i], true
}

// Union returns the lowest low bound and the highest high bound.
func (t *Table) Union() (lowHz, highHz float64) {
	lowHz, highHz = t.defs[0].LowHz, t.defs[0].HighHz
	for _, d := range t.defs[1:] {
		lowHz = math.Min(lowHz, d.LowHz)
		highHz = math.Max(highHz, d.HighHz)
	}
	return lowHz, highHz
}

// Validate checks every band against the Nyquist frequency of a recording.
func (t *Table) Validate(nyquist float64) error {
	for _, d := range t.defs {
		if d.HighHz > nyquist {
			return errs.Configf("band", "band %q high bound %g Hz exceeds Nyquist %g Hz", d.Name, d.HighHz, nyquist)
		}
	}
	return nil
}

// WithOverrides returns a new table where bands named in overrides replace
// the bound of the same name; unknown names are appended in override order.
func (t *Table) WithOverrides(overrides ...Definition) (*Table, error) {
	defs := t.Definitions()
	for _, o := range overrides {
		name := strings.TrimSpace(o.Name)
		if i, ok := t.index[name]; ok {
			defs[i] = Definition{Name: name, LowHz: o.LowHz, HighHz: o.HighHz}
			continue
		}
		defs = append(defs, o)
	}
	return NewTable(defs...)
}
