package band

import (
	"sort"
	"strings"

	"github.com/cwbudde/bandpower/internal/errs"
)

const (
	// PresetEEGClassic spans 0.5-100 Hz with a 14-30 Hz beta band.
	PresetEEGClassic = "eeg-classic"
	// PresetEEGNarrow stops at 45 Hz and uses a 13-25 Hz beta band.
	PresetEEGNarrow = "eeg-narrow"
)

var presets = map[string][]Definition{
	PresetEEGClassic: {
		{Name: "delta", LowHz: 0.5, HighHz: 4},
		{Name: "theta", LowHz: 4, HighHz: 8},
		{Name: "alpha", LowHz: 8, HighHz: 13},
		{Name: "beta", LowHz: 14, HighHz: 30},
		{Name: "gamma", LowHz: 30, HighHz: 100},
	},
	PresetEEGNarrow: {
		{Name: "delta", LowHz: 0.5, HighHz: 4},
		{Name: "theta", LowHz: 4, HighHz: 8},
		{Name: "alpha", LowHz: 8, HighHz: 13},
		{Name: "beta", LowHz: 13, HighHz: 25},
		{Name: "gamma", LowHz: 25, HighHz: 45},
	},
}

// Preset returns a fresh table for a named preset.
func Preset(name string) (*Table, error) {
	defs, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errs.Configf("band", "unknown band preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return NewTable(defs...)
}

// PresetNames lists the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
