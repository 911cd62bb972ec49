package batch

import (
	"path/filepath"
	"strings"

	"github.com/cwbudde/bandpower/internal/config"
	"github.com/cwbudde/bandpower/internal/table"
)

// Write stores the report under cfg.Output using w, then the band-limited
// waveforms as one <file>_bandpassed.csv per input file. It returns every
// file written. Any write failure is returned; the caller treats it as
// fatal.
func Write(rep *Report, cfg *config.Config, w table.Writer) ([]string, error) {
	dir := cfg.Output.Directory
	sheets := rep.Sheets(cfg.Output.Layout, cfg.Output.Summary, cfg.Output.Detail)

	files, err := w.Write(sheets, filepath.Join(dir, cfg.Output.Base))
	if err != nil {
		return files, err
	}

	for _, s := range rep.ReconstructionSheets() {
		stem := strings.TrimSuffix(s.Name, filepath.Ext(s.Name))
		written, err := table.CSVWriter{}.Write([]table.Sheet{{Name: "bandpassed", Header: s.Header, Rows: s.Rows}}, filepath.Join(dir, stem))
		files = append(files, written...)
		if err != nil {
			return files, err
		}
	}
	return files, nil
}

// ReconstructionSheets groups reconstructions by input file. Each sheet is
// named after the file and has a time column followed by one
// <channel>_<band> column per reconstruction.
func (r *Report) ReconstructionSheets() []table.Sheet {
	var (
		order  []string
		byFile = make(map[string][]Reconstruction)
	)
	for _, rc := range r.Reconstructions {
		if _, ok := byFile[rc.File]; !ok {
			order = append(order, rc.File)
		}
		byFile[rc.File] = append(byFile[rc.File], rc)
	}

	sheets := make([]table.Sheet, 0, len(order))
	for _, f := range order {
		recs := byFile[f]
		header := []string{"time"}
		rows := 0
		for _, rc := range recs {
			header = append(header, rc.Channel+"_"+rc.Band)
			rows = max(rows, len(rc.Samples))
		}

		fs := recs[0].SampleRate
		data := make([][]any, rows)
		for i := range data {
			row := make([]any, 0, len(header))
			row = append(row, float64(i)/fs)
			for _, rc := range recs {
				if i < len(rc.Samples) {
					row = append(row, rc.Samples[i])
				} else {
					row = append(row, nil)
				}
			}
			data[i] = row
		}
		sheets = append(sheets, table.Sheet{Name: f, Header: header, Rows: data})
	}
	return sheets
}
