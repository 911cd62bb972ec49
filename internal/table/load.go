package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/bandpower/internal/errs"
)

var (
	// ErrUnreadable means the file could not be opened or parsed.
	ErrUnreadable = errors.New("table: file unreadable")
	// ErrNoNumericColumns means no column held numeric samples.
	ErrNoNumericColumns = errors.New("table: no numeric columns")
	// ErrEmpty means the file had no header or no data rows.
	ErrEmpty = errors.New("table: no rows or columns")
)

// Loader reads one recording.
type Loader interface {
	Load(path string) (*Table, error)
}

// CSVLoader reads delimited text with a header row.
type CSVLoader struct {
	// Comma defaults to ','.
	Comma rune
}

func (l CSVLoader) Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(path, ErrUnreadable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if l.Comma != 0 {
		r.Comma = l.Comma
	}
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadError(path, ErrUnreadable, err)
		}
		rows = append(rows, rec)
	}

	return fromRows(path, rows)
}

// XLSXLoader reads one worksheet of a workbook.
type XLSXLoader struct {
	// Sheet defaults to the first sheet.
	Sheet string
}

func (l XLSXLoader) Load(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadError(path, ErrUnreadable, err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, loadError(path, ErrEmpty, nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, loadError(path, ErrUnreadable, err)
	}
	return fromRows(path, rows)
}

// ByExtension dispatches on the lowercase file extension.
type ByExtension map[string]Loader

// DefaultLoader handles .csv, .tsv, .txt and .xlsx.
func DefaultLoader() ByExtension {
	return ByExtension{
		".csv":  CSVLoader{},
		".txt":  CSVLoader{},
		".tsv":  CSVLoader{Comma: '\t'},
		".xlsx": XLSXLoader{},
	}
}

func (b ByExtension) Load(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := b[ext]
	if !ok {
		return nil, loadError(path, ErrUnreadable, fmt.Errorf("unsupported extension %q", ext))
	}
	return l.Load(path)
}

// fromRows turns header-plus-rows cells into numeric columns. A column is
// numeric when every cell down to its first blank parses as a float; cells
// after the first blank are ignored. A leading time column is removed and
// used to infer the sampling rate.
func fromRows(path string, rows [][]string) (*Table, error) {
	if len(rows) < 2 || len(rows[0]) == 0 {
		return nil, loadError(path, ErrEmpty, nil)
	}

	header := rows[0]
	body := rows[1:]

	var (
		cols     []Column
		firstCol = -1
	)
	for c, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column %d", c+1)
		}
		samples, ok := parseColumn(body, c)
		if !ok {
			continue
		}
		if len(cols) == 0 {
			firstCol = c
		}
		cols = append(cols, Column{Name: name, Key: Normalize(name), Samples: samples})
	}

	if len(cols) == 0 {
		return nil, loadError(path, ErrNoNumericColumns, nil)
	}

	var (
		timeCol Column
		rate    float64
	)
	// Only the first header cell may name the time axis.
	if ok, scale := isTimeHeader(cols[0].Name); ok && firstCol == 0 {
		timeCol = cols[0]
		rate = inferRate(timeCol.Samples, scale)
		cols = cols[1:]
	}
	if len(cols) == 0 {
		return nil, loadError(path, ErrNoNumericColumns, nil)
	}

	t := New(path, cols)
	t.Time, t.TimeName, t.SampleRate = timeCol.Samples, timeCol.Name, rate
	return t, nil
}

func parseColumn(body [][]string, c int) ([]float64, bool) {
	samples := make([]float64, 0, len(body))
	for _, row := range body {
		if c >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[c])
		if cell == "" {
			break
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		samples = append(samples, v)
	}
	return samples, len(samples) > 0
}

func loadError(path string, kind, cause error) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return &errs.Error{Kind: errs.IO, Op: "load", File: filepath.Base(path), Err: err}
}
