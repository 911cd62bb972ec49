package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	parquet "github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/bandpower/internal/errs"
)

// Sheet is one named result table.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Writer stores sheets under dest, a path without extension. It returns
// the files it created.
type Writer interface {
	Write(sheets []Sheet, dest string) ([]string, error)
}

// NewWriter returns the writer for format: "csv", "xlsx" or "parquet".
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv":
		return CSVWriter{}, nil
	case "xlsx", "":
		return XLSXWriter{}, nil
	case "parquet":
		return ParquetWriter{}, nil
	default:
		return nil, errs.Configf("output", "unknown output format %q", format)
	}
}

// CSVWriter writes one <dest>_<sheet>.csv file per sheet.
type CSVWriter struct{}

func (CSVWriter) Write(sheets []Sheet, dest string) ([]string, error) {
	if err := ensureDir(dest); err != nil {
		return nil, err
	}
	names := SheetNames(sheetTitles(sheets))

	var files []string
	for i, s := range sheets {
		path := dest + "_" + names[i] + ".csv"
		if err := writeCSV(path, s); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func writeCSV(path string, s Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return writeError(path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(s.Header); err != nil {
		f.Close()
		return writeError(path, err)
	}
	rec := make([]string, 0, len(s.Header))
	for _, row := range s.Rows {
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, FormatCell(v))
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return writeError(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return writeError(path, err)
	}
	if err := f.Close(); err != nil {
		return writeError(path, err)
	}
	return nil
}

// XLSXWriter writes all sheets into one <dest>.xlsx workbook.
type XLSXWriter struct{}

func (XLSXWriter) Write(sheets []Sheet, dest string) ([]string, error) {
	if err := ensureDir(dest); err != nil {
		return nil, err
	}
	path := dest + ".xlsx"

	f := excelize.NewFile()
	defer f.Close()

	names := SheetNames(sheetTitles(sheets))
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), names[0]); err != nil {
				return nil, writeError(path, err)
			}
		} else if _, err := f.NewSheet(names[i]); err != nil {
			return nil, writeError(path, err)
		}
		if err := streamSheet(f, names[i], s); err != nil {
			return nil, writeError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return nil, writeError(path, err)
	}
	return []string{path}, nil
}

func streamSheet(f *excelize.File, name string, s Sheet) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}

	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for r, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// ParquetRecord is one cell of a sheet in long format.
type ParquetRecord struct {
	Sheet  string   `parquet:"sheet,dict"`
	Row    int64    `parquet:"row"`
	Column string   `parquet:"column,dict"`
	Value  *float64 `parquet:"value,optional"`
	Text   string   `parquet:"text,optional"`
}

// ParquetWriter writes every cell of every sheet as a ParquetRecord into
// one Snappy-compressed <dest>.parquet file.
type ParquetWriter struct{}

func (ParquetWriter) Write(sheets []Sheet, dest string) ([]string, error) {
	if err := ensureDir(dest); err != nil {
		return nil, err
	}
	path := dest + ".parquet"

	f, err := os.Create(path)
	if err != nil {
		return nil, writeError(path, err)
	}

	pw := parquet.NewGenericWriter[ParquetRecord](f, parquet.Compression(&parquet.Snappy))
	names := SheetNames(sheetTitles(sheets))
	for i, s := range sheets {
		batch := make([]ParquetRecord, 0, len(s.Rows)*len(s.Header))
		for r, row := range s.Rows {
			for c, v := range row {
				if c >= len(s.Header) {
					break
				}
				batch = append(batch, toRecord(names[i], int64(r+1), s.Header[c], v))
			}
		}
		if _, err := pw.Write(batch); err != nil {
			f.Close()
			return nil, writeError(path, err)
		}
	}
	if err := pw.Close(); err != nil {
		f.Close()
		return nil, writeError(path, err)
	}
	if err := f.Close(); err != nil {
		return nil, writeError(path, err)
	}
	return []string{path}, nil
}

func toRecord(sheet string, row int64, column string, v any) ParquetRecord {
	rec := ParquetRecord{Sheet: sheet, Row: row, Column: column}
	switch x := v.(type) {
	case float64:
		rec.Value = &x
	case int:
		f := float64(x)
		rec.Value = &f
	default:
		rec.Text = FormatCell(v)
	}
	return rec
}

// FormatCell renders a cell value for text outputs. Floats use the
// shortest representation that round-trips.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func sheetTitles(sheets []Sheet) []string {
	out := make([]string, len(sheets))
	for i, s := range sheets {
		out[i] = s.Name
	}
	return out
}

func ensureDir(dest string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return writeError(dir, err)
	}
	return nil
}

func writeError(path string, err error) error {
	return &errs.Error{Kind: errs.IO, Op: "write", File: filepath.Base(path), Err: err}
}
