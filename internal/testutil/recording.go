package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// WriteRecordingCSV writes a recording with a leading "time" column (in
// seconds at sampleRate) followed by the given channels, and returns its
// path. Channels may differ in length; short ones end with blank cells.
func WriteRecordingCSV(tb testing.TB, dir, name string, sampleRate float64, names []string, channels [][]float64) string {
	tb.Helper()

	rows := 0
	for _, c := range channels {
		rows = max(rows, len(c))
	}

	var b strings.Builder
	b.WriteString("time")
	for _, n := range names {
		b.WriteByte(',')
		b.WriteString(n)
	}
	b.WriteByte('\n')

	for r := 0; r < rows; r++ {
		b.WriteString(strconv.FormatFloat(float64(r)/sampleRate, 'g', -1, 64))
		for _, c := range channels {
			b.WriteByte(',')
			if r < len(c) {
				b.WriteString(strconv.FormatFloat(c[r], 'g', -1, 64))
			}
		}
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}
