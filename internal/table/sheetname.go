package table

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSheetName is the longest worksheet name a workbook accepts.
const MaxSheetName = 31

var sheetReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_", "?", "_", "/", "_", "\\", "_",
)

// SheetName makes name usable as a worksheet or file-name component:
// forbidden characters become '_', surrounding apostrophes are removed and
// the result is cut to MaxSheetName runes.
func SheetName(name string) string {
	s := strings.Trim(strings.TrimSpace(sheetReplacer.Replace(name)), "'")
	if s == "" {
		s = "Sheet"
	}
	return truncateRunes(s, MaxSheetName)
}

// SheetNames sanitizes names and resolves collisions (case-insensitive)
// by appending "~2", "~3", ... while staying within MaxSheetName.
func SheetNames(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		base := SheetName(n)
		name := base
		for k := 2; seen[strings.ToLower(name)]; k++ {
			suffix := fmt.Sprintf("~%d", k)
			name = truncateRunes(base, MaxSheetName-utf8.RuneCountInString(suffix)) + suffix
		}
		seen[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
