package batch

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cwbudde/bandpower/internal/errs"
)

// Discover lists the regular files in dir whose extension is in exts,
// sorted by name. Hidden files and spreadsheet lock files ("~$...") are
// ignored.
func Discover(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.New(errs.IO, "discover", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if !slices.Contains(exts, strings.ToLower(filepath.Ext(name))) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return files, nil
}
