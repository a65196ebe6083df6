package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// candidate is a directory that may hold a plugin descriptor.
type candidate struct {
	source string
	dir    string
}

// discover lists the plugin directories directly under a source root, in
// lexicographic order. Hidden directories are ignored and symlinks to
// directories are followed.
func discover(src Source) ([]candidate, error) {
	entries, err := os.ReadDir(src.BasePath)
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		dir := filepath.Join(src.BasePath, name)
		if !isDir(entry, dir) {
			continue
		}
		out = append(out, candidate{source: src.Name, dir: dir})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].dir < out[j].dir })
	return out, nil
}

func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
