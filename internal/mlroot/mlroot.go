// Package mlroot locates the root directory of a Standard ML project.
package mlroot

import (
	"os"
	"path/filepath"
)

// Filenames that mark the root of a millet workspace, in the order
// millet-ls itself prefers them.
var rootMarkers = []string{
	"millet.toml",
	"sources.mlb",
	"sources.cm",
}

func hasMarker(dir string) bool {
	for _, name := range rootMarkers {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func hasGroupFile(dir string) bool {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, ent := range ents {
		switch filepath.Ext(ent.Name()) {
		case ".mlb", ".cm":
			return true
		}
	}
	return false
}

// RootDir returns the workspace root directory for filename. It walks
// up from the file's directory looking for a millet.toml or an ML
// Basis or CM group file, and falls back to the file's own directory
// when no ancestor carries one.
func RootDir(filename string) string {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "."
	}
	start := filepath.Dir(abs)
	for dir := start; ; {
		if hasMarker(dir) || hasGroupFile(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
