package mlroot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mkFile(t *testing.T, name string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRootDirMilletToml(t *testing.T) {
	root := t.TempDir()
	mkFile(t, filepath.Join(root, "millet.toml"))
	src := filepath.Join(root, "src", "lib", "main.sml")
	mkFile(t, src)

	if got := RootDir(src); got != root {
		t.Errorf("RootDir(%q) = %q; want %q", src, got, root)
	}
}

func TestRootDirGroupFile(t *testing.T) {
	root := t.TempDir()
	mkFile(t, filepath.Join(root, "all.mlb"))
	src := filepath.Join(root, "src", "main.sml")
	mkFile(t, src)

	if got := RootDir(src); got != root {
		t.Errorf("RootDir(%q) = %q; want %q", src, got, root)
	}
}

func TestRootDirNoMarker(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scratch.sml")
	mkFile(t, src)

	// t.TempDir may live under a tree that carries group files, so only
	// check that the answer is an ancestor of the file.
	got := RootDir(src)
	rel, err := filepath.Rel(got, src)
	if err != nil || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		t.Errorf("RootDir(%q) = %q; not an ancestor", src, got)
	}
}
