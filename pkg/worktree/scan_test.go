package worktree

import (
	"os"
	"path/filepath"
	"testing"
)

type prefixIgnore struct {
	ignoredDirs []string
}

func (p prefixIgnore) IsIgnored(relPath string, isDir bool) bool {
	for _, d := range p.ignoredDirs {
		if relPath == d || len(relPath) > len(d) && relPath[:len(d)+1] == d+"/" {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListFilesSortedAndPruned(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")
	writeFile(t, root, "dir/b.txt")
	writeFile(t, root, "dir/c.txt")
	writeFile(t, root, ".magicrepos/HEAD")

	oracle := prefixIgnore{ignoredDirs: []string{".magicrepos"}}
	got, err := ListFiles(root, oracle)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.txt", "dir/b.txt", "dir/c.txt"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestListFilesPrunesIgnoredSubtree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.txt")
	writeFile(t, root, "skip/inner.txt")

	oracle := prefixIgnore{ignoredDirs: []string{"skip"}}
	got, err := ListFiles(root, oracle)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "keep.txt" {
		t.Fatalf("got %v, want [keep.txt]", got)
	}
}
