package repo

import (
	"os"
	"path/filepath"
	"testing"
)

// initRepoWithFile creates a temp repo, writes name with content, and
// stages it.
func initRepoWithFile(t *testing.T, name string, content []byte) *Repo {
	t.Helper()
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	abs := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := r.Stage(name); err != nil {
		t.Fatalf("Stage(%s): %v", name, err)
	}
	return r
}
