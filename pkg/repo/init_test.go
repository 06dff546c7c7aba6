package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brinevcs/magicrepos/pkg/object"
)

func TestInitCreatesStructure(t *testing.T) {
	dir := t.TempDir()

	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init(%q): %v", dir, err)
	}
	if r.RootDir != dir {
		t.Errorf("RootDir = %q, want %q", r.RootDir, dir)
	}

	controlDir := filepath.Join(dir, ControlDirName)
	if r.ControlDir != controlDir {
		t.Errorf("ControlDir = %q, want %q", r.ControlDir, controlDir)
	}

	assertDir(t, controlDir)
	assertFile(t, filepath.Join(controlDir, "HEAD"))
	assertDir(t, filepath.Join(controlDir, "objects"))
	assertDir(t, filepath.Join(controlDir, "refs", "heads"))
	assertDir(t, filepath.Join(controlDir, "refs", "tags"))
	assertDir(t, filepath.Join(controlDir, "refs", "remotes"))

	if r.Store == nil {
		t.Error("Store is nil after Init")
	}
}

func TestInitExistingRepoError(t *testing.T) {
	dir := t.TempDir()

	if _, err := Init(dir, nil); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if _, err := Init(dir, nil); err == nil {
		t.Fatal("second Init should fail on existing repo, got nil error")
	}
}

func TestOpenFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, nil); err != nil {
		t.Fatalf("Init: %v", err)
	}

	sub := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	r, err := Open(sub, nil)
	if err != nil {
		t.Fatalf("Open(%q): %v", sub, err)
	}
	if r.RootDir != dir {
		t.Errorf("RootDir = %q, want %q", r.RootDir, dir)
	}
	if r.Store == nil {
		t.Error("Store is nil after Open")
	}
}

func TestOpenNoRepoError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir, nil); err == nil {
		t.Fatal("Open should fail in non-repo directory, got nil error")
	}
}

func TestInitHeadDefault(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	name, ok, err := r.Refs.CurrentBranchName()
	if err != nil {
		t.Fatalf("CurrentBranchName: %v", err)
	}
	if !ok || name != "main" {
		t.Errorf("CurrentBranchName = (%q, %v), want (%q, true)", name, ok, "main")
	}
}

func TestWriteRefResolveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	h, err := object.ParseHash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}

	if err := r.Refs.WriteRef("refs/heads/main", h); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}

	got, ok, err := r.Refs.Resolve("HEAD")
	if err != nil {
		t.Fatalf("Resolve(HEAD): %v", err)
	}
	if !ok || got != h {
		t.Errorf("Resolve(HEAD) = (%s, %v), want (%s, true)", got, ok, h)
	}

	got, ok, err = r.Refs.Resolve("main")
	if err != nil {
		t.Fatalf("Resolve(main): %v", err)
	}
	if !ok || got != h {
		t.Errorf("Resolve(main) = (%s, %v), want (%s, true)", got, ok, h)
	}
}

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory %q to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("%q exists but is not a directory", path)
	}
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %q to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("%q exists but is a directory, expected file", path)
	}
}
