package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brinevcs/magicrepos/pkg/index"
)

func TestResetSoftMovesHeadOnly(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h1, err := r.Commit("first")
	if err != nil {
		t.Fatalf("first Commit: %v", err)
	}

	if err := os.WriteFile(filepath.Join(r.RootDir, "extra.go"),
		[]byte("package main\n\nfunc extra() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.Stage("extra.go"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := r.Commit("second"); err != nil {
		t.Fatalf("second Commit: %v", err)
	}

	if err := r.Reset(h1.String(), ResetSoft); err != nil {
		t.Fatalf("Reset soft: %v", err)
	}

	head, ok, err := r.Refs.ResolveHead()
	if err != nil {
		t.Fatalf("ResolveHead: %v", err)
	}
	if !ok || head != h1 {
		t.Errorf("ResolveHead = (%s, %v), want (%s, true)", head, ok, h1)
	}
	if _, err := os.Stat(filepath.Join(r.RootDir, "extra.go")); err != nil {
		t.Errorf("extra.go should still be on disk after soft reset: %v", err)
	}
	idx, err := index.Load(r.indexPath())
	if err != nil {
		t.Fatalf("index.Load: %v", err)
	}
	if _, ok := idx.Lookup("extra.go"); !ok {
		t.Error("extra.go should remain staged after soft reset")
	}
}

func TestResetMixedRebuildsIndex(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h1, err := r.Commit("first")
	if err != nil {
		t.Fatalf("first Commit: %v", err)
	}

	if err := os.WriteFile(filepath.Join(r.RootDir, "extra.go"),
		[]byte("package main\n\nfunc extra() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.Stage("extra.go"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := r.Commit("second"); err != nil {
		t.Fatalf("second Commit: %v", err)
	}

	if err := r.Reset(h1.String(), ResetMixed); err != nil {
		t.Fatalf("Reset mixed: %v", err)
	}

	idx, err := index.Load(r.indexPath())
	if err != nil {
		t.Fatalf("index.Load: %v", err)
	}
	if _, ok := idx.Lookup("extra.go"); ok {
		t.Error("extra.go should be unstaged after mixed reset")
	}
	if _, err := os.Stat(filepath.Join(r.RootDir, "extra.go")); err != nil {
		t.Errorf("extra.go should still be on disk after mixed reset: %v", err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Untracked) != 1 || st.Untracked[0] != "extra.go" {
		t.Errorf("Untracked = %v, want [extra.go]", st.Untracked)
	}
}

func TestResetHardRestoresWorkingTree(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h1, err := r.Commit("first")
	if err != nil {
		t.Fatalf("first Commit: %v", err)
	}

	if err := os.WriteFile(filepath.Join(r.RootDir, "extra.go"),
		[]byte("package main\n\nfunc extra() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.Stage("extra.go"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if _, err := r.Commit("second"); err != nil {
		t.Fatalf("second Commit: %v", err)
	}

	if err := r.Reset(h1.String(), ResetHard); err != nil {
		t.Fatalf("Reset hard: %v", err)
	}

	if _, err := os.Stat(filepath.Join(r.RootDir, "extra.go")); !os.IsNotExist(err) {
		t.Fatalf("extra.go should be removed after hard reset, stat err = %v", err)
	}
	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(st.Staged) != 0 || len(st.Unstaged) != 0 || len(st.Untracked) != 0 {
		t.Fatalf("expected clean status after hard reset, got %+v", st)
	}
}

func TestResetInvalidSpecError(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	if _, err := r.Commit("first"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.Reset("not-a-real-ref", ResetSoft); err == nil {
		t.Fatal("Reset with unresolvable spec should fail")
	}
}
