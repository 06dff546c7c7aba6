package repo

import (
	"testing"
)

func TestBranchCreateListDelete(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	if _, err := r.Commit("initial commit"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch(feature): %v", err)
	}

	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 2 || branches[0] != "feature" || branches[1] != "main" {
		t.Fatalf("ListBranches = %v, want [feature main]", branches)
	}

	if err := r.DeleteBranch("feature"); err != nil {
		t.Fatalf("DeleteBranch(feature): %v", err)
	}

	branches, err = r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches after delete: %v", err)
	}
	if len(branches) != 1 || branches[0] != "main" {
		t.Fatalf("ListBranches after delete = %v, want [main]", branches)
	}
}

func TestBranchCurrentBranch(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	branch, ok, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if !ok || branch != "main" {
		t.Errorf("CurrentBranch = (%q, %v), want (%q, true)", branch, ok, "main")
	}
}

func TestBranchDeleteCurrentBranchError(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	if _, err := r.Commit("initial commit"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.DeleteBranch("main"); err == nil {
		t.Fatal("DeleteBranch(main) should have failed for current branch")
	}
}

func TestBranchCreateDuplicateError(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	if _, err := r.Commit("initial commit"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch(feature): %v", err)
	}
	if err := r.CreateBranch("feature"); err == nil {
		t.Fatal("CreateBranch(feature) should fail on duplicate")
	}
}

func TestBranchCreateUnbornHeadError(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := r.CreateBranch("feature"); err == nil {
		t.Fatal("CreateBranch should fail with unborn HEAD")
	}
}

func TestBranchDeleteNonExistentError(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := r.DeleteBranch("ghost"); err == nil {
		t.Fatal("DeleteBranch(ghost) should have failed for non-existent branch")
	}
}

func TestBranchListEmpty(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	branches, err := r.ListBranches()
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 0 {
		t.Errorf("ListBranches = %v, want empty", branches)
	}
}

func TestBranchCreateWritesCorrectHash(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateBranch("feature"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}

	got, ok, err := r.Refs.ResolveBranch("feature")
	if err != nil {
		t.Fatalf("ResolveBranch: %v", err)
	}
	if !ok || got != h {
		t.Errorf("ResolveBranch(feature) = (%s, %v), want (%s, true)", got, ok, h)
	}
}
