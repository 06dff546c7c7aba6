package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTagCreateResolveAndList(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := r.CreateTag("v1.0.0", h, false); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	got, ok, err := r.ResolveTag("v1.0.0")
	if err != nil {
		t.Fatalf("ResolveTag: %v", err)
	}
	if !ok || got != h {
		t.Errorf("ResolveTag(v1.0.0) = (%s, %v), want (%s, true)", got, ok, h)
	}

	tags, err := r.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "v1.0.0" {
		t.Fatalf("ListTags = %v, want [v1.0.0]", tags)
	}
}

func TestTagCreateExistingWithoutForceFails(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateTag("v1.0.0", h, false); err != nil {
		t.Fatalf("CreateTag first: %v", err)
	}
	if err := r.CreateTag("v1.0.0", h, false); err == nil {
		t.Fatal("CreateTag second without force should fail")
	}
}

func TestTagCreateForceUpdatesTarget(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h1, err := r.Commit("first")
	if err != nil {
		t.Fatalf("Commit h1: %v", err)
	}
	if err := r.CreateTag("v1.0.0", h1, false); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if err := os.WriteFile(filepath.Join(r.RootDir, "main.go"),
		[]byte("package main\n\nfunc main() { println(\"v2\") }\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.Stage("main.go"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	h2, err := r.Commit("second")
	if err != nil {
		t.Fatalf("Commit h2: %v", err)
	}

	if err := r.CreateTag("v1.0.0", h2, true); err != nil {
		t.Fatalf("CreateTag force: %v", err)
	}
	got, ok, err := r.ResolveTag("v1.0.0")
	if err != nil {
		t.Fatalf("ResolveTag: %v", err)
	}
	if !ok || got != h2 {
		t.Errorf("ResolveTag(v1.0.0) = (%s, %v), want (%s, true)", got, ok, h2)
	}
}

func TestTagDelete(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateTag("v1.0.0", h, false); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := r.DeleteTag("v1.0.0"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	if _, ok, err := r.ResolveTag("v1.0.0"); err != nil {
		t.Fatalf("ResolveTag after delete: %v", err)
	} else if ok {
		t.Error("ResolveTag(v1.0.0) should not resolve after delete")
	}
}

func TestTagInvalidNameError(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))
	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := r.CreateTag("has space", h, false); err == nil {
		t.Fatal("CreateTag should reject names containing whitespace")
	}
	if err := r.CreateTag("", h, false); err == nil {
		t.Fatal("CreateTag should reject empty names")
	}
}

func TestTagListEmpty(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	tags, err := r.ListTags()
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("ListTags = %v, want empty", tags)
	}
}
