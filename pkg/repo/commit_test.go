package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
)

func TestCommitCreatesObject(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if h.IsZero() {
		t.Fatal("Commit returned zero hash")
	}

	c, err := r.Store.ReadCommit(h)
	if err != nil {
		t.Fatalf("ReadCommit(%s): %v", h, err)
	}
	if c.Message != "initial commit" {
		t.Errorf("Message = %q, want %q", c.Message, "initial commit")
	}
	if c.TreeHash.IsZero() {
		t.Error("TreeHash is zero")
	}
	if len(c.Parents) != 0 {
		t.Errorf("first commit should have no parents, got %d", len(c.Parents))
	}
}

func TestCommitUpdatesHEAD(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	h, err := r.Commit("initial commit")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	head, ok, err := r.Refs.ResolveHead()
	if err != nil {
		t.Fatalf("ResolveHead: %v", err)
	}
	if !ok || head != h {
		t.Errorf("ResolveHead = (%s, %v), want (%s, true)", head, ok, h)
	}
}

func TestCommitSecondHasParent(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	h1, err := r.Commit("first commit")
	if err != nil {
		t.Fatalf("first Commit: %v", err)
	}

	if err := os.WriteFile(filepath.Join(r.RootDir, "main.go"),
		[]byte("package main\n\nfunc main() { println(\"v2\") }\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.Stage("main.go"); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	h2, err := r.Commit("second commit")
	if err != nil {
		t.Fatalf("second Commit: %v", err)
	}
	c2, err := r.Store.ReadCommit(h2)
	if err != nil {
		t.Fatalf("ReadCommit(%s): %v", h2, err)
	}
	if len(c2.Parents) != 1 || c2.Parents[0] != h1 {
		t.Fatalf("second commit parents = %v, want [%s]", c2.Parents, h1)
	}
}

func TestCommitEmptyFails(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := r.Commit("hi"); err == nil {
		t.Fatal("Commit with empty index should fail")
	}
}

func TestLogReverseChronological(t *testing.T) {
	r := initRepoWithFile(t, "main.go", []byte("package main\n\nfunc main() {}\n"))

	hashes := make([]object.Hash, 3)
	messages := []string{"first", "second", "third"}

	for i, msg := range messages {
		if i > 0 {
			content := []byte("package main\n\nfunc main() { _ = " + msg + " }\n")
			if err := os.WriteFile(filepath.Join(r.RootDir, "main.go"), content, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := r.Stage("main.go"); err != nil {
				t.Fatalf("Stage: %v", err)
			}
		}
		h, err := r.Commit(msg)
		if err != nil {
			t.Fatalf("Commit(%q): %v", msg, err)
		}
		hashes[i] = h
	}

	commits, err := r.Log(hashes[2], 10)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("Log returned %d commits, want 3", len(commits))
	}
	if commits[0].Message != "third" || commits[1].Message != "second" || commits[2].Message != "first" {
		t.Fatalf("Log order wrong: %q %q %q", commits[0].Message, commits[1].Message, commits[2].Message)
	}

	limited, err := r.Log(hashes[2], 2)
	if err != nil {
		t.Fatalf("Log(limit=2): %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("Log(limit=2) returned %d commits, want 2", len(limited))
	}
}

func TestBuildTreeReadTreeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, nil)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	files := map[string][]byte{
		"README.md":          []byte("# readme"),
		"pkg/util/util.go":   []byte("package util\n\nfunc Util() {}\n"),
		"pkg/util/helper.go": []byte("package util\n\nfunc Helper() {}\n"),
		"cmd/main.go":        []byte("package main\n\nfunc main() {}\n"),
	}
	for name, data := range files {
		abs := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(abs, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if err := r.Stage(name); err != nil {
			t.Fatalf("Stage(%s): %v", name, err)
		}
	}

	idx, err := index.Load(r.indexPath())
	if err != nil {
		t.Fatalf("index.Load: %v", err)
	}

	rootHash, err := r.BuildTree(idx.Entries())
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if rootHash.IsZero() {
		t.Fatal("BuildTree returned zero hash")
	}

	flat, err := r.ReadTreeRecursive(rootHash)
	if err != nil {
		t.Fatalf("ReadTreeRecursive: %v", err)
	}
	if len(flat) != len(files) {
		t.Fatalf("ReadTreeRecursive returned %d entries, want %d", len(flat), len(files))
	}

	byPath := make(map[string]object.Hash, len(flat))
	for _, e := range flat {
		byPath[e.Path] = e.Hash
	}
	for _, e := range idx.Entries() {
		h, ok := byPath[e.Path]
		if !ok {
			t.Errorf("missing path %q in flattened tree", e.Path)
			continue
		}
		if h != e.Hash {
			t.Errorf("%s: hash = %s, want %s", e.Path, h, e.Hash)
		}
	}
}
