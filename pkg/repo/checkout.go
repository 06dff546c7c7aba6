package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brinevcs/magicrepos/pkg/index"
)

// Checkout resolves name as a branch, materializes its tree into the
// working directory, rebuilds the index from what was written, and
// points HEAD at the branch.
func (r *Repo) Checkout(name string) error {
	targetHash, ok, err := r.Refs.ResolveBranch(name)
	if err != nil {
		return fmt.Errorf("repo: checkout %q: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("repo: checkout %q: branch does not exist", name)
	}

	commit, err := r.Store.ReadCommit(targetHash)
	if err != nil {
		return fmt.Errorf("repo: checkout %q: read commit %s: %w", name, targetHash, err)
	}
	targetFiles, err := r.ReadTreeRecursive(commit.TreeHash)
	if err != nil {
		return fmt.Errorf("repo: checkout %q: %w", name, err)
	}

	idx, err := index.Load(r.indexPath())
	if err != nil {
		return fmt.Errorf("repo: checkout %q: %w", name, err)
	}
	for _, e := range idx.Entries() {
		abs := filepath.Join(r.RootDir, filepath.FromSlash(e.Path))
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("repo: checkout %q: remove %q: %w", name, e.Path, err)
		}
		r.removeEmptyParents(filepath.Dir(abs))
	}

	newIndex := index.New()
	for _, f := range targetFiles {
		abs := filepath.Join(r.RootDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("repo: checkout %q: mkdir for %q: %w", name, f.Path, err)
		}
		blob, err := r.Store.ReadBlob(f.Hash)
		if err != nil {
			return fmt.Errorf("repo: checkout %q: read blob for %q: %w", name, f.Path, err)
		}
		if err := os.WriteFile(abs, blob.Data, 0o644); err != nil {
			return fmt.Errorf("repo: checkout %q: write %q: %w", name, f.Path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("repo: checkout %q: stat %q: %w", name, f.Path, err)
		}
		newIndex.Put(index.Entry{
			MtimeSec: uint64(info.ModTime().Unix()),
			Size:     uint32(info.Size()),
			Hash:     f.Hash,
			Path:     f.Path,
		})
	}
	if err := newIndex.Save(r.indexPath()); err != nil {
		return fmt.Errorf("repo: checkout %q: %w", name, err)
	}

	if err := r.Refs.WriteHead("ref: refs/heads/" + name); err != nil {
		return fmt.Errorf("repo: checkout %q: update HEAD: %w", name, err)
	}
	return nil
}

// removeEmptyParents removes empty directories up to (but not including)
// the working-directory root.
func (r *Repo) removeEmptyParents(dir string) {
	for {
		if dir == r.RootDir || !strings.HasPrefix(dir, r.RootDir) {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		os.Remove(dir)
		dir = filepath.Dir(dir)
	}
}
