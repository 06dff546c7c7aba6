package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brinevcs/magicrepos/pkg/index"
)

// ResetMode selects how far Reset unwinds the working state.
type ResetMode int

const (
	// ResetSoft moves HEAD only.
	ResetSoft ResetMode = iota
	// ResetMixed moves HEAD and rebuilds the index from the target tree.
	ResetMixed
	// ResetHard moves HEAD, rebuilds the index, and overwrites the working
	// tree to match the target tree.
	ResetHard
)

// Reset resolves spec via the universal ref resolver and moves HEAD to it
// (updating the current branch ref, or overwriting HEAD directly when
// detached), then performs mode's additional work.
func (r *Repo) Reset(spec string, mode ResetMode) error {
	target, ok, err := r.Refs.Resolve(spec)
	if err != nil {
		return fmt.Errorf("repo: reset %q: %w", spec, err)
	}
	if !ok {
		return fmt.Errorf("repo: reset %q: does not resolve to a commit", spec)
	}

	branch, onBranch, err := r.Refs.CurrentBranchName()
	if err != nil {
		return fmt.Errorf("repo: reset %q: %w", spec, err)
	}
	if onBranch {
		if err := r.Refs.WriteRef("refs/heads/"+branch, target); err != nil {
			return fmt.Errorf("repo: reset %q: %w", spec, err)
		}
	} else {
		if err := r.Refs.WriteHead(target.String()); err != nil {
			return fmt.Errorf("repo: reset %q: %w", spec, err)
		}
	}

	if mode == ResetSoft {
		return nil
	}

	commit, err := r.Store.ReadCommit(target)
	if err != nil {
		return fmt.Errorf("repo: reset %q: read target commit: %w", spec, err)
	}
	targetFiles, err := r.ReadTreeRecursive(commit.TreeHash)
	if err != nil {
		return fmt.Errorf("repo: reset %q: %w", spec, err)
	}

	priorIndex, err := index.Load(r.indexPath())
	if err != nil {
		return fmt.Errorf("repo: reset %q: %w", spec, err)
	}

	newIndex := index.New()
	for _, f := range targetFiles {
		abs := filepath.Join(r.RootDir, filepath.FromSlash(f.Path))
		if info, err := os.Stat(abs); err == nil {
			newIndex.Put(index.Entry{
				MtimeSec: uint64(info.ModTime().Unix()),
				Size:     uint32(info.Size()),
				Hash:     f.Hash,
				Path:     f.Path,
			})
			continue
		}
		blob, err := r.Store.ReadBlob(f.Hash)
		if err != nil {
			return fmt.Errorf("repo: reset %q: read blob for %q: %w", spec, f.Path, err)
		}
		newIndex.Put(index.Entry{
			Size: uint32(len(blob.Data)),
			Hash: f.Hash,
			Path: f.Path,
		})
	}

	if mode == ResetMixed {
		return newIndex.Save(r.indexPath())
	}

	// Hard: delete everything named by either the prior or the new index,
	// then write the target tree, then rebuild the index from what was
	// written.
	toRemove := make(map[string]struct{})
	for _, e := range priorIndex.Entries() {
		toRemove[e.Path] = struct{}{}
	}
	for _, e := range newIndex.Entries() {
		toRemove[e.Path] = struct{}{}
	}
	for p := range toRemove {
		abs := filepath.Join(r.RootDir, filepath.FromSlash(p))
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("repo: reset %q: remove %q: %w", spec, p, err)
		}
		r.removeEmptyParents(filepath.Dir(abs))
	}

	finalIndex := index.New()
	for _, f := range targetFiles {
		abs := filepath.Join(r.RootDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("repo: reset %q: mkdir for %q: %w", spec, f.Path, err)
		}
		blob, err := r.Store.ReadBlob(f.Hash)
		if err != nil {
			return fmt.Errorf("repo: reset %q: read blob for %q: %w", spec, f.Path, err)
		}
		if err := os.WriteFile(abs, blob.Data, 0o644); err != nil {
			return fmt.Errorf("repo: reset %q: write %q: %w", spec, f.Path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("repo: reset %q: stat %q: %w", spec, f.Path, err)
		}
		finalIndex.Put(index.Entry{
			MtimeSec: uint64(info.ModTime().Unix()),
			Size:     uint32(info.Size()),
			Hash:     f.Hash,
			Path:     f.Path,
		})
	}

	return finalIndex.Save(r.indexPath())
}
