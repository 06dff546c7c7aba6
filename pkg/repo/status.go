package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brinevcs/magicrepos/internal/ignore"
	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/worktree"
)

// ChangeKind classifies one status entry.
type ChangeKind int

const (
	Added ChangeKind = iota
	Modified
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is one path and the way it differs between two snapshots.
type Change struct {
	Path string
	Kind ChangeKind
}

// Status is the three independent lists the facade reports.
type Status struct {
	Staged    []Change
	Unstaged  []Change
	Untracked []string
}

// Status compares the index against HEAD's flattened tree (staged), the
// working tree against the index (unstaged), and the working tree against
// the index (untracked). No rename detection is performed.
func (r *Repo) Status() (*Status, error) {
	idx, err := index.Load(r.indexPath())
	if err != nil {
		return nil, fmt.Errorf("repo: status: %w", err)
	}
	indexEntries := idx.Entries()

	headTree := make(map[string]object.Hash)
	if headHash, ok, err := r.Refs.ResolveHead(); err != nil {
		return nil, fmt.Errorf("repo: status: %w", err)
	} else if ok {
		commit, err := r.Store.ReadCommit(headHash)
		if err != nil {
			return nil, fmt.Errorf("repo: status: read HEAD commit: %w", err)
		}
		flat, err := r.ReadTreeRecursive(commit.TreeHash)
		if err != nil {
			return nil, fmt.Errorf("repo: status: %w", err)
		}
		for _, e := range flat {
			headTree[e.Path] = e.Hash
		}
	}

	var staged []Change
	seen := make(map[string]struct{}, len(indexEntries))
	for _, e := range indexEntries {
		seen[e.Path] = struct{}{}
		if headHash, ok := headTree[e.Path]; !ok {
			staged = append(staged, Change{Path: e.Path, Kind: Added})
		} else if headHash != e.Hash {
			staged = append(staged, Change{Path: e.Path, Kind: Modified})
		}
	}
	for p := range headTree {
		if _, ok := seen[p]; !ok {
			staged = append(staged, Change{Path: p, Kind: Deleted})
		}
	}

	oracle := ignore.NewChecker(r.RootDir, ControlDirName)
	worktreePaths, err := worktree.ListFiles(r.RootDir, oracle)
	if err != nil {
		return nil, fmt.Errorf("repo: status: %w", err)
	}
	inWorktree := make(map[string]struct{}, len(worktreePaths))
	for _, p := range worktreePaths {
		inWorktree[p] = struct{}{}
	}

	var unstaged []Change
	var untracked []string
	for _, relPath := range worktreePaths {
		e, ok := idx.Lookup(relPath)
		if !ok {
			untracked = append(untracked, relPath)
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(relPath)))
		if err != nil {
			return nil, fmt.Errorf("repo: status: read %s: %w", relPath, err)
		}
		h := object.ComputeID(object.TypeBlob, object.MarshalBlob(&object.Blob{Data: data}))
		if h != e.Hash {
			unstaged = append(unstaged, Change{Path: relPath, Kind: Modified})
		}
	}
	for _, e := range indexEntries {
		if _, ok := inWorktree[e.Path]; !ok {
			unstaged = append(unstaged, Change{Path: e.Path, Kind: Deleted})
		}
	}

	return &Status{Staged: staged, Unstaged: unstaged, Untracked: untracked}, nil
}
