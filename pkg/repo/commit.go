package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
)

// ErrEmptyCommit is returned by Commit when the index has no entries.
var ErrEmptyCommit = errors.New("repo: nothing staged")

func fallbackSignature(r *Repo) object.Signature {
	name, email := "Unknown", "unknown@unknown"
	if r.Config != nil {
		if n, ok := r.Config.Name(); ok && n != "" {
			name = n
		}
		if e, ok := r.Config.Email(); ok && e != "" {
			email = e
		}
	}
	now := time.Now()
	return object.Signature{
		Name:    name,
		Email:   email,
		Seconds: now.Unix(),
		Offset:  now.Format("-0700"),
	}
}

// Commit builds a tree from the current index, resolves HEAD's commit as
// the sole parent (or produces a root commit when HEAD is unborn), and
// writes a new commit whose author/committer are formed from the config
// provider's identity plus the current local time.
func (r *Repo) Commit(message string) (object.Hash, error) {
	idx, err := index.Load(r.indexPath())
	if err != nil {
		return object.ZeroHash, fmt.Errorf("repo: commit: %w", err)
	}
	entries := idx.Entries()
	if len(entries) == 0 {
		return object.ZeroHash, fmt.Errorf("repo: commit: %w", ErrEmptyCommit)
	}

	treeHash, err := r.BuildTree(entries)
	if err != nil {
		return object.ZeroHash, fmt.Errorf("repo: commit: %w", err)
	}

	var parents []object.Hash
	if parent, ok, err := r.Refs.ResolveHead(); err != nil {
		return object.ZeroHash, fmt.Errorf("repo: commit: resolve HEAD: %w", err)
	} else if ok {
		parents = append(parents, parent)
	}

	sig := fallbackSignature(r)
	commit := &object.Commit{
		TreeHash:  treeHash,
		Parents:   parents,
		Author:    sig,
		Committer: sig,
		Message:   message,
	}
	commitHash, err := r.Store.WriteCommit(commit)
	if err != nil {
		return object.ZeroHash, fmt.Errorf("repo: commit: write: %w", err)
	}

	detached, err := r.Refs.IsDetached()
	if err != nil {
		return object.ZeroHash, fmt.Errorf("repo: commit: %w", err)
	}
	if detached {
		if err := r.Refs.WriteHead(commitHash.String()); err != nil {
			return object.ZeroHash, fmt.Errorf("repo: commit: update detached HEAD: %w", err)
		}
	} else {
		branch, ok, err := r.Refs.CurrentBranchName()
		if err != nil {
			return object.ZeroHash, fmt.Errorf("repo: commit: %w", err)
		}
		if !ok {
			return object.ZeroHash, fmt.Errorf("repo: commit: HEAD names no branch")
		}
		if err := r.Refs.WriteRef("refs/heads/"+branch, commitHash); err != nil {
			return object.ZeroHash, fmt.Errorf("repo: commit: update ref %q: %w", branch, err)
		}
	}

	return commitHash, nil
}

// Log walks the commit graph starting at start following first-parent
// links, returning up to limit commits newest-first.
func (r *Repo) Log(start object.Hash, limit int) ([]*object.Commit, error) {
	var commits []*object.Commit
	current := start

	for len(commits) < limit && !current.IsZero() {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				break
			}
			return nil, fmt.Errorf("repo: log: read commit %s: %w", current, err)
		}
		commits = append(commits, c)
		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}

	return commits, nil
}
