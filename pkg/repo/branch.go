package repo

import (
	"errors"
	"fmt"

	"github.com/brinevcs/magicrepos/pkg/refs"
)

// ErrUnbornHead is returned by CreateBranch when HEAD resolves to no commit.
var ErrUnbornHead = errors.New("repo: HEAD is unborn")

// ErrBranchCheckedOut is returned by DeleteBranch for the current branch.
var ErrBranchCheckedOut = errors.New("repo: branch is checked out")

// CreateBranch points refs/heads/{name} at HEAD's resolved commit. It fails
// if HEAD is unborn or the branch already exists.
func (r *Repo) CreateBranch(name string) error {
	head, ok, err := r.Refs.ResolveHead()
	if err != nil {
		return fmt.Errorf("repo: create branch %q: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("repo: create branch %q: %w", name, ErrUnbornHead)
	}
	if err := r.Refs.CreateBranch(name, head); err != nil {
		return fmt.Errorf("repo: create branch %q: %w", name, err)
	}
	return nil
}

// DeleteBranch removes a branch ref. It fails if the branch is checked out
// or does not exist.
func (r *Repo) DeleteBranch(name string) error {
	current, ok, err := r.Refs.CurrentBranchName()
	if err != nil {
		return fmt.Errorf("repo: delete branch %q: %w", name, err)
	}
	if ok && current == name {
		return fmt.Errorf("repo: delete branch %q: %w", name, ErrBranchCheckedOut)
	}
	if err := r.Refs.DeleteBranch(name); err != nil {
		if errors.Is(err, refs.ErrNotFound) {
			return fmt.Errorf("repo: delete branch %q: %w", name, err)
		}
		return fmt.Errorf("repo: delete branch %q: %w", name, err)
	}
	return nil
}

// ListBranches returns every branch name, sorted by ordinal comparison.
func (r *Repo) ListBranches() ([]string, error) {
	names, err := r.Refs.ListBranches()
	if err != nil {
		return nil, fmt.Errorf("repo: list branches: %w", err)
	}
	return names, nil
}

// CurrentBranch returns the branch HEAD names, or ("", false) when HEAD is
// detached.
func (r *Repo) CurrentBranch() (string, bool, error) {
	name, ok, err := r.Refs.CurrentBranchName()
	if err != nil {
		return "", false, fmt.Errorf("repo: current branch: %w", err)
	}
	return name, ok, nil
}
