package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brinevcs/magicrepos/pkg/repo"
)

// Root is the filesystem location under which every bare repository lives,
// laid out as {base}/{owner}/{repo}.mr.
type Root struct {
	base string
}

// NewRoot returns a Root rooted at base.
func NewRoot(base string) *Root {
	return &Root{base: base}
}

func (r *Root) repoPath(owner, name string) string {
	return filepath.Join(r.base, owner, name+".mr")
}

// Open opens an existing bare repository. ok is false if it does not exist
// yet; that is not itself an error.
func (r *Root) Open(owner, name string) (*repo.Repo, bool, error) {
	path := r.repoPath(owner, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("server: stat %s: %w", path, err)
	}
	return repo.OpenBare(path, nil), true, nil
}

// Create initializes a new bare repository at {owner}/{repo}.mr.
func (r *Root) Create(owner, name string) (*repo.Repo, error) {
	path := r.repoPath(owner, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("server: mkdir %s: %w", filepath.Dir(path), err)
	}
	bare, err := repo.InitBare(path, nil)
	if err != nil {
		return nil, fmt.Errorf("server: init bare %s: %w", path, err)
	}
	return bare, nil
}
