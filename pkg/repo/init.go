package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/refs"
)

// ErrAlreadyExists is returned by Init when a control directory is already
// present.
var ErrAlreadyExists = errors.New("repo: already exists")

// ErrNotARepository is returned by Open when no control directory is found
// walking up to the filesystem root.
var ErrNotARepository = errors.New("repo: not a repository")

// Init creates a new repository at path: objects/, refs/heads/,
// refs/tags/, refs/remotes/, and a HEAD pointing at the unborn main branch.
func Init(path string, config ConfigProvider) (*Repo, error) {
	controlDir := filepath.Join(path, ControlDirName)
	if _, err := os.Stat(controlDir); err == nil {
		return nil, fmt.Errorf("repo: init %s: %w", controlDir, ErrAlreadyExists)
	}
	return initAt(path, controlDir, config)
}

// InitBare creates a new repository whose control directory is controlDir
// itself (there is no separate working tree): the server-side layout,
// `{owner}/{repo}.mr/`.
func InitBare(controlDir string, config ConfigProvider) (*Repo, error) {
	if _, err := os.Stat(controlDir); err == nil {
		return nil, fmt.Errorf("repo: init bare %s: %w", controlDir, ErrAlreadyExists)
	}
	return initAt(controlDir, controlDir, config)
}

func initAt(rootDir, controlDir string, config ConfigProvider) (*Repo, error) {
	dirs := []string{
		filepath.Join(controlDir, "objects"),
		filepath.Join(controlDir, "refs", "heads"),
		filepath.Join(controlDir, "refs", "tags"),
		filepath.Join(controlDir, "refs", "remotes"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("repo: init mkdir %s: %w", d, err)
		}
	}

	r := &Repo{
		RootDir:    rootDir,
		ControlDir: controlDir,
		Store:      object.NewStore(controlDir),
		Refs:       refs.New(controlDir),
		Config:     config,
	}
	if err := r.Refs.WriteHead("ref: refs/heads/main"); err != nil {
		return nil, fmt.Errorf("repo: init HEAD: %w", err)
	}
	if err := index.New().Save(r.indexPath()); err != nil {
		return nil, fmt.Errorf("repo: init index: %w", err)
	}
	return r, nil
}

// Open walks parent directories from path until a control directory is
// found and opens the repository there.
func Open(path string, config ConfigProvider) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("repo: open: %w", err)
	}

	cur := abs
	for {
		controlDir := filepath.Join(cur, ControlDirName)
		if info, err := os.Stat(controlDir); err == nil && info.IsDir() {
			return &Repo{
				RootDir:    cur,
				ControlDir: controlDir,
				Store:      object.NewStore(controlDir),
				Refs:       refs.New(controlDir),
				Config:     config,
			}, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("repo: open %s: %w", path, ErrNotARepository)
		}
		cur = parent
	}
}

// OpenBare opens a server-side repository whose control directory is
// controlDir itself (there is no separate working tree).
func OpenBare(controlDir string, config ConfigProvider) *Repo {
	return &Repo{
		RootDir:    controlDir,
		ControlDir: controlDir,
		Store:      object.NewStore(controlDir),
		Refs:       refs.New(controlDir),
		Config:     config,
	}
}
