// Package repo implements the version-control engine's facade: stage,
// commit, status, log, branch, tag, checkout, reset, and tree
// construction/reading, composed from pkg/object, pkg/index, pkg/refs,
// and pkg/worktree. Line diffs live in pkg/diffengine, which this
// package does not use.
package repo

import (
	"path/filepath"

	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/refs"
)

// ControlDirName is the hidden directory holding HEAD, objects/, refs/, and
// index in a working copy.
const ControlDirName = ".magicrepos"

// ConfigProvider supplies user identity for commit authorship. It is an
// external collaborator: the engine only ever reads it, never writes it.
type ConfigProvider interface {
	Name() (string, bool)
	Email() (string, bool)
}

// Repo is an opened repository: a working directory, its control
// directory, and handles onto the object store and ref store.
type Repo struct {
	RootDir    string // working directory root
	ControlDir string // control directory, e.g. {RootDir}/.magicrepos
	Store      *object.Store
	Refs       *refs.Store
	Config     ConfigProvider
}

func (r *Repo) indexPath() string {
	return filepath.Join(r.ControlDir, "index")
}
