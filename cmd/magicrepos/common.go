package main

import (
	"io"

	"github.com/brinevcs/magicrepos/internal/config"
	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/repo"
	"github.com/brinevcs/magicrepos/pkg/wire"
)

func pushOverStream(stream io.ReadWriter, r *repo.Repo, url *RemoteURL) error {
	return wire.Push(stream, r.Store, r.Refs, url.Owner, url.Repo)
}

func pullOverStream(stream io.ReadWriter, r *repo.Repo, url *RemoteURL, remoteName string) (map[string]object.Hash, error) {
	return wire.Pull(stream, r.Store, r.Refs, url.Owner, url.Repo, remoteName)
}

func changeGlyph(k repo.ChangeKind) string {
	switch k {
	case repo.Added:
		return "+"
	case repo.Modified:
		return "~"
	case repo.Deleted:
		return "-"
	default:
		return "?"
	}
}

// openRepo opens the repository containing the current directory, with
// its identity/remote configuration layered in.
func openRepo() (*repo.Repo, *config.Config, error) {
	r, err := repo.Open(".", nil)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(r.ControlDir)
	if err != nil {
		return nil, nil, err
	}
	r.Config = cfg
	return r, cfg, nil
}

func shortHash(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
