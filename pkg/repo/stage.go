package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brinevcs/magicrepos/internal/ignore"
	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
	"github.com/brinevcs/magicrepos/pkg/worktree"
)

func normalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Stage hashes and stores relPath's working-tree bytes as a blob and
// upserts its index entry. If relPath does not exist on disk, its index
// entry (if any) is removed; staging the absence of a file is idempotent.
func (r *Repo) Stage(relPath string) error {
	relPath = normalizePath(relPath)
	idx, err := index.Load(r.indexPath())
	if err != nil {
		return fmt.Errorf("repo: stage %s: %w", relPath, err)
	}

	abs := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			idx.Remove(relPath)
			return idx.Save(r.indexPath())
		}
		return fmt.Errorf("repo: stage %s: %w", relPath, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("repo: stage %s: %w", relPath, err)
	}
	h, err := r.Store.WriteBlob(&object.Blob{Data: data})
	if err != nil {
		return fmt.Errorf("repo: stage %s: %w", relPath, err)
	}

	idx.Put(index.Entry{
		MtimeSec: uint64(info.ModTime().Unix()),
		Size:     uint32(info.Size()),
		Hash:     h,
		Path:     relPath,
	})
	return idx.Save(r.indexPath())
}

// StageAll enumerates the working tree and produces or updates an index
// entry for every present file, removing entries for paths that no
// longer exist.
func (r *Repo) StageAll() error {
	idx, err := index.Load(r.indexPath())
	if err != nil {
		return fmt.Errorf("repo: stage-all: %w", err)
	}

	oracle := ignore.NewChecker(r.RootDir, ControlDirName)
	paths, err := worktree.ListFiles(r.RootDir, oracle)
	if err != nil {
		return fmt.Errorf("repo: stage-all: %w", err)
	}

	present := make(map[string]struct{}, len(paths))
	for _, relPath := range paths {
		present[relPath] = struct{}{}

		abs := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("repo: stage-all: %s: %w", relPath, err)
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("repo: stage-all: %s: %w", relPath, err)
		}
		h, err := r.Store.WriteBlob(&object.Blob{Data: data})
		if err != nil {
			return fmt.Errorf("repo: stage-all: %s: %w", relPath, err)
		}
		idx.Put(index.Entry{
			MtimeSec: uint64(info.ModTime().Unix()),
			Size:     uint32(info.Size()),
			Hash:     h,
			Path:     relPath,
		})
	}

	for _, e := range idx.Entries() {
		if _, ok := present[e.Path]; !ok {
			idx.Remove(e.Path)
		}
	}

	return idx.Save(r.indexPath())
}
