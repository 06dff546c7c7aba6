package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// IgnoreOracle answers whether a working-tree path is ignored. The engine
// never caches its answers. Implementations must always report the control
// directory and everything under it as ignored.
type IgnoreOracle interface {
	IsIgnored(relPath string, isDir bool) bool
}

// ListFiles enumerates every non-ignored regular file under root, in sorted
// relative-path order. Directories reported ignored by oracle are pruned
// entirely; symbolic links are not followed.
func ListFiles(root string, oracle IgnoreOracle) ([]string, error) {
	var out []string
	if err := scanDir(root, "", oracle, &out); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func scanDir(root, relDir string, oracle IgnoreOracle, out *[]string) error {
	absDir := filepath.Join(root, relDir)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return fmt.Errorf("worktree: scan %s: %w", absDir, err)
	}

	names := make([]string, 0, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
		byName[e.Name()] = e
	}
	sort.Strings(names)

	for _, name := range names {
		e := byName[name]
		rel := name
		if relDir != "" {
			rel = relDir + "/" + name
		}

		if e.Type()&os.ModeSymlink != 0 {
			continue
		}

		if e.IsDir() {
			if oracle.IsIgnored(rel, true) {
				continue
			}
			if err := scanDir(root, rel, oracle, out); err != nil {
				return err
			}
			continue
		}

		if oracle.IsIgnored(rel, false) {
			continue
		}
		*out = append(*out, rel)
	}
	return nil
}
