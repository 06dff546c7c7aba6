package repo

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/brinevcs/magicrepos/pkg/index"
	"github.com/brinevcs/magicrepos/pkg/object"
)

// FlatEntry is a single file produced by reading a tree back to a flat
// path -> blob-hash mapping.
type FlatEntry struct {
	Path string
	Hash object.Hash
}

// BuildTree groups index entries by their top-level path component,
// recursing into subtree entries, and writes every tree object it builds.
// It returns the root tree's hash.
func (r *Repo) BuildTree(entries []index.Entry) (object.Hash, error) {
	return r.buildTreeDir(entries, "")
}

func (r *Repo) buildTreeDir(entries []index.Entry, prefix string) (object.Hash, error) {
	files := make(map[string]index.Entry)
	subdirs := make(map[string]struct{})

	for _, e := range entries {
		rel := e.Path
		if prefix != "" {
			if !strings.HasPrefix(e.Path, prefix+"/") {
				continue
			}
			rel = e.Path[len(prefix)+1:]
		}
		if slash := strings.IndexByte(rel, '/'); slash < 0 {
			files[rel] = e
		} else {
			subdirs[rel[:slash]] = struct{}{}
		}
	}

	names := make([]string, 0, len(files)+len(subdirs))
	for name := range files {
		names = append(names, name)
	}
	for name := range subdirs {
		names = append(names, name)
	}
	sort.Strings(names)

	var treeEntries []object.TreeEntry
	for _, name := range names {
		if e, isFile := files[name]; isFile {
			treeEntries = append(treeEntries, object.TreeEntry{
				Mode: object.ModeFile,
				Name: name,
				Hash: e.Hash,
			})
			continue
		}
		childPrefix := name
		if prefix != "" {
			childPrefix = prefix + "/" + name
		}
		subHash, err := r.buildTreeDir(entries, childPrefix)
		if err != nil {
			return object.ZeroHash, fmt.Errorf("repo: build tree %q: %w", childPrefix, err)
		}
		treeEntries = append(treeEntries, object.TreeEntry{
			Mode: object.ModeDir,
			Name: name,
			Hash: subHash,
		})
	}

	h, err := r.Store.WriteTree(&object.Tree{Entries: treeEntries})
	if err != nil {
		return object.ZeroHash, fmt.Errorf("repo: write tree (prefix=%q): %w", prefix, err)
	}
	return h, nil
}

// ReadTreeRecursive expands a tree depth-first into a flat list of
// (path, blob hash) leaves. Directory entries recurse; every other entry,
// regardless of its mode, is emitted as a leaf.
func (r *Repo) ReadTreeRecursive(treeHash object.Hash) ([]FlatEntry, error) {
	return r.readTreeRec(treeHash, "")
}

func (r *Repo) readTreeRec(treeHash object.Hash, prefix string) ([]FlatEntry, error) {
	tree, err := r.Store.ReadTree(treeHash)
	if err != nil {
		return nil, fmt.Errorf("repo: read tree %s: %w", treeHash, err)
	}

	var out []FlatEntry
	for _, e := range tree.Entries {
		full := e.Name
		if prefix != "" {
			full = path.Join(prefix, e.Name)
		}
		if e.IsDir() {
			sub, err := r.readTreeRec(e.Hash, full)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}
		out = append(out, FlatEntry{Path: full, Hash: e.Hash})
	}
	return out, nil
}
