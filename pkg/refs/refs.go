package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brinevcs/magicrepos/pkg/object"
)

// Store is the reference namespace of one control directory: HEAD, branch
// refs under refs/heads/, and any other ref under refs/.
type Store struct {
	root string
}

// New opens a ref store rooted at a control directory (the one containing
// HEAD and refs/).
func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) headPath() string {
	return filepath.Join(s.root, "HEAD")
}

func (s *Store) refPath(refpath string) string {
	return filepath.Join(s.root, filepath.FromSlash(refpath))
}

// writeFile performs a full-file overwrite via temp-then-rename, so readers
// never observe a torn write. Concurrent writers are not serialized; per the
// engine's concurrency model, the caller must not run overlapping mutations
// against the same repository.
func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("refs: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-ref-*")
	if err != nil {
		return fmt.Errorf("refs: tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("refs: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("refs: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("refs: rename: %w", err)
	}
	return nil
}

// ReadHead returns HEAD's raw content, trailing newline included.
func (s *Store) ReadHead() (string, error) {
	raw, err := os.ReadFile(s.headPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("refs: HEAD: %w", ErrNotFound)
		}
		return "", fmt.Errorf("refs: read HEAD: %w", err)
	}
	return string(raw), nil
}

// WriteHead overwrites HEAD with content, appending a trailing newline.
func (s *Store) WriteHead(content string) error {
	return writeFile(s.headPath(), []byte(content+"\n"))
}

// IsDetached reports whether HEAD holds a raw digest rather than a symbolic
// ref.
func (s *Store) IsDetached() (bool, error) {
	raw, err := s.ReadHead()
	if err != nil {
		return false, err
	}
	return !strings.HasPrefix(raw, "ref: "), nil
}

// CurrentBranchName returns the branch name HEAD points at, if HEAD is
// symbolic and targets refs/heads/.
func (s *Store) CurrentBranchName() (string, bool, error) {
	raw, err := s.ReadHead()
	if err != nil {
		return "", false, err
	}
	target := strings.TrimPrefix(strings.TrimSpace(raw), "ref: ")
	if target == strings.TrimSpace(raw) {
		return "", false, nil // detached
	}
	name, ok := strings.CutPrefix(target, "refs/heads/")
	if !ok {
		return "", false, nil
	}
	return name, true, nil
}

// ResolveHead follows HEAD to a commit digest. Returns ok=false for an
// unborn branch (symbolic HEAD whose target does not yet exist).
func (s *Store) ResolveHead() (object.Hash, bool, error) {
	raw, err := s.ReadHead()
	if err != nil {
		return object.ZeroHash, false, err
	}
	raw = strings.TrimSpace(raw)
	if target, ok := strings.CutPrefix(raw, "ref: "); ok {
		return s.ReadRef(target)
	}
	h, err := object.ParseHash(raw)
	if err != nil {
		return object.ZeroHash, false, fmt.Errorf("refs: HEAD: %w: %w", err, ErrMalformedRef)
	}
	return h, true, nil
}

// ReadRef reads the digest stored at refpath (e.g. "refs/heads/main").
// ok=false means the ref file does not exist (unborn).
func (s *Store) ReadRef(refpath string) (object.Hash, bool, error) {
	raw, err := os.ReadFile(s.refPath(refpath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return object.ZeroHash, false, nil
		}
		return object.ZeroHash, false, fmt.Errorf("refs: read %s: %w", refpath, err)
	}
	h, err := object.ParseHash(strings.TrimSpace(string(raw)))
	if err != nil {
		return object.ZeroHash, false, fmt.Errorf("refs: %s: %w: %w", refpath, err, ErrMalformedRef)
	}
	return h, true, nil
}

// WriteRef overwrites refpath with id's hex form.
func (s *Store) WriteRef(refpath string, id object.Hash) error {
	return writeFile(s.refPath(refpath), []byte(id.String()+"\n"))
}

// CreateBranch fails if the branch already exists; otherwise it points
// refs/heads/{name} at id.
func (s *Store) CreateBranch(name string, id object.Hash) error {
	if _, ok, err := s.ReadRef("refs/heads/" + name); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("refs: branch %q already exists", name)
	}
	return s.WriteRef("refs/heads/"+name, id)
}

// DeleteBranch removes refs/heads/{name}. Callers are responsible for
// refusing to delete the checked-out branch.
func (s *Store) DeleteBranch(name string) error {
	return s.DeleteRef("refs/heads/" + name)
}

// DeleteRef removes the ref file at refpath.
func (s *Store) DeleteRef(refpath string) error {
	path := s.refPath(refpath)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("refs: %s: %w", refpath, ErrNotFound)
		}
		return fmt.Errorf("refs: delete %s: %w", refpath, err)
	}
	return nil
}

// ResolveBranch reads refs/heads/{name}.
func (s *Store) ResolveBranch(name string) (object.Hash, bool, error) {
	return s.ReadRef("refs/heads/" + name)
}

// ListBranches walks refs/heads/** recursively and returns slash-joined
// names, sorted by ordinal comparison.
func (s *Store) ListBranches() ([]string, error) {
	return s.listRefNames("refs/heads")
}

// ListRefNames walks prefix (e.g. "refs/tags") recursively and returns
// slash-joined names relative to prefix, sorted by ordinal comparison.
func (s *Store) ListRefNames(prefix string) ([]string, error) {
	return s.listRefNames(prefix)
}

func (s *Store) listRefNames(prefix string) ([]string, error) {
	base := s.refPath(prefix)
	var names []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("refs: list %s: %w", prefix, err)
	}
	sort.Strings(names)
	return names, nil
}

const hexCharset = "0123456789abcdef"

func looksLikeHex64(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if strings.IndexRune(hexCharset, c) < 0 {
			return false
		}
	}
	return true
}

// Resolve implements the universal resolver: literal HEAD (case-insensitive),
// any path starting with "refs/", a short branch name, then a 64-char hex
// literal. The first hit wins; there is no partial-hex resolution.
func (s *Store) Resolve(spec string) (object.Hash, bool, error) {
	if strings.EqualFold(spec, "HEAD") {
		return s.ResolveHead()
	}
	if strings.HasPrefix(spec, "refs/") {
		return s.ReadRef(spec)
	}
	if h, ok, err := s.ResolveBranch(spec); err != nil {
		return object.ZeroHash, false, err
	} else if ok {
		return h, true, nil
	}
	if looksLikeHex64(spec) {
		h, err := object.ParseHash(spec)
		if err != nil {
			return object.ZeroHash, false, nil
		}
		return h, true, nil
	}
	return object.ZeroHash, false, nil
}
