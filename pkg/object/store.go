package object

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a content-addressed loose object store with a 2-character
// fan-out directory layout: objects/ab/cdef0123...
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", h.Prefix(), h.Suffix())
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// WriteRaw stores pre-compressed bytes directly under the object's id,
// without recomputing or validating the digest. Used by the wire layer,
// which receives compressed bytes tagged with their claimed id.
func (s *Store) WriteRaw(h Hash, compressed []byte) error {
	if s.Has(h) {
		return nil
	}
	dir := filepath.Join(s.root, "objects", h.Prefix())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("object: write mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("object: write tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("object: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object: write close: %w", err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("object: write rename: %w", err)
	}
	return nil
}

// Write stores an object and returns its digest. write is idempotent: if
// the destination already exists the call is a no-op and the existing
// bytes are not verified against data.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	id, compressed, err := Serialize(objType, data)
	if err != nil {
		return ZeroHash, err
	}
	if err := s.WriteRaw(id, compressed); err != nil {
		return ZeroHash, err
	}
	return id, nil
}

// ReadRaw returns the compressed bytes stored for id, or ErrNotFound.
func (s *Store) ReadRaw(h Hash) ([]byte, error) {
	raw, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("object: %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object: read %s: %w", h, err)
	}
	return raw, nil
}

// Read retrieves an object by hash, returning its type and content.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return "", nil, err
	}
	return Deserialize(raw)
}

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object: %s: type mismatch: got %q, want %q", h, objType, TypeBlob)
	}
	return UnmarshalBlob(data)
}

// WriteTree serializes and stores a Tree.
func (s *Store) WriteTree(t *Tree) (Hash, error) {
	return s.Write(TypeTree, MarshalTree(t))
}

// ReadTree reads and deserializes a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, fmt.Errorf("object: %s: type mismatch: got %q, want %q", h, objType, TypeTree)
	}
	return UnmarshalTree(data)
}

// WriteCommit serializes and stores a Commit.
func (s *Store) WriteCommit(c *Commit) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object: %s: type mismatch: got %q, want %q", h, objType, TypeCommit)
	}
	return UnmarshalCommit(data)
}
