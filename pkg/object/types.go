package object

import "fmt"

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// ParseObjectType validates a header type token.
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case TypeBlob, TypeTree, TypeCommit:
		return ObjectType(s), nil
	default:
		return "", fmt.Errorf("object: unknown type %q: %w", s, ErrMalformedObject)
	}
}

const (
	// Tree entry mode strings, carried through the object model but not
	// honored on checkout (files are always materialized as regular).
	ModeDir        = "40000"
	ModeFile       = "100644"
	ModeExecutable = "100755"
	ModeSymlink    = "120000"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object, in ascending ordinal name order.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// IsDir reports whether the entry names a subtree.
func (e TreeEntry) IsDir() bool {
	return e.Mode == ModeDir
}

// Tree holds a sorted list of tree entries.
type Tree struct {
	Entries []TreeEntry
}

// Signature identifies an author or committer: "Name <email> unix_seconds ±HHMM".
type Signature struct {
	Name    string
	Email   string
	Seconds int64
	Offset  string // "+HHMM" or "-HHMM"
}

// Commit represents one node of the commit DAG.
type Commit struct {
	TreeHash  Hash
	Parents   []Hash
	Author    Signature
	Committer Signature
	Message   string
}
