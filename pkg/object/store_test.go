package object

import (
	"bytes"
	"errors"
	"testing"
)

func TestStoreWriteReadIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())
	data := []byte("x")

	id1, err := s.Write(TypeBlob, data)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.Write(TypeBlob, data)
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("writes of same content produced different ids")
	}

	objType, content, err := s.Read(id1)
	if err != nil {
		t.Fatal(err)
	}
	if objType != TypeBlob || !bytes.Equal(content, data) {
		t.Fatalf("read mismatch: %q %q", objType, content)
	}
}

func TestStoreReadNotFound(t *testing.T) {
	s := NewStore(t.TempDir())
	_, _, err := s.Read(ComputeID(TypeBlob, []byte("nope")))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreObjectPathLayout(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	id, err := s.WriteBlob(&Blob{Data: []byte("layout")})
	if err != nil {
		t.Fatal(err)
	}
	want := s.objectPath(id)
	if !s.Has(id) {
		t.Fatalf("object missing at %s", want)
	}
}

func TestBlobCommitTreeTypedRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	blobID, err := s.WriteBlob(&Blob{Data: []byte("contents")})
	if err != nil {
		t.Fatal(err)
	}
	tree := &Tree{Entries: []TreeEntry{{Mode: ModeFile, Name: "f.txt", Hash: blobID}}}
	treeID, err := s.WriteTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	sig := Signature{Name: "Ada", Email: "ada@example.com", Seconds: 1, Offset: "+0000"}
	commit := &Commit{TreeHash: treeID, Author: sig, Committer: sig, Message: "c1"}
	commitID, err := s.WriteCommit(commit)
	if err != nil {
		t.Fatal(err)
	}

	gotBlob, err := s.ReadBlob(blobID)
	if err != nil || string(gotBlob.Data) != "contents" {
		t.Fatalf("ReadBlob: %v %+v", err, gotBlob)
	}
	gotTree, err := s.ReadTree(treeID)
	if err != nil || len(gotTree.Entries) != 1 {
		t.Fatalf("ReadTree: %v %+v", err, gotTree)
	}
	gotCommit, err := s.ReadCommit(commitID)
	if err != nil || gotCommit.TreeHash != treeID {
		t.Fatalf("ReadCommit: %v %+v", err, gotCommit)
	}
}
