package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// MarshalTree serializes a Tree as, for each entry in ascending ordinal
// order of Name: ASCII("{octal_mode} {name}") || 0x00 || digest(32B).
func MarshalTree(t *Tree) []byte {
	sorted := make([]TreeEntry, len(t.Entries))
	copy(sorted, t.Entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var buf bytes.Buffer
	for _, e := range sorted {
		fmt.Fprintf(&buf, "%s %s", e.Mode, e.Name)
		buf.WriteByte(0)
		buf.Write(e.Hash[:])
	}
	return buf.Bytes()
}

// UnmarshalTree parses a Tree from its canonical bytes.
func UnmarshalTree(data []byte) (*Tree, error) {
	t := &Tree{}
	for len(data) > 0 {
		nul := bytes.IndexByte(data, 0)
		if nul < 0 {
			return nil, fmt.Errorf("object: tree entry missing separator: %w", ErrMalformedObject)
		}
		header := string(data[:nul])
		mode, name, ok := strings.Cut(header, " ")
		if !ok {
			return nil, fmt.Errorf("object: tree entry header %q has no space: %w", header, ErrMalformedObject)
		}
		rest := data[nul+1:]
		if len(rest) < 32 {
			return nil, fmt.Errorf("object: tree entry truncated digest: %w", ErrMalformedObject)
		}
		var h Hash
		copy(h[:], rest[:32])
		t.Entries = append(t.Entries, TreeEntry{Mode: mode, Name: name, Hash: h})
		data = rest[32:]
	}
	return t, nil
}

// MarshalCommit serializes a Commit:
//
//	tree H
//	parent H     (zero or more)
//	author Name <email> unix_seconds ±HHMM
//	committer Name <email> unix_seconds ±HHMM
//
//	message
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash.String())
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p.String())
	}
	fmt.Fprintf(&buf, "author %s\n", formatSignature(c.Author))
	fmt.Fprintf(&buf, "committer %s\n", formatSignature(c.Committer))
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

func formatSignature(s Signature) string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.Seconds, s.Offset)
}

func parseSignature(s string) (Signature, error) {
	open := strings.LastIndex(s, "<")
	close := strings.LastIndex(s, ">")
	if open < 0 || close < open {
		return Signature{}, fmt.Errorf("object: malformed signature %q: %w", s, ErrMalformedObject)
	}
	name := strings.TrimSpace(s[:open])
	email := s[open+1 : close]
	rest := strings.TrimSpace(s[close+1:])
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return Signature{}, fmt.Errorf("object: malformed signature %q: %w", s, ErrMalformedObject)
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("object: malformed signature timestamp %q: %w", fields[0], ErrMalformedObject)
	}
	return Signature{Name: name, Email: email, Seconds: secs, Offset: fields[1]}, nil
}

// UnmarshalCommit parses a Commit from its canonical text.
func UnmarshalCommit(data []byte) (*Commit, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("object: commit missing header/message separator: %w", ErrMalformedObject)
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &Commit{Message: message}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("object: malformed commit header line %q: %w", line, ErrMalformedObject)
		}
		switch key {
		case "tree":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("object: %w: %w", err, ErrMalformedObject)
			}
			c.TreeHash = h
		case "parent":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("object: %w: %w", err, ErrMalformedObject)
			}
			c.Parents = append(c.Parents, h)
		case "author":
			sig, err := parseSignature(val)
			if err != nil {
				return nil, err
			}
			c.Author = sig
		case "committer":
			sig, err := parseSignature(val)
			if err != nil {
				return nil, err
			}
			c.Committer = sig
		default:
			return nil, fmt.Errorf("object: unknown commit header key %q: %w", key, ErrMalformedObject)
		}
	}
	return c, nil
}
