package object

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash is the 32-byte SHA-256 identity of an object.
type Hash [32]byte

// ZeroHash is never a valid stored object; it exists only as a sentinel.
var ZeroHash Hash

// ParseHash decodes a 64-character lowercase hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != 64 {
		return h, fmt.Errorf("object: malformed hash %q: want 64 hex chars, got %d", s, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("object: malformed hash %q: %w", s, err)
	}
	copy(h[:], b)
	return h, nil
}

// String renders h as 64 lowercase hex characters.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Prefix returns the 2-character storage prefix.
func (h Hash) Prefix() string {
	return h.String()[:2]
}

// Suffix returns the 62-character storage suffix.
func (h Hash) Suffix() string {
	return h.String()[2:]
}

// IsZero reports whether h is the distinguished zero digest.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// computeDigest hashes the canonical "type len\0content" envelope.
func computeDigest(objType ObjectType, content []byte) Hash {
	header := fmt.Sprintf("%s %d\x00", objType, len(content))
	h := sha256.New()
	h.Write([]byte(header))
	h.Write(content)
	var sum Hash
	copy(sum[:], h.Sum(nil))
	return sum
}

// ComputeID is the public form of computeDigest: compute_id(type, content) -> digest.
func ComputeID(objType ObjectType, content []byte) Hash {
	return computeDigest(objType, content)
}
