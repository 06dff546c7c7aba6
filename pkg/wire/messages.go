package wire

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/brinevcs/magicrepos/pkg/object"
)

// Op names the operation a client requests in NegotiateRequest.
type Op string

const (
	OpPush Op = "push"
	OpPull Op = "pull"
	OpPr   Op = "pr"
)

// EncodeNegotiateRequest builds "{op}\0{owner}\0{repo}".
func EncodeNegotiateRequest(op Op, owner, repo string) []byte {
	return []byte(string(op) + "\x00" + owner + "\x00" + repo)
}

// DecodeNegotiateRequest parses a NegotiateRequest payload. Fewer than three
// NUL-separated fields is a protocol violation.
func DecodeNegotiateRequest(payload []byte) (op Op, owner, repo string, err error) {
	parts := bytes.SplitN(payload, []byte{0}, 3)
	if len(parts) < 3 {
		return "", "", "", fmt.Errorf("%w: negotiate request has %d fields, want 3", ErrProtocolViolation, len(parts))
	}
	return Op(parts[0]), string(parts[1]), string(parts[2]), nil
}

// EncodeRefAdvertisement renders refs as sorted "{name} {hex}\n" lines.
func EncodeRefAdvertisement(refs map[string]object.Hash) []byte {
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)
	var buf bytes.Buffer
	for _, name := range names {
		fmt.Fprintf(&buf, "%s %s\n", name, refs[name])
	}
	return buf.Bytes()
}

// DecodeRefAdvertisement parses an empty-or-multiline ref advertisement.
func DecodeRefAdvertisement(payload []byte) (map[string]object.Hash, error) {
	refs := make(map[string]object.Hash)
	text := string(payload)
	if text == "" {
		return refs, nil
	}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: malformed ref advertisement line %q", ErrProtocolViolation, line)
		}
		h, err := object.ParseHash(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		refs[fields[0]] = h
	}
	return refs, nil
}

// EncodeRefUpdate builds "{refname}\0{hex}".
func EncodeRefUpdate(refname string, id object.Hash) []byte {
	return []byte(refname + "\x00" + id.String())
}

// DecodeRefUpdate parses a RefUpdate payload.
func DecodeRefUpdate(payload []byte) (refname string, id object.Hash, err error) {
	parts := bytes.SplitN(payload, []byte{0}, 2)
	if len(parts) != 2 {
		return "", object.ZeroHash, fmt.Errorf("%w: ref update missing NUL separator", ErrProtocolViolation)
	}
	id, err = object.ParseHash(string(parts[1]))
	if err != nil {
		return "", object.ZeroHash, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}
	return string(parts[0]), id, nil
}

// EncodeRefWanted joins ref names with newlines; an empty slice means
// nothing wanted.
func EncodeRefWanted(names []string) []byte {
	return []byte(strings.Join(names, "\n"))
}

// DecodeRefWanted splits a RefWanted payload back into ref names.
func DecodeRefWanted(payload []byte) []string {
	if len(payload) == 0 {
		return nil
	}
	return strings.Split(string(payload), "\n")
}

// packDataIDLength is the fixed width of the ASCII hex id prefix on every
// PackData payload.
const packDataIDLength = 64

// EncodePackData prefixes compressed with id's 64-character hex form.
func EncodePackData(id object.Hash, compressed []byte) []byte {
	buf := make([]byte, packDataIDLength+len(compressed))
	copy(buf, []byte(id.String()))
	copy(buf[packDataIDLength:], compressed)
	return buf
}

// DecodePackData splits a PackData payload into its claimed id and the
// remaining compressed object bytes. The id is not verified against the
// bytes here; see object.Store.WriteRaw.
func DecodePackData(payload []byte) (object.Hash, []byte, error) {
	if len(payload) < packDataIDLength {
		return object.ZeroHash, nil, fmt.Errorf("%w: pack data payload shorter than id", ErrProtocolViolation)
	}
	id, err := object.ParseHash(string(payload[:packDataIDLength]))
	if err != nil {
		return object.ZeroHash, nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}
	return id, payload[packDataIDLength:], nil
}
