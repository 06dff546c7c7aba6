package object

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
)

// Serialize computes the digest of (objType, content) and returns it
// alongside the raw-DEFLATE-compressed canonical bytes, ready to hand to a
// Store. The digest is taken over the uncompressed header+content.
func Serialize(objType ObjectType, content []byte) (Hash, []byte, error) {
	id := computeDigest(objType, content)

	header := fmt.Sprintf("%s %d\x00", objType, len(content))

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return id, nil, fmt.Errorf("object: compress: %w", err)
	}
	if _, err := w.Write([]byte(header)); err != nil {
		return id, nil, fmt.Errorf("object: compress: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		return id, nil, fmt.Errorf("object: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return id, nil, fmt.Errorf("object: compress: %w", err)
	}
	return id, buf.Bytes(), nil
}

// Deserialize inflates compressed and splits the canonical envelope into its
// type and content.
func Deserialize(compressed []byte) (ObjectType, []byte, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("object: decompress: %w: %w", err, ErrMalformedObject)
	}

	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return "", nil, fmt.Errorf("object: no envelope separator: %w", ErrMalformedObject)
	}
	header := string(raw[:nul])
	content := raw[nul+1:]

	typeTok, lenTok, ok := strings.Cut(header, " ")
	if !ok {
		return "", nil, fmt.Errorf("object: envelope header %q has no space: %w", header, ErrMalformedObject)
	}
	objType, err := ParseObjectType(typeTok)
	if err != nil {
		return "", nil, err
	}

	declared, err := strconv.Atoi(lenTok)
	if err != nil || declared < 0 {
		return "", nil, fmt.Errorf("object: bad length token %q: %w", lenTok, ErrMalformedObject)
	}
	if declared > len(content) {
		return "", nil, fmt.Errorf("object: declared length %d exceeds available content %d: %w", declared, len(content), ErrMalformedObject)
	}

	return objType, content[:declared], nil
}
