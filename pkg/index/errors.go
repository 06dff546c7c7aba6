package index

import "errors"

// ErrCorruptIndex covers a wrong magic, unsupported version, truncation, or
// checksum mismatch when loading a persisted index.
var ErrCorruptIndex = errors.New("index: corrupt index")
