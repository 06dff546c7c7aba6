package object

import "errors"

// ErrMalformedObject covers a bad header, truncated content, decompression
// failure, or unknown type token.
var ErrMalformedObject = errors.New("object: malformed object")

// ErrNotFound is returned when a requested object is absent from the store.
var ErrNotFound = errors.New("object: not found")
