package refs

import "errors"

// ErrNotFound is returned when a requested ref does not exist.
var ErrNotFound = errors.New("refs: not found")

// ErrMalformedRef covers bad hex content or an unreadable symbolic target.
var ErrMalformedRef = errors.New("refs: malformed ref")
