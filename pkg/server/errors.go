package server

import "errors"

// ErrUnauthorized is returned when the auth oracle denies a read or write.
var ErrUnauthorized = errors.New("server: unauthorized")

// ErrRepositoryNotFound is returned for pull/pr against a repository that
// has never been pushed to.
var ErrRepositoryNotFound = errors.New("server: repository not found")
