package main

import (
	"fmt"
	"strings"
)

// RemoteURL is a parsed "user@host:owner/repo" remote spec. No
// percent-decoding is applied; IPv6-literal hosts (containing a colon)
// are out of scope.
type RemoteURL struct {
	User  string
	Host  string
	Owner string
	Repo  string
}

// ParseRemoteURL parses the grammar user "@" host ":" owner "/" repo. All
// four fields must be non-empty.
func ParseRemoteURL(s string) (*RemoteURL, error) {
	at := strings.IndexByte(s, '@')
	if at < 0 {
		return nil, fmt.Errorf("remote url %q: missing %q", s, "@")
	}
	user := s[:at]
	rest := s[at+1:]

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return nil, fmt.Errorf("remote url %q: missing %q", s, ":")
	}
	host := rest[:colon]
	path := rest[colon+1:]

	slash := strings.IndexByte(path, '/')
	if slash < 0 {
		return nil, fmt.Errorf("remote url %q: missing %q", s, "/")
	}
	owner := path[:slash]
	name := path[slash+1:]

	u := &RemoteURL{User: user, Host: host, Owner: owner, Repo: name}
	if u.User == "" || u.Host == "" || u.Owner == "" || u.Repo == "" {
		return nil, fmt.Errorf("remote url %q: user, host, owner, and repo must be non-empty", s)
	}
	// The host ends at the first colon, so the rest of an IPv6 literal
	// lands in the owner.
	if strings.Contains(u.Owner, ":") {
		return nil, fmt.Errorf("remote url %q: IPv6-literal hosts are not supported", s)
	}
	return u, nil
}
