package server

// AuthOracle is the external authorization source consulted before a
// session proceeds: push requires write access to {owner}/{repo}; pull and
// pr require authenticated read access. The owner of a namespace is always
// writable to themselves; every other rule is the oracle's concern.
type AuthOracle interface {
	CanRead(user string) bool
	CanWrite(user, owner, repo string) bool
}

// OwnerWriteOracle is a minimal AuthOracle: any authenticated user can
// read, and a user can write only to namespaces they own.
type OwnerWriteOracle struct {
	// Readers, when non-nil, restricts CanRead to this set. A nil set
	// means every caller can read.
	Readers map[string]struct{}
}

func (o *OwnerWriteOracle) CanRead(user string) bool {
	if o.Readers == nil {
		return true
	}
	_, ok := o.Readers[user]
	return ok
}

func (o *OwnerWriteOracle) CanWrite(user, owner, _ string) bool {
	return user == owner
}
