package object

// Collect walks the reachability closure of id into set: if id is already
// present, it returns immediately; otherwise it inserts id, reads the
// object, and recurses into whatever it references. An object missing from
// the local store silently terminates that branch of the walk, so partial
// clones and first pushes of never-before-seen objects do not fail.
func (s *Store) Collect(id Hash, set map[Hash]struct{}) error {
	if _, ok := set[id]; ok {
		return nil
	}
	if !s.Has(id) {
		return nil
	}
	set[id] = struct{}{}

	objType, data, err := s.Read(id)
	if err != nil {
		return nil
	}

	switch objType {
	case TypeBlob:
		return nil
	case TypeCommit:
		c, err := UnmarshalCommit(data)
		if err != nil {
			return nil
		}
		if err := s.Collect(c.TreeHash, set); err != nil {
			return err
		}
		for _, p := range c.Parents {
			if err := s.Collect(p, set); err != nil {
				return err
			}
		}
	case TypeTree:
		t, err := UnmarshalTree(data)
		if err != nil {
			return nil
		}
		for _, e := range t.Entries {
			if err := s.Collect(e.Hash, set); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReachableSet returns the closure of every root, per Collect. Roots absent
// from the store are skipped.
func (s *Store) ReachableSet(roots []Hash) (map[Hash]struct{}, error) {
	set := make(map[Hash]struct{})
	for _, r := range roots {
		if err := s.Collect(r, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}
