package repo

import (
	"fmt"
	"strings"

	"github.com/brinevcs/magicrepos/pkg/object"
)

// CreateTag points refs/tags/{name} at target. It fails if the tag already
// exists, unless force is set.
func (r *Repo) CreateTag(name string, target object.Hash, force bool) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("repo: create tag: %w", err)
	}

	refName := "refs/tags/" + name
	if !force {
		if _, ok, err := r.Refs.ReadRef(refName); err != nil {
			return fmt.Errorf("repo: create tag %q: %w", name, err)
		} else if ok {
			return fmt.Errorf("repo: create tag %q: already exists", name)
		}
	}
	if err := r.Refs.WriteRef(refName, target); err != nil {
		return fmt.Errorf("repo: create tag %q: %w", name, err)
	}
	return nil
}

// DeleteTag removes refs/tags/{name}.
func (r *Repo) DeleteTag(name string) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("repo: delete tag: %w", err)
	}
	if err := r.Refs.DeleteRef("refs/tags/" + name); err != nil {
		return fmt.Errorf("repo: delete tag %q: %w", name, err)
	}
	return nil
}

// ResolveTag resolves a tag name under refs/tags/.
func (r *Repo) ResolveTag(name string) (object.Hash, bool, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return object.ZeroHash, false, fmt.Errorf("repo: resolve tag: %w", err)
	}
	return r.Refs.ReadRef("refs/tags/" + name)
}

// ListTags returns every tag name, sorted by ordinal comparison.
func (r *Repo) ListTags() ([]string, error) {
	names, err := r.Refs.ListRefNames("refs/tags")
	if err != nil {
		return nil, fmt.Errorf("repo: list tags: %w", err)
	}
	return names, nil
}

func validateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	return nil
}
