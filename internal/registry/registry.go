// Package registry tracks registered repository roots in the
// collaborator's global config, so no state file of our own exists.
// Roots live comma-separated under twig.registry; twig.lastrepo
// remembers the root the previous "repo switch" left from.
package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/twig-cli/twig/internal/git"
)

const (
	registryKey = "twig.registry"
	lastRepoKey = "twig.lastrepo"
)

// Entry is a registered repository root. Name is the root's directory
// basename and must be unique across the registry.
type Entry struct {
	Name string
	Path string
}

// Registry holds the registered roots in registration order.
type Registry struct {
	entries []Entry
}

// Load reads the registry from global config. An unset key yields an
// empty registry.
func Load(ctx context.Context) (*Registry, error) {
	raw, err := git.GlobalConfigGet(ctx, registryKey)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	r := &Registry{}
	for _, root := range strings.Split(raw, ",") {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		r.entries = append(r.entries, Entry{Name: filepath.Base(root), Path: root})
	}

	return r, nil
}

// Save writes the registry back to global config.
func (r *Registry) Save(ctx context.Context) error {
	if len(r.entries) == 0 {
		if err := git.GlobalConfigUnset(ctx, registryKey); err != nil {
			return fmt.Errorf("save registry: %w", err)
		}
		return nil
	}

	roots := make([]string, len(r.entries))
	for i, e := range r.entries {
		roots[i] = e.Path
	}
	if err := git.GlobalConfigSet(ctx, registryKey, strings.Join(roots, ",")); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}

	return nil
}

// Entries returns the registered roots in registration order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Add registers a new root. The path is made absolute; duplicate paths
// and duplicate basenames are rejected.
func (r *Registry) Add(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	// Comma is the list separator in the backing config value.
	if strings.Contains(absRoot, ",") {
		return fmt.Errorf("cannot register %s: path contains a comma", absRoot)
	}

	name := filepath.Base(absRoot)
	for _, e := range r.entries {
		if e.Path == absRoot {
			return fmt.Errorf("repository already registered: %s", absRoot)
		}
		if e.Name == name {
			return fmt.Errorf("repository name already taken: %s (%s)", name, e.Path)
		}
	}

	r.entries = append(r.entries, Entry{Name: name, Path: absRoot})
	return nil
}

// Find looks up an entry by name or path.
func (r *Registry) Find(ref string) (Entry, error) {
	for _, e := range r.entries {
		if e.Name == ref || e.Path == ref {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("repository not registered: %s", ref)
}

// LastRepo returns the root recorded by the previous repo switch,
// empty when none was recorded.
func LastRepo(ctx context.Context) (string, error) {
	return git.GlobalConfigGet(ctx, lastRepoKey)
}

// SetLastRepo records the root the current repo switch leaves from.
func SetLastRepo(ctx context.Context, root string) error {
	return git.GlobalConfigSet(ctx, lastRepoKey, root)
}
