package registry

import (
	"fmt"
	"sort"

	"github.com/agilira/chiron-sub000/internal/manifest"
)

// Registry is an immutable catalog of plugin descriptors keyed by name.
// It is safe for concurrent use once built.
type Registry struct {
	plugins      map[string]*manifest.Descriptor
	names        []string            // sorted
	capabilities map[string][]string // capability -> sorted provider names
}

// New builds a registry from descriptors. A second descriptor with an
// already registered name is rejected with a *DuplicateError.
func New(descriptors ...*manifest.Descriptor) (*Registry, error) {
	b := newBuilder()
	for _, d := range descriptors {
		if err := b.add(d); err != nil {
			return nil, err
		}
	}
	return b.build(), nil
}

// Has reports whether a plugin with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.plugins[name]
	return ok
}

// Get returns a copy of the named plugin's descriptor. It returns an error
// wrapping ErrNotFound if the plugin is not registered.
func (r *Registry) Get(name string) (*manifest.Descriptor, error) {
	d, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin %q: %w", name, ErrNotFound)
	}
	return d.Clone(), nil
}

// Names returns all registered plugin names in lexicographic order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// List returns copies of all descriptors, sorted by name.
func (r *Registry) List() []*manifest.Descriptor {
	out := make([]*manifest.Descriptor, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.plugins[name].Clone())
	}
	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.names)
}

// builder accumulates descriptors before the registry is frozen. It is not
// safe for concurrent use; the loader feeds it from a single goroutine.
type builder struct {
	plugins map[string]*manifest.Descriptor
}

func newBuilder() *builder {
	return &builder{plugins: make(map[string]*manifest.Descriptor)}
}

func (b *builder) add(d *manifest.Descriptor) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("cannot register a descriptor without a name")
	}
	if existing, ok := b.plugins[d.Name]; ok {
		return &DuplicateError{Name: d.Name, Path: d.SourcePath, ExistingPath: existing.SourcePath}
	}
	b.plugins[d.Name] = d.Clone()
	return nil
}

func (b *builder) build() *Registry {
	names := make([]string, 0, len(b.plugins))
	for name := range b.plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	caps := make(map[string][]string)
	for _, name := range names {
		seen := make(map[string]bool)
		for _, c := range b.plugins[name].Provides {
			if seen[c] {
				continue
			}
			seen[c] = true
			caps[c] = append(caps[c], name)
		}
	}

	return &Registry{
		plugins:      b.plugins,
		names:        names,
		capabilities: caps,
	}
}
