package interp

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps language identities to descriptors, with an alias table
// resolving alternate identities to canonical names. A Registry is immutable
// after construction; overlays produce a new one.
type Registry struct {
	interpreters map[string]*Descriptor
	aliases      map[string]string
}

// NewRegistry builds a registry from descriptors keyed by their Name, plus an
// alias map from alternate identity to canonical name.
func NewRegistry(descriptors []*Descriptor, aliases map[string]string) *Registry {
	r := &Registry{
		interpreters: make(map[string]*Descriptor, len(descriptors)),
		aliases:      make(map[string]string, len(aliases)),
	}
	for _, d := range descriptors {
		r.interpreters[strings.ToLower(d.Name)] = d
	}
	for from, to := range aliases {
		r.aliases[strings.ToLower(from)] = strings.ToLower(to)
	}
	return r
}

// Resolve returns the descriptor registered for identity, following one level
// of alias indirection.
func (r *Registry) Resolve(identity string) (*Descriptor, error) {
	name := strings.ToLower(identity)
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	d, ok := r.interpreters[name]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrUnknownInterpreter, identity)
	}
	return d, nil
}

// Names returns the canonical interpreter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.interpreters))
	for name := range r.interpreters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// merge returns a new registry with extra descriptors and aliases layered
// over r. Later entries win.
func (r *Registry) merge(descriptors []*Descriptor, aliases map[string]string) *Registry {
	out := &Registry{
		interpreters: make(map[string]*Descriptor, len(r.interpreters)+len(descriptors)),
		aliases:      make(map[string]string, len(r.aliases)+len(aliases)),
	}
	for name, d := range r.interpreters {
		out.interpreters[name] = d
	}
	for from, to := range r.aliases {
		out.aliases[from] = to
	}
	for _, d := range descriptors {
		out.interpreters[strings.ToLower(d.Name)] = d
	}
	for from, to := range aliases {
		out.aliases[strings.ToLower(from)] = strings.ToLower(to)
	}
	return out
}
