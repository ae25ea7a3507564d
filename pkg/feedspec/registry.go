package feedspec

import (
	"sort"
	"sync"
)

// Registry is the immutable attribute catalog. Lookups are O(1) by name;
// iteration follows registry order so output and diagnostics stay stable.
type Registry struct {
	ordered []FieldSpec
	byName  map[string]FieldSpec
}

// NewRegistry builds a registry from an explicit spec list. Later duplicates
// of a name replace earlier ones.
func NewRegistry(specs []FieldSpec) *Registry {
	r := &Registry{
		ordered: make([]FieldSpec, 0, len(specs)),
		byName:  make(map[string]FieldSpec, len(specs)),
	}
	for _, spec := range specs {
		if _, exists := r.byName[spec.Name]; exists {
			for i := range r.ordered {
				if r.ordered[i].Name == spec.Name {
					r.ordered[i] = spec
					break
				}
			}
		} else {
			r.ordered = append(r.ordered, spec)
		}
		r.byName[spec.Name] = spec
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry built from the built-in attribute
// table. The result is shared and must not be mutated.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(builtinFields)
	})
	return defaultRegistry
}

// Get returns the spec for an attribute name.
func (r *Registry) Get(name string) (FieldSpec, bool) {
	spec, ok := r.byName[name]
	return spec, ok
}

// Lookup returns the spec for an attribute name, or UnknownAttributeError
// when the registry does not define it.
func (r *Registry) Lookup(name string) (FieldSpec, error) {
	spec, ok := r.byName[name]
	if !ok {
		return FieldSpec{}, &UnknownAttributeError{Attribute: name}
	}
	return spec, nil
}

// All returns the specs in registry order. The slice is a copy; the specs
// themselves are shared values.
func (r *Registry) All() []FieldSpec {
	out := make([]FieldSpec, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByCategory returns the specs in one registry category, in registry order.
func (r *Registry) ByCategory(category string) []FieldSpec {
	var out []FieldSpec
	for _, spec := range r.ordered {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// Categories returns the distinct category names, sorted.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, spec := range r.ordered {
		if !seen[spec.Category] {
			seen[spec.Category] = true
			out = append(out, spec.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Count returns the number of registered attributes.
func (r *Registry) Count() int {
	return len(r.ordered)
}
