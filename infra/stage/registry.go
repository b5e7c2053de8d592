package stage

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotRegistered is returned when a lookup names a variant the registry
// has no record for.
var ErrNotRegistered = errors.New("not registered")

// Registry maps every variant of a closed name set to one record. It is
// validated on construction: each declared variant has exactly one record and
// no record exists for an undeclared variant.
type Registry[K ~string, V any] struct {
	kind    string
	order   []K
	entries map[K]V
}

// NewRegistry builds a registry for the variants in declaration order.
func NewRegistry[K ~string, V any](kind string, variants []K, entries map[K]V) (*Registry[K, V], error) {
	var problems []string
	seen := make(map[K]struct{}, len(variants))
	for _, v := range variants {
		if _, dup := seen[v]; dup {
			problems = append(problems, fmt.Sprintf("%s %q is declared more than once", kind, v))
			continue
		}
		seen[v] = struct{}{}
		if _, ok := entries[v]; !ok {
			problems = append(problems, fmt.Sprintf("%s %q has no entry", kind, v))
		}
	}

	extra := make([]string, 0)
	for k := range entries {
		if _, ok := seen[k]; !ok {
			extra = append(extra, string(k))
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		problems = append(problems, fmt.Sprintf("%s %q has an entry but is not declared", kind, k))
	}

	if len(problems) > 0 {
		return nil, errors.Errorf("%s registry errors:\n  - %s", kind, strings.Join(problems, "\n  - "))
	}

	return &Registry[K, V]{
		kind:    kind,
		order:   slices.Clone(variants),
		entries: entries,
	}, nil
}

// MustRegistry is like NewRegistry but panics on an inconsistent registry.
func MustRegistry[K ~string, V any](kind string, variants []K, entries map[K]V) *Registry[K, V] {
	reg, err := NewRegistry(kind, variants, entries)
	if err != nil {
		panic(err)
	}
	return reg
}

// Get returns the record of a variant.
func (r *Registry[K, V]) Get(k K) (V, error) {
	v, ok := r.entries[k]
	if !ok {
		var zero V
		return zero, errors.Wrapf(ErrNotRegistered, "%s %q", r.kind, k)
	}
	return v, nil
}

// Names returns the variants in declaration order.
func (r *Registry[K, V]) Names() []K {
	return slices.Clone(r.order)
}

// Len returns the number of variants.
func (r *Registry[K, V]) Len() int {
	return len(r.order)
}

// Kind names what the registry holds, for error messages.
func (r *Registry[K, V]) Kind() string {
	return r.kind
}
