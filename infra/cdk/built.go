package cdk

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrNotBuilt is returned when a construct is looked up by a name it was
// never built under.
var ErrNotBuilt = errors.New("not built")

// Built holds constructs of one kind keyed by their registry name. Lookups
// are required: a missing name is an error, never a nil construct.
type Built[K ~string, V any] struct {
	kind  string
	items map[K]V
	order []K
}

func newBuilt[K ~string, V any](kind string) *Built[K, V] {
	return &Built[K, V]{kind: kind, items: map[K]V{}}
}

func (b *Built[K, V]) add(name K, v V) {
	if _, dup := b.items[name]; dup {
		panic(errors.Newf("%s %q built twice", b.kind, name))
	}
	b.items[name] = v
	b.order = append(b.order, name)
}

// Get returns the construct built under name.
func (b *Built[K, V]) Get(name K) (V, error) {
	v, ok := b.items[name]
	if !ok {
		var zero V
		return zero, errors.Wrapf(ErrNotBuilt, "%s %q", b.kind, name)
	}
	return v, nil
}

// MustGet is Get for construction code, where a missing construct aborts
// synthesis.
func (b *Built[K, V]) MustGet(name K) V {
	v, err := b.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Names returns the names in build order.
func (b *Built[K, V]) Names() []K {
	return slices.Clone(b.order)
}

// Len returns the number of constructs.
func (b *Built[K, V]) Len() int {
	return len(b.items)
}
