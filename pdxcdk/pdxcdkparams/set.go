package pdxcdkparams

import (
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxValueLength is the largest value a standard tier parameter accepts.
const MaxValueLength = 4096

// Parameter is a single SSM string parameter.
type Parameter struct {
	// ID is the construct id used when the parameter is published.
	ID    string `json:"-"     yaml:"-"`
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Set is an ordered collection of parameters below a common root. Problems
// found while adding entries are collected and reported by Parameters.
type Set struct {
	root   string
	params []Parameter
	errs   []string
}

// NewSet creates an empty set rooted at root (e.g. "/orcabus/workflows/x/").
func NewSet(root string) *Set {
	return &Set{root: root}
}

// Root returns the namespace root of the set.
func (s *Set) Root() string {
	return s.root
}

// Put adds a plain string parameter.
func (s *Set) Put(id, name, value string) {
	s.params = append(s.params, Parameter{ID: id, Name: name, Value: value})
}

// PutJSON adds a parameter holding the JSON encoding of value.
func (s *Set) PutJSON(id, name string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.errs = append(s.errs, fmt.Sprintf("encoding %s: %v", name, err))
		return
	}
	s.Put(id, name, string(data))
}

// PutEach adds one parameter per map entry at {prefix}/{key}, in key order.
func PutEach(s *Set, idPrefix, namePrefix string, entries map[string]string) {
	for _, key := range sortedKeys(entries) {
		s.Put(idPrefix+key, path.Join(namePrefix, key), entries[key])
	}
}

// PutJSONEach adds one JSON encoded parameter per map entry at
// {prefix}/{key}, in key order.
func PutJSONEach[V any](s *Set, idPrefix, namePrefix string, entries map[string]V) {
	for _, key := range sortedKeys(entries) {
		s.PutJSON(idPrefix+key, path.Join(namePrefix, key), entries[key])
	}
}

// Parameters validates the set and returns its parameters in insertion
// order. Every name must be below the root and unique, every id unique and
// every value non-empty and within MaxValueLength.
func (s *Set) Parameters() ([]Parameter, error) {
	problems := slices.Clone(s.errs)
	names := make(map[string]struct{}, len(s.params))
	ids := make(map[string]struct{}, len(s.params))

	for _, p := range s.params {
		if !strings.HasPrefix(p.Name, s.root) {
			problems = append(problems, fmt.Sprintf("parameter %q is outside root %q", p.Name, s.root))
		}
		if _, dup := names[p.Name]; dup {
			problems = append(problems, fmt.Sprintf("parameter %q is defined more than once", p.Name))
		}
		names[p.Name] = struct{}{}
		if _, dup := ids[p.ID]; dup {
			problems = append(problems, fmt.Sprintf("construct id %q is used more than once", p.ID))
		}
		ids[p.ID] = struct{}{}
		switch {
		case p.Value == "":
			problems = append(problems, fmt.Sprintf("parameter %q has an empty value", p.Name))
		case len(p.Value) > MaxValueLength:
			problems = append(problems, fmt.Sprintf("parameter %q exceeds %d characters", p.Name, MaxValueLength))
		}
	}

	if len(problems) > 0 {
		return nil, errors.Errorf("parameter set errors:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return slices.Clone(s.params), nil
}

// Lookup returns the parameter with the given name.
func (s *Set) Lookup(name string) (Parameter, bool) {
	for _, p := range s.params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Values returns the set as a name to value map.
func (s *Set) Values() map[string]string {
	out := make(map[string]string, len(s.params))
	for _, p := range s.params {
		out[p.Name] = p.Value
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
