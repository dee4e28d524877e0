// Package keyset provides a small string set for variable and dimension names.
package keyset

import (
	"slices"
	"strings"
)

// Set is an unordered set of names.
type Set map[string]struct{}

// New returns a set holding names.
func New(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts names into s.
func (s Set) Add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

// Has reports whether name is in s.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns the names in s or o.
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range o {
		out[n] = struct{}{}
	}
	return out
}

// Difference returns the names in s that are not in o.
func (s Set) Difference(o Set) Set {
	out := Set{}
	for n := range s {
		if !o.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Intersect returns the names present in both s and o.
func (s Set) Intersect(o Set) Set {
	out := Set{}
	for n := range s {
		if o.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Sorted returns the names in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// String joins the sorted names with ", ".
func (s Set) String() string {
	return strings.Join(s.Sorted(), ", ")
}
