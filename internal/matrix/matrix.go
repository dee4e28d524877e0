// Package matrix expands build dimensions into variants and filters them.
package matrix

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/stevehiehn/plix/internal/keyset"
)

// Matrix maps a dimension name to its ordered candidate values.
type Matrix map[string][]any

// Names returns the dimension names, sorted.
func (m Matrix) Names() []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Keys returns the dimension names as a set.
func (m Matrix) Keys() keyset.Set {
	return keyset.New(m.Names()...)
}

// Pair binds a dimension to one of its values.
type Pair struct {
	Dimension string
	Value     any

	// token is the text the value was parsed from on the command line.
	token string
}

// Equal compares dimension names and values. Values are compared deeply,
// so uncomparable values (maps, slices) are fine.
func (p Pair) Equal(o Pair) bool {
	return p.Dimension == o.Dimension && reflect.DeepEqual(p.Value, o.Value)
}

// Matches reports whether candidate, a pair of some variant, satisfies p.
// A pair parsed from the command line also matches a string value spelled
// exactly like its token, so python:3.10 selects a quoted "3.10".
func (p Pair) Matches(candidate Pair) bool {
	if p.Dimension != candidate.Dimension {
		return false
	}
	if reflect.DeepEqual(p.Value, candidate.Value) {
		return true
	}
	s, ok := candidate.Value.(string)
	return ok && p.token != "" && s == p.token
}

func (p Pair) String() string {
	if p.token != "" {
		return p.Dimension + ":" + p.token
	}
	return fmt.Sprintf("%s:%v", p.Dimension, p.Value)
}

// Variant is one combination of dimension values, at most one pair per
// dimension. Pairs are kept sorted by dimension, so two variants holding
// the same pairs are Equal regardless of construction order.
type Variant []Pair

// NewVariant builds a variant from pairs in any order.
func NewVariant(pairs ...Pair) Variant {
	v := slices.Clone(Variant(pairs))
	slices.SortStableFunc(v, func(a, b Pair) int {
		return strings.Compare(a.Dimension, b.Dimension)
	})
	return v
}

// Includes reports whether every pair of c matches a pair of v.
func (v Variant) Includes(c Constraint) bool {
	for _, p := range c {
		if !slices.ContainsFunc(v, p.Matches) {
			return false
		}
	}
	return true
}

// Equal reports whether v and o hold the same pairs.
func (v Variant) Equal(o Variant) bool {
	return slices.EqualFunc(v, o, Pair.Equal)
}

// Context returns the variant as a name to value map.
func (v Variant) Context() map[string]any {
	ctx := make(map[string]any, len(v))
	for _, p := range v {
		ctx[p.Dimension] = p.Value
	}
	return ctx
}

func (v Variant) String() string {
	parts := make([]string, len(v))
	for i, p := range v {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

// Constraint is a partial set of pairs a variant must include to be selected.
type Constraint []Pair

func (c Constraint) String() string {
	return Variant(c).String()
}

// GenerateVariants returns the cartesian product of m's dimensions, taken
// in sorted dimension order with the last dimension varying fastest.
// An empty matrix yields a single empty variant; a dimension without
// values yields none.
func GenerateVariants(m Matrix) []Variant {
	names := m.Names()
	total := 1
	for _, n := range names {
		total *= len(m[n])
	}
	if total == 0 {
		return []Variant{}
	}

	variants := make([]Variant, 0, total)
	idx := make([]int, len(names))
	for {
		v := make(Variant, len(names))
		for i, n := range names {
			v[i] = Pair{Dimension: n, Value: m[n][idx[i]]}
		}
		variants = append(variants, v)

		// advance the odometer
		i := len(names) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(m[names[i]]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return variants
		}
	}
}

// FilterVariants keeps the variants that include subset, in order.
// An empty subset keeps everything.
func FilterVariants(variants []Variant, subset Constraint) []Variant {
	if len(subset) == 0 {
		return variants
	}
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if v.Includes(subset) {
			out = append(out, v)
		}
	}
	return out
}

// ExcludeVariants drops the variants that include any of exclusions.
func ExcludeVariants(variants []Variant, exclusions []Constraint) []Variant {
	if len(exclusions) == 0 {
		return variants
	}
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		excluded := false
		for _, c := range exclusions {
			if len(c) > 0 && v.Includes(c) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, v)
		}
	}
	return out
}

// ValidateKeys reduces m to the dimensions named in keys and returns the
// requested keys m does not declare. It never fails; callers decide
// whether unknown keys are fatal.
func ValidateKeys(m Matrix, keys keyset.Set) (Matrix, keyset.Set) {
	reduced := Matrix{}
	for name, values := range m {
		if keys.Has(name) {
			reduced[name] = values
		}
	}
	return reduced, keys.Difference(m.Keys())
}
