package matrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevehiehn/plix/internal/keyset"
)

func p(dim string, value any) Pair {
	return Pair{Dimension: dim, Value: value}
}

func variantStrings(vs []Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestGenerateVariantsOrder(t *testing.T) {
	t.Parallel()

	m := Matrix{
		"python": {2.7, 3.6},
		"arch":   {"x86", "arm"},
	}
	got := variantStrings(GenerateVariants(m))
	want := []string{
		"arch:x86,python:2.7",
		"arch:x86,python:3.6",
		"arch:arm,python:2.7",
		"arch:arm,python:3.6",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateVariantsCardinality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    Matrix
		want int
	}{
		{name: "empty matrix", m: Matrix{}, want: 1},
		{name: "nil matrix", m: nil, want: 1},
		{name: "single dimension", m: Matrix{"a": {1, 2, 3}}, want: 3},
		{name: "three dimensions", m: Matrix{"a": {1, 2}, "b": {1, 2, 3}, "c": {"x"}}, want: 6},
		{name: "empty dimension", m: Matrix{"a": {1, 2}, "b": {}}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, GenerateVariants(tt.m), tt.want)
		})
	}
}

func TestGenerateVariantsEmptyMatrixYieldsEmptyVariant(t *testing.T) {
	t.Parallel()

	vs := GenerateVariants(Matrix{})
	require.Len(t, vs, 1)
	assert.Empty(t, vs[0])
	assert.Empty(t, vs[0].Context())
}

func TestGenerateVariantsUnique(t *testing.T) {
	t.Parallel()

	vs := GenerateVariants(Matrix{"a": {1, 2}, "b": {"x", "y"}, "c": {true, false}})
	for i := range vs {
		assert.Len(t, vs[i], 3)
		for j := i + 1; j < len(vs); j++ {
			assert.False(t, vs[i].Equal(vs[j]), "duplicate variant %s", vs[i])
		}
	}
}

func TestPairEqualUncomparableValues(t *testing.T) {
	t.Parallel()

	a := p("cfg", map[string]any{"k": []any{1, 2}})
	b := p("cfg", map[string]any{"k": []any{1, 2}})
	c := p("cfg", map[string]any{"k": []any{1}})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(p("other", a.Value)))
}

func TestNewVariantSortsPairs(t *testing.T) {
	t.Parallel()

	v := NewVariant(p("b", 2), p("a", 1))
	assert.Equal(t, "a:1,b:2", v.String())
	assert.True(t, v.Equal(NewVariant(p("a", 1), p("b", 2))))
}

func TestFilterVariants(t *testing.T) {
	t.Parallel()

	vs := GenerateVariants(Matrix{"python": {2.7, 3.6}, "os": {"linux", "mac"}})

	t.Run("empty subset is identity", func(t *testing.T) {
		assert.Equal(t, vs, FilterVariants(vs, nil))
		assert.Equal(t, vs, FilterVariants(vs, Constraint{}))
	})

	t.Run("single pair", func(t *testing.T) {
		got := variantStrings(FilterVariants(vs, Constraint{p("python", 3.6)}))
		want := []string{"os:linux,python:3.6", "os:mac,python:3.6"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("full variant", func(t *testing.T) {
		got := FilterVariants(vs, Constraint{p("python", 2.7), p("os", "mac")})
		require.Len(t, got, 1)
		assert.Equal(t, "os:mac,python:2.7", got[0].String())
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterVariants(vs, Constraint{p("python", 4)}))
	})

	t.Run("every result includes subset", func(t *testing.T) {
		subset := Constraint{p("os", "linux")}
		for _, v := range FilterVariants(vs, subset) {
			assert.True(t, v.Includes(subset))
		}
	})
}

func TestExcludeVariants(t *testing.T) {
	t.Parallel()

	vs := GenerateVariants(Matrix{"python": {2.7, 3.6}, "os": {"linux", "mac"}})
	got := variantStrings(ExcludeVariants(vs, []Constraint{
		{p("python", 2.7), p("os", "mac")},
	}))
	want := []string{"os:linux,python:2.7", "os:linux,python:3.6", "os:mac,python:3.6"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, vs, ExcludeVariants(vs, nil))
	assert.Len(t, ExcludeVariants(vs, []Constraint{{}}), 4, "empty exclusion must not drop everything")
}

func TestValidateKeys(t *testing.T) {
	t.Parallel()

	m := Matrix{"python": {2.7}, "os": {"linux"}, "unused": {1}}
	reduced, unknown := ValidateKeys(m, keyset.New("python", "os", "missing"))

	assert.Equal(t, []string{"os", "python"}, reduced.Names())
	assert.Equal(t, []string{"missing"}, unknown.Sorted())
	assert.Len(t, m, 3, "input matrix must not be modified")
}

func TestValidateKeysEmpty(t *testing.T) {
	t.Parallel()

	reduced, unknown := ValidateKeys(Matrix{"a": {1}}, keyset.New())
	assert.Empty(t, reduced)
	assert.Empty(t, unknown.Sorted())
}
