package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRequiredKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		objs []Object
		want []string
	}{
		{"single key", []Object{Text("Hello {{world}}!")}, []string{"world"}},
		{"no keys", []Object{Text("plain text")}, []string{}},
		{"empty string", []Object{Text("")}, []string{}},
		{"spaced action", []Object{Text("{{ world }}")}, []string{"world"}},
		{"dot field", []Object{Text("{{.python}}")}, []string{"python"}},
		{"field chain on identifier", []Object{Text("{{a.x}} {{b.y}}")}, []string{"a", "b"}},
		{"builtins are not keys", []Object{Text(`{{printf "%s-%s" os arch}}`)}, []string{"arch", "os"}},
		{"bare builtin name is a key", []Object{Text("echo x{{print}}x {{ len }}")}, []string{"len", "print"}},
		{"builtin fed by a pipeline is a call", []Object{Text("{{version | print}}")}, []string{"version"}},
		{"pipeline argument", []Object{Text(`{{version | printf "v%v"}}`)}, []string{"version"}},
		{"declared variables are not keys", []Object{Text(`{{$x := name}}{{$x}}`)}, []string{"name"}},
		{"root variable field", []Object{Text(`{{$.arch}}`)}, []string{"arch"}},
		{"if condition and branches", []Object{Text(`{{if debug}}{{flags}}{{else}}{{.other}}{{end}}`)}, []string{"debug", "flags", "other"}},
		{"range body dot is element", []Object{Text(`{{range targets}}{{.name}}{{end}}`)}, []string{"targets"}},
		{"with body dot is element", []Object{Text(`{{with .cfg}}{{.inner}}{{end}}`)}, []string{"cfg"}},
		{"multiple objects", []Object{Text("{{a}}"), Text("{{b}}"), Text("")}, []string{"a", "b"}},
		{
			"nested containers",
			[]Object{Mapping{"a": Text("{{x}}")}, Sequence{Text("{{y}}")}},
			[]string{"x", "y"},
		},
		{"mapping keys are not scanned", []Object{Mapping{"{{k}}": Text("v")}}, []string{}},
		{"leaves contribute nothing", []Object{Leaf{Value: 42}, Leaf{Value: true}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			keys, err := FindRequiredKeys(tt.objs...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys.Sorted())
		})
	}
}

func TestFindRequiredKeysMalformedTemplate(t *testing.T) {
	t.Parallel()

	_, err := FindRequiredKeys(Sequence{Text("ok"), Text("{{if x}}")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template")
}

func TestFromValueAndBack(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"name":  "{{x}}",
		"count": 3,
		"list":  []any{"a", false},
	}
	obj := FromValue(in)

	m, ok := obj.(Mapping)
	require.True(t, ok, "expected a Mapping, got %T", obj)
	assert.Equal(t, Text("{{x}}"), m["name"])
	assert.Equal(t, Leaf{Value: 3}, m["count"])
	assert.Equal(t, Sequence{Text("a"), Leaf{Value: false}}, m["list"])
	assert.Equal(t, in, ToValue(obj))
}
