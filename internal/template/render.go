package template

import (
	"fmt"
	"strings"
	texttemplate "text/template"

	plixerrors "github.com/stevehiehn/plix/internal/errors"
)

// Context holds the values available to templates during one rendering pass.
type Context map[string]any

// Merge returns a new context with the values of other laid over c.
func (c Context) Merge(other Context) Context {
	out := make(Context, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Render substitutes ctx into the template string s. A free variable
// missing from ctx is an UNDEFINED_VARIABLE error; nothing renders to empty.
func Render(s string, ctx Context) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	keys, err := keysOf(s)
	if err != nil {
		return "", err
	}
	var missing []string
	funcs := texttemplate.FuncMap{}
	for _, k := range keys {
		v, ok := ctx[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		funcs[k] = func() any { return v }
	}
	if len(missing) > 0 {
		return "", plixerrors.NewUndefinedVariable(s, missing)
	}

	tmpl, err := texttemplate.New("template").Funcs(funcs).Option("missingkey=error").Parse(s)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", s, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("rendering template %q: %w", s, err)
	}
	return b.String(), nil
}

// RenderObject renders every Text inside obj and returns an object of the
// same shape. Mapping keys and Leaf values pass through untouched.
func RenderObject(obj Object, ctx Context) (Object, error) {
	switch o := obj.(type) {
	case Text:
		s, err := Render(string(o), ctx)
		if err != nil {
			return nil, err
		}
		return Text(s), nil
	case Sequence:
		out := make(Sequence, len(o))
		for i, item := range o {
			r, err := RenderObject(item, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case Mapping:
		out := make(Mapping, len(o))
		for k, item := range o {
			r, err := RenderObject(item, ctx)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = r
		}
		return out, nil
	default:
		return obj, nil
	}
}

// RenderStrings renders each template in commands, in order.
func RenderStrings(commands []string, ctx Context) ([]string, error) {
	out := make([]string, len(commands))
	for i, c := range commands {
		r, err := Render(c, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
