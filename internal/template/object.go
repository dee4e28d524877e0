package template

// Object is a templated value: a Text, a Sequence, a Mapping or a Leaf.
// Rendering preserves the shape of an Object.
type Object interface {
	isObject()
}

// Text is a template string.
type Text string

// Sequence is an ordered list of objects.
type Sequence []Object

// Mapping maps string keys to objects. Keys are never templated.
type Mapping map[string]Object

// Leaf wraps any non-string value (numbers, booleans, nil). It renders to itself.
type Leaf struct {
	Value any
}

func (Text) isObject()     {}
func (Sequence) isObject() {}
func (Mapping) isObject()  {}
func (Leaf) isObject()     {}

// FromValue converts a decoded configuration value into an Object.
func FromValue(v any) Object {
	switch val := v.(type) {
	case Object:
		return val
	case string:
		return Text(val)
	case []string:
		seq := make(Sequence, len(val))
		for i, s := range val {
			seq[i] = Text(s)
		}
		return seq
	case []any:
		seq := make(Sequence, len(val))
		for i, item := range val {
			seq[i] = FromValue(item)
		}
		return seq
	case map[string]any:
		m := make(Mapping, len(val))
		for k, item := range val {
			m[k] = FromValue(item)
		}
		return m
	default:
		return Leaf{Value: v}
	}
}

// ToValue converts an Object back to plain Go values: string, []any,
// map[string]any or the leaf value.
func ToValue(o Object) any {
	switch obj := o.(type) {
	case Text:
		return string(obj)
	case Sequence:
		out := make([]any, len(obj))
		for i, item := range obj {
			out[i] = ToValue(item)
		}
		return out
	case Mapping:
		out := make(map[string]any, len(obj))
		for k, item := range obj {
			out[k] = ToValue(item)
		}
		return out
	case Leaf:
		return obj.Value
	default:
		return nil
	}
}
