package matrix

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParsePairs converts ["name:value", ...] into a constraint. Values are
// decoded as YAML scalars so "python:3.6" matches a matrix entry written
// as 3.6 in the build file. The raw text is kept too, so the same token
// matches a quoted "3.6".
func ParsePairs(raw []string) (Constraint, error) {
	c := make(Constraint, 0, len(raw))
	for _, token := range raw {
		name, value, ok := strings.Cut(token, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid pair %q: expected name:value", token)
		}
		c = append(c, Pair{Dimension: name, Value: decodeScalar(value), token: value})
	}
	return c, nil
}

// ConstraintFromMap builds a constraint from an exclusion entry.
func ConstraintFromMap(m map[string]any) Constraint {
	c := make(Constraint, 0, len(m))
	for k, v := range m {
		c = append(c, Pair{Dimension: k, Value: v})
	}
	return Constraint(NewVariant(c...))
}

func decodeScalar(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	switch v.(type) {
	case nil:
		if s == "" {
			return ""
		}
		return nil
	case map[string]any, []any:
		return s
	default:
		return v
	}
}
