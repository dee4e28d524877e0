package config

import (
	"fmt"

	plixerrors "github.com/stevehiehn/plix/internal/errors"
	"github.com/stevehiehn/plix/internal/executor"
	"github.com/stevehiehn/plix/internal/matrix"
)

// normalize turns a schema-valid document into a Configuration.
func normalize(raw map[string]any) (*Configuration, error) {
	raw = narrow(raw).(map[string]any)

	spec, err := parseExecutor(raw["executor"])
	if err != nil {
		return nil, err
	}
	cfg := &Configuration{
		Executor: spec,
		Global:   map[string]any{},
		Matrix:   matrix.Matrix{},
	}

	if g, ok := raw["global"].(map[string]any); ok {
		cfg.Global = g
	}

	if m, ok := raw["matrix"].(map[string]any); ok {
		for name, values := range m {
			switch v := values.(type) {
			case []any:
				cfg.Matrix[name] = v
			default:
				cfg.Matrix[name] = []any{v}
			}
		}
	}

	if ex, ok := raw["exclude"].([]any); ok {
		for _, item := range ex {
			entry, _ := item.(map[string]any)
			cfg.Exclude = append(cfg.Exclude, entry)
		}
	}

	for _, phase := range Phases {
		commands, err := commandList(phase, raw[phase])
		if err != nil {
			return nil, err
		}
		cfg.setCommands(phase, commands)
	}
	return cfg, nil
}

func parseExecutor(v any) (ExecutorSpec, error) {
	switch e := v.(type) {
	case nil:
		return ExecutorSpec{Name: executor.DefaultName}, nil
	case string:
		return ExecutorSpec{Name: e}, nil
	case map[string]any:
		name, _ := e["name"].(string)
		if name == "" {
			return ExecutorSpec{}, plixerrors.NewValidationError("executor: name is required", "")
		}
		opts, _ := e["options"].(map[string]any)
		return ExecutorSpec{Name: name, Options: opts}, nil
	}
	return ExecutorSpec{}, plixerrors.NewValidationError(
		fmt.Sprintf("executor must be a name or a {name, options} mapping, got %T", v), "")
}

// commandList accepts a single command or a list of commands.
func commandList(phase string, v any) ([]string, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{c}, nil
	case []any:
		out := make([]string, 0, len(c))
		for i, item := range c {
			s, ok := item.(string)
			if !ok {
				return nil, plixerrors.NewValidationError(
					fmt.Sprintf("%s[%d]: commands must be strings, got %T", phase, i, item), "")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, plixerrors.NewValidationError(
		fmt.Sprintf("%s: expected a command or a list of commands, got %T", phase, v), "")
}

// narrow converts TOML's int64 values to int so they compare equal to
// values decoded from YAML or from the command line.
func narrow(v any) any {
	switch val := v.(type) {
	case int64:
		return int(val)
	case []any:
		for i, item := range val {
			val[i] = narrow(item)
		}
		return val
	case map[string]any:
		for k, item := range val {
			val[k] = narrow(item)
		}
		return val
	default:
		return v
	}
}
