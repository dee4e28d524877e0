package executor

import (
	"fmt"
	"maps"
	"slices"

	plixerrors "github.com/stevehiehn/plix/internal/errors"
)

// DefaultName is used when the build file names no executor.
const DefaultName = "shell"

// Options are the executor options from the build file.
type Options map[string]any

// Factory builds an executor from its options.
type Factory func(opts Options) (Executor, error)

var registry = map[string]Factory{}

func init() {
	registry["shell"] = newShell
	registry["virtual"] = newVirtual
}

// New returns the executor registered under name.
func New(name string, opts Options) (Executor, error) {
	if name == "" {
		name = DefaultName
	}
	f, ok := registry[name]
	if !ok {
		return nil, plixerrors.NewExecutorNotFound(name, Names())
	}
	return f(opts)
}

// Known returns true if an executor is registered under name.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names lists the registered executors, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// allow fails on any option outside allowed.
func (o Options) allow(executor string, allowed ...string) error {
	for k := range o {
		if !slices.Contains(allowed, k) {
			return plixerrors.NewValidationError(
				fmt.Sprintf("unknown option %q for executor %q", k, executor),
				optionsHint(allowed),
			)
		}
	}
	return nil
}

// stringOption reads an optional string option.
func (o Options) stringOption(executor, key, def string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", plixerrors.NewValidationError(
			fmt.Sprintf("option %q of executor %q must be a non-empty string, got %v", key, executor, v),
			"",
		)
	}
	return s, nil
}

func optionsHint(allowed []string) string {
	if len(allowed) == 0 {
		return "this executor takes no options"
	}
	return fmt.Sprintf("valid options: %v", allowed)
}
