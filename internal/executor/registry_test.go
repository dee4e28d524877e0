package executor

import (
	"errors"
	"testing"

	plixerrors "github.com/stevehiehn/plix/internal/errors"
)

func TestNewDefaultsToShell(t *testing.T) {
	ex, err := New("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Name() != "shell" {
		t.Errorf("expected shell executor, got %q", ex.Name())
	}
}

func TestNewUnknownExecutor(t *testing.T) {
	_, err := New("docker", nil)
	if !errors.Is(err, plixerrors.ErrExecutorNotFound) {
		t.Fatalf("expected EXECUTOR_NOT_FOUND, got %v", err)
	}
}

func TestNewUnknownOption(t *testing.T) {
	_, err := New("shell", Options{"timeout": 3})
	if !errors.Is(err, plixerrors.ErrValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestNewBadOptionType(t *testing.T) {
	_, err := New("shell", Options{"shell": 3})
	if !errors.Is(err, plixerrors.ErrValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestKnownAndNames(t *testing.T) {
	for _, name := range []string{"shell", "virtual"} {
		if !Known(name) {
			t.Errorf("expected %q to be known", name)
		}
	}
	if Known("nope") {
		t.Error("expected 'nope' to be unknown")
	}
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
