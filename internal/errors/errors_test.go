package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestUnknownKeysSortsAndMatchesSentinel(t *testing.T) {
	err := NewUnknownKeys([]string{"b", "a"})
	if err.Error() != "[UNKNOWN_KEYS] unknown key(s): a, b" {
		t.Errorf("unexpected message %q", err.Error())
	}
	wrapped := fmt.Errorf("running: %w", err)
	if !stderrors.Is(wrapped, ErrUnknownKeys) {
		t.Error("expected wrapped error to match ErrUnknownKeys")
	}
	if stderrors.Is(wrapped, ErrDuplicateKeys) {
		t.Error("did not expect a match with ErrDuplicateKeys")
	}
}

func TestDuplicateKeysCarriesKeys(t *testing.T) {
	err := NewDuplicateKeys([]string{"z", "y"})
	if len(err.Keys) != 2 || err.Keys[0] != "y" {
		t.Errorf("expected sorted keys, got %v", err.Keys)
	}
}

func TestSortedCopyLeavesInputAlone(t *testing.T) {
	in := []string{"b", "a"}
	NewUndefinedVariable("{{b}}{{a}}", in)
	if in[0] != "b" {
		t.Error("input slice was reordered")
	}
}

func TestMissingExitStatus(t *testing.T) {
	var target *RunError
	err := fmt.Errorf("x: %w", NewMissingExitStatus("custom", "make"))
	if !stderrors.As(err, &target) {
		t.Fatal("expected a *RunError")
	}
	if target.Type != MissingExitStatus {
		t.Errorf("expected type %s, got %s", MissingExitStatus, target.Type)
	}
}
