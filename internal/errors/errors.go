package errors

import (
	"fmt"
	"slices"
	"strings"
)

// Error type constants
const (
	UnknownKeys       = "UNKNOWN_KEYS"
	DuplicateKeys     = "DUPLICATE_KEYS"
	UndefinedVariable = "UNDEFINED_VARIABLE"
	MissingExitStatus = "MISSING_EXIT_STATUS"
	ValidationError   = "VALIDATION_ERROR"
	ExecutorNotFound  = "EXECUTOR_NOT_FOUND"
)

// Sentinels for errors.Is. Only the Type is compared.
var (
	ErrUnknownKeys       = &RunError{Type: UnknownKeys}
	ErrDuplicateKeys     = &RunError{Type: DuplicateKeys}
	ErrUndefinedVariable = &RunError{Type: UndefinedVariable}
	ErrMissingExitStatus = &RunError{Type: MissingExitStatus}
	ErrValidation        = &RunError{Type: ValidationError}
	ErrExecutorNotFound  = &RunError{Type: ExecutorNotFound}
)

// RunError is a structured error surfaced to the user.
type RunError struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Keys    []string `json:"keys,omitempty"`
	Hint    string   `json:"hint,omitempty"`
}

func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Is matches any *RunError of the same Type.
func (e *RunError) Is(target error) bool {
	t, ok := target.(*RunError)
	return ok && t.Type == e.Type
}

func NewUnknownKeys(keys []string) *RunError {
	keys = sortedCopy(keys)
	return &RunError{
		Type:    UnknownKeys,
		Message: "unknown key(s): " + strings.Join(keys, ", "),
		Keys:    keys,
		Hint:    "Declare the key(s) in 'matrix' or 'global', or fix the template",
	}
}

func NewDuplicateKeys(keys []string) *RunError {
	keys = sortedCopy(keys)
	return &RunError{
		Type:    DuplicateKeys,
		Message: "key(s) declared in both 'global' and 'matrix': " + strings.Join(keys, ", "),
		Keys:    keys,
		Hint:    "Remove the key(s) from one of the two sections",
	}
}

func NewUndefinedVariable(template string, keys []string) *RunError {
	keys = sortedCopy(keys)
	return &RunError{
		Type:    UndefinedVariable,
		Message: fmt.Sprintf("undefined variable(s) %s in template %q", strings.Join(keys, ", "), template),
		Keys:    keys,
	}
}

func NewMissingExitStatus(executor, command string) *RunError {
	return &RunError{
		Type:    MissingExitStatus,
		Message: fmt.Sprintf("executor %q reported no exit status for command %q", executor, command),
	}
}

func NewValidationError(msg, hint string) *RunError {
	return &RunError{Type: ValidationError, Message: msg, Hint: hint}
}

func NewExecutorNotFound(name string, known []string) *RunError {
	return &RunError{
		Type:    ExecutorNotFound,
		Message: fmt.Sprintf("unknown executor %q", name),
		Hint:    "Known executors: " + strings.Join(sortedCopy(known), ", "),
	}
}

func sortedCopy(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}
