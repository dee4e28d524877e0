package cmd

import "fmt"

// ExitError carries a process exit status out of a RunE handler. Execute
// turns it into os.Exit(Code); Err, when set, has already been reported.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the wrapped error's message, or the bare status.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("plix: exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap exposes the reported error to errors.Is and errors.As.
func (e *ExitError) Unwrap() error { return e.Err }
