package engine

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/stevehiehn/plix/internal/display"
	"github.com/stevehiehn/plix/internal/executor"
	"github.com/stevehiehn/plix/internal/matrix"
)

// RunContext holds what one build needs besides its configuration.
type RunContext struct {
	RunID       string
	Environment executor.Environment
	Executor    executor.Executor
	Display     display.Display
	Logger      *log.Logger
	Pairs       matrix.Constraint // selects variants; empty selects all
}

// NewRunContext creates a context running commands in the current
// process environment.
func NewRunContext(ex executor.Executor, d display.Display, logger *log.Logger, pairs matrix.Constraint) *RunContext {
	return &RunContext{
		RunID:       uuid.New().String(),
		Environment: executor.CurrentEnvironment(),
		Executor:    ex,
		Display:     d,
		Logger:      logger,
		Pairs:       pairs,
	}
}
