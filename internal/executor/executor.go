// Package executor runs rendered commands and reports them through a Display.
package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/stevehiehn/plix/internal/display"
	plixerrors "github.com/stevehiehn/plix/internal/errors"
)

// Environment is the set of variables handed to every command.
type Environment map[string]string

// CurrentEnvironment returns the environment of the running process.
func CurrentEnvironment() Environment {
	env := Environment{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Slice returns the environment as sorted KEY=VALUE entries.
func (e Environment) Slice() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	slices.Sort(out)
	return out
}

// Result holds the exit status of one command.
type Result struct {
	ExitCode int
}

// Executor runs a single command. Everything the command prints goes to
// out. A nil Result with a nil error is a broken implementation, reported
// by the driver as MISSING_EXIT_STATUS.
type Executor interface {
	Name() string
	RunOne(ctx context.Context, env Environment, command string, out io.Writer) (*Result, error)
}

// Execute runs commands in order through ex, stopping at the first one that
// exits non-zero. It reports whether every command succeeded. Errors are
// reserved for failures of the executor itself.
func Execute(ctx context.Context, ex Executor, env Environment, commands []string, d display.Display) (bool, error) {
	return ExecuteAt(ctx, ex, env, commands, d, 0)
}

// ExecuteAt is Execute with display indices starting at first, so several
// command lists can share one display pass without index collisions.
func ExecuteAt(ctx context.Context, ex Executor, env Environment, commands []string, d display.Display, first int) (bool, error) {
	for i, command := range commands {
		ok, err := executeOne(ctx, ex, env, first+i, command, d)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func executeOne(ctx context.Context, ex Executor, env Environment, index int, command string, d display.Display) (bool, error) {
	exitCode := display.ExitUnknown
	d.Start(index, command)
	defer func() { d.Stop(index, command, exitCode) }()

	res, err := ex.RunOne(ctx, env, command, display.Writer(d, index))
	if res != nil {
		exitCode = res.ExitCode
	}
	if err != nil {
		exitCode = display.ExitNotRun
		d.Output(index, []byte(err.Error()+"\n"))
		return false, fmt.Errorf("%s executor: running %q: %w", ex.Name(), command, err)
	}
	if res == nil {
		return false, plixerrors.NewMissingExitStatus(ex.Name(), command)
	}
	return res.ExitCode == 0, nil
}
