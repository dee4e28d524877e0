package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Virtual interprets commands with an in-process POSIX shell, so builds
// behave the same on hosts without sh.
type Virtual struct{}

func newVirtual(opts Options) (Executor, error) {
	if err := opts.allow("virtual"); err != nil {
		return nil, err
	}
	return &Virtual{}, nil
}

func (v *Virtual) Name() string { return "virtual" }

func (v *Virtual) RunOne(ctx context.Context, env Environment, command string, out io.Writer) (*Result, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		// same status sh uses for syntax errors
		fmt.Fprintln(out, err)
		return &Result{ExitCode: 2}, nil
	}

	opts := []interp.RunnerOption{
		interp.StdIO(nil, out, out),
	}
	if env != nil {
		opts = append(opts, interp.Env(expand.ListEnviron(env.Slice()...)))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return &Result{ExitCode: 0}, nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return &Result{ExitCode: int(status)}, nil
	}
	return nil, err
}
