package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// chunkSize bounds each read from a running command.
const chunkSize = 4096

// Shell runs each command through `<shell> -c`. Stdout and stderr share one
// pipe so their output interleaves the way it would on a terminal.
type Shell struct {
	shell string
}

func newShell(opts Options) (Executor, error) {
	if err := opts.allow("shell", "shell"); err != nil {
		return nil, err
	}
	sh, err := opts.stringOption("shell", "shell", "sh")
	if err != nil {
		return nil, err
	}
	return &Shell{shell: sh}, nil
}

func (s *Shell) Name() string { return "shell" }

func (s *Shell) RunOne(ctx context.Context, env Environment, command string, out io.Writer) (*Result, error) {
	cmd := exec.CommandContext(ctx, s.shell, "-c", command)
	if env != nil {
		cmd.Env = env.Slice()
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("creating output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("starting %s: %w", s.shell, err)
	}
	// the child owns the write end now; keeping ours open would block EOF
	pw.Close()

	copyErr := pump(out, pr)
	pr.Close()

	res, err := exitResult(cmd.Wait())
	if err != nil {
		return nil, err
	}
	if copyErr != nil {
		return res, fmt.Errorf("reading output: %w", copyErr)
	}
	return res, nil
}

// pump copies r to out in chunks of at most chunkSize bytes.
func pump(out io.Writer, r io.Reader) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// exitResult turns the error of cmd.Wait into an exit status.
func exitResult(err error) (*Result, error) {
	if err == nil {
		return &Result{ExitCode: 0}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: exitErr.ExitCode()}, nil
	}
	return nil, err
}
