//go:build !windows

package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

func init() {
	registry["pty"] = newPTY
}

// PTY runs commands like Shell but attached to a pseudo terminal, for
// tools that only color or flush their output on a tty.
type PTY struct {
	shell string
}

func newPTY(opts Options) (Executor, error) {
	if err := opts.allow("pty", "shell"); err != nil {
		return nil, err
	}
	sh, err := opts.stringOption("pty", "shell", "sh")
	if err != nil {
		return nil, err
	}
	return &PTY{shell: sh}, nil
}

func (p *PTY) Name() string { return "pty" }

func (p *PTY) RunOne(ctx context.Context, env Environment, command string, out io.Writer) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.shell, "-c", command)
	if env != nil {
		cmd.Env = env.Slice()
	}

	f, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("starting %s on a pty: %w", p.shell, err)
	}
	copyErr := pump(out, eioReader{f})
	f.Close()

	res, err := exitResult(cmd.Wait())
	if err != nil {
		return nil, err
	}
	if copyErr != nil {
		return res, fmt.Errorf("reading output: %w", copyErr)
	}
	return res, nil
}

// eioReader reports EIO as EOF. Linux returns EIO on the master side once
// the child closes the terminal.
type eioReader struct {
	r io.Reader
}

func (e eioReader) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if errors.Is(err, syscall.EIO) {
		return n, io.EOF
	}
	return n, err
}
