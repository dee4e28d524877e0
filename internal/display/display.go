// Package display reports the lifecycle of each executed command.
package display

import (
	"bytes"
	"io"
	"math"
)

const (
	// ExitUnknown is passed to Stop when the executor never produced a status.
	ExitUnknown = math.MinInt
	// ExitNotRun is passed to Stop when the executor itself failed, so the
	// command has no status of its own.
	ExitNotRun = math.MinInt + 1
)

// Display receives the events of every command the executor runs. For a
// given index the order is always Start, any number of Output, Stop.
type Display interface {
	Start(index int, command string)
	Output(index int, chunk []byte)
	Stop(index int, command string, exitCode int)
}

// Writer returns an io.Writer that forwards everything written to it as
// output of the command at index.
func Writer(d Display, index int) io.Writer {
	return &outputWriter{d: d, index: index}
}

type outputWriter struct {
	d     Display
	index int
}

func (w *outputWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		// writers may reuse p once Write returns
		w.d.Output(w.index, bytes.Clone(p))
	}
	return len(p), nil
}
