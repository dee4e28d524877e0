package display

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// StreamDisplay writes one line per command to a stream. Command output is
// held in memory until the command stops: it is dropped when the command
// succeeds and replayed, followed by a summary line, when it fails.
type StreamDisplay struct {
	mu      sync.Mutex
	out     io.Writer
	buffers map[int]*bytes.Buffer
	styles  styles
}

// Option configures a StreamDisplay.
type Option func(*lipgloss.Renderer)

// WithoutColor renders plain text regardless of the terminal.
func WithoutColor() Option {
	return NoColor
}

// NewStreamDisplay returns a display writing to out.
func NewStreamDisplay(out io.Writer, opts ...Option) *StreamDisplay {
	r := lipgloss.NewRenderer(out)
	for _, opt := range opts {
		opt(r)
	}
	return &StreamDisplay{
		out:     out,
		buffers: make(map[int]*bytes.Buffer),
		styles:  newStyles(r),
	}
}

func (d *StreamDisplay) Start(index int, command string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buffers[index] = &bytes.Buffer{}
	// commands can span lines, so they are written unstyled
	fmt.Fprintf(d.out, "%s %s", d.styles.index.Render(label(index)), command)
}

func (d *StreamDisplay) Output(index int, chunk []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf, ok := d.buffers[index]
	if !ok {
		buf = &bytes.Buffer{}
		d.buffers[index] = buf
	}
	buf.Write(chunk)
}

func (d *StreamDisplay) Stop(index int, command string, exitCode int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf := d.buffers[index]
	delete(d.buffers, index)

	if exitCode == 0 {
		fmt.Fprintf(d.out, "\t%s\n", d.styles.ok.Render("[ok]"))
		return
	}

	fmt.Fprintf(d.out, "\t%s\n", d.styles.failed.Render("[failed]"))
	if buf != nil && buf.Len() > 0 {
		data := buf.Bytes()
		d.out.Write(data)
		if data[len(data)-1] != '\n' {
			io.WriteString(d.out, "\n")
		}
	}

	var summary string
	switch exitCode {
	case ExitUnknown:
		summary = fmt.Sprintf("%s Command did not report an exit status", label(index))
	case ExitNotRun:
		summary = fmt.Sprintf("%s Command could not be run", label(index))
	default:
		summary = fmt.Sprintf("%s Command exited with %d", label(index), exitCode)
	}
	fmt.Fprintf(d.out, "%s\n", d.styles.summary.Render(summary))
}

// label numbers commands from 1 for humans.
func label(index int) string {
	return strconv.Itoa(index+1) + ")"
}
