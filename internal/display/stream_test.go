package display

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisplay() (*StreamDisplay, *bytes.Buffer) {
	var out bytes.Buffer
	return NewStreamDisplay(&out, WithoutColor()), &out
}

func TestStreamDisplaySuccessDiscardsOutput(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(0, "echo hello")
	d.Output(0, []byte("hello\n"))
	d.Stop(0, "echo hello", 0)

	assert.Equal(t, "1) echo hello\t[ok]\n", out.String())
	assert.Empty(t, d.buffers, "buffer must be released on stop")
}

func TestStreamDisplayFailureReplaysOutputInOrder(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(1, "false")
	d.Output(1, []byte("a"))
	d.Output(1, []byte("b"))
	d.Output(1, []byte("c"))
	d.Stop(1, "false", 1)

	want := "2) false\t[failed]\nabc\n2) Command exited with 1\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 1, strings.Count(out.String(), "abc"), "output must be flushed exactly once")
	assert.Empty(t, d.buffers)
}

func TestStreamDisplayFailureKeepsTrailingNewline(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(0, "make")
	d.Output(0, []byte("error: boom\n"))
	d.Stop(0, "make", 2)

	assert.Equal(t, "1) make\t[failed]\nerror: boom\n1) Command exited with 2\n", out.String())
}

func TestStreamDisplayFailureWithoutOutput(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(0, "false")
	d.Stop(0, "false", 1)

	assert.Equal(t, "1) false\t[failed]\n1) Command exited with 1\n", out.String())
}

func TestStreamDisplayUnknownStatus(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(0, "broken")
	d.Output(0, []byte("partial"))
	d.Stop(0, "broken", ExitUnknown)

	assert.Contains(t, out.String(), "partial\n")
	assert.True(t, strings.HasSuffix(out.String(), "1) Command did not report an exit status\n"))
}

func TestStreamDisplayExecutorFailure(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(0, "make")
	d.Output(0, []byte("exec: \"bash\": executable file not found in $PATH"))
	d.Stop(0, "make", ExitNotRun)

	assert.Contains(t, out.String(), "executable file not found")
	assert.True(t, strings.HasSuffix(out.String(), "1) Command could not be run\n"))
	assert.NotContains(t, out.String(), "did not report an exit status")
}

func TestStreamDisplayBuffersAreKeyedByIndex(t *testing.T) {
	d, out := newTestDisplay()

	d.Start(0, "one")
	d.Start(1, "two")
	d.Output(0, []byte("from one"))
	d.Output(1, []byte("from two"))
	d.Stop(1, "two", 0)
	d.Stop(0, "one", 3)

	got := out.String()
	assert.Contains(t, got, "from one")
	assert.NotContains(t, got, "from two")
}

func TestStreamDisplayConcurrentOutput(t *testing.T) {
	d, out := newTestDisplay()

	const n = 8
	for i := 0; i < n; i++ {
		d.Start(i, fmt.Sprintf("cmd%d", i))
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d.Output(i, []byte{'x'})
			}
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		d.Stop(i, fmt.Sprintf("cmd%d", i), 1)
	}

	assert.Equal(t, n, strings.Count(out.String(), strings.Repeat("x", 100)+"\n"))
}

func TestWriterForwardsCopies(t *testing.T) {
	d, out := newTestDisplay()
	d.Start(0, "cmd")

	w := Writer(d, 0)
	chunk := []byte("abc")
	n, err := w.Write(chunk)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	copy(chunk, "zzz")

	d.Stop(0, "cmd", 1)
	assert.Contains(t, out.String(), "abc\n")
	assert.NotContains(t, out.String(), "zzz")
}
