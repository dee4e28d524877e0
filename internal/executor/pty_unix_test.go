//go:build !windows

package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPTYCommandSeesTerminal(t *testing.T) {
	ex, err := New("pty", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := ex.RunOne(context.Background(), nil, "test -t 1 && echo tty", &out)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "tty", strings.TrimSpace(out.String()))
}

func TestPTYExitStatus(t *testing.T) {
	ex, err := New("pty", Options{"shell": "sh"})
	require.NoError(t, err)

	res, err := ex.RunOne(context.Background(), nil, "echo bye; exit 5", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.ExitCode)
}
