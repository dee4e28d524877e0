package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("plix", pflag.ContinueOnError)
	fs.StringP("configuration", "c", DefaultFile, "")
	fs.BoolP("debug", "d", false, "")
	fs.Bool("no-color", false, "")
	fs.String("executor", "", "")
	return fs
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(newFlags())
	require.NoError(t, err)
	assert.Equal(t, &Settings{Configuration: DefaultFile}, s)
}

func TestLoadSettingsEnvironment(t *testing.T) {
	t.Setenv("PLIX_CONFIGURATION", "ci.yml")
	t.Setenv("PLIX_DEBUG", "1")
	t.Setenv("PLIX_NO_COLOR", "true")
	t.Setenv("PLIX_EXECUTOR", "virtual")

	s, err := LoadSettings(newFlags())
	require.NoError(t, err)
	assert.Equal(t, "ci.yml", s.Configuration)
	assert.True(t, s.Debug)
	assert.True(t, s.NoColor)
	assert.Equal(t, "virtual", s.Executor)
}

func TestLoadSettingsFlagsWin(t *testing.T) {
	t.Setenv("PLIX_CONFIGURATION", "ci.yml")
	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"-c", "local.yml"}))

	s, err := LoadSettings(fs)
	require.NoError(t, err)
	assert.Equal(t, "local.yml", s.Configuration)
}

func TestLoadSettingsWithoutFlags(t *testing.T) {
	s, err := LoadSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, s.Configuration)
}
