// Package logging builds the human-oriented logger used across plix.
package logging

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// SuccessLevel sits between info and warn. It reports builds that passed.
const SuccessLevel = log.InfoLevel + 2

// Options control the logger built by New.
type Options struct {
	Debug   bool
	NoColor bool
}

// New returns a logger writing to w without timestamps.
func New(w io.Writer, opts Options) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: false,
	})
	if opts.Debug {
		l.SetLevel(log.DebugLevel)
	}
	if opts.NoColor {
		l.SetColorProfile(termenv.Ascii)
	}

	styles := log.DefaultStyles()
	styles.Levels[SuccessLevel] = lipgloss.NewStyle().
		SetString("SUCC").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("#10B981"))
	l.SetStyles(styles)
	return l
}

// Success logs msg at SuccessLevel.
func Success(l *log.Logger, msg string, keyvals ...any) {
	l.Log(SuccessLevel, msg, keyvals...)
}
