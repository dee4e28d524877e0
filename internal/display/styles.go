package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette shared by the display and the logger.
const (
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
)

type styles struct {
	index   lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	summary lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		index:   r.NewStyle().Foreground(ColorMuted),
		ok:      r.NewStyle().Bold(true).Foreground(ColorSuccess),
		failed:  r.NewStyle().Bold(true).Foreground(ColorError),
		summary: r.NewStyle().Foreground(ColorError),
	}
}

// NoColor strips colors and attributes from everything rendered with r.
func NoColor(r *lipgloss.Renderer) {
	r.SetColorProfile(termenv.Ascii)
}
