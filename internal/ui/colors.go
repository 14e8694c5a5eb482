package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// Plain output uses the 16-color ANSI palette so it reads on any terminal;
// the TUI has its own truecolor palette.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorOrange  lipgloss.Color = "9" // Bright red, closest to orange
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// ToneColor maps a render tone onto the ANSI palette.
func ToneColor(t render.Tone) lipgloss.Color {
	switch t {
	case render.ToneHealthy:
		return ColorSuccess
	case render.ToneWarning:
		return ColorWarning
	case render.ToneOrange:
		return ColorOrange
	case render.ToneCritical:
		return ColorError
	case render.ToneInfo:
		return ColorInfo
	case render.ToneMuted:
		return ColorMuted
	default:
		return ColorPrimary
	}
}

// Paint renders text in the color for s. Emphasis is bold.
func Paint(s render.Style, text string) string {
	return lipgloss.NewStyle().
		Foreground(ToneColor(s.Tone)).
		Bold(s.Emphasis).
		Render(text)
}

// DisableColors switches lipgloss to monochrome output (for --no-color).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
