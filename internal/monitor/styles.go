package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// Dashboard color palette - ops room neon
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F") // Deep void
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorOrange   = lipgloss.Color("#FF7700") // Deep orange
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink
	ColorInfo     = lipgloss.Color("#38BDF8") // Sky

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple

	// Timeline dataset colors
	ColorGraph       = lipgloss.Color("#00FFFF") // CPU
	ColorGraphMemory = lipgloss.Color("#BF40FF") // RAM
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// RunningSpinnerFrames animate the header while a sync cycle is in flight.
var RunningSpinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// GetRunningSpinner returns the spinner glyph for a frame.
func GetRunningSpinner(frameIndex int) string {
	return RunningSpinnerFrames[frameIndex%len(RunningSpinnerFrames)]
}

// ToneColor maps a render tone to a palette color.
func ToneColor(t render.Tone) lipgloss.Color {
	switch t {
	case render.ToneHealthy:
		return ColorHealthy
	case render.ToneWarning:
		return ColorWarning
	case render.ToneOrange:
		return ColorOrange
	case render.ToneCritical:
		return ColorCritical
	case render.ToneInfo:
		return ColorInfo
	case render.ToneMuted:
		return ColorTextMuted
	default:
		return ColorTextPrimary
	}
}

// StyleFor turns a widget style into a lipgloss style. Pulsing widgets
// fade on odd frames.
func StyleFor(s render.Style, frame int) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(ToneColor(s.Tone))
	if s.Emphasis {
		st = st.Bold(true)
	}
	if s.Pulse && frame%2 == 1 {
		st = st.Faint(true)
	}
	return st
}

// MetricColor returns the threshold color for a percentage metric.
func MetricColor(percent float64) lipgloss.Color {
	return ToneColor(render.LoadTone(percent))
}

// ProgressBar renders a bracketless bar in the given color.
func ProgressBar(width int, percent float64, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	filled := int(clampPercent(percent) / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// SectionHeader renders a panel top border with the title on the left and
// value on the right.
// Format: ╭─ Title ────────────────────────────── Value ╮
func SectionHeader(title, value string, width int, border lipgloss.Color) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2
	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}

	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fillWidth)+" ") +
		value +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a panel.
func SectionFooter(width int, border lipgloss.Color) string {
	if width < 2 {
		width = 2
	}
	return lipgloss.NewStyle().Foreground(border).Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line padded between panel borders.
// Content wider than the panel is truncated.
func SectionContentLine(content string, width int, border lipgloss.Color) string {
	if width < 4 {
		width = 4
	}
	innerWidth := width - 4
	if lipgloss.Width(content) > innerWidth {
		content = lipgloss.NewStyle().MaxWidth(innerWidth).Render(content)
	}
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	side := lipgloss.NewStyle().Foreground(border).Render("│")
	return side + " " + content + strings.Repeat(" ", padding) + " " + side
}

// Section renders a full bordered panel.
func Section(title, value string, lines []string, width int, border lipgloss.Color) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, SectionHeader(title, value, width, border))
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width, border))
	}
	out = append(out, SectionFooter(width, border))
	return strings.Join(out, "\n")
}

// panelBorder picks the border color for a container widget. Raised
// panels take their tone color.
func panelBorder(s render.Style) lipgloss.Color {
	if s.Emphasis {
		return ToneColor(s.Tone)
	}
	return ColorBorder
}
