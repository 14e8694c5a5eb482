package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// CycleLine is one line of headless watch output.
type CycleLine struct {
	At     time.Time
	Seq    uint64
	Failed bool
	// Reason is the failure summary; only read when Failed.
	Reason string
	Took   time.Duration

	Health      string
	HealthStyle render.Style
	Risk        string
	RiskStyle   render.Style
	CPU         float64
	Memory      float64
	Incidents   int
	Open        int
}

// RenderCycleLine formats one cycle result. Failed cycles print the lost
// connection state and the reason; the last good values are not repeated.
func RenderCycleLine(l CycleLine) string {
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	stamp := muted.Render(l.At.Format("15:04:05"))

	if l.Failed {
		fail := lipgloss.NewStyle().Foreground(ColorError)
		return fmt.Sprintf("%s %s %s  %s",
			stamp,
			fail.Render(SymbolFail),
			fail.Bold(true).Render(render.TextConnectionLost),
			muted.Render(l.Reason))
	}

	live := lipgloss.NewStyle().Foreground(ColorSuccess)
	parts := []string{
		"health " + Paint(l.HealthStyle, l.Health),
		"risk " + Paint(l.RiskStyle, l.Risk),
		fmt.Sprintf("cpu %s  mem %s",
			Paint(render.Style{Tone: render.LoadTone(l.CPU)}, fmt.Sprintf("%d%%", render.Round(l.CPU))),
			Paint(render.Style{Tone: render.LoadTone(l.Memory)}, fmt.Sprintf("%d%%", render.Round(l.Memory)))),
		fmt.Sprintf("incidents %d (%d open)", l.Incidents, l.Open),
	}
	return fmt.Sprintf("%s %s %s  %s  %s",
		stamp,
		live.Render(SymbolLive),
		live.Render(render.TextLive),
		strings.Join(parts, muted.Render(" | ")),
		muted.Render(fmt.Sprintf("#%d %s", l.Seq, l.Took.Round(time.Millisecond))))
}
