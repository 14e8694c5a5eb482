package monitor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sentinel/internal/render"
)

type keyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	ToggleCPU  key.Binding
	ToggleMem  key.Binding
	FocusCPU   key.Binding
	FocusMem   key.Binding
	ShowAll    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	CloseHelp  key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q / Ctrl+C", "Quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Sync now"),
	),
	ToggleCPU: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Toggle CPU on timeline"),
	),
	ToggleMem: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Toggle RAM on timeline"),
	),
	FocusCPU: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "Show only CPU"),
	),
	FocusMem: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "Show only RAM"),
	),
	ShowAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "Show all datasets"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up", "k", "pgup"),
		key.WithHelp("up / k", "Scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("down", "j", "pgdown"),
		key.WithHelp("down / j", "Scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Toggle this help"),
	),
	CloseHelp: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Close help"),
	),
}

// ShortHelp is the footer hint line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.ToggleCPU, k.ToggleMem, k.ShowAll, k.Help}
}

// FullHelp groups every binding for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.helpOrder()}
}

var _ help.KeyMap = keyMap{}

// helpOrder is the order bindings appear in the help overlay.
func (k keyMap) helpOrder() []key.Binding {
	return []key.Binding{
		k.Quit, k.Refresh,
		k.ToggleCPU, k.ToggleMem, k.FocusCPU, k.FocusMem, k.ShowAll,
		k.ScrollUp, k.ScrollDown, k.Help,
	}
}

// HandleKeyMsg processes keyboard input. Returns true if the key was
// handled; unhandled keys fall through to the viewport.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key.Matches(msg, keys.CloseHelp) {
		m.showHelp = false
		return true, nil
	}

	timeline := m.board.ChartWidget(render.ChartTimeline)

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Refresh):
		return true, m.syncCmd()

	case key.Matches(msg, keys.ToggleCPU):
		render.ToggleDataset(timeline, render.DatasetCPU)
		return true, nil

	case key.Matches(msg, keys.ToggleMem):
		render.ToggleDataset(timeline, render.DatasetMemory)
		return true, nil

	case key.Matches(msg, keys.FocusCPU):
		render.FocusDataset(timeline, render.DatasetCPU)
		return true, nil

	case key.Matches(msg, keys.FocusMem):
		render.FocusDataset(timeline, render.DatasetMemory)
		return true, nil

	case key.Matches(msg, keys.ShowAll):
		render.ShowAllDatasets(timeline)
		return true, nil
	}

	return false, nil
}
