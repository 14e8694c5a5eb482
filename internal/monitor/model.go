package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sentinel/internal/engine"
)

// pulseInterval is the frame rate for pulsing indicators and the spinner.
const pulseInterval = 500 * time.Millisecond

// Options configures the dashboard model.
type Options struct {
	// Interval is the sync period. Zero uses engine.DefaultInterval.
	Interval time.Duration
	// ClockInterval is the clock period. Zero uses engine.DefaultClockInterval.
	ClockInterval time.Duration
	// Backend is shown in the header.
	Backend string
	// Now is the wall clock, replaceable in tests.
	Now func() time.Time
}

// Model is the Bubble Tea model for the dashboard. Update runs on the
// render thread: it begins cycles, applies their results and ticks the
// clock. Fetches run inside tea.Cmds.
type Model struct {
	ctx    context.Context
	board  *Board
	engine *engine.Engine
	clock  *engine.Clock

	interval      time.Duration
	clockInterval time.Duration
	backend       string
	now           func() time.Time

	latency *LatencyHistory

	width    int
	height   int
	quitting bool
	showHelp bool

	// Animation state
	frame int

	viewport      viewport.Model
	viewportReady bool
}

// syncTickMsg starts a sync cycle.
type syncTickMsg time.Time

// clockTickMsg advances the clock widget.
type clockTickMsg time.Time

// pulseTickMsg advances pulse and spinner frames.
type pulseTickMsg time.Time

// cycleResultMsg carries a finished fetch back to the render thread.
type cycleResultMsg struct {
	result engine.Result
}

// NewModel creates a dashboard over a board the engine renders into. ctx
// bounds every fetch the model starts.
func NewModel(ctx context.Context, board *Board, eng *engine.Engine, clock *engine.Clock, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = engine.DefaultInterval
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = engine.DefaultClockInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		ctx:           ctx,
		board:         board,
		engine:        eng,
		clock:         clock,
		interval:      opts.Interval,
		clockInterval: opts.ClockInterval,
		backend:       opts.Backend,
		now:           opts.Now,
		latency:       NewLatencyHistory(DefaultHistorySize),
	}
}

// Init ticks the clock, starts the first sync and arms the timers.
func (m Model) Init() tea.Cmd {
	if m.clock != nil {
		m.clock.Tick()
	}
	return tea.Batch(
		m.syncCmd(),
		m.syncTickCmd(),
		m.clockTickCmd(),
		m.pulseTickCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, keyCmd := m.HandleKeyMsg(msg)
		if handled {
			m.refreshViewport()
			return m, keyCmd
		}
		if m.viewportReady {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd

	case tea.MouseMsg:
		if m.viewportReady {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Reserve space for header and footer
		headerHeight := 1
		footerHeight := 1
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.refreshViewport()
		return m, nil

	case syncTickMsg:
		return m, tea.Batch(m.syncTickCmd(), m.syncCmd())

	case clockTickMsg:
		if m.clock != nil {
			m.clock.Tick()
		}
		return m, m.clockTickCmd()

	case pulseTickMsg:
		m.frame = (m.frame + 1) % 10000
		m.refreshViewport()
		return m, m.pulseTickCmd()

	case cycleResultMsg:
		out := m.engine.Apply(msg.result)
		if out != engine.OutcomeStale && out != engine.OutcomeSkipped {
			m.latency.Push(msg.result.Took, out == engine.OutcomeCommitted)
		}
		m.refreshViewport()
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	v := m.boardView()
	header := v.header(m.headerInfo())
	if !m.viewportReady {
		return header + "\n" + v.body() + "\n" + renderFooter(m.width)
	}
	return header + "\n" + m.viewport.View() + "\n" + renderFooter(m.width)
}

func (m Model) boardView() boardView {
	return boardView{board: m.board, width: m.width, frame: m.frame}
}

func (m Model) headerInfo() headerInfo {
	return headerInfo{
		backend: m.backend,
		status:  m.engine.Status(),
		latency: m.latency,
		now:     m.now(),
	}
}

// refreshViewport re-renders the scrollable body.
func (m *Model) refreshViewport() {
	if !m.viewportReady {
		return
	}
	m.viewport.SetContent(m.boardView().body())
}

// syncCmd begins a cycle and returns a command that fetches it, or nil
// when a cycle is already in flight.
func (m *Model) syncCmd() tea.Cmd {
	c, ok := m.engine.Begin()
	if !ok {
		return nil
	}
	eng, ctx := m.engine, m.ctx
	return func() tea.Msg {
		return cycleResultMsg{result: eng.Run(ctx, c)}
	}
}

func (m Model) syncTickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return syncTickMsg(t)
	})
}

func (m Model) clockTickCmd() tea.Cmd {
	return tea.Tick(m.clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m Model) pulseTickCmd() tea.Cmd {
	return tea.Tick(pulseInterval, func(t time.Time) tea.Msg {
		return pulseTickMsg(t)
	})
}

// Run starts the dashboard in the alternate screen and blocks until the
// user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
