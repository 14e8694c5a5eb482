// Package monitor implements the real-time TUI for the sentinel dashboard.
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: holds the Board, the sync engine and the clock
//   - Update: processes keystrokes, ticks and finished sync cycles
//   - View: renders the Board to a string for display
//
// # Key Components
//
//	Board          - Owns every widget and implements render.Registry
//	Model          - The Bubble Tea model driving sync cycles
//	LatencyHistory - Ring buffer of cycle latency for the header sparkline
//
// # Message Flow
//
//  1. syncTickMsg fires at the refresh interval (default 3s)
//  2. syncCmd() takes the in-flight token and fetches in a tea.Cmd
//  3. cycleResultMsg returns to Update, which applies it to the Board
//  4. View() re-renders the Board
//
// clockTickMsg fires once a second independently of syncs, so the clock
// keeps running while a fetch hangs.
//
// # Charts
//
// Chart widgets are double-buffered. ReplaceSeries writes to a pending
// set; Redraw publishes it. The view only ever reads published series, so
// a half-applied snapshot is never drawn.
//
// The timeline plots CPU and RAM as lines on one braille canvas, so each
// terminal cell carries 2x4 points.
//
// # Layout Modes
//
//	LayoutMinimal  (<80 cols)  - Single column
//	LayoutCompact  (80-120)    - Panels side by side, charts stacked
//	LayoutStandard (120+)      - Timeline and radar side by side
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Sync now
//	1 / 2       - Toggle CPU / RAM on the timeline
//	c / m       - Show only CPU / RAM
//	a           - Show all datasets
//	j/k, ↑/↓    - Scroll
//	?           - Toggle help overlay
package monitor
