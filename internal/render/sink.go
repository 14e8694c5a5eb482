// Package render turns a DashboardSnapshot into widget updates.
//
// Widgets are owned by the presentation layer and reached only through the
// small capabilities defined here: a Sink for text/style/fill widgets, a
// Chart for series widgets, and a Table for the incident log. Panel
// renderers are pure functions from snapshot data to []Command; Apply
// executes the commands against a resolved set of Targets.
package render

// Tone is the visual severity of a widget, mapped to colors by the
// presentation layer.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneHealthy
	ToneWarning
	ToneCritical
	ToneOrange
	ToneInfo
	ToneMuted
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneHealthy:
		return "healthy"
	case ToneWarning:
		return "warning"
	case ToneCritical:
		return "critical"
	case ToneOrange:
		return "orange"
	case ToneInfo:
		return "info"
	case ToneMuted:
		return "muted"
	default:
		return "neutral"
	}
}

// Style is the presentation state of a widget.
type Style struct {
	Tone Tone
	// Pulse marks an active indicator that should draw attention.
	Pulse bool
	// Icon is a short glyph shown next to the widget, if any.
	Icon string
	// Emphasis highlights a container (e.g. a raised alert panel).
	Emphasis bool
}

// Sink is a handle to a named text, bar, or container widget.
type Sink interface {
	SetText(text string)
	SetStyle(style Style)
	// SetFill sets a proportional fill in percent, clamped to [0, 100].
	SetFill(percent float64)
}

// Chart is a handle to a chart widget with one or more datasets.
type Chart interface {
	// ReplaceSeries swaps the values of one dataset. The change is not
	// visible until Redraw.
	ReplaceSeries(dataset int, values []float64)
	// SetHidden shows or hides a dataset. Visible after Redraw.
	SetHidden(dataset int, hidden bool)
	// Hidden reports whether a dataset is hidden.
	Hidden(dataset int) bool
	// Redraw publishes pending changes. animate=false applies them in
	// one step with no transition.
	Redraw(animate bool)
}

// Cell is one cell of a table row.
type Cell struct {
	Text  string
	Style Style
}

// Row is one incident table row. A placeholder row carries a single cell
// that spans the table.
type Row struct {
	Cells       []Cell
	Placeholder bool
}

// Table is a handle to a table body widget.
type Table interface {
	SetRows(rows []Row)
}
