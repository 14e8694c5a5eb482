package render

// Command is one widget update produced by a panel renderer.
type Command interface {
	apply(t *Targets)
}

// SetText sets the text of a sink.
type SetText struct {
	Target string
	Text   string
}

func (c SetText) apply(t *Targets) {
	if s := t.Sink(c.Target); s != nil {
		s.SetText(c.Text)
	}
}

// SetStyle sets the style of a sink.
type SetStyle struct {
	Target string
	Style  Style
}

func (c SetStyle) apply(t *Targets) {
	if s := t.Sink(c.Target); s != nil {
		s.SetStyle(c.Style)
	}
}

// SetFill sets the proportional fill of a sink.
type SetFill struct {
	Target  string
	Percent float64
}

func (c SetFill) apply(t *Targets) {
	if s := t.Sink(c.Target); s != nil {
		s.SetFill(c.Percent)
	}
}

// ReplaceSeries swaps one dataset of a chart.
type ReplaceSeries struct {
	Chart   string
	Dataset int
	Values  []float64
}

func (c ReplaceSeries) apply(t *Targets) {
	if ch := t.Chart(c.Chart); ch != nil {
		ch.ReplaceSeries(c.Dataset, c.Values)
	}
}

// Redraw publishes pending chart changes.
type Redraw struct {
	Chart   string
	Animate bool
}

func (c Redraw) apply(t *Targets) {
	if ch := t.Chart(c.Chart); ch != nil {
		ch.Redraw(c.Animate)
	}
}

// SetRows replaces the incident table body.
type SetRows struct {
	Rows []Row
}

func (c SetRows) apply(t *Targets) {
	if tb := t.Incidents(); tb != nil {
		tb.SetRows(c.Rows)
	}
}

// Apply executes cmds in order.
func Apply(t *Targets, cmds []Command) {
	for _, c := range cmds {
		c.apply(t)
	}
}
