// Package testing provides recording widgets for render tests.
package testing

import (
	"sync"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// FakeSink records the last value written to a sink.
type FakeSink struct {
	Text   string
	Style  render.Style
	Fill   float64
	Writes int
}

func (s *FakeSink) SetText(text string) {
	s.Text = text
	s.Writes++
}

func (s *FakeSink) SetStyle(style render.Style) {
	s.Style = style
	s.Writes++
}

func (s *FakeSink) SetFill(percent float64) {
	s.Fill = percent
	s.Writes++
}

// FakeChart keeps pending and published series the way a real chart does.
type FakeChart struct {
	Pending   map[int][]float64
	Published map[int][]float64
	hidden    map[int]bool
	Redraws   int
	Animated  int
}

// NewFakeChart returns an empty chart.
func NewFakeChart() *FakeChart {
	return &FakeChart{
		Pending:   make(map[int][]float64),
		Published: make(map[int][]float64),
		hidden:    make(map[int]bool),
	}
}

func (c *FakeChart) ReplaceSeries(dataset int, values []float64) {
	c.Pending[dataset] = append([]float64(nil), values...)
}

func (c *FakeChart) SetHidden(dataset int, hidden bool) {
	c.hidden[dataset] = hidden
}

func (c *FakeChart) Hidden(dataset int) bool {
	return c.hidden[dataset]
}

func (c *FakeChart) Redraw(animate bool) {
	for k, v := range c.Pending {
		c.Published[k] = v
	}
	c.Pending = make(map[int][]float64)
	c.Redraws++
	if animate {
		c.Animated++
	}
}

// FakeTable records the last rows written.
type FakeTable struct {
	Rows   []render.Row
	Writes int
}

func (t *FakeTable) SetRows(rows []render.Row) {
	t.Rows = rows
	t.Writes++
}

// FakeRegistry exposes a recording widget for every known ID.
type FakeRegistry struct {
	mu        sync.Mutex
	Sinks     map[string]*FakeSink
	Charts    map[string]*FakeChart
	Incidents *FakeTable
	// Omit hides IDs from lookup, to exercise missing targets.
	Omit map[string]bool
}

// NewFakeRegistry creates widgets for render.SinkIDs, render.ChartIDs and
// the incident table.
func NewFakeRegistry() *FakeRegistry {
	r := &FakeRegistry{
		Sinks:     make(map[string]*FakeSink),
		Charts:    make(map[string]*FakeChart),
		Incidents: &FakeTable{},
		Omit:      make(map[string]bool),
	}
	for _, id := range render.SinkIDs {
		r.Sinks[id] = &FakeSink{}
	}
	for _, id := range render.ChartIDs {
		r.Charts[id] = NewFakeChart()
	}
	return r
}

// Sink implements render.Registry.
func (r *FakeRegistry) Sink(id string) (render.Sink, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Sinks[id]
	if !ok || r.Omit[id] {
		return nil, false
	}
	return s, true
}

// Chart implements render.Registry.
func (r *FakeRegistry) Chart(id string) (render.Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Charts[id]
	if !ok || r.Omit[id] {
		return nil, false
	}
	return c, true
}

// Table implements render.Registry. Only the incident table exists.
func (r *FakeRegistry) Table(id string) (render.Table, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != render.TableIncidents || r.Omit[id] {
		return nil, false
	}
	return r.Incidents, true
}
