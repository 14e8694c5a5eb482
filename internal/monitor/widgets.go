package monitor

import (
	"sync"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// TextWidget is a text, bar, or container widget on the board.
type TextWidget struct {
	mu    sync.RWMutex
	text  string
	style render.Style
	fill  float64
}

func (w *TextWidget) SetText(text string) {
	w.mu.Lock()
	w.text = text
	w.mu.Unlock()
}

func (w *TextWidget) SetStyle(style render.Style) {
	w.mu.Lock()
	w.style = style
	w.mu.Unlock()
}

func (w *TextWidget) SetFill(percent float64) {
	w.mu.Lock()
	w.fill = clampPercent(percent)
	w.mu.Unlock()
}

// Text returns the current text.
func (w *TextWidget) Text() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.text
}

// Style returns the current style.
func (w *TextWidget) Style() render.Style {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.style
}

// Fill returns the current fill percentage.
func (w *TextWidget) Fill() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fill
}

// ChartWidget double-buffers its datasets: writes land in a pending set
// and only become visible when Redraw publishes them.
type ChartWidget struct {
	mu            sync.RWMutex
	pending       map[int][]float64
	pendingHidden map[int]bool
	series        map[int][]float64
	hidden        map[int]bool
	redraws       int
	animated      bool
}

func newChartWidget() *ChartWidget {
	return &ChartWidget{
		pending:       make(map[int][]float64),
		pendingHidden: make(map[int]bool),
		series:        make(map[int][]float64),
		hidden:        make(map[int]bool),
	}
}

func (c *ChartWidget) ReplaceSeries(dataset int, values []float64) {
	c.mu.Lock()
	c.pending[dataset] = append([]float64(nil), values...)
	c.mu.Unlock()
}

func (c *ChartWidget) SetHidden(dataset int, hidden bool) {
	c.mu.Lock()
	c.pendingHidden[dataset] = hidden
	c.mu.Unlock()
}

// Hidden reports the requested visibility, including unpublished changes.
func (c *ChartWidget) Hidden(dataset int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if h, ok := c.pendingHidden[dataset]; ok {
		return h
	}
	return c.hidden[dataset]
}

func (c *ChartWidget) Redraw(animate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ds, values := range c.pending {
		c.series[ds] = values
	}
	for ds, h := range c.pendingHidden {
		c.hidden[ds] = h
	}
	c.pending = make(map[int][]float64)
	c.pendingHidden = make(map[int]bool)
	c.redraws++
	c.animated = animate
}

// Series returns the published values of a dataset.
func (c *ChartWidget) Series(dataset int) []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.series[dataset]
}

// Visible reports whether a dataset is shown in the published frame.
func (c *ChartWidget) Visible(dataset int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.hidden[dataset]
}

// Redraws returns how many frames have been published.
func (c *ChartWidget) Redraws() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redraws
}

// Animated reports whether the last frame was published with a transition.
func (c *ChartWidget) Animated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.animated
}

// TableWidget holds the incident table body.
type TableWidget struct {
	mu   sync.RWMutex
	rows []render.Row
}

func (t *TableWidget) SetRows(rows []render.Row) {
	t.mu.Lock()
	t.rows = append([]render.Row(nil), rows...)
	t.mu.Unlock()
}

// Rows returns the current rows.
func (t *TableWidget) Rows() []render.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Board owns every widget of the dashboard and exposes them to the render
// layer by id.
type Board struct {
	texts     map[string]*TextWidget
	charts    map[string]*ChartWidget
	incidents *TableWidget
}

// NewBoard creates a board with every widget the renderers expect.
func NewBoard() *Board {
	b := &Board{
		texts:     make(map[string]*TextWidget, len(render.SinkIDs)),
		charts:    make(map[string]*ChartWidget, len(render.ChartIDs)),
		incidents: &TableWidget{},
	}
	for _, id := range render.SinkIDs {
		b.texts[id] = &TextWidget{}
	}
	for _, id := range render.ChartIDs {
		b.charts[id] = newChartWidget()
	}
	return b
}

func (b *Board) Sink(id string) (render.Sink, bool) {
	w, ok := b.texts[id]
	if !ok {
		return nil, false
	}
	return w, true
}

func (b *Board) Chart(id string) (render.Chart, bool) {
	c, ok := b.charts[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (b *Board) Table(id string) (render.Table, bool) {
	if id != render.TableIncidents {
		return nil, false
	}
	return b.incidents, true
}

// Text returns the text widget for id. Unknown ids get an empty widget so
// views never nil-check.
func (b *Board) Text(id string) *TextWidget {
	if w, ok := b.texts[id]; ok {
		return w
	}
	return &TextWidget{}
}

// ChartWidget returns the chart widget for id.
func (b *Board) ChartWidget(id string) *ChartWidget {
	if c, ok := b.charts[id]; ok {
		return c
	}
	return newChartWidget()
}

// Incidents returns the incident table widget.
func (b *Board) Incidents() *TableWidget {
	return b.incidents
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
