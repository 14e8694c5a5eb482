package engine

import (
	"time"

	"github.com/rileyhilliard/sentinel/internal/render"
)

// ClockLayout is the 24-hour wall-clock format.
const ClockLayout = "15:04:05"

// DefaultClockInterval is how often the clock widget updates.
const DefaultClockInterval = time.Second

// Clock writes wall-clock time to the clock widget. It shares nothing with
// the sync cycle, so it keeps ticking while a cycle is failed or in flight.
type Clock struct {
	sink render.Sink
	now  func() time.Time
}

// NewClock binds a clock to the resolved clock widget. now may be nil.
func NewClock(targets *render.Targets, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{sink: targets.Sink(render.WidgetClock), now: now}
}

// Tick writes the current time and returns it formatted.
func (c *Clock) Tick() string {
	text := c.now().Format(ClockLayout)
	if c.sink != nil {
		c.sink.SetText(text)
	}
	return text
}
