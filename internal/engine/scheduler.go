package engine

import (
	"context"
	"time"
)

// DefaultInterval is the sync period.
const DefaultInterval = 3 * time.Second

// Scheduler drives an Engine and a Clock without a TUI. Its loop goroutine
// is the render thread: it begins cycles, applies results and ticks the
// clock, while fetches run in their own goroutines.
type Scheduler struct {
	Engine        *Engine
	Clock         *Clock
	Interval      time.Duration
	ClockInterval time.Duration
	// OnCycle, if set, is called on the loop goroutine after each applied
	// cycle.
	OnCycle func(Outcome, Result)
}

// Run starts the first cycle immediately, then one per Interval, until ctx
// is done.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clockEvery := s.ClockInterval
	if clockEvery <= 0 {
		clockEvery = DefaultClockInterval
	}

	// at most one cycle is in flight, so one slot never blocks a sender
	results := make(chan Result, 1)
	start := func() {
		c, ok := s.Engine.Begin()
		if !ok {
			return
		}
		go func() {
			results <- s.Engine.Run(ctx, c)
		}()
	}

	syncTicker := time.NewTicker(interval)
	defer syncTicker.Stop()
	clockTicker := time.NewTicker(clockEvery)
	defer clockTicker.Stop()

	if s.Clock != nil {
		s.Clock.Tick()
	}
	start()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-syncTicker.C:
			start()
		case <-clockTicker.C:
			if s.Clock != nil {
				s.Clock.Tick()
			}
		case r := <-results:
			out := s.Engine.Apply(r)
			if s.OnCycle != nil {
				s.OnCycle(out, r)
			}
		}
	}
}
