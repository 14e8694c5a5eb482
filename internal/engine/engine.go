// Package engine runs sync cycles: fetch the four endpoints, merge them into
// a snapshot, commit it, and render it.
//
// A cycle is split so the blocking part can run off the render thread:
//
//	c, ok := e.Begin()      // render thread; false while a cycle is in flight
//	r := e.Run(ctx, c)      // any goroutine; fetch + merge
//	e.Apply(r)              // render thread; commit + render or fallback
//
// Only one cycle is in flight at a time. Ticks that arrive meanwhile are
// skipped, and a result older than the committed snapshot is dropped.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/sentinel/internal/backend"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/logger"
	"github.com/rileyhilliard/sentinel/internal/render"
	"github.com/rileyhilliard/sentinel/internal/snapshot"
	"github.com/rileyhilliard/sentinel/internal/telemetry"
)

// DefaultTimeout bounds a single cycle's fetches.
const DefaultTimeout = 10 * time.Second

// Fetcher retrieves the four payloads of one cycle, all or nothing.
type Fetcher interface {
	FetchAll(ctx context.Context) (*backend.Payload, error)
}

// Outcome is how a cycle ended.
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeFailed
	OutcomeStale
	OutcomeSkipped
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Cycle is the in-flight token for one sync cycle.
type Cycle struct {
	Seq     uint64
	Started time.Time
}

// Result is what Run hands back to the render thread.
type Result struct {
	Cycle
	Snapshot *snapshot.DashboardSnapshot
	Err      error
	Took     time.Duration
}

// Status summarizes the engine for headers and health checks.
type Status struct {
	Connected  bool
	Seq        uint64
	LastCommit time.Time
	LastError  error
	Committed  int
	Failed     int
	Skipped    int
	Stale      int
	InFlight   bool
}

// Options configures an Engine.
type Options struct {
	// Timeout bounds each cycle. Zero uses DefaultTimeout.
	Timeout time.Duration
	Render  render.Options
	Logger  logger.Logger
	Metrics *telemetry.Metrics
	// Now is the wall clock, replaceable in tests.
	Now func() time.Time
}

// Engine owns the sync cycle state.
type Engine struct {
	fetcher Fetcher
	store   *snapshot.Store
	targets *render.Targets
	timeout time.Duration
	render  render.Options
	log     logger.Logger
	metrics *telemetry.Metrics
	now     func() time.Time

	mu       sync.Mutex
	seq      uint64
	inFlight uint64 // 0 when idle
	status   Status
}

// New creates an engine that renders into targets.
func New(fetcher Fetcher, store *snapshot.Store, targets *render.Targets, opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Render == (render.Options{}) {
		opts.Render = render.DefaultOptions()
	}
	return &Engine{
		fetcher: fetcher,
		store:   store,
		targets: targets,
		timeout: opts.Timeout,
		render:  opts.Render,
		log:     opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
}

// Store returns the committed snapshot store.
func (e *Engine) Store() *snapshot.Store {
	return e.store
}

// Begin takes the in-flight token. It returns false, and counts a skipped
// tick, when a cycle is already running.
func (e *Engine) Begin() (Cycle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight != 0 {
		e.status.Skipped++
		e.metrics.ObserveSkip()
		e.log.Debug("tick skipped, cycle %d still in flight", e.inFlight)
		return Cycle{}, false
	}

	e.seq++
	e.inFlight = e.seq
	e.status.InFlight = true
	return Cycle{Seq: e.seq, Started: e.now()}, true
}

// Run fetches and merges one cycle under the engine timeout. It does not
// touch widgets or the store and is safe to call from any goroutine.
func (e *Engine) Run(ctx context.Context, c Cycle) Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	payload, err := e.fetcher.FetchAll(ctx)
	took := time.Since(start)
	if err != nil {
		return Result{Cycle: c, Err: err, Took: took}
	}
	return Result{
		Cycle:    c,
		Snapshot: snapshot.Merge(c.Seq, e.now(), payload),
		Took:     took,
	}
}

// Apply releases the token and lands the result: a successful snapshot is
// committed and rendered, a failure renders the lost-connection state and
// leaves every panel at its last committed value. Call it on the render
// thread only.
func (e *Engine) Apply(r Result) Outcome {
	e.release(r.Seq)

	if r.Err == nil && r.Snapshot == nil {
		r.Err = errors.New(errors.ErrDecode, "Sync cycle produced no snapshot", "")
	}

	if r.Err != nil {
		e.metrics.ObserveCycle(resultLabel(r.Err), r.Took)
		e.log.Warn("sync cycle %d failed [%s]: %s", r.Seq, errors.CodeOf(r.Err), errors.Summarize(r.Err))
		render.Apply(e.targets, render.Connection(false))

		e.mu.Lock()
		e.status.Connected = false
		e.status.LastError = r.Err
		e.status.Failed++
		e.mu.Unlock()
		return OutcomeFailed
	}

	// Begin admits one cycle at a time, so this only fires for callers that
	// Run cycles obtained out of order.
	if !e.store.Commit(r.Snapshot) {
		e.metrics.ObserveCycle(telemetry.ResultStale, r.Took)
		e.log.Debug("sync cycle %d dropped, snapshot %d already committed", r.Seq, e.store.Current().Seq)

		e.mu.Lock()
		e.status.Stale++
		e.mu.Unlock()
		return OutcomeStale
	}

	render.Apply(e.targets, render.Snapshot(r.Snapshot, e.render))
	e.metrics.ObserveCycle(telemetry.ResultCommitted, r.Took)
	e.metrics.ObserveCommit(r.Snapshot.FetchedAt, r.Snapshot.Health.Score)
	e.log.Debug("sync cycle %d committed in %s (health %.0f, %d points, %d incidents)",
		r.Seq, r.Took.Round(time.Millisecond), r.Snapshot.Health.Score,
		r.Snapshot.Metrics.Len(), len(r.Snapshot.Incidents))

	e.mu.Lock()
	e.status.Connected = true
	e.status.LastError = nil
	e.status.LastCommit = r.Snapshot.FetchedAt
	e.status.Seq = r.Snapshot.Seq
	e.status.Committed++
	e.mu.Unlock()
	return OutcomeCommitted
}

// Sync runs one full cycle synchronously. The caller acts as the render
// thread for its duration.
func (e *Engine) Sync(ctx context.Context) (Outcome, error) {
	c, ok := e.Begin()
	if !ok {
		return OutcomeSkipped, nil
	}
	r := e.Run(ctx, c)
	return e.Apply(r), r.Err
}

// Status returns a copy of the current status. Safe from any goroutine.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// HealthReport adapts Status for the telemetry /healthz endpoint.
func (e *Engine) HealthReport() telemetry.HealthReport {
	s := e.Status()
	return telemetry.HealthReport{
		Connected:  s.Connected,
		LastCommit: s.LastCommit,
		Seq:        s.Seq,
	}
}

func (e *Engine) release(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight == seq {
		e.inFlight = 0
		e.status.InFlight = false
	}
}

func resultLabel(err error) string {
	if errors.IsCode(err, errors.ErrDecode) {
		return telemetry.ResultDecode
	}
	return telemetry.ResultNetwork
}
