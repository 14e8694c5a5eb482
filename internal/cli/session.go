package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rileyhilliard/sentinel/internal/backend"
	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/engine"
	"github.com/rileyhilliard/sentinel/internal/logger"
	"github.com/rileyhilliard/sentinel/internal/monitor"
	"github.com/rileyhilliard/sentinel/internal/render"
	"github.com/rileyhilliard/sentinel/internal/snapshot"
	"github.com/rileyhilliard/sentinel/internal/telemetry"
)

// session is one backend wired to one board: the client, the engine that
// renders into the board, and the clock.
type session struct {
	cfg      *config.Config
	board    *monitor.Board
	engine   *engine.Engine
	clock    *engine.Clock
	registry *prometheus.Registry
}

// newSession resolves every widget on a fresh board and builds the engine.
// A board that is missing a widget fails here, before any fetch.
func newSession(cfg *config.Config, now func() time.Time) (*session, error) {
	if now == nil {
		now = time.Now
	}

	board := monitor.NewBoard()
	targets, err := render.Resolve(board)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	client := backend.NewClient(cfg.Backend.URL, backend.WithLogger(logger.Named("backend")))
	eng := engine.New(client, snapshot.NewStore(), targets, engine.Options{
		Timeout: cfg.Backend.Timeout,
		Render: render.Options{
			SparklineWindow:      cfg.Windows.Sparkline,
			RadarResponseDivisor: cfg.Scaling.RadarResponseDivisor,
			CardResponseDivisor:  cfg.Scaling.CardResponseDivisor,
		},
		Logger:  logger.Named("engine"),
		Metrics: telemetry.NewMetrics(reg),
		Now:     now,
	})

	return &session{
		cfg:      cfg,
		board:    board,
		engine:   eng,
		clock:    engine.NewClock(targets, now),
		registry: reg,
	}, nil
}

// serveTelemetry starts /metrics and /healthz when metrics.addr is set. The
// server stops with ctx.
func (s *session) serveTelemetry(ctx context.Context) error {
	if s.cfg.Metrics.Addr == "" {
		return nil
	}
	srv := telemetry.NewServer(s.registry, s.engine.HealthReport, logger.Named("telemetry"))
	return srv.Start(ctx, s.cfg.Metrics.Addr)
}

// scheduler drives the session headlessly.
func (s *session) scheduler(onCycle func(engine.Outcome, engine.Result)) *engine.Scheduler {
	return &engine.Scheduler{
		Engine:        s.engine,
		Clock:         s.clock,
		Interval:      s.cfg.Refresh.Interval,
		ClockInterval: s.cfg.Refresh.Clock,
		OnCycle:       onCycle,
	}
}
