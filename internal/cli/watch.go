package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/engine"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/logger"
	"github.com/rileyhilliard/sentinel/internal/render"
	"github.com/rileyhilliard/sentinel/internal/snapshot"
	"github.com/rileyhilliard/sentinel/internal/ui"
)

// runWatch drives the sync loop headlessly until ctx is done or the process
// is interrupted, printing one line per applied cycle.
func runWatch(ctx context.Context, cfg *config.Config, w io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession(cfg, time.Now)
	if err != nil {
		return err
	}
	if err := sess.serveTelemetry(ctx); err != nil {
		return err
	}

	log := logger.Named("cli")
	log.Info("watching %s every %s", cfg.Backend.URL, cfg.Refresh.Interval)

	sched := sess.scheduler(func(outcome engine.Outcome, r engine.Result) {
		line, ok := cycleLine(outcome, r, time.Now())
		if !ok {
			log.Debug("cycle %d %s", r.Seq, outcome)
			return
		}
		fmt.Fprintln(w, ui.RenderCycleLine(line))
	})

	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// cycleLine describes an applied cycle. Stale and skipped cycles changed
// nothing on screen and produce no line.
func cycleLine(outcome engine.Outcome, r engine.Result, at time.Time) (ui.CycleLine, bool) {
	switch outcome {
	case engine.OutcomeFailed:
		return ui.CycleLine{
			At:     at,
			Seq:    r.Seq,
			Failed: true,
			Reason: errors.Summarize(r.Err),
			Took:   r.Took,
		}, true
	case engine.OutcomeCommitted:
		return committedLine(r.Snapshot, r.Took, at), true
	default:
		return ui.CycleLine{}, false
	}
}

func committedLine(snap *snapshot.DashboardSnapshot, took time.Duration, at time.Time) ui.CycleLine {
	health := render.ClassifyHealth(snap.Health.Score)
	risk := render.ClassifyRisk(snap.Risk)

	riskText := risk.String()
	if snap.Risk.SeverityLabel != "" {
		riskText += " " + snap.Risk.SeverityLabel
	}

	line := ui.CycleLine{
		At:          at,
		Seq:         snap.Seq,
		Took:        took,
		Health:      fmt.Sprintf("%d %s", render.Round(snap.Health.Score), health),
		HealthStyle: health.Style(),
		Risk:        riskText,
		RiskStyle:   risk.Style(),
		Incidents:   len(snap.Incidents),
	}
	if p, ok := snap.Metrics.Latest(); ok {
		line.CPU = p.CPU
		line.Memory = p.Memory
	}
	for _, inc := range snap.Incidents {
		if inc.IsOpen() {
			line.Open++
		}
	}
	return line
}
