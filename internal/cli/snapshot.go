package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/monitor"
	"github.com/rileyhilliard/sentinel/internal/render"
	"github.com/rileyhilliard/sentinel/internal/snapshot"
)

const defaultSnapshotWidth = 100

type snapshotOptions struct {
	JSON  bool
	Width int
}

// runSnapshot runs one cycle and prints the board, or the snapshot as JSON.
// A failed cycle is returned as the error so the exit code reflects it.
func runSnapshot(ctx context.Context, cfg *config.Config, w io.Writer, opts snapshotOptions) error {
	sess, err := newSession(cfg, time.Now)
	if err != nil {
		return err
	}

	if _, err := sess.engine.Sync(ctx); err != nil {
		if opts.JSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	snap := sess.engine.Store().Current()
	if opts.JSON {
		return WriteJSONSuccess(w, newSnapshotView(snap))
	}

	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	_, err = fmt.Fprintln(w, monitor.RenderStatic(sess.board, width, sess.engine.Status(), cfg.Backend.URL))
	return err
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultSnapshotWidth
}

// snapshotView is the --json shape of a committed snapshot.
type snapshotView struct {
	Seq       uint64         `json:"seq"`
	FetchedAt time.Time      `json:"fetched_at"`
	Health    healthView     `json:"health"`
	Risk      riskView       `json:"risk"`
	Metrics   []metricView   `json:"metrics"`
	Incidents []incidentView `json:"incidents"`
}

type healthView struct {
	Score  float64 `json:"score"`
	Status string  `json:"status"`
	State  string  `json:"state"`
}

type riskView struct {
	Severity       string  `json:"severity"`
	LatestIncident *string `json:"latest_incident"`
	Timestamp      string  `json:"timestamp,omitempty"`
	State          string  `json:"state"`
}

type metricView struct {
	CPU            float64    `json:"cpu"`
	Memory         float64    `json:"memory"`
	Disk           float64    `json:"disk"`
	ResponseTimeMs float64    `json:"response_time_ms"`
	ErrorRate      float64    `json:"error_rate"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

type incidentView struct {
	ID        int64   `json:"id"`
	Severity  string  `json:"severity"`
	Status    string  `json:"status"`
	RootCause *string `json:"root_cause"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// newSnapshotView flattens snap. Metrics are oldest first, the order the
// charts draw them.
func newSnapshotView(snap *snapshot.DashboardSnapshot) snapshotView {
	v := snapshotView{
		Seq:       snap.Seq,
		FetchedAt: snap.FetchedAt,
		Health: healthView{
			Score:  snap.Health.Score,
			Status: string(snap.Health.Status),
			State:  render.ClassifyHealth(snap.Health.Score).String(),
		},
		Risk: riskView{
			Severity:       string(snap.Risk.Severity),
			LatestIncident: snap.Risk.LatestIncident,
			Timestamp:      snap.Risk.Timestamp,
			State:          render.ClassifyRisk(snap.Risk).String(),
		},
		Metrics:   []metricView{},
		Incidents: []incidentView{},
	}

	for _, p := range snap.Metrics.Chronological() {
		m := metricView{
			CPU:            p.CPU,
			Memory:         p.Memory,
			Disk:           p.Disk,
			ResponseTimeMs: p.ResponseTimeMs,
			ErrorRate:      p.ErrorRate,
		}
		if !p.Timestamp.IsZero() {
			ts := p.Timestamp
			m.Timestamp = &ts
		}
		v.Metrics = append(v.Metrics, m)
	}

	for _, inc := range snap.Incidents {
		v.Incidents = append(v.Incidents, incidentView{
			ID:        inc.ID,
			Severity:  string(inc.Severity),
			Status:    string(inc.Status),
			RootCause: inc.RootCause,
			CreatedAt: inc.CreatedAt,
		})
	}
	return v
}
