// Package telemetry exposes the dashboard's own sync-cycle counters in
// Prometheus format.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle results used as the "result" label.
const (
	ResultCommitted = "committed"
	ResultStale     = "stale"
	ResultNetwork   = "network"
	ResultDecode    = "decode"
)

// Metrics holds the sync-cycle collectors.
type Metrics struct {
	// CyclesTotal counts finished cycles by result.
	CyclesTotal *prometheus.CounterVec

	// CycleDuration is the wall time of a cycle's four fetches.
	CycleDuration prometheus.Histogram

	// SkippedTicks counts ticks that found a cycle still in flight.
	SkippedTicks prometheus.Counter

	// LastCommit is the unix time of the last committed snapshot.
	LastCommit prometheus.Gauge

	// HealthScore is the score of the last committed snapshot.
	HealthScore prometheus.Gauge
}

// NewMetrics registers the collectors on reg. A nil reg uses a private
// registry that nothing scrapes.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		CyclesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_sync_cycles_total",
			Help: "Finished sync cycles by result.",
		}, []string{"result"}),

		CycleDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_sync_cycle_duration_seconds",
			Help:    "Histogram of sync cycle fetch latency.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),

		SkippedTicks: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "sentinel_sync_skipped_ticks_total",
			Help: "Ticks skipped because a cycle was still in flight.",
		}),

		LastCommit: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_last_commit_timestamp_seconds",
			Help: "Unix time of the last committed snapshot.",
		}),

		HealthScore: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_health_score",
			Help: "Backend health score of the last committed snapshot.",
		}),
	}
}

// ObserveCycle records one finished cycle.
func (m *Metrics) ObserveCycle(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(result).Inc()
	m.CycleDuration.Observe(took.Seconds())
}

// ObserveCommit records a committed snapshot.
func (m *Metrics) ObserveCommit(at time.Time, score float64) {
	if m == nil {
		return
	}
	m.LastCommit.Set(float64(at.Unix()))
	m.HealthScore.Set(score)
}

// ObserveSkip records a skipped tick.
func (m *Metrics) ObserveSkip() {
	if m == nil {
		return
	}
	m.SkippedTicks.Inc()
}
