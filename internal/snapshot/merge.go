package snapshot

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rileyhilliard/sentinel/internal/backend"
)

// timestampLayouts are the formats the backend has been seen to emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
}

// Merge combines the four payloads of one fetch cycle into a snapshot.
// The result is fully populated; there is no path that returns a partial one.
func Merge(seq uint64, fetchedAt time.Time, p *backend.Payload) *DashboardSnapshot {
	incidents := make([]Incident, 0, len(p.Incidents))
	for _, inc := range p.Incidents {
		incidents = append(incidents, mergeIncident(inc))
	}

	return &DashboardSnapshot{
		Seq:       seq,
		FetchedAt: fetchedAt,
		Health:    mergeHealth(p.Health),
		Risk:      mergeRisk(p.Risk),
		Metrics:   mergeMetrics(p.Metrics),
		Incidents: incidents,
	}
}

func mergeHealth(h backend.HealthResponse) HealthSnapshot {
	var score float64
	if h.HealthScore != nil {
		score = clamp(*h.HealthScore, 0, 100)
	}

	label := h.Status
	if label == "" {
		label = h.Health
	}
	status := ParseHealthStatus(label)
	if label == "" {
		label = string(HealthUnknown)
	}

	return HealthSnapshot{Score: score, Status: status, Label: label}
}

func mergeRisk(r backend.RiskResponse) RiskSnapshot {
	return RiskSnapshot{
		Severity:       ParseSeverity(r.Severity),
		SeverityLabel:  r.Severity,
		LatestIncident: nonEmpty(r.LatestIncident),
		Timestamp:      r.Timestamp,
	}
}

func mergeMetrics(in []backend.MetricResponse) MetricHistory {
	points := make([]MetricPoint, len(in))
	allStamped := len(in) > 0
	for i, m := range in {
		points[i] = MetricPoint{
			CPU:            nonNegative(m.CPU),
			Memory:         nonNegative(m.Memory),
			Disk:           nonNegative(m.Disk),
			ResponseTimeMs: nonNegative(m.ResponseTime),
			ErrorRate:      nonNegative(m.ErrorRate),
			Timestamp:      parseTimestamp(m.Timestamp),
		}
		if points[i].Timestamp.IsZero() {
			allStamped = false
		}
	}

	// Normalize to newest-first when the backend gives us enough to check.
	if allStamped {
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Timestamp.After(points[j].Timestamp)
		})
	}

	return MetricHistory{newestFirst: points}
}

func mergeIncident(inc backend.IncidentResponse) Incident {
	return Incident{
		ID:            inc.ID,
		Severity:      ParseSeverity(inc.Severity),
		SeverityLabel: inc.Severity,
		Status:        ParseIncidentStatus(inc.Status),
		StatusLabel:   inc.Status,
		RootCause:     nonEmpty(inc.RootCause),
		CreatedAt:     inc.CreatedAt,
	}
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// nonEmpty copies s, treating nil and blank strings alike as absent.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
