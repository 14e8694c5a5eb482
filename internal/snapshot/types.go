package snapshot

import (
	"strings"
	"time"
)

// HealthStatus is the backend's coarse health label.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "HEALTHY"
	HealthDegraded HealthStatus = "DEGRADED"
	HealthCritical HealthStatus = "CRITICAL"
	HealthUnknown  HealthStatus = "UNKNOWN"
)

// ParseHealthStatus maps a wire value to a HealthStatus.
// Anything unrecognized is HealthUnknown.
func ParseHealthStatus(s string) HealthStatus {
	switch HealthStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case HealthHealthy:
		return HealthHealthy
	case HealthDegraded:
		return HealthDegraded
	case HealthCritical:
		return HealthCritical
	default:
		return HealthUnknown
	}
}

// Severity ranks risk and incident severity.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
	// SeverityUnknown is anything the backend sent that is not one of the above.
	SeverityUnknown Severity = "UNKNOWN"
)

// ParseSeverity maps a wire value to a Severity.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	case SeverityCritical:
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}

// IncidentStatus is the lifecycle state of an incident.
type IncidentStatus string

const (
	IncidentOpen    IncidentStatus = "OPEN"
	IncidentClosed  IncidentStatus = "CLOSED"
	IncidentUnknown IncidentStatus = "UNKNOWN"
)

// ParseIncidentStatus maps a wire value to an IncidentStatus.
func ParseIncidentStatus(s string) IncidentStatus {
	switch IncidentStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case IncidentOpen:
		return IncidentOpen
	case IncidentClosed:
		return IncidentClosed
	default:
		return IncidentUnknown
	}
}

// HealthSnapshot is the overall health at fetch time.
type HealthSnapshot struct {
	// Score is always within [0, 100].
	Score  float64
	Status HealthStatus
	// Label is the status text as the backend sent it.
	Label string
}

// RiskSnapshot is the current risk assessment.
type RiskSnapshot struct {
	Severity Severity
	// LatestIncident is nil when the backend reported no incident.
	LatestIncident *string
	Timestamp      string
	// SeverityLabel is the severity text as the backend sent it.
	SeverityLabel string
}

// HasIncident reports whether a latest incident is present.
func (r RiskSnapshot) HasIncident() bool {
	return r.LatestIncident != nil
}

// MetricPoint is one sample of system metrics. All values are >= 0.
type MetricPoint struct {
	CPU            float64
	Memory         float64
	Disk           float64
	ResponseTimeMs float64
	ErrorRate      float64
	// Timestamp is zero when the backend does not send one.
	Timestamp time.Time
}

// Incident is one row of the incident log.
type Incident struct {
	ID       int64
	Severity Severity
	// SeverityLabel is the severity text as the backend sent it.
	SeverityLabel string
	Status        IncidentStatus
	StatusLabel   string
	// RootCause is nil when the backend has not determined one.
	RootCause *string
	CreatedAt string
}

// IsOpen reports whether the incident is still active.
func (i Incident) IsOpen() bool {
	return i.Status == IncidentOpen
}

// DashboardSnapshot is the immutable result of one completed sync cycle.
// It is built in one step by Merge and never modified afterwards.
type DashboardSnapshot struct {
	// Seq is the sync cycle that produced the snapshot.
	Seq       uint64
	FetchedAt time.Time
	Health    HealthSnapshot
	Risk      RiskSnapshot
	Metrics   MetricHistory
	Incidents []Incident
}
