package backend

// Endpoint paths relative to the configured base URL.
const (
	PathHealth    = "/health"
	PathRisk      = "/risk/current"
	PathMetrics   = "/metrics/recent"
	PathIncidents = "/incidents"
)

// HealthResponse is the body of GET /health.
//
// When the backend has no metrics yet it answers {"health": "UNKNOWN"}
// with no score at all, so HealthScore is a pointer.
type HealthResponse struct {
	HealthScore *float64 `json:"health_score"`
	Status      string   `json:"status"`
	Health      string   `json:"health,omitempty"`
}

// RiskResponse is the body of GET /risk/current.
//
// With no incidents recorded the backend returns severity LOW, a message,
// and no latest_incident key.
type RiskResponse struct {
	Severity       string  `json:"severity"`
	LatestIncident *string `json:"latest_incident"`
	Timestamp      string  `json:"timestamp"`
	Message        string  `json:"message,omitempty"`
}

// MetricResponse is one element of GET /metrics/recent.
// The list is ordered newest-first.
type MetricResponse struct {
	CPU          float64 `json:"cpu"`
	Memory       float64 `json:"memory"`
	Disk         float64 `json:"disk"`
	ErrorRate    float64 `json:"error_rate"`
	ResponseTime float64 `json:"response_time"`
	Timestamp    string  `json:"timestamp,omitempty"`
}

// IncidentResponse is one element of GET /incidents.
type IncidentResponse struct {
	ID        int64   `json:"id"`
	Severity  string  `json:"severity"`
	Status    string  `json:"status"`
	RootCause *string `json:"root_cause"`
	CreatedAt string  `json:"created_at"`
}

// Payload holds the four responses of one fetch cycle. A Payload is only
// ever returned when all four requests succeeded.
type Payload struct {
	Health    HealthResponse
	Risk      RiskResponse
	Metrics   []MetricResponse
	Incidents []IncidentResponse
}
