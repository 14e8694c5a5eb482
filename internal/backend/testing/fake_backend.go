// Package testing provides test doubles for the backend package.
package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rileyhilliard/sentinel/internal/backend"
)

// FakeBackend serves the four dashboard endpoints from canned values.
// Each endpoint can be made to fail or return a raw body instead.
type FakeBackend struct {
	mu sync.Mutex

	Health    interface{}
	Risk      interface{}
	Metrics   interface{}
	Incidents interface{}

	// Status overrides the HTTP status per path (e.g. backend.PathRisk: 500).
	Status map[string]int
	// Raw overrides the response body per path with literal bytes.
	Raw map[string]string
	// Block, when non-nil for a path, is received from before responding.
	Block map[string]chan struct{}

	hits   map[string]int
	server *httptest.Server
}

// NewFakeBackend starts a server with a healthy default payload.
// The server is closed by Close.
func NewFakeBackend() *FakeBackend {
	score := 72.0
	f := &FakeBackend{
		Health: backend.HealthResponse{HealthScore: &score, Status: "HEALTHY"},
		Risk:   backend.RiskResponse{Severity: "LOW", Timestamp: "2024-05-01 10:00:00"},
		Metrics: []backend.MetricResponse{
			{CPU: 20, Memory: 40, Disk: 55, ErrorRate: 0.01, ResponseTime: 120},
			{CPU: 10, Memory: 35, Disk: 55, ErrorRate: 0.02, ResponseTime: 180},
		},
		Incidents: []backend.IncidentResponse{},
		Status:    make(map[string]int),
		Raw:       make(map[string]string),
		Block:     make(map[string]chan struct{}),
		hits:      make(map[string]int),
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get(backend.PathHealth, f.handler(backend.PathHealth, func() interface{} { return f.Health }))
		r.Get(backend.PathRisk, f.handler(backend.PathRisk, func() interface{} { return f.Risk }))
		r.Get(backend.PathMetrics, f.handler(backend.PathMetrics, func() interface{} { return f.Metrics }))
		r.Get(backend.PathIncidents, f.handler(backend.PathIncidents, func() interface{} { return f.Incidents }))
	})

	f.server = httptest.NewServer(r)
	return f
}

// URL returns the API base URL to pass to backend.NewClient.
func (f *FakeBackend) URL() string {
	return f.server.URL + "/api"
}

// Close shuts the server down.
func (f *FakeBackend) Close() {
	f.server.Close()
}

// Set mutates the fake under its lock.
func (f *FakeBackend) Set(fn func(f *FakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// Hits returns how many requests path has served.
func (f *FakeBackend) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *FakeBackend) handler(path string, value func() interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[path]++
		block := f.Block[path]
		status := f.Status[path]
		raw, hasRaw := f.Raw[path]
		body := value()
		f.mu.Unlock()

		if block != nil {
			select {
			case <-block:
			case <-r.Context().Done():
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if status != 0 {
			w.WriteHeader(status)
		}
		if hasRaw {
			_, _ = w.Write([]byte(raw))
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}
