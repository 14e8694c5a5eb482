package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	s := NewServer(reg, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_ObserveCycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveCycle(ResultCommitted, 120*time.Millisecond)
	m.ObserveCycle(ResultCommitted, 80*time.Millisecond)
	m.ObserveCycle(ResultNetwork, time.Second)
	m.ObserveSkip()

	body := scrape(t, reg)
	assert.Contains(t, body, `sentinel_sync_cycles_total{result="committed"} 2`)
	assert.Contains(t, body, `sentinel_sync_cycles_total{result="network"} 1`)
	assert.Contains(t, body, "sentinel_sync_skipped_ticks_total 1")
	assert.Contains(t, body, "sentinel_sync_cycle_duration_seconds_count 3")
}

func TestMetrics_ObserveCommit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveCommit(time.Unix(1714557600, 0), 72)

	body := scrape(t, reg)
	assert.Contains(t, body, "sentinel_health_score 72")
	assert.Contains(t, body, "sentinel_last_commit_timestamp_seconds 1.7145576e+09")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCycle(ResultDecode, time.Millisecond)
		m.ObserveCommit(time.Now(), 1)
		m.ObserveSkip()
	})
}

func TestServer_HealthzDefault(t *testing.T) {
	s := NewServer(prometheus.NewRegistry(), nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestServer_Healthz(t *testing.T) {
	tests := []struct {
		name     string
		report   HealthReport
		wantCode int
	}{
		{"connected", HealthReport{Connected: true, Seq: 4}, http.StatusOK},
		{"lost", HealthReport{Connected: false, Seq: 4}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(prometheus.NewRegistry(), func() HealthReport { return tt.report }, nil)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var got HealthReport
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.report.Connected, got.Connected)
			assert.Equal(t, uint64(4), got.Seq)
		})
	}
}

func TestServer_StartBadAddress(t *testing.T) {
	s := NewServer(prometheus.NewRegistry(), nil, nil)
	err := s.Start(t.Context(), "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics listener")
}
