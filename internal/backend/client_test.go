package backend_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rileyhilliard/sentinel/internal/backend"
	fakes "github.com/rileyhilliard/sentinel/internal/backend/testing"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, f *fakes.FakeBackend) *backend.Client {
	t.Helper()
	return backend.NewClient(f.URL(), backend.WithLogger(logger.NewBufferLogger()))
}

func TestNewClient_Defaults(t *testing.T) {
	c := backend.NewClient("")
	assert.Equal(t, backend.DefaultBaseURL, c.BaseURL())

	c = backend.NewClient("http://example.com/api/")
	assert.Equal(t, "http://example.com/api", c.BaseURL(), "trailing slash should be trimmed")
}

func TestClient_Health(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()

	h, err := newClient(t, f).Health(context.Background())
	require.NoError(t, err)
	require.NotNil(t, h.HealthScore)
	assert.Equal(t, 72.0, *h.HealthScore)
	assert.Equal(t, "HEALTHY", h.Status)
}

func TestClient_HealthUnknownVariant(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()
	f.Set(func(f *fakes.FakeBackend) {
		f.Raw[backend.PathHealth] = `{"health": "UNKNOWN"}`
	})

	h, err := newClient(t, f).Health(context.Background())
	require.NoError(t, err)
	assert.Nil(t, h.HealthScore)
	assert.Equal(t, "UNKNOWN", h.Health)
}

func TestClient_RiskWithoutIncident(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()
	f.Set(func(f *fakes.FakeBackend) {
		f.Raw[backend.PathRisk] = `{"risk": 0, "severity": "LOW", "message": "No incidents detected"}`
	})

	r, err := newClient(t, f).Risk(context.Background())
	require.NoError(t, err)
	assert.Nil(t, r.LatestIncident)
	assert.Equal(t, "LOW", r.Severity)
	assert.Equal(t, "No incidents detected", r.Message)
}

func TestClient_RiskNullIncident(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()
	f.Set(func(f *fakes.FakeBackend) {
		f.Raw[backend.PathRisk] = `{"severity": "HIGH", "latest_incident": null, "timestamp": "t"}`
	})

	r, err := newClient(t, f).Risk(context.Background())
	require.NoError(t, err)
	assert.Nil(t, r.LatestIncident)
}

func TestClient_MetricsAndIncidents(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()
	f.Set(func(f *fakes.FakeBackend) {
		f.Raw[backend.PathIncidents] = `[
			{"id": 7, "severity": "CRITICAL", "status": "OPEN", "root_cause": "Disk full", "created_at": "2024-05-01 10:00:00"},
			{"id": 6, "severity": "LOW", "status": "CLOSED", "root_cause": null, "created_at": "2024-05-01 09:00:00"}
		]`
	})
	c := newClient(t, f)

	metrics, err := c.RecentMetrics(context.Background())
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, 20.0, metrics[0].CPU)
	assert.Equal(t, 0.01, metrics[0].ErrorRate)
	assert.Equal(t, 120.0, metrics[0].ResponseTime)

	incidents, err := c.Incidents(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, int64(7), incidents[0].ID)
	require.NotNil(t, incidents[0].RootCause)
	assert.Equal(t, "Disk full", *incidents[0].RootCause)
	assert.Nil(t, incidents[1].RootCause)
}

func TestClient_FetchAll(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()

	p, err := newClient(t, f).FetchAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "HEALTHY", p.Health.Status)
	assert.Equal(t, "LOW", p.Risk.Severity)
	assert.Len(t, p.Metrics, 2)
	assert.Empty(t, p.Incidents)

	for _, path := range []string{backend.PathHealth, backend.PathRisk, backend.PathMetrics, backend.PathIncidents} {
		assert.Equal(t, 1, f.Hits(path), "each endpoint should be hit exactly once for %s", path)
	}
}

func TestClient_FetchAllFailures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fakes.FakeBackend)
		wantCode string
	}{
		{
			name: "server error on risk",
			setup: func(f *fakes.FakeBackend) {
				f.Status[backend.PathRisk] = http.StatusInternalServerError
			},
			wantCode: errors.ErrNetwork,
		},
		{
			name: "non-json body on health",
			setup: func(f *fakes.FakeBackend) {
				f.Raw[backend.PathHealth] = `<html>oops</html>`
			},
			wantCode: errors.ErrDecode,
		},
		{
			name: "object where array expected",
			setup: func(f *fakes.FakeBackend) {
				f.Raw[backend.PathMetrics] = `{"cpu": 10}`
			},
			wantCode: errors.ErrDecode,
		},
		{
			name: "wrong field type",
			setup: func(f *fakes.FakeBackend) {
				f.Raw[backend.PathIncidents] = `[{"id": "seven"}]`
			},
			wantCode: errors.ErrDecode,
		},
	}

	for _, path := range []string{backend.PathHealth, backend.PathRisk, backend.PathMetrics, backend.PathIncidents} {
		path := path
		for _, body := range []string{"null", " null\n", ""} {
			body := body
			tests = append(tests, struct {
				name     string
				setup    func(f *fakes.FakeBackend)
				wantCode string
			}{
				name:     fmt.Sprintf("null body %q on %s", body, path),
				setup:    func(f *fakes.FakeBackend) { f.Raw[path] = body },
				wantCode: errors.ErrDecode,
			})
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fakes.NewFakeBackend()
			defer f.Close()
			f.Set(tt.setup)

			p, err := newClient(t, f).FetchAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, p, "no partial payload on failure")
			assert.True(t, errors.IsCode(err, tt.wantCode), "want code %s, got %v", tt.wantCode, err)
		})
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	f := fakes.NewFakeBackend()
	url := f.URL()
	f.Close()

	_, err := backend.NewClient(url).FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
}

func TestClient_ContextTimeout(t *testing.T) {
	f := fakes.NewFakeBackend()
	defer f.Close()
	block := make(chan struct{})
	defer close(block)
	f.Set(func(f *fakes.FakeBackend) {
		f.Block[backend.PathIncidents] = block
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	p, err := newClient(t, f).FetchAll(ctx)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
	assert.Less(t, time.Since(start), 2*time.Second)
}
