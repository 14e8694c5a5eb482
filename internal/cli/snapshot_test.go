package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sentinel/internal/backend"
	backendfakes "github.com/rileyhilliard/sentinel/internal/backend/testing"
	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
)

func fakeConfig(t *testing.T) (*config.Config, *backendfakes.FakeBackend) {
	t.Helper()
	fb := backendfakes.NewFakeBackend()
	t.Cleanup(fb.Close)

	cfg := config.DefaultConfig()
	cfg.Backend.URL = fb.URL()
	cfg.Backend.Timeout = 2 * time.Second
	return cfg, fb
}

func TestRunSnapshot_Plain(t *testing.T) {
	cfg, _ := fakeConfig(t)

	var buf bytes.Buffer
	err := runSnapshot(context.Background(), cfg, &buf, snapshotOptions{Width: 100})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SYSTEM HEALTH")
	assert.Contains(t, out, "THREAT STATUS")
	assert.Contains(t, out, "72")
}

func TestRunSnapshot_JSON(t *testing.T) {
	cfg, _ := fakeConfig(t)

	var buf bytes.Buffer
	err := runSnapshot(context.Background(), cfg, &buf, snapshotOptions{JSON: true})
	require.NoError(t, err)

	var env struct {
		Success bool         `json:"success"`
		Data    snapshotView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Equal(t, uint64(1), env.Data.Seq)
	assert.Equal(t, 72.0, env.Data.Health.Score)
	assert.Equal(t, "HEALTHY", env.Data.Health.State)
	assert.Equal(t, "LOW", env.Data.Risk.Severity)
	assert.Equal(t, "SECURE", env.Data.Risk.State)
	assert.Nil(t, env.Data.Risk.LatestIncident)

	require.Len(t, env.Data.Metrics, 2)
	assert.Equal(t, 10.0, env.Data.Metrics[0].CPU, "oldest point first")
	assert.Equal(t, 20.0, env.Data.Metrics[1].CPU)
	assert.NotNil(t, env.Data.Incidents)
	assert.Empty(t, env.Data.Incidents)
}

func TestRunSnapshot_FailureJSON(t *testing.T) {
	cfg, fb := fakeConfig(t)
	fb.Set(func(f *backendfakes.FakeBackend) {
		f.Status[backend.PathRisk] = http.StatusInternalServerError
	})

	var buf bytes.Buffer
	err := runSnapshot(context.Background(), cfg, &buf, snapshotOptions{JSON: true})
	require.Error(t, err)
	assert.Equal(t, errors.ErrNetwork, errors.CodeOf(err))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeBackendUnreachable, env.Error.Code)
}

func TestRunSnapshot_FailurePlainWritesNothing(t *testing.T) {
	cfg, fb := fakeConfig(t)
	fb.Set(func(f *backendfakes.FakeBackend) {
		f.Raw[backend.PathHealth] = "{not json"
	})

	var buf bytes.Buffer
	err := runSnapshot(context.Background(), cfg, &buf, snapshotOptions{Width: 100})
	require.Error(t, err)
	assert.Equal(t, errors.ErrDecode, errors.CodeOf(err))
	assert.Empty(t, buf.String())
}
