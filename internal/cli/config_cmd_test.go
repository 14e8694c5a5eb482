package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/ui"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestSetConfigValue(t *testing.T) {
	path := writeConfig(t, "version: 1\nbackend:\n  url: http://localhost:5000/api\n")

	require.NoError(t, setConfigValue(path, "refresh.interval", "5s"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Refresh.Interval)
}

func TestSetConfigValue_RollsBackInvalid(t *testing.T) {
	body := "version: 1\nrefresh:\n  interval: 3s\n"
	path := writeConfig(t, body)

	err := setConfigValue(path, "refresh.interval", "100ms")
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, body, string(content))
}

func TestSetConfigValue_Errors(t *testing.T) {
	path := writeConfig(t, "version: 1\n")

	err := setConfigValue("", "backend.url", "http://x")
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	err = setConfigValue(path, "backend.nope", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown key")

	err = setConfigValue(filepath.Join(t.TempDir(), "missing.yaml"), "backend.url", "http://x")
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestShowConfig(t *testing.T) {
	ui.DisableColors()
	t.Setenv("SENTINEL_METRICS_ADDR", ":9464")

	cfg := config.DefaultConfig()
	cfg.Metrics.Addr = ":9464"

	var out bytes.Buffer
	showConfig(&out, cfg, "")

	s := out.String()
	assert.Contains(t, s, "No .sentinel.yaml found")
	assert.Contains(t, s, "backend.url")
	assert.Contains(t, s, config.DefaultBackendURL)
	assert.Contains(t, s, "refresh.interval")
	assert.Contains(t, s, "(env SENTINEL_METRICS_ADDR)")

	out.Reset()
	showConfig(&out, cfg, "/etc/sentinel/.sentinel.yaml")
	assert.Contains(t, out.String(), "/etc/sentinel/.sentinel.yaml")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "SENTINEL_BACKEND_URL", envKey("backend.url"))
	assert.Equal(t, "SENTINEL_SCALING_RADAR_RESPONSE_DIVISOR", envKey("scaling.radar_response_divisor"))
}
