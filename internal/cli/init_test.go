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
)

func clearInitEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envInitBackend, envInitInterval, envInitNonInteractive, "CI"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestGetInitDefaults(t *testing.T) {
	t.Run("env vars populated", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv(envInitBackend, "http://env:5000/api")
		t.Setenv(envInitInterval, "5s")
		t.Setenv(envInitNonInteractive, "true")

		defaults := getInitDefaults()
		assert.Equal(t, "http://env:5000/api", defaults.Backend)
		assert.Equal(t, "5s", defaults.Interval)
		assert.True(t, defaults.NonInteractive)
	})

	t.Run("CI env triggers non-interactive", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv("CI", "true")

		assert.True(t, getInitDefaults().NonInteractive)
	})

	t.Run("empty env vars", func(t *testing.T) {
		clearInitEnv(t)

		defaults := getInitDefaults()
		assert.Empty(t, defaults.Backend)
		assert.Empty(t, defaults.Interval)
		assert.False(t, defaults.NonInteractive)
	})
}

func TestMergeInitOptions(t *testing.T) {
	t.Run("flags override env vars", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv(envInitBackend, "http://env:5000/api")
		t.Setenv(envInitInterval, "5s")

		merged := mergeInitOptions(InitOptions{Backend: "http://flag:5000/api", Interval: "2s"})
		assert.Equal(t, "http://flag:5000/api", merged.Backend)
		assert.Equal(t, "2s", merged.Interval)
	})

	t.Run("env vars fill in empty flags", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv(envInitBackend, "http://env:5000/api")

		merged := mergeInitOptions(InitOptions{})
		assert.Equal(t, "http://env:5000/api", merged.Backend)
		assert.Empty(t, merged.Interval)
	})

	t.Run("CI env sets non-interactive", func(t *testing.T) {
		clearInitEnv(t)
		t.Setenv("CI", "true")

		assert.True(t, mergeInitOptions(InitOptions{NonInteractive: false}).NonInteractive)
	})
}

func TestInit_NonInteractive_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	var out bytes.Buffer
	err := Init(InitOptions{Dir: dir, NonInteractive: true}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created")

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, config.DefaultRefreshInterval, cfg.Refresh.Interval)
	assert.Equal(t, filepath.Join(dir, "state", "sentinel", "sentinel.log"), cfg.Log.File)
}

func TestInit_NonInteractive_Values(t *testing.T) {
	dir := t.TempDir()

	err := Init(InitOptions{
		Dir:            dir,
		Backend:        "https://mon.example/api",
		Interval:       "10s",
		MetricsAddr:    "127.0.0.1:9464",
		NonInteractive: true,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "https://mon.example/api", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestInit_NonInteractive_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	err := Init(InitOptions{Dir: dir, NonInteractive: true}, &bytes.Buffer{})
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	err = Init(InitOptions{Dir: dir, NonInteractive: true, Overwrite: true}, &bytes.Buffer{})
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "backend:")
}

func TestInit_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		opts InitOptions
	}{
		{"interval too short", InitOptions{Interval: "100ms"}},
		{"interval not a duration", InitOptions{Interval: "often"}},
		{"backend not a url", InitOptions{Backend: "mon.example"}},
		{"bad metrics addr", InitOptions{MetricsAddr: "9464"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.opts.Dir = dir
			tt.opts.NonInteractive = true

			err := Init(tt.opts, &bytes.Buffer{})
			assert.True(t, errors.IsCode(err, errors.ErrConfig), "got %v", err)
			_, statErr := os.Stat(filepath.Join(dir, config.ConfigFileName))
			assert.True(t, os.IsNotExist(statErr), "nothing is written on error")
		})
	}
}
