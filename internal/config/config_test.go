package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sentinel/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, time.Second, cfg.Refresh.Clock)
	assert.Equal(t, 10, cfg.Windows.Sparkline)
	assert.Equal(t, 10.0, cfg.Scaling.RadarResponseDivisor)
	assert.Equal(t, 5.0, cfg.Scaling.CardResponseDivisor)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File)
	assert.Empty(t, cfg.Metrics.Addr)

	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
backend:
  url: https://ops.example.com/api/
  timeout: 4s
refresh:
  interval: 1500ms
windows:
  sparkline: 20
scaling:
  radar_response_divisor: 20
log:
  level: DEBUG
  file: ~/sentinel-test.log
metrics:
  addr: 127.0.0.1:9464
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://ops.example.com/api", cfg.Backend.URL)
	assert.Equal(t, 4*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Refresh.Interval)
	// untouched keys keep defaults
	assert.Equal(t, time.Second, cfg.Refresh.Clock)
	assert.Equal(t, 20, cfg.Windows.Sparkline)
	assert.Equal(t, 20.0, cfg.Scaling.RadarResponseDivisor)
	assert.Equal(t, 5.0, cfg.Scaling.CardResponseDivisor)
	assert.Equal(t, "debug", cfg.Log.Level)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "sentinel-test.log"), cfg.Log.File)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)

	require.NoError(t, Validate(cfg))
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("backend:\n  url: http://file:5000/api\n"), 0644))

	t.Setenv("SENTINEL_BACKEND_URL", "http://env:5000/api")
	t.Setenv("SENTINEL_REFRESH_INTERVAL", "7s")
	t.Setenv("SENTINEL_SCALING_CARD_RESPONSE_DIVISOR", "8")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://env:5000/api", cfg.Backend.URL)
	assert.Equal(t, 7*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, 8.0, cfg.Scaling.CardResponseDivisor)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("backend: [unclosed"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "custom.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))
		t.Chdir(dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("parent directory below git root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
		path := filepath.Join(root, ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))
		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0755))
		t.Chdir(sub)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("stops at git root", func(t *testing.T) {
		outer := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(outer, ConfigFileName), []byte("version: 1\n"), 0644))
		repo := filepath.Join(outer, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
		t.Setenv("HOME", t.TempDir())
		t.Chdir(repo)

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestSearchPaths(t *testing.T) {
	home := t.TempDir()
	repo := filepath.Join(home, "src", "repo")
	sub := filepath.Join(repo, "svc")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
	require.NoError(t, os.MkdirAll(sub, 0755))

	assert.Equal(t, []string{
		filepath.Join(sub, ConfigFileName),
		filepath.Join(repo, ConfigFileName),
		filepath.Join(home, GlobalConfigDir, GlobalConfigFile),
	}, searchPaths(sub, home))

	t.Run("never walks above home", func(t *testing.T) {
		plain := filepath.Join(home, "notes", "a")
		require.NoError(t, os.MkdirAll(plain, 0755))

		assert.Equal(t, []string{
			filepath.Join(plain, ConfigFileName),
			filepath.Join(home, "notes", ConfigFileName),
			filepath.Join(home, GlobalConfigDir, GlobalConfigFile),
		}, searchPaths(plain, home))
	})
}

func TestFind_GlobalConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
	require.NoError(t, os.WriteFile(global, []byte("version: 1\n"), 0644))

	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0755))
	t.Chdir(repo)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, global, found)
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)
	t.Setenv("SENTINEL_WINDOWS_SPARKLINE", "15")

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, 15, cfg.Windows.Sparkline)
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", Expand(""))
	assert.Equal(t, filepath.Join(home, "x.log"), Expand("~/x.log"))
	assert.Equal(t, home+"/x.log", Expand("${HOME}/x.log"))
	assert.Equal(t, "/abs/path", Expand("/abs/path"))
	assert.Equal(t, StateDir()+"/s.log", Expand("${STATE}/s.log"))
}

func TestStateDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	assert.Equal(t, "/tmp/xdg-state/sentinel", StateDir())
	assert.Equal(t, "/tmp/xdg-state/sentinel/sentinel.log", DefaultLogFile())
}
