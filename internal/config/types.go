package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults for every key.
const (
	DefaultBackendURL           = "http://localhost:5000/api"
	DefaultBackendTimeout       = 10 * time.Second
	DefaultRefreshInterval      = 3 * time.Second
	DefaultClockInterval        = time.Second
	DefaultSparklineWindow      = 10
	DefaultRadarResponseDivisor = 10.0
	DefaultCardResponseDivisor  = 5.0
	DefaultLogLevel             = "info"
)

// MinRefreshInterval keeps the dashboard from hammering the backend.
const MinRefreshInterval = 500 * time.Millisecond

// Config represents the complete .sentinel.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Backend BackendConfig `yaml:"backend" mapstructure:"backend"`
	Refresh RefreshConfig `yaml:"refresh" mapstructure:"refresh"`
	Windows WindowsConfig `yaml:"windows" mapstructure:"windows"`
	Scaling ScalingConfig `yaml:"scaling" mapstructure:"scaling"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// BackendConfig points at the monitoring API.
type BackendConfig struct {
	// URL is the API base, e.g. http://localhost:5000/api.
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout bounds one sync cycle (all four requests).
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RefreshConfig controls the two independent timers.
type RefreshConfig struct {
	// Interval is the sync period.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Clock is how often the wall clock updates.
	Clock time.Duration `yaml:"clock" mapstructure:"clock"`
}

// WindowsConfig sizes the chart windows.
type WindowsConfig struct {
	// Sparkline is how many recent points the sparklines show.
	Sparkline int `yaml:"sparkline" mapstructure:"sparkline"`
}

// ScalingConfig maps response time onto 0-100 displays.
type ScalingConfig struct {
	RadarResponseDivisor float64 `yaml:"radar_response_divisor" mapstructure:"radar_response_divisor"`
	CardResponseDivisor  float64 `yaml:"card_response_divisor" mapstructure:"card_response_divisor"`
}

// LogConfig controls the diagnostic log. The TUI owns the terminal, so logs
// go to a file.
type LogConfig struct {
	// File is the log path. Supports ~ and ${HOME}. Empty uses the state
	// directory default.
	File string `yaml:"file" mapstructure:"file"`

	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
}

// MetricsConfig controls the self-telemetry endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics and /healthz. Empty disables it.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Backend: BackendConfig{
			URL:     DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Refresh: RefreshConfig{
			Interval: DefaultRefreshInterval,
			Clock:    DefaultClockInterval,
		},
		Windows: WindowsConfig{
			Sparkline: DefaultSparklineWindow,
		},
		Scaling: ScalingConfig{
			RadarResponseDivisor: DefaultRadarResponseDivisor,
			CardResponseDivisor:  DefaultCardResponseDivisor,
		},
		Log: LogConfig{
			File:  DefaultLogFile(),
			Level: DefaultLogLevel,
		},
	}
}
