package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/rileyhilliard/sentinel/internal/errors"
)

// ValidLogLevels are the accepted log.level values.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sentinel only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sentinel, or lower 'version' in your config.")
	}

	if err := validateBackend(cfg.Backend); err != nil {
		return err
	}
	if err := validateRefresh(cfg.Refresh); err != nil {
		return err
	}

	if cfg.Windows.Sparkline < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("windows.sparkline must be at least 1, got %d", cfg.Windows.Sparkline),
			fmt.Sprintf("The default is %d points.", DefaultSparklineWindow))
	}

	if cfg.Scaling.RadarResponseDivisor <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("scaling.radar_response_divisor must be positive, got %v", cfg.Scaling.RadarResponseDivisor),
			fmt.Sprintf("The default is %v.", DefaultRadarResponseDivisor))
	}
	if cfg.Scaling.CardResponseDivisor <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("scaling.card_response_divisor must be positive, got %v", cfg.Scaling.CardResponseDivisor),
			fmt.Sprintf("The default is %v.", DefaultCardResponseDivisor))
	}

	if cfg.Log.Level != "" && !ValidLogLevels[cfg.Log.Level] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown log.level '%s'", cfg.Log.Level),
			"Use one of: debug, info, warn, error.")
	}

	if cfg.Metrics.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("metrics.addr '%s' is not a host:port address", cfg.Metrics.Addr),
				"Use something like ':9090' or '127.0.0.1:9090', or leave it empty.")
		}
	}

	return nil
}

func validateBackend(b BackendConfig) error {
	if b.URL == "" {
		return errors.New(errors.ErrConfig,
			"backend.url is empty",
			fmt.Sprintf("Set it to your monitoring API, e.g. %s", DefaultBackendURL))
	}

	u, err := url.Parse(b.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("backend.url '%s' is not an http(s) URL", b.URL),
			fmt.Sprintf("Use a full URL like %s", DefaultBackendURL))
	}

	if b.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("backend.timeout must be positive, got %s", b.Timeout),
			fmt.Sprintf("The default is %s.", DefaultBackendTimeout))
	}
	return nil
}

func validateRefresh(r RefreshConfig) error {
	if r.Interval < MinRefreshInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh.interval %s is too short", r.Interval),
			fmt.Sprintf("Use at least %s; the default is %s.", MinRefreshInterval, DefaultRefreshInterval))
	}
	if r.Clock <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh.clock must be positive, got %s", r.Clock),
			fmt.Sprintf("The default is %s.", DefaultClockInterval))
	}
	return nil
}
