package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
)

// SyncFlags holds the per-run overrides shared by dashboard, watch and
// snapshot. Empty values keep the configured setting.
type SyncFlags struct {
	Backend  string
	Timeout  string
	Interval string
	Plain    bool
}

// AddBackendFlags registers --backend and --timeout on a command.
func AddBackendFlags(cmd *cobra.Command, flags *SyncFlags) {
	cmd.Flags().StringVar(&flags.Backend, "backend", "", "backend API base URL (e.g., http://localhost:5000/api)")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", "", "per-cycle fetch timeout (e.g., 10s)")
}

// AddSyncFlags registers the backend flags plus --interval.
func AddSyncFlags(cmd *cobra.Command, flags *SyncFlags) {
	AddBackendFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "refresh interval (e.g., 3s, 500ms)")
}

// Apply writes the overrides into cfg and re-validates it.
func (f SyncFlags) Apply(cfg *config.Config) error {
	if f.Backend != "" {
		cfg.Backend.URL = f.Backend
	}
	if f.Timeout != "" {
		d, err := ParseDuration("timeout", f.Timeout)
		if err != nil {
			return err
		}
		cfg.Backend.Timeout = d
	}
	if f.Interval != "" {
		d, err := ParseDuration("interval", f.Interval)
		if err != nil {
			return err
		}
		cfg.Refresh.Interval = d
	}
	return config.Validate(cfg)
}

// ParseDuration parses a duration flag. Returns zero duration if the flag is
// empty.
func ParseDuration(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid %s", flag, name),
			"Try something like 5s, 2m, or 500ms.")
	}
	return duration, nil
}
