package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/ui"
)

// Environment variables read by init when flags are not given.
const (
	envInitBackend        = "SENTINEL_BACKEND_URL"
	envInitInterval       = "SENTINEL_REFRESH_INTERVAL"
	envInitNonInteractive = "SENTINEL_NON_INTERACTIVE"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Backend        string // Backend API base URL
	Interval       string // Refresh interval, e.g. "3s"
	MetricsAddr    string // Optional self-telemetry address
	Dir            string // Directory to write into; empty means cwd
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

var initOpts InitOptions

// initCmd creates .sentinel.yaml
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sentinel.yaml config",
	Long: `Create a .sentinel.yaml config file in the current directory.

Prompts for the backend URL, refresh interval and optional metrics address.
In CI, or with --non-interactive, the values come from flags and
SENTINEL_BACKEND_URL / SENTINEL_REFRESH_INTERVAL, falling back to defaults.

Examples:
  sentinel init
  sentinel init --backend http://mon.internal:5000/api --non-interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(mergeInitOptions(initOpts), cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.Backend, "backend", "", "backend API base URL")
	initCmd.Flags().StringVar(&initOpts.Interval, "interval", "", "refresh interval (e.g., 3s)")
	initCmd.Flags().StringVar(&initOpts.MetricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "don't prompt, use flags and defaults")
	rootCmd.AddCommand(initCmd)
}

// getInitDefaults reads init values from the environment.
func getInitDefaults() InitOptions {
	nonInteractive, _ := strconv.ParseBool(os.Getenv(envInitNonInteractive))
	return InitOptions{
		Backend:        os.Getenv(envInitBackend),
		Interval:       os.Getenv(envInitInterval),
		NonInteractive: nonInteractive || os.Getenv("CI") != "",
	}
}

// mergeInitOptions fills empty flag values from the environment. Flags win.
func mergeInitOptions(opts InitOptions) InitOptions {
	env := getInitDefaults()
	if opts.Backend == "" {
		opts.Backend = env.Backend
	}
	if opts.Interval == "" {
		opts.Interval = env.Interval
	}
	if env.NonInteractive {
		opts.NonInteractive = true
	}
	return opts
}

// Init writes a new config file from opts, prompting for anything missing
// unless NonInteractive is set.
func Init(opts InitOptions, w io.Writer) error {
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if opts.Backend == "" {
		opts.Backend = config.DefaultBackendURL
	}
	if opts.Interval == "" {
		opts.Interval = config.DefaultRefreshInterval.String()
	}

	if !opts.NonInteractive {
		if err := promptInit(&opts); err != nil {
			return err
		}
	}

	cfg, err := buildInitConfig(opts)
	if err != nil {
		return err
	}

	if err := config.Save(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+configPath,
			"Check that the directory is writable")
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  sentinel snapshot   - Check the backend answers")
	fmt.Fprintln(w, "  sentinel            - Open the dashboard")
	return nil
}

// promptInit asks for the values with huh, pre-filled from opts.
func promptInit(opts *InitOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend API URL").
				Description("Base URL serving /health, /risk, /metrics/recent and /incidents").
				Value(&opts.Backend).
				Validate(func(s string) error {
					cfg := config.DefaultConfig()
					cfg.Backend.URL = s
					return config.Validate(cfg)
				}),
			huh.NewInput().
				Title("Refresh interval").
				Description(fmt.Sprintf("How often to sync (minimum %s)", config.MinRefreshInterval)).
				Value(&opts.Interval).
				Validate(func(s string) error {
					_, err := parseInitInterval(s)
					return err
				}),
			huh.NewInput().
				Title("Metrics address (optional)").
				Description("Serve /metrics and /healthz here, e.g. :9464. Leave empty to disable.").
				Value(&opts.MetricsAddr),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Run with --non-interactive and pass values as flags")
	}
	return nil
}

// buildInitConfig turns opts into a validated config.
func buildInitConfig(opts InitOptions) (*config.Config, error) {
	interval, err := parseInitInterval(opts.Interval)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	cfg.Backend.URL = opts.Backend
	cfg.Refresh.Interval = interval
	cfg.Metrics.Addr = opts.MetricsAddr
	// keep the file portable; the default log path is resolved at load time
	cfg.Log.File = ""

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseInitInterval(s string) (time.Duration, error) {
	interval, err := ParseDuration("interval", s)
	if err != nil {
		return 0, err
	}
	if interval < config.MinRefreshInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", interval),
			fmt.Sprintf("Use at least %s", config.MinRefreshInterval))
	}
	return interval, nil
}
