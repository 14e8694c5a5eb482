package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
)

// Command-specific flags
var (
	dashboardFlags SyncFlags
	watchFlags     SyncFlags
	snapshotFlags  SyncFlags
	snapshotJSON   bool
	snapshotWidth  int
)

// dashboardCmd opens the live TUI
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"monitor"},
	Short:   "Open the live dashboard",
	Long: `Open the live health dashboard.

The dashboard syncs with the backend every refresh interval and shows system
health, threat status, resource cards, the CPU/RAM timeline, the radar chart
and the incident log. The clock keeps running while a sync is in flight.

When stdout is not a terminal (or with --plain) it falls back to watch output.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Sync now
  1 / 2       Toggle CPU / RAM on the timeline
  c / m       Show only CPU / RAM
  a           Show all datasets
  up/k down/j Scroll
  ?           Show help

Examples:
  sentinel
  sentinel dashboard --backend http://mon.internal:5000/api
  sentinel monitor --interval 5s`,
	RunE: runDashboard,
}

// watchCmd prints one status line per sync cycle
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print one status line per sync cycle",
	Long: `Run the sync loop without the TUI and print one line per cycle.

Committed cycles print health, threat status, the latest CPU and memory
readings and the incident count. Failed cycles print the lost connection and
the reason; the next tick retries.

Examples:
  sentinel watch
  sentinel watch --interval 10s | tee sentinel.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		if err := watchFlags.Apply(cfg); err != nil {
			return err
		}
		return runWatch(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

// snapshotCmd runs a single sync cycle and prints the result
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Sync once and print the dashboard",
	Long: `Run one sync cycle and print the rendered dashboard, then exit.

Exits non-zero when the backend can't be reached or returns bad data, so it
works as a health probe in scripts.

Examples:
  sentinel snapshot
  sentinel snapshot --width 140
  sentinel snapshot --json | jq .data.health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		if err := snapshotFlags.Apply(cfg); err != nil {
			return err
		}
		return runSnapshot(cmd.Context(), cfg, cmd.OutOrStdout(), snapshotOptions{
			JSON:  snapshotJSON,
			Width: snapshotWidth,
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sentinel.

Examples:
  # Bash
  sentinel completion bash > /etc/bash_completion.d/sentinel

  # Zsh
  sentinel completion zsh > "${fpath[1]}/_sentinel"

  # Fish
  sentinel completion fish > ~/.config/fish/completions/sentinel.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

// addDashboardFlags registers the dashboard flags on cmd. The root command
// and the dashboard command share one set of values.
func addDashboardFlags(cmd *cobra.Command) {
	AddSyncFlags(cmd, &dashboardFlags)
	cmd.Flags().BoolVar(&dashboardFlags.Plain, "plain", false, "print watch lines instead of the TUI")
}

// currentConfig returns a copy of the loaded config so flag overrides never
// leak between commands. Falls back to defaults when nothing was loaded.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.DefaultConfig()
	}
	cfg := *loadedConfig
	return &cfg
}

func init() {
	addDashboardFlags(dashboardCmd)
	AddSyncFlags(watchCmd, &watchFlags)

	AddBackendFlags(snapshotCmd, &snapshotFlags)
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "print the merged snapshot as JSON")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 0, "render width (default: terminal width or 100)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(completionCmd)
}
