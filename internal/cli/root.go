package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/logger"
	"github.com/rileyhilliard/sentinel/internal/ui"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// Set by the persistent pre-run for commands that need config.
var (
	loadedConfig *config.Config
	loadedPath   string
)

// Commands that run without loading .sentinel.yaml.
var configFreeCommands = map[string]bool{
	"version":    true,
	"completion": true,
	"init":       true,
	"help":       true,
}

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Live operational health dashboard for the terminal",
	Long: `sentinel polls a monitoring backend and renders system health, threat
status, resource metrics and the incident log as a live terminal dashboard.

Running sentinel with no subcommand opens the dashboard.

Configuration is read from .sentinel.yaml (current directory and parents),
then ~/.config/sentinel/config.yaml. Any key can be overridden with a
SENTINEL_ environment variable, e.g. SENTINEL_BACKEND_URL. A .env file in the
current directory is loaded first.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: search for .sentinel.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// the root command runs the dashboard, so it takes the dashboard flags too
	addDashboardFlags(rootCmd)
}

// setupRuntime loads .env, config and the log file before any command runs.
func setupRuntime(cmd *cobra.Command, args []string) error {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read .env",
			"Fix the syntax in .env or remove it")
	}

	if configFreeCommands[cmd.Name()] {
		return nil
	}

	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	loadedConfig = cfg
	loadedPath = path

	z, err := logger.Open(logger.Options{
		File:  cfg.Log.File,
		Level: cfg.Log.Level,
		Debug: verbose,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file "+cfg.Log.File,
			"Set log.file to a writable path")
	}
	logger.SetDefault(z)

	source := path
	if source == "" {
		source = "defaults"
	}
	logger.Named("cli").Debug("%s: config from %s, backend %s", cmd.Name(), source, cfg.Backend.URL)
	return nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err to w. Structured errors already carry their own
// formatting; cobra's usage errors get a pointer to --help.
func printError(w io.Writer, err error) {
	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			fmt.Fprintf(w, "%s Unknown command '%s'\n", ui.SymbolFail, name)
		} else {
			fmt.Fprintf(w, "%s %v\n", ui.SymbolFail, err)
		}
		fmt.Fprintln(w, "\n  Run 'sentinel --help' to see the available commands.")
		return
	}

	if errors.CodeOf(err) != "" {
		fmt.Fprint(w, err.Error())
		return
	}
	fmt.Fprintf(w, "%s %v\n", ui.SymbolFail, err)
}

// isUnknownCommandError reports whether err is cobra's unknown command or
// unknown flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// extractUnknownCommand pulls the command name out of
// `unknown command "foo" for "sentinel"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
