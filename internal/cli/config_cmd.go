package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sentinel/internal/config"
	"github.com/rileyhilliard/sentinel/internal/errors"
	"github.com/rileyhilliard/sentinel/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show the effective settings or change one key in the config file.

Examples:
  sentinel config show
  sentinel config set refresh.interval 5s
  sentinel config set metrics.addr :9464`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showConfig(cmd.OutOrStdout(), currentConfig(), loadedPath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one key in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setConfigValue(loadedPath, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s (%s)\n", ui.SymbolSuccess, args[0], args[1], loadedPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configRows lists every key with its effective value, in file order.
func configRows(cfg *config.Config) []ui.KeyValue {
	rows := []ui.KeyValue{
		{Key: "backend.url", Value: cfg.Backend.URL},
		{Key: "backend.timeout", Value: cfg.Backend.Timeout.String()},
		{Key: "refresh.interval", Value: cfg.Refresh.Interval.String()},
		{Key: "refresh.clock", Value: cfg.Refresh.Clock.String()},
		{Key: "windows.sparkline", Value: strconv.Itoa(cfg.Windows.Sparkline)},
		{Key: "scaling.radar_response_divisor", Value: strconv.FormatFloat(cfg.Scaling.RadarResponseDivisor, 'g', -1, 64)},
		{Key: "scaling.card_response_divisor", Value: strconv.FormatFloat(cfg.Scaling.CardResponseDivisor, 'g', -1, 64)},
		{Key: "log.file", Value: cfg.Log.File},
		{Key: "log.level", Value: cfg.Log.Level},
		{Key: "metrics.addr", Value: cfg.Metrics.Addr},
	}
	for i := range rows {
		if os.Getenv(envKey(rows[i].Key)) != "" {
			rows[i].Source = "env " + envKey(rows[i].Key)
		}
		if rows[i].Value == "" {
			rows[i].Value = "-"
		}
	}
	return rows
}

func knownKey(key string) bool {
	for _, r := range configRows(config.DefaultConfig()) {
		if r.Key == key {
			return true
		}
	}
	return false
}

// envKey is the environment variable that overrides a dotted key.
func envKey(key string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	if path == "" {
		fmt.Fprintf(w, "%s No %s found, using defaults\n\n", ui.SymbolPending, config.ConfigFileName)
	} else {
		fmt.Fprintf(w, "%s %s\n\n", ui.SymbolLive, path)
	}
	fmt.Fprint(w, ui.RenderKeyValues(configRows(cfg)))
}

// setConfigValue writes key=value into the file at path and checks the
// result still loads and validates. An invalid result is rolled back.
func setConfigValue(path, key, value string) error {
	if path == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("No %s found", config.ConfigFileName),
			"Run 'sentinel init' to create one, or pass --config")
	}

	if !knownKey(key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown key '%s'", key),
			"See 'sentinel config show' for the available keys")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read "+path,
			"Check the file exists and is readable")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't set %s", key),
			"Keys look like backend.url or refresh.interval; see 'sentinel config show'")
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if restoreErr := os.WriteFile(path, original, 0644); restoreErr != nil {
			return errors.WrapWithCode(restoreErr, errors.ErrConfig,
				"Couldn't restore "+path+" after an invalid change",
				"Fix the file by hand")
		}
		return err
	}
	return nil
}
