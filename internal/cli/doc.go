// Package cli implements the sentinel command-line interface.
//
// Each Cobra command parses its flags, applies them over the loaded config
// and hands off to a run function (runDashboard, runWatch, runSnapshot) that
// builds a session: one backend client, one board and the engine that syncs
// the two.
//
// # Command Structure
//
//	sentinel                  - Live dashboard (same as "sentinel dashboard")
//	sentinel dashboard        - Live dashboard, alias "monitor"
//	sentinel watch            - One status line per sync cycle
//	sentinel snapshot         - Sync once, print the board or --json
//	sentinel init             - Create .sentinel.yaml
//	sentinel config show|set  - Inspect or change settings
//	sentinel version          - Print version info
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) live on the root command.
// The backend flags (--backend, --timeout, --interval) are registered per
// command through SyncFlags so that each command owns its values; Apply
// copies them over the config and revalidates.
//
// # Startup
//
// PersistentPreRunE loads .env, then the config file (falling back to
// defaults when none exists), then opens the log file. version, completion,
// init and help skip the config step.
package cli
