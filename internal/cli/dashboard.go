package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/sentinel/internal/logger"
	"github.com/rileyhilliard/sentinel/internal/monitor"
)

// runDashboard starts the TUI, or watch output when there is no terminal to
// draw on.
func runDashboard(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	if err := dashboardFlags.Apply(cfg); err != nil {
		return err
	}

	if dashboardFlags.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Named("cli").Info("no terminal on stdout, printing watch lines")
		return runWatch(cmd.Context(), cfg, cmd.OutOrStdout())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession(cfg, time.Now)
	if err != nil {
		return err
	}
	if err := sess.serveTelemetry(ctx); err != nil {
		return err
	}

	model := monitor.NewModel(ctx, sess.board, sess.engine, sess.clock, monitor.Options{
		Interval:      cfg.Refresh.Interval,
		ClockInterval: cfg.Refresh.Clock,
		Backend:       cfg.Backend.URL,
	})

	logger.Named("cli").Info("dashboard started against %s every %s", cfg.Backend.URL, cfg.Refresh.Interval)
	return monitor.Run(ctx, model)
}
