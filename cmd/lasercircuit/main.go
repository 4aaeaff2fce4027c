package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/config"
	"github.com/nvandessel/lasercircuit/internal/logging"
	"github.com/nvandessel/lasercircuit/internal/store"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lasercircuit",
		Short: "Laser circuit simulator",
		Long: `lasercircuit simulates photons travelling across a circuit board.

Emitters send photons, mirrors reflect them and receivers absorb them.
The simulation advances one nanosecond per tick until every photon has
been absorbed, then reports when each receiver was activated and how much
energy it absorbed.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSimulateCmd(),
		newValidateCmd(),
		newWatchCmd(),
		newHistoryCmd(),
		newMCPServerCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// loadConfig loads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the operational logger. It always writes to stderr so
// stdout stays reserved for transcripts, JSON and the MCP protocol.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// signalContext returns a context cancelled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	notifySignals(ch)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx, cancel
}

// recordRun saves run in the project history. Failures are logged, never
// fatal: the run itself already succeeded.
func recordRun(ctx context.Context, root string, cfg *config.Config, noHistory bool, run store.Run, logger *slog.Logger) bool {
	if noHistory || !cfg.History.Enabled {
		return false
	}
	runs, err := store.NewSQLiteRunStore(root)
	if err != nil {
		logger.Warn("failed to open run history", "error", err)
		return false
	}
	defer runs.Close()

	if err := runs.SaveRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "run_id", run.ID, "error", err)
		return false
	}
	logger.Debug("run recorded", "run_id", run.ID, "db", runs.Path())
	return true
}

// tickLog opens the tick log for runID. It is nil unless the log level is
// debug or trace.
func tickLog(root, runID string, cfg *config.Config, logger *slog.Logger) *logging.TickLog {
	tl := logging.NewTickLog(store.LocalDataPath(root), runID, cfg.Logging.Level)
	if tl != nil {
		logger.Debug("tick log enabled", "path", tl.Path())
	}
	return tl
}
