package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/logging"
	"github.com/nvandessel/lasercircuit/internal/report"
	"github.com/nvandessel/lasercircuit/internal/session"
	"github.com/nvandessel/lasercircuit/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a circuit interactively and optionally run it",
		Long: `Build a circuit board from lines typed on stdin.

The session asks for the board size ("<width> <height>"), then emitters
and receivers ("<symbol> <x> <y>"). End each section with END EMITTERS or
END RECEIVERS. With --mirrors a mirror section follows, ended by
END MIRRORS.

With --simulate the pulse sequence file is applied and the circuit runs
until every photon is absorbed. Result files are written to the output
directory.

Examples:
  lasercircuit run
  lasercircuit run --mirrors --simulate
  lasercircuit run --simulate --pulse-file pulses.in < board.in`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			mirrors, _ := cmd.Flags().GetBool("mirrors")
			simulate, _ := cmd.Flags().GetBool("simulate")
			pulseFile, _ := cmd.Flags().GetString("pulse-file")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			noHistory, _ := cmd.Flags().GetBool("no-history")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			if pulseFile == "" {
				pulseFile = cfg.PulseFile(root)
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir(root)
			}

			runID := store.NewRunID()
			engine := cfg.Engine()
			engine.Logger = logger
			var ticks *logging.TickLog
			if simulate {
				ticks = tickLog(root, runID, cfg, logger)
				defer ticks.Close()
			}
			if ticks != nil {
				engine.Recorder = ticks
			}

			opts := session.Options{
				Mirrors:   mirrors,
				Simulate:  simulate,
				PulseFile: pulseFile,
				Engine:    engine,
			}
			if simulate {
				sink, err := report.NewFileSink(outputDir)
				if err != nil {
					return fmt.Errorf("failed to prepare output directory: %w", err)
				}
				opts.Sink = sink
			}

			outcome, err := session.New(cmd.InOrStdin(), cmd.OutOrStdout(), opts, logger).Run()
			if err != nil {
				_ = ticks.Discard()
				if errors.Is(err, session.ErrNoBoard) {
					return fmt.Errorf("no circuit created: %w", err)
				}
				return fmt.Errorf("session failed: %w", err)
			}
			if outcome.Result == nil {
				if err := ticks.Discard(); err != nil {
					logger.Warn("failed to remove tick log", "error", err)
				}
				return nil
			}

			if err := ticks.Close(); err != nil {
				logger.Warn("failed to close tick log", "error", err)
			}
			run := store.NewRun(runID, "session", outcome.Circuit)
			run.TickLog = ticks.Path()
			recordRun(context.Background(), root, cfg, noHistory, run, logger)
			return nil
		},
	}

	cmd.Flags().Bool("mirrors", false, "Add mirrors after the receivers")
	cmd.Flags().Bool("simulate", false, "Apply the pulse sequence and run the circuit")
	cmd.Flags().String("pulse-file", "", "Pulse sequence file (default: input.pulse_file from config)")
	cmd.Flags().String("output-dir", "", "Directory for result files (default: output.dir from config)")
	cmd.Flags().Bool("no-history", false, "Do not record the run in the history database")

	return cmd
}
