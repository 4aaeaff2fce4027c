package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/report"
	"github.com/nvandessel/lasercircuit/internal/scenario"
	"github.com/nvandessel/lasercircuit/internal/store"
)

// simulateResult is the --json output of simulate.
type simulateResult struct {
	RunID           string           `json:"run_id"`
	Recorded        bool             `json:"recorded"`
	Clock           int              `json:"clock"`
	Activated       int              `json:"activated"`
	Receivers       int              `json:"receivers"`
	ActivationTimes []string         `json:"activation_times"`
	TotalEnergy     []string         `json:"total_energy"`
	Issues          []scenario.Issue `json:"issues,omitempty"`
	OutputDir       string           `json:"output_dir"`
	TickLog         string           `json:"tick_log,omitempty"`
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run a circuit described by a scenario file",
		Long: `Run a circuit described by a YAML scenario file.

Entries that cannot be placed are reported and skipped. The run transcript
is printed and the result files are written to the output directory.

Examples:
  lasercircuit simulate circuit.yaml
  lasercircuit simulate circuit.yaml --copy
  lasercircuit simulate circuit.yaml --json --no-history`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			copyReport, _ := cmd.Flags().GetBool("copy")
			noHistory, _ := cmd.Flags().GetBool("no-history")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			if outputDir == "" {
				outputDir = cfg.OutputDir(root)
			}

			sc, err := scenario.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load scenario: %w", err)
			}

			runID := store.NewRunID()
			engine := cfg.Engine()
			engine.Logger = logger
			ticks := tickLog(root, runID, cfg, logger)
			defer ticks.Close()
			if ticks != nil {
				engine.Recorder = ticks
			}

			c, issues, err := sc.Build(engine)
			if err != nil {
				return fmt.Errorf("failed to build circuit: %w", err)
			}

			out := cmd.OutOrStdout()
			transcript := out
			if jsonOut {
				transcript = io.Discard
			}
			for _, issue := range issues {
				fmt.Fprintf(transcript, "Error: %s\n", issue)
			}
			if len(issues) > 0 {
				fmt.Fprintln(transcript)
			}
			if err := c.PrintBoard(transcript); err != nil {
				return fmt.Errorf("failed to print board: %w", err)
			}
			fmt.Fprintln(transcript)

			sink, err := report.NewFileSink(outputDir)
			if err != nil {
				return fmt.Errorf("failed to prepare output directory: %w", err)
			}
			printer := report.NewPrinter(transcript, sink)
			res := c.Run(printer)
			if err := printer.Finish(res); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if err := ticks.Close(); err != nil {
				logger.Warn("failed to close tick log", "error", err)
			}
			run := store.NewRun(runID, "scenario:"+args[0], c)
			run.TickLog = ticks.Path()
			recorded := recordRun(context.Background(), root, cfg, noHistory, run, logger)

			if copyReport {
				if err := clipboard.WriteAll(report.Summary(res)); err != nil {
					return fmt.Errorf("failed to copy report to clipboard: %w", err)
				}
				if !jsonOut {
					fmt.Fprintln(out, "Report copied to clipboard.")
				}
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(newSimulateResult(run, recorded, res, c, issues, outputDir))
			}
			return nil
		},
	}

	cmd.Flags().String("output-dir", "", "Directory for result files (default: output.dir from config)")
	cmd.Flags().Bool("copy", false, "Copy the final report to the clipboard")
	cmd.Flags().Bool("no-history", false, "Do not record the run in the history database")

	return cmd
}

func newSimulateResult(run store.Run, recorded bool, res circuit.Result, c *circuit.Circuit, issues []scenario.Issue, outputDir string) simulateResult {
	return simulateResult{
		RunID:           run.ID,
		Recorded:        recorded,
		Clock:           res.Clock,
		Activated:       c.ActivatedCount(),
		Receivers:       len(c.Receivers()),
		ActivationTimes: report.ActivationLines(res.ActivationTimes),
		TotalEnergy:     report.EnergyLines(res.TotalEnergy),
		Issues:          issues,
		OutputDir:       outputDir,
		TickLog:         run.TickLog,
	}
}
