package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/report"
	"github.com/nvandessel/lasercircuit/internal/scenario"
	"github.com/nvandessel/lasercircuit/internal/view"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <scenario.yaml>",
		Short: "Animate a scenario in the terminal",
		Long: `Animate a scenario in the terminal, one frame per tick.

Keys: space pauses, q or Esc quits. The final report is printed once the
viewer closes.

Examples:
  lasercircuit watch circuit.yaml
  lasercircuit watch circuit.yaml --delay 50ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delay, _ := cmd.Flags().GetDuration("delay")
			if delay <= 0 {
				return fmt.Errorf("delay must be positive, got %s", delay)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sc, err := scenario.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load scenario: %w", err)
			}
			c, issues, err := sc.Build(cfg.Engine())
			if err != nil {
				return fmt.Errorf("failed to build circuit: %w", err)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}

			ctx, cancel := signalContext()
			defer cancel()
			res, finished := view.New(screen, view.Options{Delay: delay, Hold: true}).Play(ctx, c)
			screen.Fini()

			out := cmd.OutOrStdout()
			for _, issue := range issues {
				fmt.Fprintf(out, "Error: %s\n", issue)
			}
			if !finished {
				fmt.Fprintf(out, "Stopped at %dns.\n\n", c.Clock())
			}
			fmt.Fprint(out, report.Summary(res))
			return nil
		},
	}

	cmd.Flags().Duration("delay", 200*time.Millisecond, "Pause between ticks")

	return cmd
}
