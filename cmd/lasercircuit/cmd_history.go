package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/logging"
	"github.com/nvandessel/lasercircuit/internal/pathutil"
	"github.com/nvandessel/lasercircuit/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded circuit runs",
		Long: `List circuit runs recorded in .lasercircuit/history.db, newest first.

With --events, print the photon events of one run. Events are only
recorded when logging.level is debug or trace.

Examples:
  lasercircuit history
  lasercircuit history --limit 5 --json
  lasercircuit history --events 6f1c2a9e-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			eventsOf, _ := cmd.Flags().GetString("events")
			out := cmd.OutOrStdout()

			runs, err := store.NewSQLiteRunStore(root)
			if err != nil {
				return fmt.Errorf("failed to open run history: %w", err)
			}
			defer runs.Close()

			ctx := context.Background()

			if eventsOf != "" {
				run, err := runs.GetRun(ctx, eventsOf)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("run %s not found", eventsOf)
				}
				if err != nil {
					return fmt.Errorf("failed to load run: %w", err)
				}
				if run.TickLog == "" {
					return fmt.Errorf("run %s has no tick log (set logging.level to debug)", eventsOf)
				}
				if err := pathutil.Within(run.TickLog, store.LocalDataPath(root)); err != nil {
					return fmt.Errorf("refusing to read tick log: %w", err)
				}
				events, err := logging.ReadTickLog(run.TickLog)
				if err != nil {
					return fmt.Errorf("failed to read tick log: %w", err)
				}
				if jsonOut {
					return json.NewEncoder(out).Encode(map[string]interface{}{
						"run_id": run.ID,
						"events": events,
						"count":  len(events),
					})
				}
				for _, ev := range events {
					line := fmt.Sprintf("%4dns  photon %-2d %-9s %s %s", ev.Clock, ev.Photon, ev.Kind, ev.Pos, ev.Dir)
					if ev.Target != "" {
						line += " " + ev.Target
					}
					fmt.Fprintln(out, line)
				}
				return nil
			}

			list, err := runs.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"runs":  list,
					"count": len(list),
				})
			}

			if len(list) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			for _, r := range list {
				fmt.Fprintf(out, "%s  %s  %dx%d  %d/%d activated  %dns  %s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.ID,
					r.Width, r.Height, r.Activated, r.ReceiverCount, r.Clock, r.Source)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().String("events", "", "Print the photon events of the given run ID")

	return cmd
}
