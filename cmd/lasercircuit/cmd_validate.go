package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/scenario"
)

// validateResult is the --json output of validate.
type validateResult struct {
	Valid         bool             `json:"valid"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	Emitters      int              `json:"emitters"`
	Receivers     int              `json:"receivers"`
	Mirrors       int              `json:"mirrors"`
	PendingPulses []string         `json:"pending_pulses,omitempty"`
	Issues        []scenario.Issue `json:"issues,omitempty"`
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running it",
		Long: `Check a scenario file without running it.

The document is checked against the scenario schema, then every entry is
placed on a fresh board. Rejected entries are listed and the command fails.
Emitters without a pulse are reported but do not fail validation; they
emit with the default pulse.

Examples:
  lasercircuit validate circuit.yaml
  lasercircuit validate circuit.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

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

			result := validateResult{
				Valid:         len(issues) == 0,
				Width:         c.Width(),
				Height:        c.Height(),
				Emitters:      len(c.Emitters()),
				Receivers:     len(c.Receivers()),
				Mirrors:       len(c.Mirrors()),
				PendingPulses: c.PendingPulses(),
				Issues:        issues,
			}

			if jsonOut {
				if err := json.NewEncoder(out).Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "Board: %dx%d, %d emitter(s), %d receiver(s), %d mirror(s)\n",
					result.Width, result.Height, result.Emitters, result.Receivers, result.Mirrors)
				if len(result.PendingPulses) > 0 {
					fmt.Fprintf(out, "Without pulse: %s\n", strings.Join(result.PendingPulses, ", "))
				}
				for _, issue := range issues {
					fmt.Fprintf(out, "Error: %s\n", issue)
				}
				if result.Valid {
					fmt.Fprintln(out, "Scenario is valid.")
				}
			}

			if !result.Valid {
				return fmt.Errorf("scenario has %d invalid entr(ies)", len(issues))
			}
			return nil
		},
	}
}
