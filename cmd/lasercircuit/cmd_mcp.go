package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/lasercircuit/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdin/stdout.

Tools:
  circuit_simulate   Run a YAML scenario and return the results
  circuit_validate   Check a YAML scenario without running it
  circuit_history    List recorded runs

Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "lasercircuit",
				Version:  version,
				Root:     root,
				Settings: cfg,
				Logger:   logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, cancel := signalContext()
			defer cancel()

			logger.Info("mcp server started", "root", root)
			if err := server.Run(ctx); err != nil && ctx.Err() == nil {
				return fmt.Errorf("mcp server failed: %w", err)
			}
			return nil
		},
	}
}
