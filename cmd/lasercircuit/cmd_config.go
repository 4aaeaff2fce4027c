package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/lasercircuit/internal/config"
	"github.com/nvandessel/lasercircuit/internal/constants"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage lasercircuit configuration",
		Long: `View and modify lasercircuit configuration settings.

Configuration is stored in ~/.lasercircuit/config.yaml. Environment
variables (LASERCIRCUIT_*) override the file.

Examples:
  lasercircuit config list                              # Show all settings
  lasercircuit config get simulation.report_every       # Get a specific setting
  lasercircuit config set logging.level debug           # Set a setting`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}
			fmt.Fprintln(out, "Configuration (~/.lasercircuit/config.yaml):")
			fmt.Fprintln(out)
			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "  %-29s %v\n", key+":", value)
			}
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			key := args[0]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(out, "%s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			key, value := args[0], args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := setConfigValue(cfg, key, value); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}

			if err := saveConfig(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"status": "updated",
					"key":    key,
					"value":  value,
				})
			}
			fmt.Fprintf(out, "Set %s = %s\n", key, value)
			return nil
		},
	}
}

// configKeys lists every key in display order.
var configKeys = []string{
	"logging.level",
	"output.dir",
	"input.pulse_file",
	"simulation.report_every",
	"simulation.default_frequency",
	"simulation.default_direction",
	"history.enabled",
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (interface{}, bool) {
	switch key {
	case "logging.level":
		return cfg.Logging.Level, true
	case "output.dir":
		return cfg.Output.Dir, true
	case "input.pulse_file":
		return cfg.Input.PulseFile, true
	case "simulation.report_every":
		return cfg.Simulation.ReportEvery, true
	case "simulation.default_frequency":
		return cfg.Simulation.DefaultFrequency, true
	case "simulation.default_direction":
		return cfg.Simulation.DefaultDirection, true
	case "history.enabled":
		return cfg.History.Enabled, true
	default:
		return nil, false
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "logging.level":
		cfg.Logging.Level = value
	case "output.dir":
		cfg.Output.Dir = value
	case "input.pulse_file":
		cfg.Input.PulseFile = value
	case "simulation.report_every":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid report interval: %s (must be an integer)", value)
		}
		cfg.Simulation.ReportEvery = n
	case "simulation.default_frequency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid frequency: %s (must be an integer)", value)
		}
		cfg.Simulation.DefaultFrequency = n
	case "simulation.default_direction":
		cfg.Simulation.DefaultDirection = value
	case "history.enabled":
		cfg.History.Enabled = value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// saveConfig writes the configuration to ~/.lasercircuit/config.yaml.
func saveConfig(cfg *config.Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, constants.DataDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", constants.DataDirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
