// Package config provides unified configuration loading for lasercircuit.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/constants"
	"github.com/nvandessel/lasercircuit/internal/logging"
	"github.com/nvandessel/lasercircuit/internal/models"
)

// Config contains all lasercircuit configuration settings.
type Config struct {
	// Logging contains settings for operational logging and tick traces.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Output contains settings for result files.
	Output OutputConfig `json:"output" yaml:"output"`

	// Input contains settings for input files.
	Input InputConfig `json:"input" yaml:"input"`

	// Simulation contains engine settings.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// History contains settings for the run history database.
	History HistoryConfig `json:"history" yaml:"history"`
}

// LoggingConfig configures lasercircuit's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables tick logging to .lasercircuit/ticks-<run>.jsonl.zst.
	// "trace" additionally logs every photon move to stderr.
	Level string `json:"level" yaml:"level"`
}

// OutputConfig configures where result files are written.
type OutputConfig struct {
	// Dir is the directory receiving emit_photons.out, activation_times.out
	// and total_energy.out. Supports ${VAR} syntax. Relative paths are
	// resolved against the project root.
	Dir string `json:"dir" yaml:"dir"`
}

// InputConfig configures input files.
type InputConfig struct {
	// PulseFile is the pulse sequence read by `run --simulate`.
	// Supports ${VAR} syntax.
	PulseFile string `json:"pulse_file" yaml:"pulse_file"`
}

// SimulationConfig configures the engine.
type SimulationConfig struct {
	// ReportEvery is the progress report interval in ticks.
	ReportEvery int `json:"report_every" yaml:"report_every"`

	// DefaultFrequency is used by emitters without a pulse program.
	DefaultFrequency int `json:"default_frequency" yaml:"default_frequency"`

	// DefaultDirection is used by emitters without a pulse program: N, E, S or W.
	DefaultDirection string `json:"default_direction" yaml:"default_direction"`
}

// HistoryConfig configures the sqlite run history.
type HistoryConfig struct {
	// Enabled records every finished run in .lasercircuit/history.db.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Input: InputConfig{
			PulseFile: constants.DefaultPulseFile,
		},
		Simulation: SimulationConfig{
			ReportEvery:      constants.DefaultReportEvery,
			DefaultFrequency: constants.DefaultFrequency,
			DefaultDirection: constants.DefaultDirection,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.lasercircuit/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	// Try to load from default config file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, constants.DataDirName, "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in paths
	config.Output.Dir = expandEnvVars(config.Output.Dir)
	config.Input.PulseFile = expandEnvVars(config.Input.PulseFile)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if c.Simulation.ReportEvery <= 0 {
		return fmt.Errorf("report_every must be positive, got %d", c.Simulation.ReportEvery)
	}

	if c.Simulation.DefaultFrequency < 0 {
		return fmt.Errorf("default_frequency must be non-negative, got %d", c.Simulation.DefaultFrequency)
	}

	if _, err := models.ParseDirection(c.Simulation.DefaultDirection); err != nil {
		return fmt.Errorf("invalid default_direction: %s (valid: N, E, S, W)", c.Simulation.DefaultDirection)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output dir must not be empty")
	}

	return nil
}

// Engine returns the circuit configuration described by c.
// The config must have passed Validate.
func (c *Config) Engine() circuit.Config {
	cfg := circuit.DefaultConfig()
	cfg.ReportEvery = c.Simulation.ReportEvery
	cfg.Fallback.Frequency = c.Simulation.DefaultFrequency
	if dir, err := models.ParseDirection(c.Simulation.DefaultDirection); err == nil {
		cfg.Fallback.Direction = dir
	}
	return cfg
}

// OutputDir resolves the output directory against root.
func (c *Config) OutputDir(root string) string {
	return resolve(root, c.Output.Dir)
}

// PulseFile resolves the pulse sequence path against root.
func (c *Config) PulseFile(root string) string {
	return resolve(root, c.Input.PulseFile)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("LASERCIRCUIT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("LASERCIRCUIT_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	if v := os.Getenv("LASERCIRCUIT_PULSE_FILE"); v != "" {
		config.Input.PulseFile = v
	}

	if v := os.Getenv("LASERCIRCUIT_REPORT_EVERY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.ReportEvery = n
		}
	}

	if v := os.Getenv("LASERCIRCUIT_HISTORY"); v != "" {
		config.History.Enabled = v == "true" || v == "1"
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
