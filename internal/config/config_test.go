package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nvandessel/lasercircuit/internal/models"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.Logging.Level != "info" {
		t.Errorf("expected Logging.Level 'info', got '%s'", config.Logging.Level)
	}
	if config.Output.Dir != "output" {
		t.Errorf("expected Output.Dir 'output', got '%s'", config.Output.Dir)
	}
	if config.Input.PulseFile != "pulse_sequence.in" {
		t.Errorf("expected Input.PulseFile 'pulse_sequence.in', got '%s'", config.Input.PulseFile)
	}
	if config.Simulation.ReportEvery != 5 {
		t.Errorf("expected ReportEvery 5, got %d", config.Simulation.ReportEvery)
	}
	if config.Simulation.DefaultFrequency != 0 {
		t.Errorf("expected DefaultFrequency 0, got %d", config.Simulation.DefaultFrequency)
	}
	if config.Simulation.DefaultDirection != "E" {
		t.Errorf("expected DefaultDirection 'E', got '%s'", config.Simulation.DefaultDirection)
	}
	if !config.History.Enabled {
		t.Error("expected History.Enabled to be true by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: debug
output:
  dir: /tmp/circuit-out
simulation:
  report_every: 10
  default_frequency: 3
  default_direction: S
history:
  enabled: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("expected Logging.Level 'debug', got '%s'", config.Logging.Level)
	}
	if config.Output.Dir != "/tmp/circuit-out" {
		t.Errorf("expected Output.Dir '/tmp/circuit-out', got '%s'", config.Output.Dir)
	}
	if config.Simulation.ReportEvery != 10 {
		t.Errorf("expected ReportEvery 10, got %d", config.Simulation.ReportEvery)
	}
	if config.History.Enabled {
		t.Error("expected History.Enabled to be false")
	}
	// Unset sections keep their defaults
	if config.Input.PulseFile != "pulse_sequence.in" {
		t.Errorf("expected default PulseFile, got '%s'", config.Input.PulseFile)
	}

	engine := config.Engine()
	if engine.ReportEvery != 10 {
		t.Errorf("Engine().ReportEvery = %d, want 10", engine.ReportEvery)
	}
	if engine.Fallback != (models.Pulse{Frequency: 3, Direction: models.South}) {
		t.Errorf("Engine().Fallback = %+v", engine.Fallback)
	}
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
output:
  dir: ${TEST_OUTPUT_ROOT}/results
input:
  pulse_file: ${TEST_OUTPUT_ROOT}/pulses.in
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("TEST_OUTPUT_ROOT", "/srv/lab")

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.Output.Dir != "/srv/lab/results" {
		t.Errorf("expected Output.Dir '/srv/lab/results', got '%s'", config.Output.Dir)
	}
	if config.Input.PulseFile != "/srv/lab/pulses.in" {
		t.Errorf("expected PulseFile '/srv/lab/pulses.in', got '%s'", config.Input.PulseFile)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LASERCIRCUIT_LOG_LEVEL", "trace")
	t.Setenv("LASERCIRCUIT_OUTPUT_DIR", "out2")
	t.Setenv("LASERCIRCUIT_PULSE_FILE", "seq.in")
	t.Setenv("LASERCIRCUIT_REPORT_EVERY", "2")
	t.Setenv("LASERCIRCUIT_HISTORY", "0")

	config := Default()
	applyEnvOverrides(config)

	if config.Logging.Level != "trace" {
		t.Errorf("expected Logging.Level 'trace', got '%s'", config.Logging.Level)
	}
	if config.Output.Dir != "out2" {
		t.Errorf("expected Output.Dir 'out2', got '%s'", config.Output.Dir)
	}
	if config.Input.PulseFile != "seq.in" {
		t.Errorf("expected PulseFile 'seq.in', got '%s'", config.Input.PulseFile)
	}
	if config.Simulation.ReportEvery != 2 {
		t.Errorf("expected ReportEvery 2, got %d", config.Simulation.ReportEvery)
	}
	if config.History.Enabled {
		t.Error("expected History.Enabled to be false")
	}
}

func TestEnvOverrides_IgnoresBadInteger(t *testing.T) {
	t.Setenv("LASERCIRCUIT_REPORT_EVERY", "often")

	config := Default()
	applyEnvOverrides(config)

	if config.Simulation.ReportEvery != 5 {
		t.Errorf("expected ReportEvery to stay 5, got %d", config.Simulation.ReportEvery)
	}
}

func TestLoad_FromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := filepath.Join(home, ".lasercircuit")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("simulation:\n  report_every: 7\n"), 0600); err != nil {
		t.Fatal(err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Simulation.ReportEvery != 7 {
		t.Errorf("expected ReportEvery 7, got %d", config.Simulation.ReportEvery)
	}
}

func TestValidate_Valid(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"zero report interval", func(c *Config) { c.Simulation.ReportEvery = 0 }},
		{"negative frequency", func(c *Config) { c.Simulation.DefaultFrequency = -1 }},
		{"unknown direction", func(c *Config) { c.Simulation.DefaultDirection = "NE" }},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"", "info", "debug", "trace"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			config := Default()
			config.Logging.Level = level
			if err := config.Validate(); err != nil {
				t.Errorf("expected log level '%s' to be valid, got error: %v", level, err)
			}
		})
	}
}

func TestResolvePaths(t *testing.T) {
	config := Default()
	if got := config.OutputDir("/proj"); got != filepath.Join("/proj", "output") {
		t.Errorf("OutputDir() = %q", got)
	}
	config.Input.PulseFile = "/abs/pulse.in"
	if got := config.PulseFile("/proj"); got != "/abs/pulse.in" {
		t.Errorf("PulseFile() = %q", got)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
output:
  dir: [invalid yaml
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}
