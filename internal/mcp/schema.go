// Package mcp provides an MCP (Model Context Protocol) server for lasercircuit.
package mcp

import (
	"time"

	"github.com/nvandessel/lasercircuit/internal/scenario"
)

// CircuitSimulateInput defines the input for circuit_simulate tool.
type CircuitSimulateInput struct {
	Scenario string `json:"scenario" jsonschema:"Scenario document in YAML: board, emitters, receivers, mirrors, pulses"`
	Record   bool   `json:"record,omitempty" jsonschema:"Record the run in the project history (default: false)"`
}

// CircuitSimulateOutput defines the output for circuit_simulate tool.
type CircuitSimulateOutput struct {
	RunID           string           `json:"run_id,omitempty" jsonschema:"ID of the recorded run (only when record is set)"`
	Clock           int              `json:"clock" jsonschema:"Clock value in ns when the last photon was absorbed"`
	Activated       int              `json:"activated" jsonschema:"Number of activated receivers"`
	Receivers       int              `json:"receivers" jsonschema:"Number of receivers on the board"`
	ActivationTimes []ReceiverLine   `json:"activation_times" jsonschema:"Activated receivers ordered by activation time"`
	TotalEnergy     []ReceiverLine   `json:"total_energy" jsonschema:"Activated receivers ordered by absorbed energy, highest first"`
	Issues          []scenario.Issue `json:"issues,omitempty" jsonschema:"Scenario entries that were rejected"`
	Board           string           `json:"board" jsonschema:"Final board"`
	Transcript      string           `json:"transcript" jsonschema:"Full run transcript"`
}

// ReceiverLine is one row of a result table.
type ReceiverLine struct {
	Symbol      string `json:"symbol"`
	ActivatedAt int    `json:"activated_at"`
	Energy      int    `json:"energy"`
}

// CircuitValidateInput defines the input for circuit_validate tool.
type CircuitValidateInput struct {
	Scenario string `json:"scenario" jsonschema:"Scenario document in YAML"`
}

// CircuitValidateOutput defines the output for circuit_validate tool.
type CircuitValidateOutput struct {
	Valid         bool             `json:"valid" jsonschema:"Whether every entry of the scenario was accepted"`
	Width         int              `json:"width" jsonschema:"Board width"`
	Height        int              `json:"height" jsonschema:"Board height"`
	Emitters      int              `json:"emitters" jsonschema:"Number of placed emitters"`
	Receivers     int              `json:"receivers" jsonschema:"Number of placed receivers"`
	Mirrors       int              `json:"mirrors" jsonschema:"Number of placed mirrors"`
	PendingPulses []string         `json:"pending_pulses,omitempty" jsonschema:"Emitters without a pulse program"`
	Issues        []scenario.Issue `json:"issues,omitempty" jsonschema:"Rejected entries"`
	Board         string           `json:"board" jsonschema:"Board after placement"`
	Message       string           `json:"message" jsonschema:"Human-readable result message"`
}

// CircuitHistoryInput defines the input for circuit_history tool.
type CircuitHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of runs to return (default: 10)"`
}

// CircuitHistoryOutput defines the output for circuit_history tool.
type CircuitHistoryOutput struct {
	Runs  []RunListItem `json:"runs" jsonschema:"Recorded runs, newest first"`
	Count int           `json:"count" jsonschema:"Number of runs returned"`
}

// RunListItem provides a list view of a recorded run.
type RunListItem struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Board     string    `json:"board"`
	Clock     int       `json:"clock"`
	Activated int       `json:"activated"`
	Receivers int       `json:"receivers"`
	CreatedAt time.Time `json:"created_at"`
}
