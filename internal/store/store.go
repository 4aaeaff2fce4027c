// Package store persists the history of circuit runs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nvandessel/lasercircuit/internal/circuit"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one finished circuit run.
type Run struct {
	ID            string           `json:"id"`
	Source        string           `json:"source"` // "session", "scenario:<path>", "mcp"
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	EmitterCount  int              `json:"emitters"`
	ReceiverCount int              `json:"receivers"`
	MirrorCount   int              `json:"mirrors"`
	Clock         int              `json:"clock"`
	Activated     int              `json:"activated"`
	TickLog       string           `json:"tick_log,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Results       []ReceiverResult `json:"results"`
}

// ReceiverResult is the final state of one receiver.
type ReceiverResult struct {
	Symbol      string `json:"symbol"`
	Activated   bool   `json:"activated"`
	ActivatedAt int    `json:"activated_at,omitempty"`
	Energy      int    `json:"energy"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewRun summarises a finished circuit. id may be empty, in which case a
// new one is generated.
func NewRun(id, source string, c *circuit.Circuit) Run {
	if id == "" {
		id = NewRunID()
	}
	receivers := c.Receivers()
	results := make([]ReceiverResult, len(receivers))
	for i, r := range receivers {
		results[i] = ReceiverResult{
			Symbol:      r.Symbol,
			Activated:   r.Activated,
			ActivatedAt: r.ActivatedAt,
			Energy:      r.Energy,
		}
	}
	return Run{
		ID:            id,
		Source:        source,
		Width:         c.Width(),
		Height:        c.Height(),
		EmitterCount:  len(c.Emitters()),
		ReceiverCount: len(receivers),
		MirrorCount:   len(c.Mirrors()),
		Clock:         c.Clock(),
		Activated:     c.ActivatedCount(),
		CreatedAt:     time.Now().UTC(),
		Results:       results,
	}
}

// RunStore records and lists runs.
type RunStore interface {
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns the most recent runs first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}
