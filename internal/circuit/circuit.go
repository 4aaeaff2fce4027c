// Package circuit owns the components of a laser circuit and advances the
// simulation one nanosecond tick at a time.
//
// A Circuit is single-threaded: one caller places components, sets pulse
// programs and then drives EmitPhotons/Tick (or Run) to completion. The
// board is finite, so every photon eventually leaves it or is absorbed.
//
// Usage:
//
//	c := circuit.New(18, 6, circuit.DefaultConfig())
//	_ = c.AddEmitter(models.NewEmitter("A", 2, 2))
//	_ = c.AddReceiver(models.NewReceiver("R0", 15, 2))
//	_ = c.SetPulse("A", 100, models.East)
//	result := c.Run(observer)
package circuit

import (
	"io"
	"log/slog"
	"slices"

	"github.com/nvandessel/lasercircuit/internal/board"
	"github.com/nvandessel/lasercircuit/internal/constants"
	"github.com/nvandessel/lasercircuit/internal/models"
)

// Config controls engine policy.
type Config struct {
	// ReportEvery is the progress snapshot interval in ticks used by Run.
	ReportEvery int

	// Fallback is the pulse used by emitters that never received a pulse
	// program.
	Fallback models.Pulse

	// Logger receives debug-level engine events. Nil discards them.
	Logger *slog.Logger

	// Recorder receives every engine event. Nil disables recording.
	Recorder EventRecorder
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	dir, _ := models.ParseDirection(constants.DefaultDirection)
	return Config{
		ReportEvery: constants.DefaultReportEvery,
		Fallback:    models.Pulse{Frequency: constants.DefaultFrequency, Direction: dir},
	}
}

// State is the lifecycle phase of a circuit.
type State int

const (
	// StateIdle is the phase before photons are emitted.
	StateIdle State = iota
	// StateRunning means at least one photon is still travelling.
	StateRunning
	// StateFinished means every photon has been absorbed.
	StateFinished
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Circuit holds every emitter, receiver, mirror and photon on a board.
type Circuit struct {
	width   int
	height  int
	clock   int
	emitted bool
	cfg     Config
	log     *slog.Logger

	board     *board.Board
	emitters  []models.Emitter
	receivers []models.Receiver
	mirrors   []models.Mirror
	photons   []models.Photon
}

// New creates an empty width x height circuit.
func New(width, height int, cfg Config) *Circuit {
	if cfg.ReportEvery <= 0 {
		cfg.ReportEvery = constants.DefaultReportEvery
	}
	if !cfg.Fallback.Direction.Valid() {
		cfg.Fallback.Direction = models.East
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Circuit{
		width:  width,
		height: height,
		cfg:    cfg,
		log:    logger,
		board:  board.New(width, height),
	}
}

// Width returns the board width.
func (c *Circuit) Width() int { return c.width }

// Height returns the board height.
func (c *Circuit) Height() int { return c.height }

// Clock returns the number of nanoseconds simulated so far.
func (c *Circuit) Clock() int { return c.clock }

// Emitters returns a copy of the emitters, sorted by symbol.
func (c *Circuit) Emitters() []models.Emitter { return slices.Clone(c.emitters) }

// Receivers returns a copy of the receivers, sorted by symbol.
func (c *Circuit) Receivers() []models.Receiver { return slices.Clone(c.receivers) }

// Mirrors returns a copy of the mirrors, sorted by glyph.
func (c *Circuit) Mirrors() []models.Mirror { return slices.Clone(c.mirrors) }

// Photons returns a copy of the photons in emission order.
func (c *Circuit) Photons() []models.Photon { return slices.Clone(c.photons) }

// Rows returns the unframed board rows.
func (c *Circuit) Rows() []string { return c.board.Rows() }

// RenderBoard returns the framed board.
func (c *Circuit) RenderBoard() string { return c.board.String() }

// PrintBoard writes the framed board to w.
func (c *Circuit) PrintBoard(w io.Writer) error { return c.board.Render(w) }

// ComponentAt returns the component occupying pos, checking emitters,
// receivers and mirrors in that order.
func (c *Circuit) ComponentAt(pos models.Position) (models.Component, bool) {
	if e := c.emitterAt(pos); e != nil {
		return *e, true
	}
	if r := c.receiverAt(pos); r != nil {
		return *r, true
	}
	if m := c.mirrorAt(pos); m != nil {
		return *m, true
	}
	return nil, false
}

func (c *Circuit) emitterAt(pos models.Position) *models.Emitter {
	for i := range c.emitters {
		if c.emitters[i].Pos == pos {
			return &c.emitters[i]
		}
	}
	return nil
}

func (c *Circuit) receiverAt(pos models.Position) *models.Receiver {
	for i := range c.receivers {
		if c.receivers[i].Pos == pos {
			return &c.receivers[i]
		}
	}
	return nil
}

func (c *Circuit) mirrorAt(pos models.Position) *models.Mirror {
	for i := range c.mirrors {
		if c.mirrors[i].Pos == pos {
			return &c.mirrors[i]
		}
	}
	return nil
}
