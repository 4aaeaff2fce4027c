package models

import (
	"fmt"

	"github.com/nvandessel/lasercircuit/internal/constants"
)

// Pulse is an emitter's program: the frequency of its photons and the
// direction they leave in.
type Pulse struct {
	Frequency int       `json:"frequency" yaml:"frequency"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Emitter is a photon source. Its position is fixed at setup and its
// pulse program can be set exactly once.
type Emitter struct {
	Symbol   string   `json:"symbol"`
	Pos      Position `json:"pos"`
	Pulse    Pulse    `json:"pulse"`
	PulseSet bool     `json:"pulse_set"`
}

// NewEmitter creates an emitter without a pulse program.
func NewEmitter(symbol string, x, y int) Emitter {
	return Emitter{Symbol: symbol, Pos: Position{X: x, Y: y}}
}

func (e Emitter) Position() Position            { return e.Pos }
func (e Emitter) Glyph() byte                   { return glyphOf(e.Symbol) }
func (e Emitter) Label() string                 { return e.Symbol }
func (e Emitter) Kind() constants.ComponentKind { return constants.KindEmitter }

// SetPulse configures the emitter's pulse program. A second call is
// rejected with KindDuplicatePulse and leaves the first program intact.
func (e *Emitter) SetPulse(frequency int, dir Direction) error {
	if e.PulseSet {
		return Rejectf(KindDuplicatePulse, "Emitter '%s' already has its pulse sequence set", e.Symbol)
	}
	if frequency <= 0 {
		return Rejectf(KindMalformedInput, "frequency must be greater than zero")
	}
	if !dir.Valid() {
		return Rejectf(KindMalformedInput, "direction must be 'N', 'E', 'S' or 'W'")
	}
	e.Pulse = Pulse{Frequency: frequency, Direction: dir}
	e.PulseSet = true
	return nil
}

// Emit produces a photon at the emitter's position. Emitters without a
// pulse program use fallback.
func (e Emitter) Emit(fallback Pulse) Photon {
	pulse := fallback
	if e.PulseSet {
		pulse = e.Pulse
	}
	return Photon{
		Pos:    e.Pos,
		Dir:    pulse.Direction,
		Energy: pulse.Frequency,
		Source: e.Symbol,
	}
}

// String formats the emitter the way emission reports list it, e.g. "A: 100THz, South".
func (e Emitter) String() string {
	if !e.PulseSet {
		return fmt.Sprintf("%s: unset", e.Symbol)
	}
	return fmt.Sprintf("%s: %dTHz, %s", e.Symbol, e.Pulse.Frequency, e.Pulse.Direction.Name())
}
