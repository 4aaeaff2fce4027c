package models

import (
	"fmt"

	"github.com/nvandessel/lasercircuit/internal/constants"
)

// Receiver absorbs photons. It activates on its first hit and keeps
// accumulating energy on every later hit.
type Receiver struct {
	Symbol      string   `json:"symbol"`
	Pos         Position `json:"pos"`
	Activated   bool     `json:"activated"`
	ActivatedAt int      `json:"activated_at"`
	Energy      int      `json:"energy"`
}

// NewReceiver creates an inactive receiver.
func NewReceiver(symbol string, x, y int) Receiver {
	return Receiver{Symbol: symbol, Pos: Position{X: x, Y: y}}
}

func (r Receiver) Position() Position            { return r.Pos }
func (r Receiver) Glyph() byte                   { return glyphOf(r.Symbol) }
func (r Receiver) Label() string                 { return r.Symbol }
func (r Receiver) Kind() constants.ComponentKind { return constants.KindReceiver }

// Absorb takes in photon p at time clock. The activation time is only
// recorded on the first absorption.
func (r *Receiver) Absorb(p *Photon, clock int) {
	if p.Absorbed {
		return
	}
	if !r.Activated {
		r.Activated = true
		r.ActivatedAt = clock
	}
	r.Energy += p.Energy
	p.Absorb()
}

// String formats the receiver's accumulated energy, e.g. "R0: 5eV".
func (r Receiver) String() string {
	return fmt.Sprintf("%s: %deV", r.Symbol, r.Energy)
}
