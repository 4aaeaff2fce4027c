package models

// Photon travels one cell per tick until something absorbs it.
type Photon struct {
	Pos      Position  `json:"pos"`
	Dir      Direction `json:"dir"`
	Absorbed bool      `json:"absorbed"`
	Energy   int       `json:"energy"`
	// Source is the symbol of the emitter that produced the photon.
	Source string `json:"source"`
}

func (p Photon) Position() Position { return p.Pos }

// Absorb stops the photon for good. Calling it again has no effect.
func (p *Photon) Absorb() {
	p.Absorbed = true
}

// Move advances the photon one cell in its direction on a width x height
// board. A move that would leave the board absorbs the photon in place and
// returns false. Absorbed photons never move.
func (p *Photon) Move(width, height int) bool {
	if p.Absorbed {
		return false
	}
	next := p.Pos.Step(p.Dir)
	if !next.Within(width, height) {
		p.Absorb()
		return false
	}
	p.Pos = next
	return true
}
