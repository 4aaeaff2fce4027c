package models

import "github.com/nvandessel/lasercircuit/internal/constants"

// Mirror redirects photons according to its glyph. Directional mirrors
// (> < ^ v) absorb photons arriving along their axis.
type Mirror struct {
	Symbol string   `json:"symbol"`
	Pos    Position `json:"pos"`
}

// NewMirror creates a mirror.
func NewMirror(symbol string, x, y int) Mirror {
	return Mirror{Symbol: symbol, Pos: Position{X: x, Y: y}}
}

func (m Mirror) Position() Position            { return m.Pos }
func (m Mirror) Glyph() byte                   { return glyphOf(m.Symbol) }
func (m Mirror) Label() string                 { return m.Symbol }
func (m Mirror) Kind() constants.ComponentKind { return constants.KindMirror }

type reflection struct {
	dir    Direction
	absorb bool
}

func turn(d Direction) reflection { return reflection{dir: d} }

var absorbed = reflection{absorb: true}

// reflections maps mirror glyph and incoming direction to the outcome.
var reflections = map[string]map[Direction]reflection{
	"/":  {North: turn(East), South: turn(West), East: turn(North), West: turn(South)},
	"\\": {North: turn(West), South: turn(East), East: turn(South), West: turn(North)},
	">":  {North: turn(East), South: turn(East), East: absorbed, West: absorbed},
	"<":  {North: turn(West), South: turn(West), East: absorbed, West: absorbed},
	"^":  {North: absorbed, South: absorbed, East: turn(North), West: turn(North)},
	"v":  {North: absorbed, South: absorbed, East: turn(South), West: turn(South)},
}

// Reflect returns the direction a photon travelling in dir leaves a mirror
// with the given glyph, or absorb=true if the mirror swallows it. Unknown
// glyphs or directions leave the photon untouched.
func Reflect(symbol string, dir Direction) (out Direction, absorb bool) {
	r, ok := reflections[symbol][dir]
	if !ok {
		return dir, false
	}
	if r.absorb {
		return dir, true
	}
	return r.dir, false
}

// Reflect applies the mirror to p. Absorbed photons are ignored; a photon
// the mirror absorbs keeps its direction.
func (m Mirror) Reflect(p *Photon) {
	if p.Absorbed {
		return
	}
	dir, absorb := Reflect(m.Symbol, p.Dir)
	if absorb {
		p.Absorb()
		return
	}
	p.Dir = dir
}
