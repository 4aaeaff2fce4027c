package models

import "github.com/nvandessel/lasercircuit/internal/constants"

// Locatable is anything that occupies a single board cell.
// Emitters, receivers, mirrors and photons all implement it; photons
// are not Components since they carry no glyph.
type Locatable interface {
	Position() Position
}

// Component is a Locatable with a glyph drawn on the board.
type Component interface {
	Locatable
	// Glyph is the single character shown on the board. Multi-character
	// symbols contribute their last character (R3 draws as '3').
	Glyph() byte
	// Label is the full symbol, used in messages.
	Label() string
	// Kind names the component type.
	Kind() constants.ComponentKind
}

// glyphOf returns the last character of a symbol.
func glyphOf(symbol string) byte {
	if symbol == "" {
		return constants.BlankCell
	}
	return symbol[len(symbol)-1]
}
