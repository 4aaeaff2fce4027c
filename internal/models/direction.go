// Package models defines the entities placed on a circuit board: emitters,
// receivers, mirrors and the photons that travel between them.
package models

import "fmt"

// Direction is one of the four cardinal directions a photon can travel in.
type Direction int

const (
	North Direction = iota + 1
	East
	South
	West
)

// ParseDirection maps a one-letter code ("N", "E", "S", "W") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Valid returns true if d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// String returns the one-letter code of the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return "?"
}

// Name returns the full name of the direction, e.g. "North".
func (d Direction) Name() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Unknown"
}

// MarshalText encodes the direction as its one-letter code. The zero
// value encodes as an empty string.
func (d Direction) MarshalText() ([]byte, error) {
	if d == 0 {
		return []byte{}, nil
	}
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a one-letter direction code.
func (d *Direction) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = 0
		return nil
	}
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Position is a cell on the board. X grows east, Y grows south.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Step returns the neighbouring position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	switch d {
	case North:
		return Position{X: p.X, Y: p.Y - 1}
	case South:
		return Position{X: p.X, Y: p.Y + 1}
	case East:
		return Position{X: p.X + 1, Y: p.Y}
	case West:
		return Position{X: p.X - 1, Y: p.Y}
	}
	return p
}

// Within reports whether p lies inside a width x height board.
func (p Position) Within(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// String formats the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
