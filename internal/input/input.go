// Package input validates the textual descriptions a user types or a pulse
// sequence file contains, turning them into entity values.
//
// Every parser checks its input in a fixed order and returns the first
// failure as a *models.InputError; no parser prints or panics.
package input

import (
	"strconv"
	"strings"

	"github.com/nvandessel/lasercircuit/internal/constants"
	"github.com/nvandessel/lasercircuit/internal/models"
)

// PulseLine is one validated line of a pulse sequence.
type PulseLine struct {
	Symbol    string
	Frequency int
	Direction models.Direction
}

// ParseSize validates "<width> <height>". Both must be positive integers
// no larger than constants.MaxBoardSide.
func ParseSize(line string) (width, height int, err error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return 0, 0, models.Rejectf(models.KindMalformedInput, "<width> <height>")
	}
	width, err = strconv.Atoi(tokens[0])
	if err != nil {
		return 0, 0, models.Rejectf(models.KindNotAnInteger, "width is not an integer")
	}
	height, err = strconv.Atoi(tokens[1])
	if err != nil {
		return 0, 0, models.Rejectf(models.KindNotAnInteger, "height is not an integer")
	}
	if width <= 0 {
		return 0, 0, models.Rejectf(models.KindOutOfBounds, "width must be greater than zero")
	}
	if height <= 0 {
		return 0, 0, models.Rejectf(models.KindOutOfBounds, "height must be greater than zero")
	}
	if width > constants.MaxBoardSide {
		return 0, 0, models.Rejectf(models.KindOutOfBounds, "width must not exceed %d", constants.MaxBoardSide)
	}
	if height > constants.MaxBoardSide {
		return 0, 0, models.Rejectf(models.KindOutOfBounds, "height must not exceed %d", constants.MaxBoardSide)
	}
	return width, height, nil
}

// ParseEmitter validates "<symbol> <x> <y>" for an emitter (A-J).
func ParseEmitter(line string) (models.Emitter, error) {
	symbol, x, y, err := parseComponent(line, constants.KindEmitter)
	if err != nil {
		return models.Emitter{}, err
	}
	return models.NewEmitter(symbol, x, y), nil
}

// ParseReceiver validates "<symbol> <x> <y>" for a receiver (R0-R9).
func ParseReceiver(line string) (models.Receiver, error) {
	symbol, x, y, err := parseComponent(line, constants.KindReceiver)
	if err != nil {
		return models.Receiver{}, err
	}
	return models.NewReceiver(symbol, x, y), nil
}

// ParseMirror validates "<symbol> <x> <y>" for a mirror (/ \ > < ^ v).
func ParseMirror(line string) (models.Mirror, error) {
	symbol, x, y, err := parseComponent(line, constants.KindMirror)
	if err != nil {
		return models.Mirror{}, err
	}
	return models.NewMirror(symbol, x, y), nil
}

// ParsePulse validates "<symbol> <frequency> <direction>".
func ParsePulse(line string) (PulseLine, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return PulseLine{}, models.Rejectf(models.KindMalformedInput, "<symbol> <frequency> <direction>")
	}
	symbol := tokens[0]
	if !constants.IsEmitterSymbol(symbol) {
		return PulseLine{}, models.SymbolRejection(constants.KindEmitter)
	}
	frequency, err := strconv.Atoi(tokens[1])
	if err != nil {
		return PulseLine{}, models.Rejectf(models.KindNotAnInteger, "frequency is not an integer")
	}
	if frequency <= 0 {
		return PulseLine{}, models.Rejectf(models.KindOutOfBounds, "frequency must be greater than zero")
	}
	dir, err := models.ParseDirection(tokens[2])
	if err != nil {
		return PulseLine{}, models.Rejectf(models.KindMalformedInput, "direction must be 'N', 'E', 'S' or 'W'")
	}
	return PulseLine{Symbol: symbol, Frequency: frequency, Direction: dir}, nil
}

// parseComponent runs the checks shared by every component line:
// token count, symbol alphabet, integer coordinates, non-negative coordinates.
// Coordinates beyond the board are left to circuit placement.
func parseComponent(line string, kind constants.ComponentKind) (symbol string, x, y int, err error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return "", 0, 0, models.Rejectf(models.KindMalformedInput, "<symbol> <x> <y>")
	}
	symbol = tokens[0]
	if !kind.ValidSymbol(symbol) {
		return "", 0, 0, models.SymbolRejection(kind)
	}
	x, err = strconv.Atoi(tokens[1])
	if err != nil {
		return "", 0, 0, models.Rejectf(models.KindNotAnInteger, "x is not an integer")
	}
	y, err = strconv.Atoi(tokens[2])
	if err != nil {
		return "", 0, 0, models.Rejectf(models.KindNotAnInteger, "y is not an integer")
	}
	if x < 0 {
		return "", 0, 0, models.Rejectf(models.KindOutOfBounds, "x cannot be negative")
	}
	if y < 0 {
		return "", 0, 0, models.Rejectf(models.KindOutOfBounds, "y cannot be negative")
	}
	return symbol, x, y, nil
}
