package circuit

import (
	"fmt"
	"slices"

	"github.com/nvandessel/lasercircuit/internal/constants"
	"github.com/nvandessel/lasercircuit/internal/models"
)

// AddEmitter places e on the board. Checks run in order: symbol alphabet,
// bounds, free position, unique symbol. The first failure is returned as
// an *models.InputError and nothing is changed.
func (c *Circuit) AddEmitter(e models.Emitter) error {
	if err := c.checkPlacement(e); err != nil {
		return err
	}
	for _, existing := range c.emitters {
		if existing.Symbol == e.Symbol {
			return symbolTaken(e.Symbol)
		}
	}

	i := 0
	for i < len(c.emitters) && c.emitters[i].Symbol < e.Symbol {
		i++
	}
	c.emitters = slices.Insert(c.emitters, i, e)
	c.board.AddComponent(e)
	c.log.Debug("emitter added", "symbol", e.Symbol, "pos", e.Pos)
	return nil
}

// AddReceiver places r on the board, with the same checks as AddEmitter.
func (c *Circuit) AddReceiver(r models.Receiver) error {
	if err := c.checkPlacement(r); err != nil {
		return err
	}
	for _, existing := range c.receivers {
		if existing.Symbol == r.Symbol {
			return symbolTaken(r.Symbol)
		}
	}

	i := 0
	for i < len(c.receivers) && c.receivers[i].Symbol < r.Symbol {
		i++
	}
	c.receivers = slices.Insert(c.receivers, i, r)
	c.board.AddComponent(r)
	c.log.Debug("receiver added", "symbol", r.Symbol, "pos", r.Pos)
	return nil
}

// AddMirror places m on the board. Mirrors may share a glyph, so only
// the alphabet, bounds and position checks apply.
func (c *Circuit) AddMirror(m models.Mirror) error {
	if err := c.checkPlacement(m); err != nil {
		return err
	}

	i := 0
	for i < len(c.mirrors) && c.mirrors[i].Symbol < m.Symbol {
		i++
	}
	c.mirrors = slices.Insert(c.mirrors, i, m)
	c.board.AddComponent(m)
	c.log.Debug("mirror added", "symbol", m.Symbol, "pos", m.Pos)
	return nil
}

// SetPulse gives the emitter with the given symbol its pulse program.
func (c *Circuit) SetPulse(symbol string, frequency int, dir models.Direction) error {
	for i := range c.emitters {
		if c.emitters[i].Symbol != symbol {
			continue
		}
		if err := c.emitters[i].SetPulse(frequency, dir); err != nil {
			return err
		}
		c.log.Debug("pulse set", "symbol", symbol, "frequency", frequency, "direction", dir.String())
		return nil
	}
	return models.Rejectf(models.KindUnknownEmitter, "emitter '%s' does not exist", symbol)
}

// PendingPulses returns the symbols of emitters still waiting for a pulse
// program, in symbol order.
func (c *Circuit) PendingPulses() []string {
	var pending []string
	for _, e := range c.emitters {
		if !e.PulseSet {
			pending = append(pending, e.Symbol)
		}
	}
	return pending
}

// checkPlacement runs the checks shared by every component type.
func (c *Circuit) checkPlacement(comp models.Component) error {
	if !comp.Kind().ValidSymbol(comp.Label()) {
		return models.SymbolRejection(comp.Kind())
	}

	pos := comp.Position()
	if !pos.Within(c.width, c.height) {
		return models.Rejectf(models.KindOutOfBounds,
			"position %s is out-of-bounds of %dx%d circuit board", pos, c.width, c.height)
	}

	if occupant, ok := c.ComponentAt(pos); ok {
		return &models.InputError{
			Kind:     models.KindPositionTaken,
			Message:  positionTakenMessage(pos, occupant.Kind(), occupant.Label()),
			Occupant: occupant.Label(),
		}
	}
	return nil
}

func positionTakenMessage(pos models.Position, kind constants.ComponentKind, symbol string) string {
	return fmt.Sprintf("position %s is already taken by %s '%s'", pos, kind, symbol)
}

func symbolTaken(symbol string) error {
	return models.Rejectf(models.KindSymbolTaken, "symbol '%s' is already taken", symbol)
}
