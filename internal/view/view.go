// Package view animates a circuit run in the terminal.
package view

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/constants"
)

// Canvas is the part of tcell.Screen the viewer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	styleFrame    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEmitter  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleReceiver = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMirror   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stylePhoton   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText     = tcell.StyleDefault
)

// glyphStyle picks the color of a board cell.
func glyphStyle(g byte) tcell.Style {
	switch {
	case g == constants.PhotonGlyph:
		return stylePhoton
	case g >= 'A' && g <= 'J':
		return styleEmitter
	case g >= '0' && g <= '9':
		return styleReceiver
	case constants.IsMirrorSymbol(string(g)):
		return styleMirror
	}
	return styleText
}

// DrawSnapshot draws the framed board at the top-left corner of cv with
// a status line underneath.
func DrawSnapshot(cv Canvas, s circuit.Snapshot) {
	width := 0
	if len(s.Rows) > 0 {
		width = len(s.Rows[0])
	}
	height := len(s.Rows)

	for x := 0; x < width+2; x++ {
		r := '-'
		if x == 0 || x == width+1 {
			r = '+'
		}
		cv.SetContent(x, 0, r, nil, styleFrame)
		cv.SetContent(x, height+1, r, nil, styleFrame)
	}
	for y, row := range s.Rows {
		cv.SetContent(0, y+1, '|', nil, styleFrame)
		for x := 0; x < len(row); x++ {
			cv.SetContent(x+1, y+1, rune(row[x]), nil, glyphStyle(row[x]))
		}
		cv.SetContent(width+1, y+1, '|', nil, styleFrame)
	}

	status := fmt.Sprintf("%dns: %d/%d receiver(s) activated.", s.Clock, s.Activated, s.Receivers)
	drawText(cv, 0, height+3, status, styleText)
}

func drawText(cv Canvas, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		cv.SetContent(x+i, y, r, nil, style)
	}
}

// Options controls playback.
type Options struct {
	// Delay is the pause between ticks.
	Delay time.Duration

	// Hold keeps the final frame on screen until a key is pressed.
	Hold bool
}

// Viewer plays a circuit on a tcell screen. q, Esc and Ctrl-C stop
// playback, space pauses it.
type Viewer struct {
	screen tcell.Screen
	opts   Options
}

// New creates a viewer on an initialised screen.
func New(screen tcell.Screen, opts Options) *Viewer {
	return &Viewer{screen: screen, opts: opts}
}

// Play emits photons and ticks c until it finishes, the user quits or
// ctx is done. It returns the result at the clock playback stopped at
// and whether the circuit ran to completion.
func (v *Viewer) Play(ctx context.Context, c *circuit.Circuit) (circuit.Result, bool) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	if c.State() == circuit.StateIdle {
		c.EmitPhotons()
	}
	v.render(c, "q: quit  space: pause")

	ticker := time.NewTicker(max(v.opts.Delay, time.Millisecond))
	defer ticker.Stop()

	paused := false
	for !c.IsFinished() {
		select {
		case <-ctx.Done():
			return c.Result(), false
		case ev := <-events:
			switch action(ev) {
			case actionQuit:
				return c.Result(), false
			case actionPause:
				paused = !paused
			case actionRedraw:
				v.screen.Sync()
			}
		case <-ticker.C:
			if paused {
				continue
			}
			c.Tick()
			v.render(c, "q: quit  space: pause")
		}
	}

	if v.opts.Hold {
		v.render(c, "CIRCUIT FINISHED! press any key")
		for {
			select {
			case <-ctx.Done():
				return c.Result(), true
			case ev := <-events:
				if _, ok := ev.(*tcell.EventKey); ok {
					return c.Result(), true
				}
				if action(ev) == actionRedraw {
					v.screen.Sync()
				}
			}
		}
	}
	return c.Result(), true
}

func (v *Viewer) render(c *circuit.Circuit, help string) {
	v.screen.Clear()
	s := c.Snapshot()
	DrawSnapshot(v.screen, s)
	drawText(v.screen, 0, len(s.Rows)+4, help, styleFrame)
	v.screen.Show()
}

type keyAction int

const (
	actionNone keyAction = iota
	actionQuit
	actionPause
	actionRedraw
)

func action(ev tcell.Event) keyAction {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return actionQuit
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			return actionPause
		}
	case *tcell.EventResize:
		return actionRedraw
	}
	return actionNone
}
