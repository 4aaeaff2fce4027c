package circuit

import (
	"context"
	"log/slog"

	"github.com/nvandessel/lasercircuit/internal/models"
)

// levelTrace matches the trace level of the logging package. Photon moves
// are only logged at this level.
const levelTrace = slog.LevelDebug - 4

// EventKind names what happened to a photon.
type EventKind string

const (
	EventEmitted   EventKind = "emitted"
	EventMoved     EventKind = "moved"
	EventLost      EventKind = "lost"      // left the board
	EventAbsorbed  EventKind = "absorbed"  // ran into an emitter
	EventActivated EventKind = "activated" // hit a receiver
	EventReflected EventKind = "reflected"
	EventBlocked   EventKind = "blocked" // absorbed by a directional mirror
)

// Event is one step in a photon's life.
type Event struct {
	Clock  int              `json:"clock"`
	Kind   EventKind        `json:"kind"`
	Photon int              `json:"photon"`
	Source string           `json:"source"`
	Pos    models.Position  `json:"pos"`
	Dir    models.Direction `json:"dir"`
	Target string           `json:"target,omitempty"`
}

// EventRecorder receives engine events as they happen.
type EventRecorder interface {
	Record(Event)
}

func (c *Circuit) record(kind EventKind, index int, target string) {
	p := c.photons[index]
	ev := Event{
		Clock:  c.clock,
		Kind:   kind,
		Photon: index,
		Source: p.Source,
		Pos:    p.Pos,
		Dir:    p.Dir,
		Target: target,
	}
	if c.cfg.Recorder != nil {
		c.cfg.Recorder.Record(ev)
	}
	level := slog.LevelDebug
	if kind == EventMoved {
		level = levelTrace
	}
	c.log.Log(context.Background(), level, "photon "+string(kind), "clock", ev.Clock, "photon", index,
		"source", ev.Source, "pos", ev.Pos.String(), "dir", ev.Dir.String(), "target", target)
}
