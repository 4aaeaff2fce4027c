package circuit

import "github.com/nvandessel/lasercircuit/internal/models"

// Snapshot is a progress report taken during Run.
type Snapshot struct {
	Clock     int      `json:"clock"`
	Activated int      `json:"activated"`
	Receivers int      `json:"receivers"`
	Board     string   `json:"board"`
	Rows      []string `json:"rows"`
}

// Result summarises a finished run.
type Result struct {
	Clock           int               `json:"clock"`
	Emitters        []models.Emitter  `json:"emitters"`
	ActivationTimes []models.Receiver `json:"activation_times"`
	TotalEnergy     []models.Receiver `json:"total_energy"`
}

// Observer is notified while Run executes.
type Observer interface {
	// Emitted is called once, before photons are emitted at 0ns.
	Emitted(emitters []models.Emitter)
	// Progress is called every ReportEvery ticks, on the finishing tick,
	// and once at 0ns when the circuit finishes without ticking.
	Progress(s Snapshot)
}

// EmitPhotons makes every emitter emit one photon, in symbol order.
func (c *Circuit) EmitPhotons() {
	for _, e := range c.emitters {
		c.photons = append(c.photons, e.Emit(c.cfg.Fallback))
		c.record(EventEmitted, len(c.photons)-1, e.Symbol)
	}
	c.emitted = true
}

// IsFinished reports whether every photon has been absorbed. A circuit
// without photons is finished.
func (c *Circuit) IsFinished() bool {
	for _, p := range c.photons {
		if !p.Absorbed {
			return false
		}
	}
	return true
}

// State returns the lifecycle phase of the circuit.
func (c *Circuit) State() State {
	switch {
	case !c.emitted:
		return StateIdle
	case c.IsFinished():
		return StateFinished
	default:
		return StateRunning
	}
}

// Tick advances the simulation by one nanosecond. Every live photon moves
// one cell, is drawn on the board and interacts with whatever it lands on.
// Tick does nothing once the circuit is finished.
func (c *Circuit) Tick() {
	if c.IsFinished() {
		return
	}
	c.clock++

	for i := range c.photons {
		p := &c.photons[i]
		if p.Absorbed {
			continue
		}
		if !p.Move(c.width, c.height) {
			c.record(EventLost, i, "")
			continue
		}
		c.board.AddPhoton(p)
		c.record(EventMoved, i, "")
		c.collide(i)
	}
}

// collide resolves a photon landing on a component. Emitters are checked
// first, then receivers, then mirrors.
func (c *Circuit) collide(i int) {
	p := &c.photons[i]
	if e := c.emitterAt(p.Pos); e != nil {
		p.Absorb()
		c.record(EventAbsorbed, i, e.Symbol)
		return
	}
	if r := c.receiverAt(p.Pos); r != nil {
		r.Absorb(p, c.clock)
		c.record(EventActivated, i, r.Symbol)
		return
	}
	if m := c.mirrorAt(p.Pos); m != nil {
		m.Reflect(p)
		if p.Absorbed {
			c.record(EventBlocked, i, m.Symbol)
		} else {
			c.record(EventReflected, i, m.Symbol)
		}
	}
}

// Run emits photons and ticks until every photon is absorbed. obs may be nil.
func (c *Circuit) Run(obs Observer) Result {
	if obs != nil {
		obs.Emitted(c.Emitters())
	}
	c.EmitPhotons()

	for !c.IsFinished() {
		c.Tick()
		if c.clock%c.cfg.ReportEvery == 0 || c.IsFinished() {
			c.notify(obs)
		}
	}
	if c.clock == 0 {
		c.notify(obs)
	}

	c.log.Debug("circuit finished", "clock", c.clock, "photons", len(c.photons),
		"activated", c.ActivatedCount(), "receivers", len(c.receivers))
	return c.Result()
}

func (c *Circuit) notify(obs Observer) {
	if obs == nil {
		return
	}
	obs.Progress(c.Snapshot())
}

// Snapshot captures the current progress.
func (c *Circuit) Snapshot() Snapshot {
	return Snapshot{
		Clock:     c.clock,
		Activated: c.ActivatedCount(),
		Receivers: len(c.receivers),
		Board:     c.board.String(),
		Rows:      c.board.Rows(),
	}
}

// Result returns the run summary at the current clock.
func (c *Circuit) Result() Result {
	return Result{
		Clock:           c.clock,
		Emitters:        c.Emitters(),
		ActivationTimes: c.ActivationTimes(),
		TotalEnergy:     c.TotalEnergy(),
	}
}
