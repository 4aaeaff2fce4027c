package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPhoton_Move(t *testing.T) {
	tests := []struct {
		name     string
		start    Position
		dir      Direction
		wantPos  Position
		wantMove bool
	}{
		{"north", Position{1, 1}, North, Position{1, 0}, true},
		{"south", Position{1, 1}, South, Position{1, 2}, true},
		{"east", Position{1, 1}, East, Position{2, 1}, true},
		{"west", Position{1, 1}, West, Position{0, 1}, true},
		{"off the north edge", Position{1, 0}, North, Position{1, 0}, false},
		{"off the south edge", Position{1, 2}, South, Position{1, 2}, false},
		{"off the east edge", Position{2, 1}, East, Position{2, 1}, false},
		{"off the west edge", Position{0, 1}, West, Position{0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Photon{Pos: tt.start, Dir: tt.dir}
			moved := p.Move(3, 3)
			if moved != tt.wantMove {
				t.Errorf("Move() = %v, want %v", moved, tt.wantMove)
			}
			if p.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", p.Pos, tt.wantPos)
			}
			if p.Absorbed == tt.wantMove {
				t.Errorf("Absorbed = %v after move=%v", p.Absorbed, moved)
			}
		})
	}
}

func TestPhoton_AbsorbIsIdempotent(t *testing.T) {
	p := Photon{Pos: Position{0, 0}, Dir: East}
	p.Absorb()
	p.Absorb()
	if !p.Absorbed {
		t.Fatal("photon not absorbed")
	}
	if p.Move(5, 5) {
		t.Error("absorbed photon moved")
	}
	if p.Pos != (Position{0, 0}) {
		t.Errorf("Pos = %v, want (0, 0)", p.Pos)
	}
}

func TestReceiver_Absorb(t *testing.T) {
	r := NewReceiver("R0", 2, 0)

	first := Photon{Energy: 5}
	r.Absorb(&first, 2)
	second := Photon{Energy: 7}
	r.Absorb(&second, 9)

	if !r.Activated {
		t.Fatal("receiver not activated")
	}
	if r.ActivatedAt != 2 {
		t.Errorf("ActivatedAt = %d, want 2", r.ActivatedAt)
	}
	if r.Energy != 12 {
		t.Errorf("Energy = %d, want 12", r.Energy)
	}
	if !first.Absorbed || !second.Absorbed {
		t.Error("photons not absorbed by receiver")
	}
	if got := r.String(); got != "R0: 12eV" {
		t.Errorf("String() = %q, want %q", got, "R0: 12eV")
	}
}

func TestEmitter_SetPulse(t *testing.T) {
	e := NewEmitter("A", 0, 0)
	if err := e.SetPulse(5, East); err != nil {
		t.Fatalf("SetPulse: %v", err)
	}

	err := e.SetPulse(9, North)
	if !errors.Is(err, KindDuplicatePulse) {
		t.Fatalf("second SetPulse error = %v, want %v", err, KindDuplicatePulse)
	}
	if e.Pulse.Frequency != 5 || e.Pulse.Direction != East {
		t.Errorf("Pulse = %+v, want {5 E}", e.Pulse)
	}
	if got := e.String(); got != "A: 5THz, East" {
		t.Errorf("String() = %q", got)
	}
}

func TestEmitter_Emit(t *testing.T) {
	fallback := Pulse{Frequency: 0, Direction: East}

	configured := NewEmitter("B", 1, 2)
	_ = configured.SetPulse(30, South)
	p := configured.Emit(fallback)
	if p.Pos != (Position{1, 2}) || p.Dir != South || p.Energy != 30 || p.Source != "B" {
		t.Errorf("Emit() = %+v", p)
	}

	unset := NewEmitter("C", 0, 0)
	p = unset.Emit(fallback)
	if p.Dir != East || p.Energy != 0 {
		t.Errorf("Emit() without pulse = %+v, want fallback", p)
	}
}

func TestGlyph_UsesLastCharacter(t *testing.T) {
	if g := NewReceiver("R7", 0, 0).Glyph(); g != '7' {
		t.Errorf("receiver glyph = %q, want '7'", g)
	}
	if g := NewEmitter("D", 0, 0).Glyph(); g != 'D' {
		t.Errorf("emitter glyph = %q, want 'D'", g)
	}
	if g := NewMirror("\\", 0, 0).Glyph(); g != '\\' {
		t.Errorf("mirror glyph = %q, want '\\\\'", g)
	}
}

func TestDirection_JSON(t *testing.T) {
	data, err := json.Marshal(Pulse{Frequency: 3, Direction: West})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"frequency":3,"direction":"W"}` {
		t.Errorf("Marshal = %s", data)
	}

	// An emitter without a pulse still encodes.
	if _, err := json.Marshal(NewEmitter("A", 0, 0)); err != nil {
		t.Errorf("Marshal unset emitter: %v", err)
	}
}

func TestKindOf(t *testing.T) {
	err := Rejectf(KindOutOfBounds, "position %v is out-of-bounds", Position{9, 9})
	if KindOf(err) != KindOutOfBounds {
		t.Errorf("KindOf = %q, want %q", KindOf(err), KindOutOfBounds)
	}
	if !errors.Is(err, KindOutOfBounds) {
		t.Error("errors.Is(err, KindOutOfBounds) = false")
	}
	if errors.Is(err, KindSymbolTaken) {
		t.Error("errors.Is(err, KindSymbolTaken) = true")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf(plain error) should be empty")
	}
}

func TestLocatable(t *testing.T) {
	placed := []Locatable{
		NewEmitter("A", 1, 2),
		NewReceiver("R0", 1, 2),
		NewMirror("/", 1, 2),
		Photon{Pos: Position{X: 1, Y: 2}},
	}
	for _, l := range placed {
		if l.Position() != (Position{X: 1, Y: 2}) {
			t.Errorf("%T.Position() = %v, want (1, 2)", l, l.Position())
		}
	}

	// Photons have no glyph; only placed components do.
	if _, ok := any(Photon{}).(Component); ok {
		t.Error("Photon should not implement Component")
	}
	for _, c := range []Component{NewEmitter("A", 0, 0), NewReceiver("R0", 0, 0), NewMirror("/", 0, 0)} {
		if c.Glyph() == 0 {
			t.Errorf("%T.Glyph() is empty", c)
		}
	}
}
