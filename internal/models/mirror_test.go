package models

import "testing"

func TestReflect_Table(t *testing.T) {
	tests := []struct {
		symbol string
		in     Direction
		want   Direction
		absorb bool
	}{
		{"/", North, East, false},
		{"/", South, West, false},
		{"/", East, North, false},
		{"/", West, South, false},
		{"\\", North, West, false},
		{"\\", South, East, false},
		{"\\", East, South, false},
		{"\\", West, North, false},
		{">", North, East, false},
		{">", South, East, false},
		{">", East, East, true},
		{">", West, West, true},
		{"<", North, West, false},
		{"<", South, West, false},
		{"<", East, East, true},
		{"<", West, West, true},
		{"^", North, North, true},
		{"^", South, South, true},
		{"^", East, North, false},
		{"^", West, North, false},
		{"v", North, North, true},
		{"v", South, South, true},
		{"v", East, South, false},
		{"v", West, South, false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol+tt.in.String(), func(t *testing.T) {
			got, absorb := Reflect(tt.symbol, tt.in)
			if got != tt.want || absorb != tt.absorb {
				t.Errorf("Reflect(%q, %s) = (%s, %v), want (%s, %v)",
					tt.symbol, tt.in, got, absorb, tt.want, tt.absorb)
			}
		})
	}
}

func TestMirror_ReflectPhoton(t *testing.T) {
	t.Run("slash turns east-bound photon north", func(t *testing.T) {
		p := Photon{Pos: Position{X: 1, Y: 0}, Dir: East}
		NewMirror("/", 1, 0).Reflect(&p)
		if p.Dir != North || p.Absorbed {
			t.Errorf("photon = %+v, want travelling North and not absorbed", p)
		}
	})

	t.Run("right arrow absorbs east-bound photon without turning it", func(t *testing.T) {
		p := Photon{Dir: East}
		NewMirror(">", 0, 0).Reflect(&p)
		if !p.Absorbed {
			t.Error("photon not absorbed")
		}
		if p.Dir != East {
			t.Errorf("Dir = %s, want E", p.Dir)
		}
	})

	t.Run("absorbed photon is left alone", func(t *testing.T) {
		p := Photon{Dir: North, Absorbed: true}
		NewMirror("/", 0, 0).Reflect(&p)
		if p.Dir != North {
			t.Errorf("Dir = %s, want N", p.Dir)
		}
	})
}
