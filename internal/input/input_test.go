package input

import (
	"errors"
	"testing"

	"github.com/nvandessel/lasercircuit/internal/models"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantW      int
		wantH      int
		wantKind   models.Kind
		wantErrMsg string
	}{
		{"valid", "18 6", 18, 6, "", ""},
		{"extra whitespace", "  3   3 ", 3, 3, "", ""},
		{"one token", "18", 0, 0, models.KindMalformedInput, "<width> <height>"},
		{"three tokens", "1 2 3", 0, 0, models.KindMalformedInput, "<width> <height>"},
		{"width not integer", "a 6", 0, 0, models.KindNotAnInteger, "width is not an integer"},
		{"height not integer", "6 b", 0, 0, models.KindNotAnInteger, "height is not an integer"},
		{"zero width", "0 6", 0, 0, models.KindOutOfBounds, "width must be greater than zero"},
		{"zero height", "18 0", 0, 0, models.KindOutOfBounds, "height must be greater than zero"},
		{"width checked before height", "-1 x", 0, 0, models.KindNotAnInteger, "height is not an integer"},
		{"largest board", "1000 1000", 1000, 1000, "", ""},
		{"width too large", "1001 6", 0, 0, models.KindOutOfBounds, "width must not exceed 1000"},
		{"height too large", "6 1001", 0, 0, models.KindOutOfBounds, "height must not exceed 1000"},
		{"huge width", "1125899906842624 1", 0, 0, models.KindOutOfBounds, "width must not exceed 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := ParseSize(tt.line)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ParseSize(%q) error = %v", tt.line, err)
				}
				if w != tt.wantW || h != tt.wantH {
					t.Errorf("ParseSize(%q) = (%d, %d), want (%d, %d)", tt.line, w, h, tt.wantW, tt.wantH)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("ParseSize(%q) error = %v, want kind %q", tt.line, err, tt.wantKind)
			}
			if err.Error() != tt.wantErrMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantErrMsg)
			}
		})
	}
}

func TestParseEmitter(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     models.Emitter
		wantKind models.Kind
	}{
		{"valid", "A 0 0", models.NewEmitter("A", 0, 0), ""},
		{"last symbol", "J 4 7", models.NewEmitter("J", 4, 7), ""},
		{"missing token", "A 0", models.Emitter{}, models.KindMalformedInput},
		{"receiver symbol", "R0 0 0", models.Emitter{}, models.KindInvalidSymbol},
		{"symbol checked before coordinates", "K x y", models.Emitter{}, models.KindInvalidSymbol},
		{"x not integer", "A x 0", models.Emitter{}, models.KindNotAnInteger},
		{"y not integer", "A 0 1.5", models.Emitter{}, models.KindNotAnInteger},
		{"negative x", "A -1 0", models.Emitter{}, models.KindOutOfBounds},
		{"negative y", "A 0 -3", models.Emitter{}, models.KindOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEmitter(tt.line)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ParseEmitter(%q) error = %v", tt.line, err)
				}
				if got != tt.want {
					t.Errorf("ParseEmitter(%q) = %+v, want %+v", tt.line, got, tt.want)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("ParseEmitter(%q) error = %v, want kind %q", tt.line, err, tt.wantKind)
			}
		})
	}
}

func TestParseReceiverAndMirror(t *testing.T) {
	r, err := ParseReceiver("R9 3 4")
	if err != nil || r.Symbol != "R9" || r.Pos != (models.Position{X: 3, Y: 4}) {
		t.Errorf("ParseReceiver = %+v, %v", r, err)
	}
	if _, err := ParseReceiver("R10 0 0"); err == nil || err.Error() != "symbol is not between R0-R9" {
		t.Errorf("ParseReceiver(R10) error = %v", err)
	}

	for _, sym := range []string{"/", "\\", ">", "<", "^", "v"} {
		m, err := ParseMirror(sym + " 1 2")
		if err != nil || m.Symbol != sym {
			t.Errorf("ParseMirror(%q) = %+v, %v", sym, m, err)
		}
	}
	if _, err := ParseMirror("| 1 2"); !errors.Is(err, models.KindInvalidSymbol) {
		t.Errorf("ParseMirror(|) error = %v, want invalid symbol", err)
	}
}

func TestParsePulse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     PulseLine
		wantKind models.Kind
	}{
		{"valid", "A 100 S", PulseLine{"A", 100, models.South}, ""},
		{"trailing newline", "B 5 N\n", PulseLine{"B", 5, models.North}, ""},
		{"too few tokens", "A 100", PulseLine{}, models.KindMalformedInput},
		{"bad symbol", "Z 100 S", PulseLine{}, models.KindInvalidSymbol},
		{"frequency not integer", "A fast S", PulseLine{}, models.KindNotAnInteger},
		{"zero frequency", "A 0 S", PulseLine{}, models.KindOutOfBounds},
		{"bad direction", "A 10 Q", PulseLine{}, models.KindMalformedInput},
		{"lowercase direction", "A 10 n", PulseLine{}, models.KindMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePulse(tt.line)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("ParsePulse(%q) error = %v", tt.line, err)
				}
				if got != tt.want {
					t.Errorf("ParsePulse(%q) = %+v, want %+v", tt.line, got, tt.want)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("ParsePulse(%q) error = %v, want kind %q", tt.line, err, tt.wantKind)
			}
		})
	}
}
