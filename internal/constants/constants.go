// Package constants provides named constants used throughout the lasercircuit codebase.
// This centralizes symbol alphabets and magic numbers for better maintainability.
package constants

// Board glyphs
const (
	// BlankCell is the glyph of an empty board cell.
	BlankCell = ' '

	// PhotonGlyph marks a cell a photon has travelled through.
	// It never replaces a component glyph.
	PhotonGlyph = '.'
)

// Symbol alphabets. Each entity type has a fixed, reserved set of symbols.
var (
	// EmitterSymbols are the ten reserved emitter symbols.
	EmitterSymbols = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

	// ReceiverSymbols are the ten reserved receiver symbols.
	ReceiverSymbols = []string{"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7", "R8", "R9"}

	// MirrorSymbols are the six mirror glyphs.
	MirrorSymbols = []string{"/", "\\", ">", "<", "^", "v"}
)

// Session limits
const (
	// MaxEmitters is the maximum number of emitters a session accepts.
	MaxEmitters = 10

	// MaxReceivers is the maximum number of receivers a session accepts.
	MaxReceivers = 10

	// MaxBoardSide bounds board width and height so a size line can
	// never request an unbounded allocation.
	MaxBoardSide = 1000
)

// Session sentinels end a block of component lines.
const (
	EndEmitters  = "END EMITTERS"
	EndReceivers = "END RECEIVERS"
	EndMirrors   = "END MIRRORS"
)

// Simulation defaults
const (
	// DefaultReportEvery is the progress report interval in ticks.
	DefaultReportEvery = 5

	// DefaultFrequency is the energy given to photons of emitters
	// that never received a pulse program.
	DefaultFrequency = 0

	// DefaultDirection is the direction taken by photons of emitters
	// that never received a pulse program.
	DefaultDirection = "E"
)

// Output file names written by the report file sink.
const (
	EmitPhotonsFile     = "emit_photons.out"
	ActivationTimesFile = "activation_times.out"
	TotalEnergyFile     = "total_energy.out"
)

// DefaultPulseFile is the pulse sequence file read by `lasercircuit run --simulate`.
const DefaultPulseFile = "pulse_sequence.in"

// DataDirName is the per-project and per-user data directory.
const DataDirName = ".lasercircuit"

// IsEmitterSymbol reports whether s is a reserved emitter symbol.
func IsEmitterSymbol(s string) bool { return contains(EmitterSymbols, s) }

// IsReceiverSymbol reports whether s is a reserved receiver symbol.
func IsReceiverSymbol(s string) bool { return contains(ReceiverSymbols, s) }

// IsMirrorSymbol reports whether s is a mirror glyph.
func IsMirrorSymbol(s string) bool { return contains(MirrorSymbols, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
