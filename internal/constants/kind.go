package constants

// ComponentKind names the type of a board component.
type ComponentKind string

const (
	// KindEmitter is a photon source.
	KindEmitter ComponentKind = "emitter"

	// KindReceiver absorbs photons and records activation.
	KindReceiver ComponentKind = "receiver"

	// KindMirror reflects or absorbs photons.
	KindMirror ComponentKind = "mirror"
)

// Valid returns true if the kind is a recognized value.
func (k ComponentKind) Valid() bool {
	switch k {
	case KindEmitter, KindReceiver, KindMirror:
		return true
	}
	return false
}

// String returns the string representation of the kind.
func (k ComponentKind) String() string {
	return string(k)
}

// ValidSymbol reports whether symbol belongs to the alphabet of this kind.
func (k ComponentKind) ValidSymbol(symbol string) bool {
	switch k {
	case KindEmitter:
		return IsEmitterSymbol(symbol)
	case KindReceiver:
		return IsReceiverSymbol(symbol)
	case KindMirror:
		return IsMirrorSymbol(symbol)
	}
	return false
}
