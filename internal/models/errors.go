package models

import (
	"errors"
	"fmt"

	"github.com/nvandessel/lasercircuit/internal/constants"
)

// Kind classifies why an input line or a placement was rejected.
// A Kind is itself an error so callers can test with errors.Is.
type Kind string

const (
	KindMalformedInput     Kind = "malformed input"
	KindInvalidSymbol      Kind = "invalid symbol"
	KindNotAnInteger       Kind = "not an integer"
	KindOutOfBounds        Kind = "out of bounds"
	KindPositionTaken      Kind = "position taken"
	KindSymbolTaken        Kind = "symbol taken"
	KindUnknownEmitter     Kind = "unknown emitter reference"
	KindDuplicatePulse     Kind = "duplicate pulse program"
	KindMissingPulseSource Kind = "missing pulse sequence source"
)

// Error implements error.
func (k Kind) Error() string { return string(k) }

// InputError is a rejected input or placement. It is always recoverable:
// the offending input is discarded and processing continues.
type InputError struct {
	Kind    Kind
	Message string
	// Occupant is the symbol already holding a position, set for KindPositionTaken.
	Occupant string
}

// Error returns the user-facing message.
func (e *InputError) Error() string {
	return e.Message
}

// Unwrap exposes the classification to errors.Is.
func (e *InputError) Unwrap() error {
	return e.Kind
}

// Rejectf builds an InputError of the given kind.
func Rejectf(kind Kind, format string, args ...any) *InputError {
	return &InputError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or "" if err is not an InputError.
func KindOf(err error) Kind {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}

// SymbolRejection is the InvalidSymbol error for a component type.
func SymbolRejection(kind constants.ComponentKind) *InputError {
	switch kind {
	case constants.KindEmitter:
		return Rejectf(KindInvalidSymbol, "symbol is not between 'A'-'J'")
	case constants.KindReceiver:
		return Rejectf(KindInvalidSymbol, "symbol is not between R0-R9")
	case constants.KindMirror:
		return Rejectf(KindInvalidSymbol, "symbol must be '/', '\\', '>', '<', '^' or 'v'")
	}
	return Rejectf(KindInvalidSymbol, "unknown component kind %q", kind)
}
