package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/input"
)

// ApplyPulseSequence reads one pulse line per row of r and assigns it to
// the named emitter of c. Each accepted line is echoed with its line
// number, followed by any error and the emitters still waiting for a
// pulse. It returns how many pulses were set.
func ApplyPulseSequence(c *circuit.Circuit, r io.Reader, w io.Writer) (int, error) {
	fmt.Fprintln(w, "\nSetting pulse sequence...")
	printPending(c, w)

	set := 0
	lr := newLineReader(r)
	for lineNo := 1; ; lineNo++ {
		text, tooLong, ok := lr.next()
		if !ok {
			break
		}
		if tooLong {
			fmt.Fprintf(w, "Error: %s\n", errLineTooLong)
			continue
		}
		pl, err := input.ParsePulse(strings.TrimSpace(text))
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", err)
			continue
		}

		fmt.Fprintf(w, "Line %d: %s %d %s\n", lineNo, pl.Symbol, pl.Frequency, pl.Direction)
		if err := c.SetPulse(pl.Symbol, pl.Frequency, pl.Direction); err != nil {
			fmt.Fprintf(w, "Error: %s\n", err)
		} else {
			set++
		}
		printPending(c, w)
	}
	if err := lr.Err(); err != nil {
		return set, fmt.Errorf("reading pulse sequence: %w", err)
	}

	fmt.Fprintln(w, "Pulse sequence set.")
	fmt.Fprintln(w)
	return set, nil
}

func printPending(c *circuit.Circuit, w io.Writer) {
	pending := c.PendingPulses()
	if len(pending) == 0 {
		return
	}
	fmt.Fprintf(w, "-- (%s)\n", strings.Join(pending, ", "))
}
