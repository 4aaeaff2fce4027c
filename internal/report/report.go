// Package report renders a circuit run as text: the progress transcript
// printed while the circuit runs and the three result files written when
// it finishes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/models"
)

const (
	startBanner = "========================\n   RUNNING CIRCUIT...\n========================\n"
	endBanner   = "========================\n   CIRCUIT FINISHED!\n========================"
)

// Printer writes the run transcript to w. It implements circuit.Observer,
// so it can be handed straight to Circuit.Run. The first write error is
// kept and returned by Err; later writes are skipped.
type Printer struct {
	w    io.Writer
	sink *FileSink
	err  error
}

// NewPrinter creates a printer. sink may be nil, in which case no result
// files are written.
func NewPrinter(w io.Writer, sink *FileSink) *Printer {
	return &Printer{w: w, sink: sink}
}

// Emitted prints the start banner and one line per emitter.
func (p *Printer) Emitted(emitters []models.Emitter) {
	p.printf("%s\n", startBanner)
	p.printf("0ns: Emitting photons.\n")
	lines := EmitterLines(emitters)
	for _, line := range lines {
		p.printf("%s\n", line)
	}
	if p.sink != nil && p.err == nil {
		p.err = p.sink.Write(EmitPhotonsFile, lines)
	}
}

// Progress prints the activation count and the board.
func (p *Printer) Progress(s circuit.Snapshot) {
	p.printf("\n%dns: %d/%d receiver(s) activated.\n", s.Clock, s.Activated, s.Receivers)
	p.printf("%s", s.Board)
}

// Finish prints both result tables and the closing banner.
func (p *Printer) Finish(res circuit.Result) error {
	times := ActivationLines(res.ActivationTimes)
	energy := EnergyLines(res.TotalEnergy)

	p.printf("\nActivation times:\n")
	for _, line := range times {
		p.printf("%s\n", line)
	}
	p.printf("\nTotal energy absorbed:\n")
	for _, line := range energy {
		p.printf("%s\n", line)
	}
	p.printf("\n%s\n", endBanner)

	if p.sink != nil && p.err == nil {
		if err := p.sink.Write(ActivationTimesFile, times); err != nil {
			p.err = err
		} else if err := p.sink.Write(TotalEnergyFile, energy); err != nil {
			p.err = err
		}
	}
	return p.err
}

// Err returns the first error hit while printing or writing files.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = fmt.Errorf("writing report: %w", err)
	}
}

// EmitterLines formats emitters as "A: 100THz, South".
func EmitterLines(emitters []models.Emitter) []string {
	out := make([]string, len(emitters))
	for i, e := range emitters {
		out[i] = e.String()
	}
	return out
}

// ActivationLines formats receivers as "R0: 2ns". The input is expected
// to be sorted already.
func ActivationLines(receivers []models.Receiver) []string {
	out := make([]string, len(receivers))
	for i, r := range receivers {
		out[i] = fmt.Sprintf("%s: %dns", r.Symbol, r.ActivatedAt)
	}
	return out
}

// EnergyLines formats receivers as "R0: 5eV".
func EnergyLines(receivers []models.Receiver) []string {
	out := make([]string, len(receivers))
	for i, r := range receivers {
		out[i] = r.String()
	}
	return out
}

// Summary renders the final tables of a result as one string, without
// banners. Used for clipboard copies and after the terminal viewer closes.
func Summary(res circuit.Result) string {
	var b strings.Builder
	b.WriteString("Activation times:\n")
	for _, line := range ActivationLines(res.ActivationTimes) {
		b.WriteString(line + "\n")
	}
	b.WriteString("\nTotal energy absorbed:\n")
	for _, line := range EnergyLines(res.TotalEnergy) {
		b.WriteString(line + "\n")
	}
	return b.String()
}
