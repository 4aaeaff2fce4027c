// Package session drives an interactive circuit build over a line-based
// reader and writer: board size, emitters, receivers, optional mirrors,
// then an optional pulse sequence and run.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/constants"
	"github.com/nvandessel/lasercircuit/internal/input"
	"github.com/nvandessel/lasercircuit/internal/models"
	"github.com/nvandessel/lasercircuit/internal/report"
)

const prompt = "> "

// ErrNoBoard is returned when input ends before a valid board size was read.
var ErrNoBoard = errors.New("input ended before a valid board size was given")

// Options selects the optional phases of a session.
type Options struct {
	// Mirrors enables the mirror placement phase.
	Mirrors bool

	// Simulate reads PulseFile and runs the circuit.
	Simulate bool

	// PulseFile is the pulse sequence path used when Simulate is set.
	PulseFile string

	// Engine configures the circuit.
	Engine circuit.Config

	// Sink receives the result files. Nil disables them.
	Sink *report.FileSink
}

// Outcome is what a finished session produced.
type Outcome struct {
	Circuit *circuit.Circuit

	// Result is set when the circuit was run.
	Result *circuit.Result

	// Aborted is set when the simulation phase was requested but could
	// not start. It is a recoverable *models.InputError.
	Aborted error
}

// Session reads user lines from in and writes prompts and diagnostics to out.
type Session struct {
	in   *lineReader
	out  io.Writer
	opts Options
	log  *slog.Logger
}

// New creates a session. logger may be nil.
func New(in io.Reader, out io.Writer, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		in:   newLineReader(in),
		out:  out,
		opts: opts,
		log:  logger,
	}
}

// Run executes every phase selected by the session options.
func (s *Session) Run() (*Outcome, error) {
	c, err := s.BuildCircuit()
	if err != nil {
		return nil, err
	}
	out := &Outcome{Circuit: c}

	if s.opts.Mirrors {
		s.println("<ADD-MY-MIRRORS FLAG DETECTED!>\n")
		if _, err := s.AddMirrors(c); err != nil {
			return out, err
		}
		s.println("")
	}
	if err := c.PrintBoard(s.out); err != nil {
		return out, fmt.Errorf("printing board: %w", err)
	}
	s.println("")

	if !s.opts.Simulate {
		return out, nil
	}

	s.println("<RUN-MY-CIRCUIT FLAG DETECTED!>")
	f, err := os.Open(s.opts.PulseFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return out, fmt.Errorf("opening pulse sequence: %w", err)
		}
		out.Aborted = models.Rejectf(models.KindMissingPulseSource,
			"-RUN-MY-CIRCUIT flag detected but %s does not exist", s.opts.PulseFile)
		s.printf("\nError: %s\n", out.Aborted)
		s.log.Warn("simulation aborted", "pulse_file", s.opts.PulseFile)
		return out, nil
	}
	defer f.Close()

	if _, err := ApplyPulseSequence(c, f, s.out); err != nil {
		return out, err
	}

	printer := report.NewPrinter(s.out, s.opts.Sink)
	res := c.Run(printer)
	if err := printer.Finish(res); err != nil {
		return out, err
	}
	out.Result = &res
	return out, nil
}

// BuildCircuit reads the board size, then emitters and receivers.
// Invalid lines are reported and skipped.
func (s *Session) BuildCircuit() (*circuit.Circuit, error) {
	s.println("Creating circuit board...")
	var width, height int
	for {
		line, ok := s.readLine()
		if !ok {
			return nil, s.inputErr(ErrNoBoard)
		}
		w, h, err := input.ParseSize(line)
		if err != nil {
			s.reject(err)
			continue
		}
		width, height = w, h
		break
	}
	s.printf("%dx%d board created.\n", width, height)

	c := circuit.New(width, height, s.opts.Engine)

	s.println("\nAdding emitter(s)...")
	emitters := 0
	for emitters < constants.MaxEmitters {
		line, ok := s.readLine()
		if !ok || line == constants.EndEmitters {
			break
		}
		e, err := input.ParseEmitter(line)
		if err == nil {
			err = c.AddEmitter(e)
		}
		if err != nil {
			s.reject(err)
			continue
		}
		emitters++
	}
	s.printf("%d emitter(s) added.\n", emitters)

	s.println("\nAdding receiver(s)...")
	receivers := 0
	for receivers < constants.MaxReceivers {
		line, ok := s.readLine()
		if !ok || line == constants.EndReceivers {
			break
		}
		r, err := input.ParseReceiver(line)
		if err == nil {
			err = c.AddReceiver(r)
		}
		if err != nil {
			s.reject(err)
			continue
		}
		receivers++
	}
	s.printf("%d receiver(s) added.\n\n", receivers)

	return c, s.inputErr(nil)
}

// AddMirrors reads mirror lines until END MIRRORS or end of input and
// returns how many were placed.
func (s *Session) AddMirrors(c *circuit.Circuit) (int, error) {
	s.println("Adding mirror(s)...")
	mirrors := 0
	for {
		line, ok := s.readLine()
		if !ok || line == constants.EndMirrors {
			break
		}
		m, err := input.ParseMirror(line)
		if err == nil {
			err = c.AddMirror(m)
		}
		if err != nil {
			s.reject(err)
			continue
		}
		mirrors++
	}
	s.printf("%d mirror(s) added.\n", mirrors)
	return mirrors, s.inputErr(nil)
}

// readLine prompts and reads one line. Over-long lines are rejected and
// the prompt repeats. ok is false at end of input.
func (s *Session) readLine() (string, bool) {
	for {
		s.printf("%s", prompt)
		line, tooLong, ok := s.in.next()
		if !ok {
			return "", false
		}
		if tooLong {
			s.reject(errLineTooLong)
			continue
		}
		return strings.TrimRight(line, "\r"), true
	}
}

// inputErr combines fallback with any read error from the input.
func (s *Session) inputErr(fallback error) error {
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return fallback
}

func (s *Session) reject(err error) {
	s.printf("Error: %s\n", err)
	s.log.Debug("input rejected", "kind", string(models.KindOf(err)), "error", err)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
