// Package scenario loads circuit descriptions from YAML files and builds
// circuits from them using the same validators and placement rules as an
// interactive session.
//
// Example:
//
//	board: {width: 18, height: 6}
//	emitters:
//	  - {symbol: A, x: 2, y: 2}
//	receivers:
//	  - {symbol: R0, x: 15, y: 2}
//	mirrors:
//	  - {symbol: /, x: 8, y: 2}
//	pulses:
//	  - {symbol: A, frequency: 100, direction: E}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nvandessel/lasercircuit/internal/circuit"
	"github.com/nvandessel/lasercircuit/internal/input"
	"github.com/nvandessel/lasercircuit/internal/models"
)

// Scenario is a complete circuit description.
type Scenario struct {
	Board     Board       `yaml:"board" json:"board"`
	Emitters  []Placement `yaml:"emitters,omitempty" json:"emitters,omitempty"`
	Receivers []Placement `yaml:"receivers,omitempty" json:"receivers,omitempty"`
	Mirrors   []Placement `yaml:"mirrors,omitempty" json:"mirrors,omitempty"`
	Pulses    []Pulse     `yaml:"pulses,omitempty" json:"pulses,omitempty"`
}

// Board is the board size.
type Board struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Placement puts one component at (X, Y).
type Placement struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	X      int    `yaml:"x" json:"x"`
	Y      int    `yaml:"y" json:"y"`
}

// Line renders the placement as an input line, e.g. "A 2 2".
func (p Placement) Line() string {
	return fmt.Sprintf("%s %d %d", p.Symbol, p.X, p.Y)
}

// Pulse is the pulse program of one emitter.
type Pulse struct {
	Symbol    string `yaml:"symbol" json:"symbol"`
	Frequency int    `yaml:"frequency" json:"frequency"`
	Direction string `yaml:"direction" json:"direction"`
}

// Line renders the pulse as a pulse sequence line, e.g. "A 100 E".
func (p Pulse) Line() string {
	return fmt.Sprintf("%s %d %s", p.Symbol, p.Frequency, p.Direction)
}

// Issue is a rejected entry of a scenario. Issues never stop a build.
type Issue struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Line    string `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// String formats the issue as "emitters[1] "B 40 1": <message>".
func (i Issue) String() string {
	return fmt.Sprintf("%s[%d] %q: %s", i.Section, i.Index, i.Line, i.Message)
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario and checks it against the scenario schema.
func Parse(data []byte) (*Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("scenario is empty")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return &s, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Build creates a circuit from the scenario. Invalid entries are skipped
// and returned as issues. An invalid board size is an error since nothing
// can be placed without a board.
func (s *Scenario) Build(cfg circuit.Config) (*circuit.Circuit, []Issue, error) {
	sizeLine := fmt.Sprintf("%d %d", s.Board.Width, s.Board.Height)
	width, height, err := input.ParseSize(sizeLine)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid board: %w", err)
	}
	c := circuit.New(width, height, cfg)

	var issues []Issue
	reject := func(section string, i int, line string, err error) {
		issues = append(issues, Issue{
			Section: section,
			Index:   i,
			Line:    line,
			Kind:    string(models.KindOf(err)),
			Message: err.Error(),
		})
	}

	for i, p := range s.Emitters {
		e, err := input.ParseEmitter(p.Line())
		if err == nil {
			err = c.AddEmitter(e)
		}
		if err != nil {
			reject("emitters", i, p.Line(), err)
		}
	}
	for i, p := range s.Receivers {
		r, err := input.ParseReceiver(p.Line())
		if err == nil {
			err = c.AddReceiver(r)
		}
		if err != nil {
			reject("receivers", i, p.Line(), err)
		}
	}
	for i, p := range s.Mirrors {
		m, err := input.ParseMirror(p.Line())
		if err == nil {
			err = c.AddMirror(m)
		}
		if err != nil {
			reject("mirrors", i, p.Line(), err)
		}
	}
	for i, p := range s.Pulses {
		pl, err := input.ParsePulse(p.Line())
		if err == nil {
			err = c.SetPulse(pl.Symbol, pl.Frequency, pl.Direction)
		}
		if err != nil {
			reject("pulses", i, p.Line(), err)
		}
	}

	return c, issues, nil
}
