// Package board projects circuit components and photon trails onto a
// character grid for display.
package board

import (
	"io"
	"strings"

	"github.com/nvandessel/lasercircuit/internal/constants"
	"github.com/nvandessel/lasercircuit/internal/models"
)

// Board is a width x height grid of glyphs. It only reads entity
// positions and glyphs; it never changes the entities themselves.
type Board struct {
	width  int
	height int
	cells  [][]byte
}

// New creates a blank board.
func New(width, height int) *Board {
	return &Board{width: width, height: height, cells: Create(width, height)}
}

// Create returns height rows of width blank cells.
func Create(width, height int) [][]byte {
	cells := make([][]byte, height)
	for y := range cells {
		row := make([]byte, width)
		for x := range row {
			row[x] = constants.BlankCell
		}
		cells[y] = row
	}
	return cells
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// AddComponent draws the component's glyph at its position. Positions
// outside the board are ignored.
func (b *Board) AddComponent(c models.Component) {
	pos := c.Position()
	if !pos.Within(b.width, b.height) {
		return
	}
	b.cells[pos.Y][pos.X] = c.Glyph()
}

// AddPhoton marks the photon's position with the photon glyph, unless
// the cell already shows something.
func (b *Board) AddPhoton(p models.Locatable) {
	pos := p.Position()
	if !pos.Within(b.width, b.height) {
		return
	}
	if b.cells[pos.Y][pos.X] == constants.BlankCell {
		b.cells[pos.Y][pos.X] = constants.PhotonGlyph
	}
}

// At returns the glyph at (x, y), or a blank for positions off the board.
func (b *Board) At(x, y int) byte {
	if !(models.Position{X: x, Y: y}).Within(b.width, b.height) {
		return constants.BlankCell
	}
	return b.cells[y][x]
}

// Rows returns the unframed rows of the board.
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for y, row := range b.cells {
		rows[y] = string(row)
	}
	return rows
}

// Render writes the board surrounded by a frame:
//
//	+---+
//	|A 0|
//	+---+
func (b *Board) Render(w io.Writer) error {
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the framed board, one line per row, newline-terminated.
func (b *Board) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", b.width) + "+\n"
	sb.WriteString(border)
	for _, row := range b.cells {
		sb.WriteByte('|')
		sb.Write(row)
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
