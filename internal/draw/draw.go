// Package draw renders the game to a terminal using half-block characters
// and ANSI cursor movement.
package draw

import (
	"github.com/charmbracelet/lipgloss"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Layout is where a canvas sits inside a terminal.
type Layout struct {
	Cols      int // Canvas columns
	Rows      int // Canvas rows
	OffsetCol int // Columns left of the canvas
	OffsetRow int // Rows above the canvas
}

// Fit sizes a canvas to fill as much of a termWidth x termHeight terminal as
// possible while keeping the logical aspect ratio. A cell holds two square
// sub-pixels stacked vertically. The canvas is centered, leaving room for a
// border when there is slack on an axis.
func Fit(termWidth, termHeight int, logicalWidth, logicalHeight float64) Layout {
	if termWidth < 1 || termHeight < 1 || logicalWidth <= 0 || logicalHeight <= 0 {
		return Layout{Cols: 1, Rows: 1}
	}

	aspect := logicalWidth / logicalHeight
	cols := termWidth
	rows := int(float64(cols) / aspect / 2)
	if rows > termHeight {
		rows = termHeight
		cols = int(float64(rows) * 2 * aspect)
	}

	// Reserve a cell on each side for the border when it will be drawn.
	if cols < termWidth && cols > termWidth-2 {
		cols = termWidth - 2
	}
	if rows < termHeight && rows > termHeight-2 {
		rows = termHeight - 2
	}
	cols = max(cols, 1)
	rows = max(rows, 1)

	return Layout{
		Cols:      cols,
		Rows:      rows,
		OffsetCol: (termWidth - cols) / 2,
		OffsetRow: (termHeight - rows) / 2,
	}
}

// Text is a line of styled text placed at 1-based terminal coordinates.
type Text struct {
	Col   int
	Row   int
	Value string
	Style lipgloss.Style
}

// Centered returns a Text horizontally centered on col.
func Centered(col, row int, value string, style lipgloss.Style) Text {
	rendered := style.Render(value)
	return Text{
		Col:   col - lipgloss.Width(rendered)/2,
		Row:   row,
		Value: value,
		Style: style,
	}
}

// Draw writes the text at its position.
func (t Text) Draw(cw *ChunkWriter) {
	if t.Value == "" {
		return
	}
	cw.WriteAt(max(t.Col, 1), max(t.Row, 1), t.Style.Render(t.Value))
}
