package plinko

import (
	"bufio"
	"io"
	"strings"
)

const (
	runePeg      = '.'
	runeSpace    = ' '
	runeCupWall  = '|'
	runeCupEmpty = '_'
	runeBall     = 'o'

	// clearScreen homes the cursor and erases the display.
	clearScreen = "\x1b[H\x1b[2J"
)

// HelpLines is the usage text shown above the board.
var HelpLines = []string{
	"Press any key to drop a ball or Escape to quit.",
	"Debugging commands: Tab to toggle simulation mode, enter to clear cups.",
}

// BoardLines lays the board out as text: one line per peg row followed by
// the cup line.
func BoardLines(board Board, occupancy, cups []bool) []string {
	lines := make([]string, 0, board.Rows()+1)

	var sb strings.Builder
	i := 0
	for r := 1; r <= board.Rows(); r++ {
		sb.Reset()
		for range board.Rows() - r {
			sb.WriteByte(runeSpace)
		}
		for range r - 1 {
			sb.WriteByte(runePeg)
			if occupancy[i] {
				sb.WriteByte(runeBall)
			} else {
				sb.WriteByte(runeSpace)
			}
			i++
		}
		sb.WriteByte(runePeg)
		lines = append(lines, sb.String())
	}

	sb.Reset()
	for _, full := range cups {
		sb.WriteByte(runeCupWall)
		if full {
			sb.WriteByte(runeBall)
		} else {
			sb.WriteByte(runeCupEmpty)
		}
	}
	sb.WriteByte(runeCupWall)
	lines = append(lines, sb.String())

	return lines
}

// TextRenderer writes the board as plain text.
type TextRenderer struct {
	W io.Writer

	// Help prints HelpLines above the board.
	Help bool

	// Clear erases the terminal before each frame.
	Clear bool
}

// Render implements Renderer.
func (tr *TextRenderer) Render(board Board, occupancy, cups []bool) error {
	w := bufio.NewWriter(tr.W)
	if tr.Clear {
		w.WriteString(clearScreen)
	}
	if tr.Help {
		for _, line := range HelpLines {
			w.WriteString(line)
			w.WriteByte('\n')
		}
	}
	for _, line := range BoardLines(board, occupancy, cups) {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	return w.Flush()
}
