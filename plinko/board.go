package plinko

import (
	"errors"
	"fmt"
)

// ErrInvalidRows is returned when a board is requested with fewer than two
// peg rows.
var ErrInvalidRows = errors.New("plinko: board needs at least 2 rows")

// TotalSpaces returns the number of interior spaces on a board with the
// given number of peg rows.
func TotalSpaces(rows int) int {
	return rows * (rows - 1) / 2
}

// CupCount returns the number of cups below a board with the given number
// of peg rows.
func CupCount(rows int) int {
	return rows - 1
}

// Board describes the geometry of a triangular peg board.
//
// Peg row 1 holds the single top peg. Every peg row r below it holds r-1
// spaces between its pegs, so the interior is made of rows-1 space rows,
// space row k holding k+1 spaces. Spaces are flattened row-major, top to
// bottom and left to right, into indices 0..TotalSpaces()-1. Balls leaving
// the last space row fall into the cup sharing their column.
type Board struct {
	rows         int
	totalSpaces  int
	lastRowStart int
}

// NewBoard returns the geometry for a board with the given number of peg
// rows.
func NewBoard(rows int) (Board, error) {
	if rows < 2 {
		return Board{}, fmt.Errorf("%w: got %d", ErrInvalidRows, rows)
	}
	total := TotalSpaces(rows)
	return Board{
		rows:         rows,
		totalSpaces:  total,
		lastRowStart: total - CupCount(rows),
	}, nil
}

// MustBoard is like NewBoard but panics on error.
func MustBoard(rows int) Board {
	b, err := NewBoard(rows)
	if err != nil {
		panic(err)
	}
	return b
}

// Rows returns the number of peg rows.
func (b Board) Rows() int { return b.rows }

// TotalSpaces returns the size of the flat space index.
func (b Board) TotalSpaces() int { return b.totalSpaces }

// CupCount returns the number of cups.
func (b Board) CupCount() int { return CupCount(b.rows) }

// SpaceRows returns the number of space rows.
func (b Board) SpaceRows() int { return b.rows - 1 }

// LastRowStart returns the flat index of the first space in the last space
// row. Subtracting it from any index in that row yields a cup index.
func (b Board) LastRowStart() int { return b.lastRowStart }

// RowStart returns the flat index of the first space in space row k.
func (b Board) RowStart(k int) int { return k * (k + 1) / 2 }

// RowLen returns the number of spaces in space row k.
func (b Board) RowLen(k int) int { return k + 1 }

// Index returns the flat index of column c in space row k.
func (b Board) Index(k, c int) int { return b.RowStart(k) + c }

// Coord returns the space row and column of flat index i.
func (b Board) Coord(i int) (k, c int) {
	for k = 0; k < b.SpaceRows(); k++ {
		if i < b.RowStart(k+1) {
			return k, i - b.RowStart(k)
		}
	}
	return -1, -1
}

// String implements fmt.Stringer.
func (b Board) String() string {
	return fmt.Sprintf("Board{rows=%d spaces=%d cups=%d}", b.rows, b.totalSpaces, b.CupCount())
}
