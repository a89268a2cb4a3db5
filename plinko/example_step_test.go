package plinko_test

import (
	"fmt"

	"github.com/plus3/plinko/plinko"
)

// ExampleStep follows a single ball down a four row board with a scripted
// coin. The cup it lands in is the number of times it deflected right.
func ExampleStep() {
	board := plinko.MustBoard(4)
	state := plinko.NewState(board)
	coin := &plinko.ScriptedCoin{Script: []plinko.Deflection{plinko.Right, plinko.Left, plinko.Right}}

	state.InjectBall()
	for tick := 1; ; tick++ {
		res := plinko.Step(board, state, coin)
		if len(res.Landed) > 0 {
			fmt.Printf("tick %d: landed in cup %d\n", tick, res.Landed[0])
			break
		}
		for i, full := range state.Occupancy() {
			if full {
				k, c := board.Coord(i)
				fmt.Printf("tick %d: space %d (row %d, column %d)\n", tick, i, k, c)
			}
		}
	}
	fmt.Printf("coin flips: %d\n", coin.Drawn)

	// Output:
	// tick 1: space 2 (row 1, column 1)
	// tick 2: space 4 (row 2, column 1)
	// tick 3: landed in cup 1
	// coin flips: 2
}
