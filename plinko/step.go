package plinko

// StepResult describes what happened during one step.
type StepResult struct {
	// Landed lists the cups balls fell into, in column order.
	Landed []int
	// Merged counts balls that collapsed into an already occupied space.
	Merged int
}

// Step advances every ball on the board by one row.
//
// Each ball above the last space row deflects to one of the two spaces
// below it, chosen by a single coin flip. Balls in the last space row fall
// into the cup under their column without a flip. Balls landing on the same
// space collapse into one. Once every ball has moved the next occupancy
// replaces the current one.
func Step(board Board, state *State, coin Coin) StepResult {
	var res StepResult

	clear(state.next)

	last := board.SpaceRows() - 1
	i := 0
	for k := 0; k <= last; k++ {
		for c := 0; c < board.RowLen(k); c, i = c+1, i+1 {
			if !state.current[i] {
				continue
			}
			if k == last {
				cup := i - board.LastRowStart()
				state.cups[cup] = true
				res.Landed = append(res.Landed, cup)
				continue
			}

			// k+2 spaces to the right lands on the right-hand space of the
			// row below; one less is the left-hand one.
			next := i + k + 2
			if coin.Flip() {
				next--
			}
			if state.next[next] {
				res.Merged++
			}
			state.next[next] = true
		}
	}

	state.swap()
	return res
}
