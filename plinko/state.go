package plinko

// State holds ball occupancy for one board.
//
// Occupancy is double buffered: current is authoritative for the running
// tick, next is scratch space rebuilt by Step and then swapped in. Cups only
// accumulate balls until ResetCups is called.
type State struct {
	current []bool
	next    []bool
	cups    []bool
}

// NewState allocates occupancy and cup state sized for the board.
func NewState(board Board) *State {
	return &State{
		current: make([]bool, board.TotalSpaces()),
		next:    make([]bool, board.TotalSpaces()),
		cups:    make([]bool, board.CupCount()),
	}
}

// InjectBall places a ball in the top space. It reports false when a ball
// was already there, in which case the two collapse into one.
func (s *State) InjectBall() bool {
	if s.current[0] {
		return false
	}
	s.current[0] = true
	return true
}

// ResetCups empties every cup. Occupancy is left untouched.
func (s *State) ResetCups() {
	clear(s.cups)
}

// Occupancy returns the current occupancy, indexed by flat space index.
// The slice is owned by the state and is only valid until the next step.
func (s *State) Occupancy() []bool { return s.current }

// Cups returns the cup state, indexed by cup.
func (s *State) Cups() []bool { return s.cups }

// Balls returns the number of occupied spaces.
func (s *State) Balls() int { return countTrue(s.current) }

// FilledCups returns the number of cups holding a ball.
func (s *State) FilledCups() int { return countTrue(s.cups) }

func (s *State) swap() {
	s.current, s.next = s.next, s.current
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
