package plinko

import (
	"github.com/kamstrup/intmap"
)

// Tally counts how many balls landed in each cup over a run. Cups themselves
// only remember whether a ball ever landed; the tally keeps the totals.
type Tally struct {
	cups   int
	counts *intmap.Map[int, int64]
	total  int64
}

// NewTally returns an empty tally for the board's cups.
func NewTally(board Board) *Tally {
	return &Tally{
		cups:   board.CupCount(),
		counts: intmap.New[int, int64](board.CupCount()),
	}
}

// Record adds one landing per listed cup.
func (t *Tally) Record(landed []int) {
	for _, cup := range landed {
		n, _ := t.counts.Get(cup)
		t.counts.Put(cup, n+1)
		t.total++
	}
}

// Count returns the number of balls that landed in cup.
func (t *Tally) Count(cup int) int64 {
	n, _ := t.counts.Get(cup)
	return n
}

// Counts returns the landing count of every cup, in cup order.
func (t *Tally) Counts() []int64 {
	out := make([]int64, t.cups)
	for cup := range out {
		out[cup] = t.Count(cup)
	}
	return out
}

// Total returns the number of recorded landings.
func (t *Tally) Total() int64 { return t.total }

// Share returns the fraction of all landings that went into cup.
func (t *Tally) Share(cup int) float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.Count(cup)) / float64(t.total)
}

// Reset forgets every landing.
func (t *Tally) Reset() {
	t.counts.Clear()
	t.total = 0
}

// Execute implements System, recording the landings of each tick.
func (t *Tally) Execute(frame *TickFrame) {
	t.Record(frame.Result.Landed)
}
