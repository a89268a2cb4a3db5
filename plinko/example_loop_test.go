package plinko_test

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/plus3/plinko/plinko"
)

// ExampleLoop drives a loop with scripted input and a fake clock. The loop
// renders before every step, so the last frame shows the ball in its cup.
func ExampleLoop() {
	now := time.Unix(0, 0)
	events := &plinko.ScriptedEvents{
		Script: []plinko.Event{plinko.EventDrop, plinko.EventNone, plinko.EventNone},
		Wait:   func(d time.Duration) { now = now.Add(d) },
	}

	loop := plinko.NewLoop(plinko.LoopConfig{
		Board:    plinko.MustBoard(3),
		Coin:     &plinko.ScriptedCoin{Script: []plinko.Deflection{plinko.Right}},
		Renderer: &plinko.TextRenderer{W: os.Stdout},
		Events:   events,
		Now:      func() time.Time { return now },
	})
	loop.Register(plinko.NewTally(loop.Board()))

	if err := loop.Run(context.Background()); err != nil {
		fmt.Println("error:", err)
	}

	stats := loop.GetStats()
	fmt.Printf("ticks=%d dropped=%d landed=%d\n", stats.Ticks, stats.Dropped, stats.Landed)

	// Output:
	// .
	//  .o.
	// . . .
	// |_|_|
	//   .
	//  . .
	// . .o.
	// |_|_|
	//   .
	//  . .
	// . . .
	// |_|o|
	// ticks=3 dropped=1 landed=1
}
