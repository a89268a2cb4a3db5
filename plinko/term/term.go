// Package term runs a plinko board in a terminal. A Terminal owns the tcell
// screen: it puts the terminal in raw mode, turns key presses into plinko
// events and draws every frame.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/plinko/plinko"
)

var (
	styleDefault = tcell.StyleDefault
	styleHelp    = styleDefault.Foreground(tcell.ColorGray)
	stylePeg     = styleDefault.Foreground(tcell.ColorSilver)
	styleBall    = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCup     = styleDefault.Foreground(tcell.ColorAqua)
)

// Terminal is both the event source and the renderer of a terminal board.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once

	// Help shows the key bindings above the board.
	Help bool
}

var (
	_ plinko.EventSource = (*Terminal)(nil)
	_ plinko.Renderer    = (*Terminal)(nil)
)

// Open takes over the controlling terminal. Callers must Close the terminal
// to restore it.
func Open() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return New(s)
}

// New initialises s and starts reading its events.
func New(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initialize screen: %w", err)
	}
	s.SetStyle(styleDefault)
	s.HideCursor()

	t := &Terminal{
		screen: s,
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		Help:   true,
	}
	go t.readEvents()
	return t, nil
}

func (t *Terminal) readEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	t.once.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
	return nil
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// EventFor maps a key press to a plinko event: Escape or Ctrl-C quits, Tab
// toggles fast mode, Enter empties the cups and any other key drops a ball.
func EventFor(ev *tcell.EventKey) plinko.Event {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return plinko.EventQuit
	case tcell.KeyTab:
		return plinko.EventToggle
	case tcell.KeyEnter, tcell.KeyLF:
		return plinko.EventReset
	}
	return plinko.EventDrop
}

// Poll implements plinko.EventSource. Non-key events, such as resizes, are
// handled here and reported as no event.
func (t *Terminal) Poll(ctx context.Context, timeout time.Duration) (plinko.Event, bool, error) {
	var ev tcell.Event
	if timeout <= 0 {
		select {
		case ev = <-t.events:
		case <-ctx.Done():
			return plinko.EventNone, false, ctx.Err()
		default:
			return plinko.EventNone, false, nil
		}
	} else {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case ev = <-t.events:
		case <-ctx.Done():
			return plinko.EventNone, false, ctx.Err()
		case <-timer.C:
			return plinko.EventNone, false, nil
		}
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return EventFor(ev), true, nil
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return plinko.EventNone, false, nil
}

// Render implements plinko.Renderer.
func (t *Terminal) Render(board plinko.Board, occupancy, cups []bool) error {
	t.screen.Clear()

	y := 0
	if t.Help {
		for _, line := range plinko.HelpLines {
			drawText(t.screen, 0, y, line, styleHelp)
			y++
		}
	}

	lines := plinko.BoardLines(board, occupancy, cups)
	for i, line := range lines {
		style := stylePeg
		if i == len(lines)-1 {
			style = styleCup
		}
		for x, r := range line {
			if r == 'o' {
				t.screen.SetContent(x, y, r, nil, styleBall)
				continue
			}
			t.screen.SetContent(x, y, r, nil, style)
		}
		y++
	}

	t.screen.Show()
	return nil
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
