package plinko

import (
	"context"
	"time"
)

// Event is a user input understood by the control loop.
type Event uint8

const (
	// EventNone means no input was available.
	EventNone Event = iota
	// EventDrop drops a ball into the top of the board.
	EventDrop
	// EventToggle switches between normal and fast mode.
	EventToggle
	// EventReset empties the cups.
	EventReset
	// EventQuit stops the loop.
	EventQuit
)

var eventNames = [...]string{
	EventNone:   "none",
	EventDrop:   "drop",
	EventToggle: "toggle",
	EventReset:  "reset",
	EventQuit:   "quit",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// EventSource delivers input events to the control loop.
type EventSource interface {
	// Poll returns at most one pending event. It waits no longer than
	// timeout for one to arrive; a zero timeout never blocks. ok is false
	// when no event was available.
	Poll(ctx context.Context, timeout time.Duration) (ev Event, ok bool, err error)
}

// ScriptedEvents replays a fixed list of events, one per poll. EventNone
// entries stand for polls that found no input. Once the script runs out
// every poll returns EventQuit.
type ScriptedEvents struct {
	Script []Event

	// Wait, if set, is called for polls that find no input, with the
	// timeout the loop asked for. Tests use it to advance a fake clock.
	Wait func(timeout time.Duration)

	polled int
}

// Poll implements EventSource.
func (s *ScriptedEvents) Poll(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	if err := ctx.Err(); err != nil {
		return EventNone, false, err
	}
	if s.polled >= len(s.Script) {
		return EventQuit, true, nil
	}
	ev := s.Script[s.polled]
	s.polled++
	if ev == EventNone {
		if s.Wait != nil {
			s.Wait(timeout)
		}
		return EventNone, false, nil
	}
	return ev, true, nil
}

// Renderer draws the board once per tick.
type Renderer interface {
	Render(board Board, occupancy, cups []bool) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(board Board, occupancy, cups []bool) error

// Render implements Renderer.
func (f RendererFunc) Render(board Board, occupancy, cups []bool) error {
	return f(board, occupancy, cups)
}
