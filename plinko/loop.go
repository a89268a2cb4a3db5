package plinko

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

const (
	// NormalInterval is the tick interval in normal mode.
	NormalInterval = 300 * time.Millisecond
	// FastInterval is the tick interval in fast mode.
	FastInterval = 10 * time.Millisecond
)

// ErrNoEvents is returned by Run when the loop has no event source.
var ErrNoEvents = errors.New("plinko: loop has no event source")

// Mode selects how the loop paces the simulation.
type Mode uint8

const (
	// ModeNormal ticks at the normal interval and drops balls on request.
	ModeNormal Mode = iota
	// ModeFast ticks at the fast interval and drops a ball every tick.
	ModeFast
)

func (m Mode) String() string {
	if m == ModeFast {
		return "fast"
	}
	return "normal"
}

// System is run by the loop after every step. Systems observe the tick
// through the frame; the loop owns the state they see.
type System interface {
	Execute(frame *TickFrame)
}

// TickFrame describes one tick to the systems that observe it.
type TickFrame struct {
	Tick   int64
	Now    time.Time
	Mode   Mode
	Board  Board
	State  *State
	Result StepResult
}

// LoopStats provides statistics about loop execution.
type LoopStats struct {
	Ticks     int64
	Mode      Mode
	Interval  time.Duration
	Dropped   int64
	Collapsed int64
	Merged    int64
	Landed    int64
	Systems   []SystemStats
}

// SystemStats provides execution statistics for a single tick phase.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type phase struct {
	run   func(frame *TickFrame) error
	stats *systemStatsInternal
}

// LoopConfig configures a Loop. Only Board is required.
type LoopConfig struct {
	Board    Board
	Coin     Coin
	Renderer Renderer
	Events   EventSource

	NormalInterval time.Duration
	FastInterval   time.Duration

	// Now reads the clock; defaults to time.Now.
	Now func() time.Time
}

// Loop is the control loop of a plinko board. It merges input events with a
// fixed interval tick clock and owns all simulation state; it must only be
// used from one goroutine.
type Loop struct {
	board    Board
	state    *State
	coin     Coin
	renderer Renderer
	events   EventSource
	now      func() time.Time

	normalInterval time.Duration
	fastInterval   time.Duration

	mode     Mode
	interval time.Duration
	deadline time.Time

	tick      int64
	dropped   int64
	collapsed int64
	merged    int64
	landed    int64

	phases []phase
}

// NewLoop creates a loop in normal mode whose first tick is due at once.
func NewLoop(cfg LoopConfig) *Loop {
	l := &Loop{
		board:          cfg.Board,
		state:          NewState(cfg.Board),
		coin:           cfg.Coin,
		renderer:       cfg.Renderer,
		events:         cfg.Events,
		now:            cfg.Now,
		normalInterval: cfg.NormalInterval,
		fastInterval:   cfg.FastInterval,
	}
	if l.coin == nil {
		l.coin = NewRandomCoin(uint64(time.Now().UnixNano()))
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.normalInterval <= 0 {
		l.normalInterval = NormalInterval
	}
	if l.fastInterval <= 0 {
		l.fastInterval = FastInterval
	}
	l.mode = ModeNormal
	l.interval = l.normalInterval
	l.deadline = l.now()

	l.addPhase("Drop", l.autoDrop)
	l.addPhase("Render", l.render)
	l.addPhase("Step", l.step)
	return l
}

// Register adds a system run after every step, in registration order.
func (l *Loop) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	l.addPhase(systemType.Name(), func(frame *TickFrame) error {
		system.Execute(frame)
		return nil
	})
}

func (l *Loop) addPhase(name string, run func(*TickFrame) error) {
	l.phases = append(l.phases, phase{
		run: run,
		stats: &systemStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

// Board returns the board geometry.
func (l *Loop) Board() Board { return l.board }

// State returns the simulation state.
func (l *Loop) State() *State { return l.state }

// Mode returns the current mode.
func (l *Loop) Mode() Mode { return l.mode }

// Interval returns the current tick interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// Deadline returns the time the next tick is due.
func (l *Loop) Deadline() time.Time { return l.deadline }

// Handle applies one input event. It reports true when the event asks the
// loop to quit.
func (l *Loop) Handle(ev Event) (quit bool) {
	switch ev {
	case EventToggle:
		if l.mode == ModeFast {
			l.mode = ModeNormal
			l.interval = l.normalInterval
		} else {
			l.mode = ModeFast
			l.interval = l.fastInterval
		}
	case EventDrop:
		// Fast mode drops on every tick already.
		if l.mode == ModeNormal {
			l.inject()
		}
	case EventReset:
		l.state.ResetCups()
	case EventQuit:
		return true
	}
	return false
}

// Due reports whether a tick is due at now.
func (l *Loop) Due(now time.Time) bool {
	return !now.Before(l.deadline)
}

// Tick runs one tick: a fast mode drop, the render, the step and then every
// registered system. The next tick is scheduled one interval after now.
func (l *Loop) Tick(now time.Time) error {
	l.tick++
	frame := &TickFrame{
		Tick:  l.tick,
		Now:   now,
		Mode:  l.mode,
		Board: l.board,
		State: l.state,
	}

	for _, p := range l.phases {
		start := time.Now()
		err := p.run(frame)
		duration := time.Since(start)

		stats := p.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			return err
		}
	}

	l.deadline = now.Add(l.interval)
	return nil
}

// Run polls for input and ticks on schedule until a quit event arrives, the
// context is cancelled or a collaborator fails. Each iteration handles at
// most one event before checking the deadline, waiting for input no longer
// than the time left until the next tick.
func (l *Loop) Run(ctx context.Context) error {
	if l.events == nil {
		return ErrNoEvents
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		wait := l.deadline.Sub(l.now())
		if wait < 0 {
			wait = 0
		}

		ev, ok, err := l.events.Poll(ctx, wait)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("poll input: %w", err)
		}
		if ok && l.Handle(ev) {
			return nil
		}

		if now := l.now(); l.Due(now) {
			if err := l.Tick(now); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) inject() {
	if l.state.InjectBall() {
		l.dropped++
	} else {
		l.collapsed++
	}
}

func (l *Loop) autoDrop(frame *TickFrame) error {
	if frame.Mode == ModeFast {
		l.inject()
	}
	return nil
}

func (l *Loop) render(frame *TickFrame) error {
	if l.renderer == nil {
		return nil
	}
	if err := l.renderer.Render(l.board, l.state.Occupancy(), l.state.Cups()); err != nil {
		return fmt.Errorf("render tick %d: %w", frame.Tick, err)
	}
	return nil
}

func (l *Loop) step(frame *TickFrame) error {
	frame.Result = Step(l.board, l.state, l.coin)
	l.merged += int64(frame.Result.Merged)
	l.landed += int64(len(frame.Result.Landed))
	return nil
}

// GetStats returns statistics about loop execution.
func (l *Loop) GetStats() *LoopStats {
	stats := &LoopStats{
		Ticks:     l.tick,
		Mode:      l.mode,
		Interval:  l.interval,
		Dropped:   l.dropped,
		Collapsed: l.collapsed,
		Merged:    l.merged,
		Landed:    l.landed,
		Systems:   make([]SystemStats, len(l.phases)),
	}

	for i, p := range l.phases {
		internal := p.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
