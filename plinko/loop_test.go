package plinko_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/plus3/plinko/plinko"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	occupancy []bool
	cups      []bool
}

type recordingRenderer struct {
	frames []frame
	err    error
}

func (r *recordingRenderer) Render(board plinko.Board, occupancy, cups []bool) error {
	r.frames = append(r.frames, frame{
		occupancy: slices.Clone(occupancy),
		cups:      slices.Clone(cups),
	})
	return r.err
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type countingSystem struct {
	ticks []int64
}

func (s *countingSystem) Execute(frame *plinko.TickFrame) {
	s.ticks = append(s.ticks, frame.Tick)
}

func TestLoopModes(t *testing.T) {
	loop := plinko.NewLoop(plinko.LoopConfig{Board: plinko.MustBoard(4)})

	assert.Equal(t, plinko.ModeNormal, loop.Mode())
	assert.Equal(t, plinko.NormalInterval, loop.Interval())

	assert.False(t, loop.Handle(plinko.EventToggle))
	assert.Equal(t, plinko.ModeFast, loop.Mode())
	assert.Equal(t, plinko.FastInterval, loop.Interval())
	assert.Equal(t, "fast", loop.Mode().String())

	assert.False(t, loop.Handle(plinko.EventToggle))
	assert.Equal(t, plinko.ModeNormal, loop.Mode())
	assert.Equal(t, plinko.NormalInterval, loop.Interval())
	assert.Equal(t, "normal", loop.Mode().String())
}

func TestLoopCustomIntervals(t *testing.T) {
	loop := plinko.NewLoop(plinko.LoopConfig{
		Board:          plinko.MustBoard(4),
		NormalInterval: time.Second,
		FastInterval:   time.Millisecond,
	})

	assert.Equal(t, time.Second, loop.Interval())
	loop.Handle(plinko.EventToggle)
	assert.Equal(t, time.Millisecond, loop.Interval())
	loop.Handle(plinko.EventToggle)
	assert.Equal(t, time.Second, loop.Interval())
}

func TestLoopHandle(t *testing.T) {
	t.Run("drop in normal mode injects at once", func(t *testing.T) {
		loop := plinko.NewLoop(plinko.LoopConfig{Board: plinko.MustBoard(4)})

		assert.False(t, loop.Handle(plinko.EventDrop))
		assert.True(t, loop.State().Occupancy()[0])

		loop.Handle(plinko.EventDrop)
		assert.Equal(t, 1, loop.State().Balls())

		stats := loop.GetStats()
		assert.Equal(t, int64(1), stats.Dropped)
		assert.Equal(t, int64(1), stats.Collapsed)
	})

	t.Run("drop in fast mode is ignored", func(t *testing.T) {
		loop := plinko.NewLoop(plinko.LoopConfig{Board: plinko.MustBoard(4)})
		loop.Handle(plinko.EventToggle)

		loop.Handle(plinko.EventDrop)
		assert.Zero(t, loop.State().Balls())
	})

	t.Run("reset clears cups only", func(t *testing.T) {
		clock := newFakeClock()
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board: plinko.MustBoard(2),
			Coin:  &plinko.ScriptedCoin{},
			Now:   clock.Now,
		})

		loop.Handle(plinko.EventDrop)
		require.NoError(t, loop.Tick(clock.Now()))
		loop.Handle(plinko.EventDrop)
		require.Equal(t, 1, loop.State().FilledCups())

		assert.False(t, loop.Handle(plinko.EventReset))
		assert.Zero(t, loop.State().FilledCups())
		assert.Equal(t, 1, loop.State().Balls())
	})

	t.Run("quit", func(t *testing.T) {
		loop := plinko.NewLoop(plinko.LoopConfig{Board: plinko.MustBoard(4)})
		assert.True(t, loop.Handle(plinko.EventQuit))
		assert.False(t, loop.Handle(plinko.EventNone))
	})
}

func TestLoopTick(t *testing.T) {
	t.Run("renders before stepping", func(t *testing.T) {
		clock := newFakeClock()
		renderer := &recordingRenderer{}
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board:    plinko.MustBoard(4),
			Coin:     &plinko.ScriptedCoin{},
			Renderer: renderer,
			Now:      clock.Now,
		})

		assert.True(t, loop.Due(clock.Now()))

		loop.Handle(plinko.EventDrop)
		require.NoError(t, loop.Tick(clock.Now()))

		require.Len(t, renderer.frames, 1)
		assert.True(t, renderer.frames[0].occupancy[0])
		assert.Equal(t, []bool{false, false, true, false, false, false}, loop.State().Occupancy())

		assert.Equal(t, clock.Now().Add(plinko.NormalInterval), loop.Deadline())
		assert.False(t, loop.Due(clock.Now()))
		clock.Advance(plinko.NormalInterval - time.Nanosecond)
		assert.False(t, loop.Due(clock.Now()))
		clock.Advance(time.Nanosecond)
		assert.True(t, loop.Due(clock.Now()))
	})

	t.Run("fast mode drops every tick", func(t *testing.T) {
		clock := newFakeClock()
		renderer := &recordingRenderer{}
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board:    plinko.MustBoard(5),
			Renderer: renderer,
			Now:      clock.Now,
		})
		loop.Handle(plinko.EventToggle)

		for range 3 {
			require.NoError(t, loop.Tick(clock.Now()))
			clock.Advance(loop.Interval())
		}

		for _, f := range renderer.frames {
			assert.True(t, f.occupancy[0])
		}
		assert.Equal(t, clock.Now(), loop.Deadline())
		assert.Equal(t, int64(3), loop.GetStats().Dropped)
		assert.Equal(t, 3, loop.State().Balls())
	})

	t.Run("systems observe the step", func(t *testing.T) {
		clock := newFakeClock()
		board := plinko.MustBoard(3)
		tally := plinko.NewTally(board)
		counter := &countingSystem{}
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board: board,
			Coin:  &plinko.ScriptedCoin{Script: []plinko.Deflection{plinko.Left}},
			Now:   clock.Now,
		})
		loop.Register(tally)
		loop.Register(counter)

		loop.Handle(plinko.EventDrop)
		for range 3 {
			require.NoError(t, loop.Tick(clock.Now()))
		}

		assert.Equal(t, []int64{1, 2, 3}, counter.ticks)
		assert.Equal(t, int64(1), tally.Total())
		assert.Equal(t, []int64{1, 0}, tally.Counts())

		stats := loop.GetStats()
		assert.Equal(t, int64(3), stats.Ticks)
		assert.Equal(t, int64(1), stats.Landed)

		var names []string
		for _, s := range stats.Systems {
			names = append(names, s.Name)
			assert.Equal(t, int64(3), s.ExecutionCount)
			assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		}
		assert.Equal(t, []string{"Drop", "Render", "Step", "Tally", "countingSystem"}, names)
	})
}

func TestLoopRun(t *testing.T) {
	t.Run("ball reaches a cup", func(t *testing.T) {
		clock := newFakeClock()
		renderer := &recordingRenderer{}
		events := &plinko.ScriptedEvents{
			Script: []plinko.Event{
				plinko.EventDrop,
				plinko.EventNone,
				plinko.EventNone,
				plinko.EventNone,
			},
			Wait: clock.Advance,
		}
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board:    plinko.MustBoard(4),
			Coin:     &plinko.ScriptedCoin{Script: []plinko.Deflection{plinko.Right, plinko.Left}},
			Renderer: renderer,
			Events:   events,
			Now:      clock.Now,
		})

		require.NoError(t, loop.Run(context.Background()))

		require.Len(t, renderer.frames, 4)
		assert.Equal(t, []bool{true, false, false, false, false, false}, renderer.frames[0].occupancy)
		assert.Equal(t, []bool{false, false, true, false, false, false}, renderer.frames[1].occupancy)
		assert.Equal(t, []bool{false, false, false, false, true, false}, renderer.frames[2].occupancy)
		assert.Equal(t, []bool{false, false, false, false, false, false}, renderer.frames[3].occupancy)
		assert.Equal(t, []bool{false, true, false}, renderer.frames[3].cups)

		stats := loop.GetStats()
		assert.Equal(t, int64(4), stats.Ticks)
		assert.Equal(t, int64(1), stats.Dropped)
		assert.Equal(t, int64(1), stats.Landed)
	})

	t.Run("one event per deadline check", func(t *testing.T) {
		clock := newFakeClock()
		renderer := &recordingRenderer{}
		events := &plinko.ScriptedEvents{
			Script: []plinko.Event{
				plinko.EventDrop,
				plinko.EventToggle,
				plinko.EventNone,
			},
			Wait: clock.Advance,
		}
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board:    plinko.MustBoard(4),
			Renderer: renderer,
			Events:   events,
			Now:      clock.Now,
		})

		require.NoError(t, loop.Run(context.Background()))

		// the toggle lands between ticks; the normal interval already
		// scheduled still applies to the next one
		assert.Len(t, renderer.frames, 2)
		assert.Equal(t, plinko.ModeFast, loop.Mode())
	})

	t.Run("renderer failure stops the loop", func(t *testing.T) {
		errBoom := errors.New("boom")
		loop := plinko.NewLoop(plinko.LoopConfig{
			Board:    plinko.MustBoard(4),
			Renderer: &recordingRenderer{err: errBoom},
			Events:   &plinko.ScriptedEvents{Script: []plinko.Event{plinko.EventNone}},
		})

		err := loop.Run(context.Background())
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		loop := plinko.NewLoop(plinko.LoopConfig{
			Board:  plinko.MustBoard(4),
			Events: &plinko.ScriptedEvents{},
		})

		assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
	})

	t.Run("no event source", func(t *testing.T) {
		loop := plinko.NewLoop(plinko.LoopConfig{Board: plinko.MustBoard(4)})
		assert.ErrorIs(t, loop.Run(context.Background()), plinko.ErrNoEvents)
	})
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "drop", plinko.EventDrop.String())
	assert.Equal(t, "quit", plinko.EventQuit.String())
	assert.Equal(t, "unknown", plinko.Event(200).String())
}
