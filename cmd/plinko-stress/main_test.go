package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/plinko/plinko"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStress(t *testing.T) {
	board := plinko.MustBoard(6)
	report, err := runStress(plinko.LoopConfig{
		Board: board,
		Coin:  plinko.NewRandomCoin(5),
	}, time.Minute, 1000)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), report.TotalTicks)
	assert.Equal(t, int64(1000), report.Loop.Ticks)
	assert.Equal(t, int64(1000), report.Loop.Dropped)
	assert.Equal(t, int64(1000-(board.Rows()-2)), report.Loop.Landed)
	assert.Len(t, report.TickTime.Samples, 1000)
	assert.LessOrEqual(t, report.TickTime.Min, report.TickTime.Max)

	require.Len(t, report.Distribution, board.CupCount())
	var landed int64
	var share, expected float64
	for _, cup := range report.Distribution {
		landed += cup.Count
		share += cup.Share
		expected += cup.Expected
	}
	assert.Equal(t, report.Loop.Landed, landed)
	assert.InDelta(t, 100, share, 1e-6)
	assert.InDelta(t, 100, expected, 1e-6)
}

func TestBinomialShare(t *testing.T) {
	assert.InDelta(t, 1.0, binomialShare(0, 0), 1e-12)
	assert.InDelta(t, 0.25, binomialShare(2, 0), 1e-12)
	assert.InDelta(t, 0.5, binomialShare(2, 1), 1e-12)
	assert.InDelta(t, 70.0/256.0, binomialShare(8, 4), 1e-12)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()

	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	report, err := runStress(plinko.LoopConfig{
		Board: plinko.MustBoard(4),
		Coin:  plinko.NewRandomCoin(1),
	}, time.Minute, 50)
	require.NoError(t, err)
	report.GCPauseMetrics = true

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Plinko Stress Test Report")
	assert.Contains(t, out, "- **Tick Limit:** 50")
	assert.Contains(t, out, "- **Total Ticks:** 50")
	assert.Contains(t, out, "| Step | 50 |")
	assert.Contains(t, out, "| Tally | 50 |")
	assert.Contains(t, out, "## GC Pause Durations")
}
