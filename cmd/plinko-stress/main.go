package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/plinko/internal/config"
	"github.com/plus3/plinko/plinko"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	maxTicks := flag.Int64("ticks", 0, "Stop after this many ticks; 0 runs for the whole duration.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")

	cfg, err := config.Load(flag.CommandLine, os.Args[1:], ".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting plinko stress test...")

	loopCfg, err := cfg.LoopConfig()
	if err != nil {
		log.Fatalf("Failed to build loop: %v", err)
	}

	report, err := runStress(loopCfg, *duration, *maxTicks)
	if err != nil {
		log.Fatalf("Stress run failed: %v", err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// runStress ticks a fast mode loop back to back, without waiting for the
// interval, until the duration passes or maxTicks ticks have run.
func runStress(loopCfg plinko.LoopConfig, duration time.Duration, maxTicks int64) (*Report, error) {
	loop := plinko.NewLoop(loopCfg)
	tally := plinko.NewTally(loopCfg.Board)
	loop.Register(tally)
	loop.Handle(plinko.EventToggle)

	report := &Report{
		Duration: duration,
		Rows:     loopCfg.Board.Rows(),
		Cups:     loopCfg.Board.CupCount(),
		MaxTicks: maxTicks,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", duration)
	startTime := time.Now()
	deadline := startTime.Add(duration)
	now := loop.Deadline()

	for time.Now().Before(deadline) && (maxTicks <= 0 || report.TotalTicks < maxTicks) {
		tickStart := time.Now()
		if err := loop.Tick(now); err != nil {
			return nil, err
		}
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		report.TotalTicks++
		now = loop.Deadline()
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Loop = *loop.GetStats()
	counts := tally.Counts()
	for cup, count := range counts {
		report.Distribution = append(report.Distribution, CupShare{
			Cup:      cup,
			Count:    count,
			Share:    tally.Share(cup) * 100,
			Expected: binomialShare(len(counts)-1, cup) * 100,
		})
	}
	return report, nil
}

// binomialShare is the probability of k rights out of n fair flips.
func binomialShare(n, k int) float64 {
	p := 1.0
	for i := 0; i < k; i++ {
		p *= float64(n-i) / float64(i+1)
	}
	for i := 0; i < n; i++ {
		p /= 2
	}
	return p
}
