package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/plinko/internal/config"
	"github.com/plus3/plinko/plinko"
	"github.com/plus3/plinko/plinko/term"
	"go.uber.org/multierr"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:], ".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "plinko: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "plinko: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) (err error) {
	logOut, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, logOut.Close())
	}()
	log.SetOutput(logOut)

	loopCfg, err := cfg.LoopConfig()
	if err != nil {
		return err
	}

	t, err := term.Open()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, t.Close())
	}()

	loopCfg.Renderer = t
	loopCfg.Events = t
	loop := plinko.NewLoop(loopCfg)
	tally := plinko.NewTally(loopCfg.Board)
	loop.Register(tally)

	log.Printf("starting %v", loopCfg.Board)
	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	stats := loop.GetStats()
	log.Printf("stopped after %d ticks: dropped=%d landed=%d cups=%v", stats.Ticks, stats.Dropped, stats.Landed, tally.Counts())
	if err != nil {
		log.Printf("exiting due to %v", err)
	}
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openLog(name string) (io.WriteCloser, error) {
	if name == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
