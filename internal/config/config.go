// Package config loads settings shared by the plinko commands. Values come
// from an optional .env file and the environment, and command-line flags
// override both.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/plinko/plinko"
)

type Config struct {
	// Board
	Rows int

	// Scheduler
	NormalInterval time.Duration
	FastInterval   time.Duration

	// Randomness; 0 seeds from the clock.
	Seed uint64

	// Logging; empty discards log output.
	LogFile string
}

// Default returns the settings of the classic board.
func Default() Config {
	return Config{
		Rows:           10,
		NormalInterval: plinko.NormalInterval,
		FastInterval:   plinko.FastInterval,
		LogFile:        "plinko.log",
	}
}

// LoadEnv loads envFile, if it exists, into the environment and returns
// the defaults overridden by PLINKO_* variables.
func LoadEnv(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	var err error
	if cfg.Rows, err = getEnvInt("PLINKO_ROWS", cfg.Rows); err != nil {
		return Config{}, err
	}
	if cfg.NormalInterval, err = getEnvDuration("PLINKO_NORMAL_INTERVAL", cfg.NormalInterval); err != nil {
		return Config{}, err
	}
	if cfg.FastInterval, err = getEnvDuration("PLINKO_FAST_INTERVAL", cfg.FastInterval); err != nil {
		return Config{}, err
	}
	if cfg.Seed, err = getEnvUint("PLINKO_SEED", cfg.Seed); err != nil {
		return Config{}, err
	}
	cfg.LogFile = getEnv("PLINKO_LOG", cfg.LogFile)
	return cfg, nil
}

// AddFlags registers flags that override the loaded settings.
func (cfg *Config) AddFlags(f *flag.FlagSet) {
	f.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of peg rows")
	f.DurationVar(&cfg.NormalInterval, "normal-interval", cfg.NormalInterval, "tick interval in normal mode")
	f.DurationVar(&cfg.FastInterval, "fast-interval", cfg.FastInterval, "tick interval in fast mode")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for a time based seed")
	f.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file, empty to discard logs")
}

// Load reads envFile and the environment, then parses args over them.
func Load(f *flag.FlagSet, args []string, envFile string) (Config, error) {
	cfg, err := LoadEnv(envFile)
	if err != nil {
		return Config{}, err
	}
	cfg.AddFlags(f)
	if err := f.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings can build a loop.
func (cfg Config) Validate() error {
	if _, err := plinko.NewBoard(cfg.Rows); err != nil {
		return err
	}
	if cfg.NormalInterval <= 0 {
		return fmt.Errorf("normal interval must be positive, got %v", cfg.NormalInterval)
	}
	if cfg.FastInterval <= 0 {
		return fmt.Errorf("fast interval must be positive, got %v", cfg.FastInterval)
	}
	return nil
}

// Board returns the configured board geometry.
func (cfg Config) Board() (plinko.Board, error) {
	return plinko.NewBoard(cfg.Rows)
}

// Coin returns a coin seeded from Seed, or from the clock when Seed is 0.
func (cfg Config) Coin() *plinko.RandomCoin {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return plinko.NewRandomCoin(seed)
}

// LoopConfig returns the loop settings; the caller adds a renderer and an
// event source.
func (cfg Config) LoopConfig() (plinko.LoopConfig, error) {
	board, err := cfg.Board()
	if err != nil {
		return plinko.LoopConfig{}, err
	}
	return plinko.LoopConfig{
		Board:          board,
		Coin:           cfg.Coin(),
		NormalInterval: cfg.NormalInterval,
		FastInterval:   cfg.FastInterval,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
