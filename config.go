package cdt

import (
	"log"

	"golang.org/x/exp/rand"
)

// DefaultMaxFixPasses bounds the foliation repair loop of MakeS3.
const DefaultMaxFixPasses = 20

// Config controls universe generation. The zero value is usable.
type Config struct {
	// Seed seeds the point samplers. Timeslice i draws from its own source
	// derived from Seed so results do not depend on Workers.
	Seed uint64
	// Workers is the number of goroutines sampling timeslices. Values below 2
	// sample sequentially.
	Workers int
	// MaxFixPasses bounds the number of repair passes. Zero means DefaultMaxFixPasses.
	MaxFixPasses int
	// Verbose enables per-cell and per-vertex diagnostics.
	Verbose bool
	// Logger receives progress and diagnostics. Nil means log.Default().
	Logger *log.Logger
}

func (cfg Config) logger() *log.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return log.Default()
}

// output returns the logger for verbose diagnostics or nil when not verbose.
func (cfg Config) output() *log.Logger {
	if !cfg.Verbose {
		return nil
	}
	return cfg.logger()
}

func (cfg Config) maxFixPasses() int {
	if cfg.MaxFixPasses <= 0 {
		return DefaultMaxFixPasses
	}
	return cfg.MaxFixPasses
}

// source returns the random source of timeslice i.
func (cfg Config) source(i int) rand.Source {
	const golden = 0x9e3779b97f4a7c15
	return rand.NewSource(cfg.Seed ^ (uint64(i+1) * golden))
}
