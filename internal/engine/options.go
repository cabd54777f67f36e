// Package engine composes Discovery, the three execution modes, and the
// Report Aggregator behind a single facade. Options follows a plain
// config-struct idiom rather than an open-ended keyword/named-arg bag.
package engine

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"dataengine/internal/types"
	"dataengine/pkg/progress"
)

// ModeName re-exports the types package's mode enum for caller convenience
// (engine.ModeSequential etc.).
type ModeName = types.ModeName

const (
	ModeSequential = types.ModeSequential
	ModeParallel   = types.ModeParallel
	ModeBenchmark  = types.ModeBenchmark
)

// Options is the full recognized configuration surface (spec §4.8).
// Unknown fields simply don't exist in Go — the "reject unknown options at
// validation time" requirement is satisfied by this being a closed struct
// rather than a map.
type Options struct {
	Mode          ModeName
	Benchmark     bool
	TimeoutMS     int
	MaxWorkers    int
	MaxRetries    int
	RetryDelayMS  int
	OutputDir     string
	ShowProgress  bool
	Verbose       bool

	// Logger and Progress are injectable collaborators; both have
	// zero-cost defaults so neither is required to be visible.
	Logger   *zap.SugaredLogger
	Progress progress.Sink
}

// DefaultOptions returns the spec's documented defaults.
func DefaultOptions() Options {
	return Options{
		Mode:         ModeParallel,
		TimeoutMS:    30000,
		MaxWorkers:   8,
		MaxRetries:   3,
		RetryDelayMS: 1000,
		OutputDir:    "output",
		ShowProgress: true,
	}
}

// normalize fills zero-valued fields with defaults and clamps bounded
// ones, following a clamp-to-range idiom (runtime.NumCPU() capped to a
// fixed ceiling).
func normalize(opts Options) Options {
	def := DefaultOptions()

	if opts.Mode == "" {
		opts.Mode = def.Mode
	}
	if opts.TimeoutMS == 0 {
		opts.TimeoutMS = def.TimeoutMS
	}
	if opts.TimeoutMS < 1000 {
		opts.TimeoutMS = 1000 // web collaborator constraint, spec §8 property 12
	}
	// MaxWorkers has no "unset means default" convenience: per spec §8
	// property 11, 0 (or any non-positive value) clamps to 1 rather than
	// silently becoming the 8-worker default, and anything above 2x the
	// core count clamps down to that ceiling.
	maxAllowed := 2 * runtime.NumCPU()
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
	if opts.MaxWorkers > maxAllowed {
		opts.MaxWorkers = maxAllowed
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.RetryDelayMS == 0 {
		opts.RetryDelayMS = def.RetryDelayMS
	}
	if opts.OutputDir == "" {
		opts.OutputDir = def.OutputDir
	}
	// show_progress = false means the sink must never be invoked at all
	// (spec §4.8), so it is swapped for NoOp here rather than left for each
	// mode to check individually.
	if !opts.ShowProgress || opts.Progress == nil {
		opts.Progress = progress.NoOp{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return opts
}

func validate(opts Options) error {
	switch opts.Mode {
	case ModeSequential, ModeParallel, ModeBenchmark:
	default:
		return fmt.Errorf("engine: unrecognized mode %q", opts.Mode)
	}
	return nil
}
