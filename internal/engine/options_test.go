package engine

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"dataengine/pkg/progress"
)

type recordingSink struct{ starts int }

func (s *recordingSink) Start(int)       { s.starts++ }
func (s *recordingSink) Update(int, int) {}
func (s *recordingSink) Stop()           {}

func TestNormalizeFillsDefaults(t *testing.T) {
	opts := normalize(Options{})
	assert.Equal(t, ModeParallel, opts.Mode)
	assert.Equal(t, 30000, opts.TimeoutMS)
	assert.Equal(t, 1, opts.MaxWorkers) // zero-value MaxWorkers clamps to 1, not the 8-worker default
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Equal(t, 1000, opts.RetryDelayMS)
	assert.Equal(t, "output", opts.OutputDir)
	assert.NotNil(t, opts.Progress)
	assert.NotNil(t, opts.Logger)
}

func TestNormalizeClampsMaxWorkersCeiling(t *testing.T) {
	opts := normalize(Options{MaxWorkers: 999})
	assert.Equal(t, 2*runtime.NumCPU(), opts.MaxWorkers)
}

func TestNormalizeClampsShortTimeout(t *testing.T) {
	opts := normalize(Options{TimeoutMS: 10})
	assert.Equal(t, 1000, opts.TimeoutMS)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	err := validate(Options{Mode: "warp-speed"})
	assert.Error(t, err)
}

func TestValidateAcceptsKnownModes(t *testing.T) {
	for _, m := range []ModeName{ModeSequential, ModeParallel, ModeBenchmark} {
		assert.NoError(t, validate(Options{Mode: m}))
	}
}

func TestNormalizeDisablesProgressWhenShowProgressFalse(t *testing.T) {
	custom := &recordingSink{}
	opts := normalize(Options{ShowProgress: false, Progress: custom})
	assert.IsType(t, progress.NoOp{}, opts.Progress)
}

func TestNormalizeKeepsSuppliedSinkWhenShowProgressTrue(t *testing.T) {
	custom := &recordingSink{}
	opts := normalize(Options{ShowProgress: true, Progress: custom})
	assert.Same(t, custom, opts.Progress)
}
