// Facade: the engine's single public entry point. It composes Discovery,
// the selected execution mode, and the Report Aggregator, and attaches any
// skipped discovery inputs as synthetic error results — the selected mode
// returns its per-file results in input order, and they are folded into one
// report after every task completes.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dataengine/internal/aggregator"
	"dataengine/internal/discovery"
	"dataengine/internal/types"
)

// ErrNoFiles is returned when there is nothing classified and nothing
// skipped to report.
var ErrNoFiles = errors.New("No files to process")

// Process is the engine's single public entry point.
func Process(ctx context.Context, input discovery.Input, opts Options) (types.ExecutionReport, error) {
	start := time.Now()
	opts = normalize(opts)
	if err := validate(opts); err != nil {
		return types.ExecutionReport{}, err
	}

	runID := uuid.New().String()
	logger := opts.Logger.With("run_id", runID)
	tracer := otel.Tracer("dataengine/engine")

	ctx, span := tracer.Start(ctx, "engine.Process", trace.WithAttributes(attribute.String("run.id", runID)))
	defer span.End()

	disc, err := discovery.Discover(input)
	if err != nil {
		if errors.Is(err, discovery.ErrNoFiles) {
			return types.ExecutionReport{}, ErrNoFiles
		}
		return types.ExecutionReport{}, err
	}

	if len(disc.Files) == 0 && len(disc.Skipped) == 0 {
		return types.ExecutionReport{}, ErrNoFiles
	}

	logger.Infow("processing started",
		"files", len(disc.Files), "skipped", len(disc.Skipped), "mode", opts.Mode)

	mode := opts.Mode
	if opts.Benchmark {
		mode = ModeBenchmark
	}

	var (
		results []types.FileResult
		dur     time.Duration
		bench   *types.BenchmarkData
	)

	switch mode {
	case ModeSequential:
		results, dur = runSequential(ctx, tracer, disc.Files, opts)
	case ModeBenchmark:
		results, dur, bench = runBenchmark(ctx, tracer, disc.Files, opts)
	default:
		results, dur = runParallel(ctx, tracer, disc.Files, opts)
	}

	var dir *string
	if input.Kind() == discovery.KindDirectory {
		d := input.Path()
		dir = &d
	}

	report := aggregator.Build(mode, start, dir, results, dur, disc.Skipped, bench)

	logger.Infow("processing finished",
		"total_files", report.TotalFiles, "success", report.SuccessCount,
		"error", report.ErrorCount, "partial", report.PartialCount)

	return report, nil
}

// ProcessDirectory, ProcessFiles, and ProcessFile are synonyms of Process
// per spec §6.
func ProcessDirectory(ctx context.Context, path string, opts Options) (types.ExecutionReport, error) {
	return Process(ctx, discovery.Dir(path), opts)
}

func ProcessFiles(ctx context.Context, paths []string, opts Options) (types.ExecutionReport, error) {
	return Process(ctx, discovery.Files(paths), opts)
}

func ProcessFile(ctx context.Context, path string, opts Options) (types.ExecutionReport, error) {
	return Process(ctx, discovery.SingleFile(path), opts)
}
