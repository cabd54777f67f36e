package engine

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/trace"

	"dataengine/internal/types"
	"dataengine/pkg/progress"
)

// runBenchmark runs Sequential then Parallel over the same input with
// progress disabled, and produces the head-to-head BenchmarkData. The
// "official" results for the aggregator are the parallel run's, per spec
// §4.5.3.
func runBenchmark(ctx context.Context, tracer trace.Tracer, items []types.Item, opts Options) ([]types.FileResult, time.Duration, *types.BenchmarkData) {
	quiet := opts
	quiet.Progress = progress.NoOp{}

	seqMemBefore := readAllocKB()
	seqResults, seqDur := runSequential(ctx, tracer, items, quiet)
	seqMemAfter := readAllocKB()

	parMemBefore := readAllocKB()
	parResults, parDur := runParallel(ctx, tracer, items, quiet)
	parMemAfter := readAllocKB()

	seqStats := buildRunStats(seqResults, seqDur, maxKB(seqMemBefore, seqMemAfter))
	parStats := buildRunStats(parResults, parDur, maxKB(parMemBefore, parMemAfter))

	bench := &types.BenchmarkData{
		TotalFiles:    len(items),
		ProcessesUsed: len(items),
		Sequential:    seqStats,
		Parallel:      parStats,
		Comparison:    buildComparison(seqStats, parStats),
	}

	return parResults, parDur, bench
}

func buildRunStats(results []types.FileResult, dur time.Duration, memKB int64) types.RunStats {
	success, errCount := 0, 0
	for _, r := range results {
		switch r.Status {
		case types.StatusOK:
			success++
		case types.StatusError:
			errCount++
		}
	}
	avg := 0.0
	if len(results) > 0 {
		avg = float64(dur.Milliseconds()) / float64(len(results))
	}
	return types.RunStats{
		DurationMS:     dur.Milliseconds(),
		DurationSec:    dur.Seconds(),
		SuccessCount:   success,
		ErrorCount:     errCount,
		AvgTimePerFile: avg,
		MemoryKB:       memKB,
	}
}

func buildComparison(seq, par types.RunStats) types.Comparison {
	speedup := 0.0
	if par.DurationMS > 0 {
		speedup = round2(float64(seq.DurationMS) / float64(par.DurationMS))
	}
	saved := seq.DurationMS - par.DurationMS
	savedPct := 0.0
	if seq.DurationMS > 0 {
		savedPct = round1(float64(saved) / float64(seq.DurationMS) * 100)
	}
	faster := types.ModeSequential
	if par.DurationMS < seq.DurationMS {
		faster = types.ModeParallel
	}
	return types.Comparison{
		SpeedupFactor: speedup,
		TimeSavedMS:   saved,
		TimeSavedPct:  savedPct,
		FasterMode:    faster,
	}
}

// readAllocKB approximates process memory as a coarse before/after
// indicator, not a hard budget.
func readAllocKB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024)
}

func maxKB(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func round1(f float64) float64 {
	return float64(int64(f*10+0.5)) / 10
}
