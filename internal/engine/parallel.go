package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"dataengine/internal/fileproc"
	"dataengine/internal/retry"
	"dataengine/internal/types"
)

// progressTick is sent on a buffered channel as tasks complete, so the
// sink's Update calls all come from one goroutine regardless of how many
// workers are running — a single aggregator goroutine reads the tick
// channel and drives progress itself.
type progressTick struct{}

// runParallel dispatches each item as an independent task over a bounded
// worker pool of size opts.MaxWorkers, each under its own timeout_ms
// deadline. Output order is input order; progress ticks fire in
// completion order; one failing task never disturbs another.
func runParallel(ctx context.Context, tracer trace.Tracer, items []types.Item, opts Options) ([]types.FileResult, time.Duration) {
	start := time.Now()
	policy := retryPolicy(opts)

	results := make([]types.FileResult, len(items))
	sem := semaphore.NewWeighted(int64(opts.MaxWorkers))
	ticks := make(chan progressTick, len(items))

	opts.Progress.Start(len(items))

	done := make(chan struct{})
	go func() {
		defer close(done)
		completed := 0
		for range ticks {
			completed++
			opts.Progress.Update(completed, len(items))
			if completed == len(items) {
				return
			}
		}
	}()

	g, gctx := errgroup.WithContext(context.Background())
	for i, item := range items {
		i, item := i, item
		if err := sem.Acquire(gctx, 1); err != nil {
			// Context for the pool itself was cancelled; the remaining
			// slots are filled with synthetic crash results below.
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			results[i] = runOneTask(ctx, tracer, item, opts.TimeoutMS, policy)
			ticks <- progressTick{}
			return nil
		})
	}
	_ = g.Wait()
	close(ticks)
	<-done
	opts.Progress.Stop()

	// Any slot never populated (pool-level cancellation) gets a synthetic
	// crash result so the output always has len(items) entries.
	for i, item := range items {
		if results[i].Path == "" {
			results[i] = crashResult(item, "worker pool cancelled before task started")
		}
	}

	return results, time.Since(start)
}

// runOneTask enforces the per-file deadline and converts a timeout or
// panic into the spec's synthetic "Task crashed or timed out" result.
func runOneTask(parent context.Context, tracer trace.Tracer, item types.Item, timeoutMS int, policy retry.Policy) (result types.FileResult) {
	ctx, span := tracer.Start(parent, "fileproc.process",
		trace.WithAttributes(attribute.String("file.path", item.Path), attribute.String("file.type", string(item.Type))))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMS)*time.Millisecond)
	defer cancel()

	taskDone := make(chan types.FileResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				taskDone <- crashResult(item, fmt.Sprintf("%v", r))
			}
		}()
		taskDone <- retry.Do(ctx, func(ctx context.Context) types.FileResult {
			return fileproc.Process(item)
		}, policy)
	}()

	select {
	case result = <-taskDone:
	case <-ctx.Done():
		result = crashResult(item, "deadline exceeded")
	}

	span.SetAttributes(attribute.String("file.status", string(result.Status)))
	return result
}

func crashResult(item types.Item, reason string) types.FileResult {
	return types.FileResult{
		Path:     item.Path,
		Filename: baseName(item.Path),
		Type:     item.Type,
		Status:   types.StatusError,
		Metrics:  map[string]any{},
		Errors:   []types.ParseError{{Message: fmt.Sprintf("Task crashed or timed out: %s", reason)}},
	}
}
