package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dataengine/internal/fileproc"
	"dataengine/internal/retry"
	"dataengine/internal/types"
)

// runSequential iterates the input list in order, invoking the
// processor-with-retry for each file, emitting a progress tick after every
// completion. Output order equals input order by construction.
func runSequential(ctx context.Context, tracer trace.Tracer, items []types.Item, opts Options) ([]types.FileResult, time.Duration) {
	start := time.Now()
	policy := retryPolicy(opts)

	results := make([]types.FileResult, 0, len(items))
	opts.Progress.Start(len(items))
	for i, item := range items {
		ctx, span := tracer.Start(ctx, "fileproc.process",
			trace.WithAttributes(attribute.String("file.path", item.Path), attribute.String("file.type", string(item.Type))))

		result := retry.Do(ctx, func(ctx context.Context) types.FileResult {
			return fileproc.Process(item)
		}, policy)

		span.SetAttributes(attribute.String("file.status", string(result.Status)))
		span.End()

		results = append(results, result)
		opts.Progress.Update(i+1, len(items))
	}
	opts.Progress.Stop()

	return results, time.Since(start)
}
