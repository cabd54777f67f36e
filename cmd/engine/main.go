// Command engine is a thin CLI front end over the processing engine: a
// one-line main that defers everything to a package function.
package main

import (
	"context"
	"fmt"
	"os"

	"dataengine/internal/discovery"
	"dataengine/internal/engine"
	"dataengine/internal/obslog"
	"dataengine/pkg/reportformat"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: %s <path>", os.Args[0])
	}
	target := os.Args[1]

	opts := engine.DefaultOptions()
	opts.Logger = obslog.New()
	opts.TimeoutMS = envInt("ENGINE_TIMEOUT_MS", opts.TimeoutMS)
	opts.MaxWorkers = envInt("ENGINE_MAX_WORKERS", opts.MaxWorkers)
	opts.MaxRetries = envInt("ENGINE_MAX_RETRIES", opts.MaxRetries)
	opts.RetryDelayMS = envInt("ENGINE_RETRY_DELAY_MS", opts.RetryDelayMS)
	opts.OutputDir = env("ENGINE_OUTPUT_DIR", opts.OutputDir)
	opts.ShowProgress = envBool("ENGINE_SHOW_PROGRESS", opts.ShowProgress)
	opts.Benchmark = envBool("ENGINE_BENCHMARK", false)

	input := discovery.Dir(target)
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		input = discovery.SingleFile(target)
	}

	report, err := engine.Process(context.Background(), input, opts)
	if err != nil {
		return err
	}

	path, err := reportformat.Plain{}.GenerateAndSave(report, opts.OutputDir)
	if err != nil {
		return err
	}

	fmt.Printf("processed %d files (%d ok, %d error, %d partial) -> %s\n",
		report.TotalFiles, report.SuccessCount, report.ErrorCount, report.PartialCount, path)
	return nil
}
