// Package aggregator folds an ordered list of FileResults into the final
// ExecutionReport, counting per-type and per-status totals and attaching
// synthetic error results for anything Discovery had to skip.
package aggregator

import (
	"path/filepath"
	"time"

	"dataengine/internal/discovery"
	"dataengine/internal/types"
)

// Build assembles an ExecutionReport from a mode's results plus any
// skipped discovery entries.
func Build(mode types.ModeName, start time.Time, dir *string, results []types.FileResult, dur time.Duration, skipped []discovery.Skipped, bench *types.BenchmarkData) types.ExecutionReport {
	all := make([]types.FileResult, 0, len(results)+len(skipped))
	all = append(all, results...)
	for _, s := range skipped {
		all = append(all, types.FileResult{
			Path:     s.Path,
			Filename: filepath.Base(s.Path),
			Type:     types.TypeUnknown,
			Status:   types.StatusError,
			Metrics:  map[string]any{},
			Errors:   []types.ParseError{{Message: s.Reason}},
		})
	}

	report := types.ExecutionReport{
		Mode:            mode,
		StartTime:       start,
		Directory:       dir,
		TotalDurationMS: dur.Milliseconds(),
		Results:         all,
		BenchmarkData:   bench,
	}

	for _, r := range all {
		report.TotalFiles++
		switch r.Type {
		case types.TypeCSV:
			report.CSVCount++
		case types.TypeJSON:
			report.JSONCount++
		case types.TypeLog:
			report.LogCount++
		case types.TypeXML:
			report.XMLCount++
		}
		switch r.Status {
		case types.StatusOK:
			report.SuccessCount++
		case types.StatusError:
			report.ErrorCount++
		case types.StatusPartial:
			report.PartialCount++
		}
	}

	return report
}
