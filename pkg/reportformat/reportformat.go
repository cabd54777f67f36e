// Package reportformat defines the Formatter collaborator interface: the
// engine never depends on a concrete formatter, so it can return an
// ExecutionReport unannotated when none is configured. Only a minimal
// implementation is provided here — the textual renderer's layout is an
// out-of-scope external concern (spec §1), wired only from cmd/engine.
package reportformat

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dataengine/internal/types"
)

const width = 80

// Formatter writes a human-readable report for one ExecutionReport and
// returns the path it was written to.
type Formatter interface {
	GenerateAndSave(report types.ExecutionReport, outputDir string) (string, error)
}

// Plain is a fixed-width (80-column) text formatter.
type Plain struct{}

// GenerateAndSave renders report as text and writes it under outputDir.
func (Plain) GenerateAndSave(report types.ExecutionReport, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("reportformat: create output dir: %w", err)
	}

	name := fmt.Sprintf("report-%s.txt", report.StartTime.UTC().Format("20060102-150405"))
	path := filepath.Join(outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("reportformat: create report file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeHeader(w, report)
	writeMetadata(w, report)
	writeExecutiveSummary(w, report)
	writeMetricsBlocks(w, report)
	writePerformanceAnalysis(w, report)
	writeErrors(w, report)
	writeFooter(w)

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("reportformat: flush report file: %w", err)
	}
	return path, nil
}

func rule(w *bufio.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", width))
}

func section(w *bufio.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", width))
}

func writeHeader(w *bufio.Writer, report types.ExecutionReport) {
	rule(w)
	fmt.Fprintln(w, center("EXECUTION REPORT"))
	rule(w)
	fmt.Fprintln(w)
}

func writeMetadata(w *bufio.Writer, report types.ExecutionReport) {
	section(w, "METADATA")
	fmt.Fprintf(w, "Mode:       %s\n", report.Mode)
	fmt.Fprintf(w, "Started:    %s\n", report.StartTime.UTC().Format(time.RFC3339))
	if report.Directory != nil {
		fmt.Fprintf(w, "Directory:  %s\n", *report.Directory)
	}
	fmt.Fprintln(w)
}

func writeExecutiveSummary(w *bufio.Writer, report types.ExecutionReport) {
	section(w, "EXECUTIVE SUMMARY")
	fmt.Fprintf(w, "Total files:     %d\n", report.TotalFiles)
	fmt.Fprintf(w, "  csv=%d json=%d log=%d xml=%d\n", report.CSVCount, report.JSONCount, report.LogCount, report.XMLCount)
	fmt.Fprintf(w, "Success/Error/Partial: %d/%d/%d\n", report.SuccessCount, report.ErrorCount, report.PartialCount)
	fmt.Fprintf(w, "Total duration:  %dms\n", report.TotalDurationMS)
	fmt.Fprintln(w)
}

// writeMetricsBlocks emits one block per file type, each listing the
// metrics of every successful or partial result of that type. A type with
// no qualifying results is skipped rather than printed empty.
func writeMetricsBlocks(w *bufio.Writer, report types.ExecutionReport) {
	for _, t := range []types.FileType{types.TypeCSV, types.TypeJSON, types.TypeLog, types.TypeXML} {
		var rows []types.FileResult
		for _, r := range report.Results {
			if r.Type == t && len(r.Metrics) > 0 {
				rows = append(rows, r)
			}
		}
		if len(rows) == 0 {
			continue
		}

		section(w, strings.ToUpper(string(t))+" METRICS")
		for _, r := range rows {
			fmt.Fprintf(w, "%s:\n", r.Filename)
			keys := make([]string, 0, len(r.Metrics))
			for k := range r.Metrics {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "    %-24s %v\n", k, r.Metrics[k])
			}
		}
		fmt.Fprintln(w)
	}
}

func writePerformanceAnalysis(w *bufio.Writer, report types.ExecutionReport) {
	section(w, "PERFORMANCE ANALYSIS")
	fmt.Fprintf(w, "Total duration:  %dms\n", report.TotalDurationMS)
	if report.TotalFiles > 0 {
		avg := float64(report.TotalDurationMS) / float64(report.TotalFiles)
		fmt.Fprintf(w, "Avg per file:    %.2fms\n", avg)
	}
	if b := report.BenchmarkData; b != nil {
		fmt.Fprintf(w, "Sequential:      %dms (%d ok, %d error)\n", b.Sequential.DurationMS, b.Sequential.SuccessCount, b.Sequential.ErrorCount)
		fmt.Fprintf(w, "Parallel:        %dms (%d ok, %d error)\n", b.Parallel.DurationMS, b.Parallel.SuccessCount, b.Parallel.ErrorCount)
		fmt.Fprintf(w, "Speedup factor:  %.2fx\n", b.Comparison.SpeedupFactor)
		fmt.Fprintf(w, "Time saved:      %dms (%.1f%%)\n", b.Comparison.TimeSavedMS, b.Comparison.TimeSavedPct)
		fmt.Fprintf(w, "Faster mode:     %s\n", b.Comparison.FasterMode)
	}
	fmt.Fprintln(w)
}

func writeErrors(w *bufio.Writer, report types.ExecutionReport) {
	section(w, "ERRORS & WARNINGS")
	any := false
	for _, r := range report.Results {
		if r.Status == types.StatusOK || len(r.Errors) == 0 {
			continue
		}
		any = true
		fmt.Fprintf(w, "%s: %s\n", r.Filename, wrap(r.Errors[0].Message, width-2))
	}
	if !any {
		fmt.Fprintln(w, "(none)")
	}
	fmt.Fprintln(w)
}

func writeFooter(w *bufio.Writer) {
	rule(w)
	fmt.Fprintln(w, center("end of report"))
	rule(w)
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func wrap(s string, n int) string {
	if len(s) <= n {
		return s
	}
	var b strings.Builder
	for len(s) > n {
		b.WriteString(s[:n])
		b.WriteString("\n    ")
		s = s[n:]
	}
	b.WriteString(s)
	return b.String()
}
