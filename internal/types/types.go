// Package types holds the shared data model produced and consumed across
// the engine: classified inputs, per-file results, and the aggregated
// execution report.
package types

import "time"

// FileType classifies a discovered input by extension.
type FileType string

const (
	TypeCSV     FileType = "csv"
	TypeJSON    FileType = "json"
	TypeLog     FileType = "log"
	TypeXML     FileType = "xml"
	TypeUnknown FileType = "unknown"
)

// Status is the outcome of processing a single file.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusPartial Status = "partial"
)

// ParseError is either a free-text message (Line == 0) or a line-numbered
// one, matching the spec's "free-text or (line_number, message)" union.
type ParseError struct {
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// Item is a classified input: a file type paired with its path.
type Item struct {
	Type FileType
	Path string
}

// FileResult is the unit of work produced by the file processor.
type FileResult struct {
	Path           string         `json:"path"`
	Filename       string         `json:"filename"`
	Type           FileType       `json:"type"`
	Status         Status         `json:"status"`
	Metrics        map[string]any `json:"metrics"`
	Errors         []ParseError   `json:"errors"`
	DurationMS     int64          `json:"duration_ms"`
	LinesProcessed int            `json:"lines_processed"`
	LinesFailed    int            `json:"lines_failed"`
}

// ModeName is the closed set of execution strategies.
type ModeName string

const (
	ModeSequential ModeName = "sequential"
	ModeParallel   ModeName = "parallel"
	ModeBenchmark  ModeName = "benchmark"
)

// RunStats summarizes one benchmark arm (sequential or parallel).
type RunStats struct {
	DurationMS     int64   `json:"duration_ms"`
	DurationSec    float64 `json:"duration_sec"`
	SuccessCount   int     `json:"success_count"`
	ErrorCount     int     `json:"error_count"`
	AvgTimePerFile float64 `json:"avg_time_per_file"`
	MemoryKB       int64   `json:"memory_kb"`
}

// Comparison holds the head-to-head numbers derived from the two RunStats.
type Comparison struct {
	SpeedupFactor   float64  `json:"speedup_factor"`
	TimeSavedMS     int64    `json:"time_saved_ms"`
	TimeSavedPct    float64  `json:"time_saved_percent"`
	FasterMode      ModeName `json:"faster_mode"`
}

// BenchmarkData is populated only when ExecutionReport.Mode == ModeBenchmark.
type BenchmarkData struct {
	TotalFiles     int        `json:"total_files"`
	ProcessesUsed  int        `json:"processes_used"`
	Sequential     RunStats   `json:"sequential"`
	Parallel       RunStats   `json:"parallel"`
	Comparison     Comparison `json:"comparison"`
}

// ExecutionReport is the consolidated outcome of one engine run.
type ExecutionReport struct {
	Mode            ModeName       `json:"mode"`
	StartTime       time.Time      `json:"start_time"`
	Directory       *string        `json:"directory,omitempty"`
	TotalFiles      int            `json:"total_files"`
	CSVCount        int            `json:"csv_count"`
	JSONCount       int            `json:"json_count"`
	LogCount        int            `json:"log_count"`
	XMLCount        int            `json:"xml_count"`
	SuccessCount    int            `json:"success_count"`
	ErrorCount      int            `json:"error_count"`
	PartialCount    int            `json:"partial_count"`
	TotalDurationMS int64          `json:"total_duration_ms"`
	Results         []FileResult   `json:"results"`
	BenchmarkData   *BenchmarkData `json:"benchmark_data,omitempty"`
}
