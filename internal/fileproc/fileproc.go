// Package fileproc implements the single-file pipeline stage: dispatch to
// the type-specific parser, then the type-specific metrics function,
// producing one FileResult. It never returns an error to its caller — every
// failure, including a panic inside a parser or metrics function, is
// captured and folded into the FileResult's status and errors.
package fileproc

import (
	"fmt"
	"path/filepath"
	"time"

	metricscsv "dataengine/internal/metrics/csv"
	metricsjson "dataengine/internal/metrics/jsondoc"
	metricslog "dataengine/internal/metrics/logline"
	metricsxml "dataengine/internal/metrics/xmlcatalog"
	parsecsv "dataengine/internal/parsers/csv"
	parsejson "dataengine/internal/parsers/jsondoc"
	parselog "dataengine/internal/parsers/logline"
	parsexml "dataengine/internal/parsers/xmlcatalog"
	"dataengine/internal/types"
)

// Process runs the parse -> metrics pipeline for one classified item and
// always returns a complete FileResult.
func Process(item types.Item) (result types.FileResult) {
	start := time.Now()
	result = types.FileResult{
		Path:     item.Path,
		Filename: filepath.Base(item.Path),
		Type:     item.Type,
		Metrics:  map[string]any{},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Status = types.StatusError
			result.Metrics = map[string]any{}
			result.Errors = []types.ParseError{{Message: fmt.Sprintf("Task crashed or timed out: %v", r)}}
			result.DurationMS = time.Since(start).Milliseconds()
		}
	}()

	switch item.Type {
	case types.TypeCSV:
		processCSV(&result, item.Path)
	case types.TypeJSON:
		processJSON(&result, item.Path)
	case types.TypeLog:
		processLog(&result, item.Path)
	case types.TypeXML:
		processXML(&result, item.Path)
	default:
		result.Status = types.StatusError
		result.Errors = []types.ParseError{{Message: "unsupported file type"}}
	}

	normalizeStatus(&result)
	result.DurationMS = time.Since(start).Milliseconds()
	return result
}

func processCSV(r *types.FileResult, path string) {
	out := parsecsv.Parse(path)
	if out.Kind == types.StatusError {
		r.Status = types.StatusError
		r.Errors = []types.ParseError{{Message: out.Err}}
		return
	}
	m, err := metricscsv.Compute(out.Sales)
	if err != nil {
		r.Status = types.StatusError
		r.Errors = append(r.Errors, types.ParseError{Message: err.Error()})
		return
	}
	r.Metrics = m
	r.LinesProcessed = countFrom(m)
}

func processJSON(r *types.FileResult, path string) {
	out := parsejson.Parse(path)
	if out.Kind == types.StatusError {
		r.Status = types.StatusError
		r.Errors = []types.ParseError{{Message: out.Err}}
		return
	}
	m, err := metricsjson.Compute(out.Doc)
	if err != nil {
		r.Status = types.StatusError
		r.Errors = append(r.Errors, types.ParseError{Message: err.Error()})
		return
	}
	r.Metrics = m
	r.LinesProcessed = countFrom(m)
}

func processLog(r *types.FileResult, path string) {
	out := parselog.Parse(path)
	if out.Kind == types.StatusError {
		r.Status = types.StatusError
		r.Errors = []types.ParseError{{Message: out.Err}}
		return
	}
	if out.Kind == types.StatusPartial {
		r.Errors = append(r.Errors, out.Errors...)
		r.LinesFailed = len(out.Errors)
	}
	m, err := metricslog.Compute(out.Entries)
	if err != nil {
		r.Status = types.StatusError
		r.Metrics = map[string]any{}
		r.Errors = append(r.Errors, types.ParseError{Message: err.Error()})
		return
	}
	r.Metrics = m
	r.LinesProcessed = countFrom(m)
}

func processXML(r *types.FileResult, path string) {
	out := parsexml.Parse(path)
	if out.Kind == types.StatusError {
		r.Status = types.StatusError
		r.Errors = []types.ParseError{{Message: out.Err}}
		return
	}
	m, err := metricsxml.Compute(out.Catalog)
	if err != nil {
		r.Status = types.StatusError
		r.Errors = append(r.Errors, types.ParseError{Message: err.Error()})
		return
	}
	r.Metrics = m
	r.LinesProcessed = countFrom(m)
}

// countFrom extracts the record count the spec designates as
// lines_processed: total_records | total_entries | total_products |
// total_sessions, in that order of preference, else 0.
func countFrom(m map[string]any) int {
	for _, key := range []string{"total_records", "total_entries", "total_products", "total_sessions"} {
		if v, ok := m[key]; ok {
			if n, ok := v.(int); ok {
				return n
			}
		}
	}
	return 0
}

// normalizeStatus applies the spec's status rule: any error + metrics ->
// partial; any error + no metrics -> error; else ok.
func normalizeStatus(r *types.FileResult) {
	hasErrors := len(r.Errors) > 0
	hasMetrics := len(r.Metrics) > 0

	switch {
	case hasErrors && hasMetrics:
		r.Status = types.StatusPartial
	case hasErrors && !hasMetrics:
		r.Status = types.StatusError
		r.Metrics = map[string]any{}
	default:
		r.Status = types.StatusOK
	}
}
