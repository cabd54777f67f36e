// Package logline computes the log metrics summary: level distribution,
// top error messages/components, hourly histogram, and classified error
// patterns.
package logline

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	parselog "dataengine/internal/parsers/logline"
)

// ErrEmpty is returned when there are no entries to summarize.
var ErrEmpty = errors.New("metrics: no log entries")

var allLevels = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// LevelStats is the count/percentage pair for one level.
type LevelStats struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MessageCount is a truncated message paired with its occurrence count.
type MessageCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ComponentCount pairs a component name with its error occurrence count.
type ComponentCount struct {
	Component  string `json:"component"`
	ErrorCount int    `json:"error_count"`
}

// HourCount pairs an hour-of-day with its entry count.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// PatternCount is a classified error pattern and how often it occurred.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

var patternMatchers = []struct {
	substr string
	label  string
}{
	{"timeout", "Timeout errors"},
	{"connection", "Connection errors"},
	{"deadlock", "Database deadlock"},
	{"null", "Null pointer errors"},
	{"permission", "Permission errors"},
}

// Compute returns the metrics map for a slice of parsed log entries.
func Compute(entries []parselog.Entry) (map[string]any, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	levelCounts := map[string]int{}
	hourCounts := map[int]int{}
	errMsgCounts := map[string]int{}
	errMsgOrder := []string{}
	compErrCounts := map[string]int{}
	compErrOrder := []string{}
	patternCounts := map[string]int{}
	patternOrder := []string{}
	critical := 0

	for _, e := range entries {
		levelCounts[e.Level]++
		hourCounts[e.Hour]++

		if e.Level == "ERROR" || e.Level == "FATAL" {
			critical++

			msg := truncate(e.Message, 100)
			if _, ok := errMsgCounts[msg]; !ok {
				errMsgOrder = append(errMsgOrder, msg)
			}
			errMsgCounts[msg]++

			if _, ok := compErrCounts[e.Component]; !ok {
				compErrOrder = append(compErrOrder, e.Component)
			}
			compErrCounts[e.Component]++

			label := classifyPattern(e.Message, e.Component)
			if _, ok := patternCounts[label]; !ok {
				patternOrder = append(patternOrder, label)
			}
			patternCounts[label]++
		}
	}

	levelDist := map[string]LevelStats{}
	for _, lvl := range allLevels {
		c := levelCounts[lvl]
		pct := 0.0
		if len(entries) > 0 {
			pct = round1(float64(c) / float64(len(entries)) * 100)
		}
		levelDist[lvl] = LevelStats{Count: c, Percentage: pct}
	}

	topErrors := make([]MessageCount, 0, len(errMsgOrder))
	for _, m := range errMsgOrder {
		topErrors = append(topErrors, MessageCount{Message: m, Count: errMsgCounts[m]})
	}
	sort.SliceStable(topErrors, func(i, j int) bool { return topErrors[i].Count > topErrors[j].Count })
	if len(topErrors) > 5 {
		topErrors = topErrors[:5]
	}

	topComponents := make([]ComponentCount, 0, len(compErrOrder))
	for _, c := range compErrOrder {
		topComponents = append(topComponents, ComponentCount{Component: c, ErrorCount: compErrCounts[c]})
	}
	sort.SliceStable(topComponents, func(i, j int) bool { return topComponents[i].ErrorCount > topComponents[j].ErrorCount })
	if len(topComponents) > 5 {
		topComponents = topComponents[:5]
	}

	hours := make([]int, 0, len(hourCounts))
	for h := range hourCounts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	hourly := make([]HourCount, 0, len(hours))
	for _, h := range hours {
		hourly = append(hourly, HourCount{Hour: h, Count: hourCounts[h]})
	}

	patterns := make([]PatternCount, 0, len(patternOrder))
	for _, p := range patternOrder {
		patterns = append(patterns, PatternCount{Pattern: p, Count: patternCounts[p]})
	}
	sort.SliceStable(patterns, func(i, j int) bool { return patterns[i].Count > patterns[j].Count })
	if len(patterns) > 3 {
		patterns = patterns[:3]
	}

	return map[string]any{
		"total_entries":         len(entries),
		"level_distribution":    levelDist,
		"most_frequent_errors":  topErrors,
		"top_error_components":  topComponents,
		"hourly_distribution":   hourly,
		"critical_errors_count": critical,
		"error_patterns":        patterns,
	}, nil
}

func classifyPattern(message, component string) string {
	lower := strings.ToLower(message)
	for _, m := range patternMatchers {
		if strings.Contains(lower, m.substr) {
			return m.label
		}
	}
	return component + " errors"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func round1(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 1, 64), 64)
	return v
}
