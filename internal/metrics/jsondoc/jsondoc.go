// Package jsondoc computes the users/sessions metrics summary.
package jsondoc

import (
	"errors"
	"sort"
	"strconv"
	"time"

	parsejson "dataengine/internal/parsers/jsondoc"
)

// ErrEmpty is returned when both users and sessions are empty.
var ErrEmpty = errors.New("metrics: no users or sessions")

// ActionCount is one entry in the top_actions list.
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// PeakHour names the hour (from session start timestamps) with the most
// sessions.
type PeakHour struct {
	Hour         int `json:"hour"`
	SessionCount int `json:"session_count"`
}

// Compute returns the metrics map for a parsed document.
func Compute(doc parsejson.Document) (map[string]any, error) {
	if len(doc.Users) == 0 && len(doc.Sessions) == 0 {
		return nil, ErrEmpty
	}

	active, inactive := 0, 0
	for _, u := range doc.Users {
		if u.Active {
			active++
		} else {
			inactive++
		}
	}
	activePct := 0.0
	if len(doc.Users) > 0 {
		activePct = round1(float64(active) / float64(len(doc.Users)) * 100)
	}

	totalPages := int64(0)
	durSum := 0.0
	durCount := 0
	actionCounts := map[string]int{}
	actionOrder := []string{}
	hourCounts := map[int]int{}

	for _, s := range doc.Sessions {
		if s.PagesVisited != nil {
			totalPages += *s.PagesVisited
		}
		if s.DurationSeconds != nil {
			durSum += *s.DurationSeconds
			durCount++
		}
		for _, a := range s.Actions {
			if _, ok := actionCounts[a]; !ok {
				actionOrder = append(actionOrder, a)
			}
			actionCounts[a]++
		}
		if s.Start != nil {
			if t, err := time.Parse(time.RFC3339, *s.Start); err == nil {
				hourCounts[t.Hour()]++
			}
		}
	}

	avgDuration := 0
	if durCount > 0 {
		avgDuration = int(durSum / float64(durCount))
	}

	topActions := make([]ActionCount, 0, len(actionOrder))
	for _, a := range actionOrder {
		topActions = append(topActions, ActionCount{Action: a, Count: actionCounts[a]})
	}
	sort.SliceStable(topActions, func(i, j int) bool { return topActions[i].Count > topActions[j].Count })
	if len(topActions) > 5 {
		topActions = topActions[:5]
	}

	var peak PeakHour
	bestCount := -1
	hours := make([]int, 0, len(hourCounts))
	for h := range hourCounts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		if hourCounts[h] > bestCount {
			bestCount = hourCounts[h]
			peak = PeakHour{Hour: h, SessionCount: hourCounts[h]}
		}
	}

	return map[string]any{
		"total_users":          len(doc.Users),
		"active_users":         active,
		"inactive_users":       inactive,
		"active_percentage":    activePct,
		"total_sessions":       len(doc.Sessions),
		"avg_session_duration": avgDuration,
		"total_pages_visited":  totalPages,
		"top_actions":          topActions,
		"peak_hour":            peak,
	}, nil
}

func round1(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 1, 64), 64)
	return v
}
