package logline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	parselog "dataengine/internal/parsers/logline"
)

func TestComputeEmptyReturnsError(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestComputeLevelAndPatternBreakdown(t *testing.T) {
	entries := []parselog.Entry{
		{Level: "INFO", Component: "auth", Message: "user login", Hour: 8},
		{Level: "ERROR", Component: "db", Message: "connection timeout while querying", Hour: 8},
		{Level: "ERROR", Component: "db", Message: "connection timeout while querying", Hour: 9},
		{Level: "FATAL", Component: "cache", Message: "permission denied for key", Hour: 9},
	}

	m, err := Compute(entries)
	require.NoError(t, err)

	assert.Equal(t, 4, m["total_entries"])
	assert.Equal(t, 3, m["critical_errors_count"])

	dist := m["level_distribution"].(map[string]LevelStats)
	assert.Equal(t, 1, dist["INFO"].Count)
	assert.Equal(t, 2, dist["ERROR"].Count)
	assert.Equal(t, 1, dist["FATAL"].Count)
	assert.Equal(t, 0, dist["DEBUG"].Count)

	topErrors := m["most_frequent_errors"].([]MessageCount)
	require.NotEmpty(t, topErrors)
	assert.Equal(t, 2, topErrors[0].Count)

	patterns := m["error_patterns"].([]PatternCount)
	require.NotEmpty(t, patterns)
	assert.Equal(t, "Timeout errors", patterns[0].Pattern)
}
