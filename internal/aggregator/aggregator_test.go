package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataengine/internal/discovery"
	"dataengine/internal/types"
)

func TestBuildCountsByTypeAndStatus(t *testing.T) {
	start := time.Now()
	results := []types.FileResult{
		{Path: "a.csv", Filename: "a.csv", Type: types.TypeCSV, Status: types.StatusOK},
		{Path: "b.json", Filename: "b.json", Type: types.TypeJSON, Status: types.StatusError},
		{Path: "c.log", Filename: "c.log", Type: types.TypeLog, Status: types.StatusPartial},
	}
	skipped := []discovery.Skipped{{Path: "d.bin", Reason: "unsupported file extension"}}

	report := Build(types.ModeSequential, start, nil, results, 250*time.Millisecond, skipped, nil)

	assert.Equal(t, 4, report.TotalFiles)
	assert.Equal(t, 1, report.CSVCount)
	assert.Equal(t, 1, report.JSONCount)
	assert.Equal(t, 1, report.LogCount)
	assert.Equal(t, 0, report.XMLCount)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 2, report.ErrorCount) // b.json + synthetic skipped entry
	assert.Equal(t, 1, report.PartialCount)
	assert.Equal(t, int64(250), report.TotalDurationMS)

	require.Len(t, report.Results, 4)
	last := report.Results[3]
	assert.Equal(t, "d.bin", last.Filename)
	assert.Equal(t, types.TypeUnknown, last.Type)
	assert.Equal(t, types.StatusError, last.Status)
}

func TestBuildWithNoResultsOrSkipped(t *testing.T) {
	report := Build(types.ModeParallel, time.Now(), nil, nil, 0, nil, nil)
	assert.Equal(t, 0, report.TotalFiles)
	assert.Empty(t, report.Results)
}
