package reportcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataengine/internal/types"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	report := types.ExecutionReport{TotalFiles: 3}
	id := c.Put(report)
	assert.Len(t, id, 22) // base64.RawURLEncoding of 16 bytes

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, 3, got.TotalFiles)
}

func TestGetMissingIDReturnsFalse(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	_, ok := c.Get("does-not-exist")
	assert.False(t, ok)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c := New(10*time.Millisecond, time.Hour)
	defer c.Close()

	id := c.Put(types.ExecutionReport{TotalFiles: 1})
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(id)
	assert.False(t, ok)
}

func TestStatsReportsTotal(t *testing.T) {
	c := New(time.Hour, time.Hour)
	defer c.Close()

	c.Put(types.ExecutionReport{})
	c.Put(types.ExecutionReport{})

	stats := c.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Active)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(time.Hour, time.Hour)
	c.Close()
	assert.NotPanics(t, func() { c.Close() })
}
