package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataengine/internal/types"
)

func TestDoReturnsImmediatelyOnSuccess(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context) types.FileResult {
		calls++
		return types.FileResult{Status: types.StatusOK}
	}

	r := Do(context.Background(), fn, Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	assert.Equal(t, types.StatusOK, r.Status)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesOnTransientError(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context) types.FileResult {
		calls++
		if calls < 3 {
			return types.FileResult{Status: types.StatusError, Errors: []types.ParseError{{Message: "processing timeout"}}}
		}
		return types.FileResult{Status: types.StatusOK}
	}

	r := Do(context.Background(), fn, Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	assert.Equal(t, types.StatusOK, r.Status)
	assert.Equal(t, 3, calls)
}

func TestDoDoesNotRetryPermanentError(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context) types.FileResult {
		calls++
		return types.FileResult{Status: types.StatusError, Errors: []types.ParseError{{Message: "csv validation failed: line 2: invalid date"}}}
	}

	r := Do(context.Background(), fn, Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	assert.Equal(t, types.StatusError, r.Status)
	assert.Equal(t, 1, calls)
}

// A message can look transient (it mentions "timeout") yet still be a
// validation failure; the permanent vocabulary wins so it is not retried.
func TestDoExemptsRetryableLookingValidationMessage(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context) types.FileResult {
		calls++
		return types.FileResult{Status: types.StatusError, Errors: []types.ParseError{{Message: "invalid json: timeout parsing field at offset 12"}}}
	}

	r := Do(context.Background(), fn, Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	assert.Equal(t, types.StatusError, r.Status)
	assert.Equal(t, 1, calls)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context) types.FileResult {
		calls++
		return types.FileResult{Status: types.StatusError, Errors: []types.ParseError{{Message: "timeout"}}}
	}

	r := Do(context.Background(), fn, Policy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
	assert.Equal(t, types.StatusError, r.Status)
	assert.Equal(t, 3, calls)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fn := func(ctx context.Context) types.FileResult {
		calls++
		cancel()
		return types.FileResult{Status: types.StatusError, Errors: []types.ParseError{{Message: "timeout"}}}
	}

	r := Do(ctx, fn, Policy{MaxRetries: 5, BaseDelay: 50 * time.Millisecond, MaxDelay: 50 * time.Millisecond})
	require.Equal(t, types.StatusError, r.Status)
	assert.Equal(t, 1, calls)
}
