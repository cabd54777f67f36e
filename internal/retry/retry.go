// Package retry wraps a single File Processor call with transient-failure
// retry and exponential backoff: classify the error, retry only if it
// looks transient, back off exponentially with a cap, and give up after a
// bounded number of attempts.
package retry

import (
	"context"
	"regexp"
	"time"

	"dataengine/internal/types"
)

var retryableRe = regexp.MustCompile(
	`(?i)failed to read|timeout|timed out|processing timeout|worker process crashed|killed|exit:`,
)

var permanentRe = regexp.MustCompile(`(?i)validation|invalid|invalid json|csv validation`)

// Policy configures attempt count and backoff.
type Policy struct {
	MaxRetries   int // total attempts = MaxRetries
	BaseDelay    time.Duration
	MaxDelay     time.Duration
}

// DefaultPolicy matches the spec's defaults: up to 3 attempts, 1s base
// delay.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
}

// Do invokes fn, retrying on a retryable error result up to policy.MaxRetries
// total attempts, sleeping with exponential backoff between attempts.
func Do(ctx context.Context, fn func(context.Context) types.FileResult, policy Policy) types.FileResult {
	if policy.MaxRetries < 1 {
		policy.MaxRetries = 1
	}

	var result types.FileResult
	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		result = fn(ctx)

		if result.Status != types.StatusError || !isRetryable(result) {
			return result
		}
		if attempt == policy.MaxRetries {
			return result
		}

		delay := backoff(policy, attempt)
		select {
		case <-ctx.Done():
			return result
		case <-time.After(delay):
		}
	}
	return result
}

// isRetryable is true iff at least one error message matches the retryable
// vocabulary and that same message does not also match the permanent
// (schema/validation) vocabulary.
func isRetryable(r types.FileResult) bool {
	for _, e := range r.Errors {
		if retryableRe.MatchString(e.Message) && !permanentRe.MatchString(e.Message) {
			return true
		}
	}
	return false
}

func backoff(policy Policy, attempt int) time.Duration {
	d := policy.BaseDelay * time.Duration(1<<uint(attempt-1))
	if d > policy.MaxDelay {
		d = policy.MaxDelay
	}
	return d
}
