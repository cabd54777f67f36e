package engine

import (
	"path/filepath"
	"time"

	"dataengine/internal/retry"
)

func retryPolicy(opts Options) retry.Policy {
	return retry.Policy{
		MaxRetries: opts.MaxRetries,
		BaseDelay:  time.Duration(opts.RetryDelayMS) * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

func baseName(path string) string {
	return filepath.Base(path)
}
