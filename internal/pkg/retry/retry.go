package retry

import (
	"context"
	"fmt"
	"time"
)

// Do calls fn up to maxRetries+1 times with exponential backoff starting at
// base. A cancelled context aborts immediately with the context error.
func Do(ctx context.Context, maxRetries int, base time.Duration, fn func() error) error {
	if base <= 0 {
		base = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}

		backoff := base << attempt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", maxRetries+1, lastErr)
}
