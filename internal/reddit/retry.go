package reddit

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// MaxBackoff caps the wait between retried search requests.
const MaxBackoff = 60 * time.Second

// sleepWithContext blocks for the given duration, returning early if the
// context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoffDelay computes the wait before the next attempt. A numeric
// Retry-After header wins; otherwise the delay doubles per attempt up to
// MaxBackoff.
func backoffDelay(attempt int, retryAfter string) time.Duration {
	if value := strings.TrimSpace(retryAfter); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
			d := time.Duration(seconds) * time.Second
			if d > MaxBackoff {
				return MaxBackoff
			}
			return d
		}
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > MaxBackoff || d <= 0 {
		return MaxBackoff
	}
	return d
}
