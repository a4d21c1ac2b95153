package resilience

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done. Callers accept it as a
// dependency so retry loops can be exercised without real waiting.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc. A non-positive duration returns
// immediately unless ctx is already done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
