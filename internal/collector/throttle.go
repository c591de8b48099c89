package collector

import (
	"context"
	"time"
)

// DefaultThrottle is the pause inserted before each request.
const DefaultThrottle = 1 * time.Second

// Throttle is a fixed pre-emptive delay between requests. It is not a
// retry mechanism.
type Throttle struct {
	Delay time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewThrottle returns a Throttle that waits delay before each request.
func NewThrottle(delay time.Duration) *Throttle {
	return &Throttle{Delay: delay, sleep: sleep}
}

// Wait blocks for the configured delay or until ctx is cancelled.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.Delay <= 0 {
		return ctx.Err()
	}
	if t.sleep == nil {
		return sleep(ctx, t.Delay)
	}
	return t.sleep(ctx, t.Delay)
}

// sleep waits for the specified duration or until context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
