package engine

import (
	"context"
	"time"
)

// Delay blocks between frames
type Delay interface {
	Wait(ctx context.Context, d time.Duration) error
}

// TimerDelay waits on a timer and gives up early when ctx is done
type TimerDelay struct{}

// Wait sleeps for d, returning ctx.Err() if ctx ends first
func (TimerDelay) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
