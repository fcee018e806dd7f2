// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"

	lndclock "github.com/lightningnetwork/lnd/clock"
)

var defaultClock = lndclock.NewDefaultClock()

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return Sleep(ctx, defaultClock, d)
}

// Sleep waits until c has advanced by d or ctx is done.
func Sleep(ctx context.Context, c lndclock.Clock, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.TickAfter(d):
		return nil
	}
}

