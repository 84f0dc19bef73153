//go:build linux

package uptime

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// MonotonicSource reads CLOCK_MONOTONIC, which counts from boot and is not
// affected by wall clock changes.
type MonotonicSource struct{}

// TickMillis returns the monotonic clock in milliseconds truncated to 32 bits.
func (MonotonicSource) TickMillis(context.Context) (uint32, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime: %w", err)
	}
	ms := ts.Nano() / int64(1_000_000)
	return uint32(ms), nil //nolint:gosec // truncation is the wrap
}
