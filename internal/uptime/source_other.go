//go:build !linux

package uptime

import (
	"context"
	"time"
)

var processStart = time.Now()

// MonotonicSource uses the Go runtime monotonic clock relative to process
// start on platforms without a CLOCK_MONOTONIC binding.
type MonotonicSource struct{}

// TickMillis returns milliseconds since process start truncated to 32 bits.
func (MonotonicSource) TickMillis(context.Context) (uint32, error) {
	return uint32(time.Since(processStart).Milliseconds()), nil //nolint:gosec // truncation is the wrap
}
