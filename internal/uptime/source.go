package uptime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/shirou/gopsutil/v3/host"
)

// Source names accepted by NewSource.
const (
	SourceMonotonic = "monotonic"
	SourceHost      = "host"
	SourceProcess   = "process"
)

// ErrUnknownSource is returned by NewSource for an unrecognised name.
var ErrUnknownSource = errors.New("unknown tick source")

// TickSource supplies raw millisecond ticks. Values are expected to wrap
// to zero after math.MaxUint32 like a microcontroller millis() counter.
type TickSource interface {
	TickMillis(ctx context.Context) (uint32, error)
}

// SourceFunc adapts a function to TickSource.
type SourceFunc func(ctx context.Context) (uint32, error)

// TickMillis calls f.
func (f SourceFunc) TickMillis(ctx context.Context) (uint32, error) {
	return f(ctx)
}

// HostSource derives ticks from the host uptime reported by the OS.
// Its resolution is one second.
type HostSource struct{}

// TickMillis returns the host uptime in milliseconds truncated to 32 bits.
func (HostSource) TickMillis(ctx context.Context) (uint32, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("read host uptime: %w", err)
	}
	return uint32(secs * 1000), nil //nolint:gosec // truncation is the wrap
}

// ProcessSource counts milliseconds since it was created on the given clock.
type ProcessSource struct {
	clock clockwork.Clock
	start int64
}

// NewProcessSource starts a process-relative tick source.
func NewProcessSource(clock clockwork.Clock) *ProcessSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ProcessSource{clock: clock, start: clock.Now().UnixMilli()}
}

// TickMillis returns milliseconds since creation truncated to 32 bits.
func (p *ProcessSource) TickMillis(context.Context) (uint32, error) {
	return uint32(p.clock.Now().UnixMilli() - p.start), nil //nolint:gosec // truncation is the wrap
}

// OffsetSource shifts another source by a fixed amount, modulo 2^32.
// A large offset makes the wrapped counter roll over shortly after start.
type OffsetSource struct {
	Source   TickSource
	OffsetMs uint32
}

// TickMillis returns the wrapped source reading plus the offset.
func (o OffsetSource) TickMillis(ctx context.Context) (uint32, error) {
	v, err := o.Source.TickMillis(ctx)
	if err != nil {
		return 0, err
	}
	return v + o.OffsetMs, nil
}

// NewSource builds a tick source by name. offsetMs of zero leaves the
// source unshifted.
func NewSource(name string, offsetMs uint32, clock clockwork.Clock) (TickSource, error) {
	var src TickSource
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SourceMonotonic:
		src = MonotonicSource{}
	case SourceHost:
		src = HostSource{}
	case SourceProcess:
		src = NewProcessSource(clock)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	if offsetMs != 0 {
		src = OffsetSource{Source: src, OffsetMs: offsetMs}
	}
	return src, nil
}
