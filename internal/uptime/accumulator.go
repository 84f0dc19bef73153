// Package uptime turns a wrapping 32-bit millisecond counter into a
// monotonically non-decreasing count of seconds.
//
// A tick source (see TickSource) is sampled periodically and each raw value is
// fed to an Accumulator. Whenever the converted seconds value drops below the
// previous one the counter is assumed to have wrapped, and the peak of the
// finished cycle is folded into the cumulative total.
//
// Callers must sample more often than once per WrapPeriod. A gap spanning a
// full wrap cannot be detected and silently under-counts elapsed time.
package uptime

import (
	"math"
	"sync"
	"time"
)

// WrapPeriod is how long a uint32 millisecond counter runs before it wraps.
const WrapPeriod = time.Duration(math.MaxUint32+1) * time.Millisecond

// roundUpLimit is the largest raw tick for which raw+999 does not overflow.
const roundUpLimit = math.MaxUint32 - 999

// SecondsFromMillis converts raw milliseconds to seconds, rounding up.
func SecondsFromMillis(rawTickMs uint32) uint32 {
	if rawTickMs <= roundUpLimit {
		return (rawTickMs + 999) / 1000
	}
	seconds := rawTickMs / 1000
	if rawTickMs%1000 != 0 {
		seconds++
	}
	return seconds
}

// State is the persisted form of an Accumulator.
type State struct {
	CumulativeSeconds   uint64
	LastObservedSeconds uint32
	Wraps               uint64
}

// Snapshot is a point-in-time view of an Accumulator.
type Snapshot struct {
	State
	TotalSeconds uint64
}

// Reading describes the outcome of a single Observe call.
type Reading struct {
	RawTickMs    uint32
	Seconds      uint32
	TotalSeconds uint64
	Wrapped      bool
}

// Accumulator keeps the running uptime across counter wraps.
// The zero value is ready to use. All methods are safe for concurrent use.
type Accumulator struct {
	mu         sync.Mutex
	cumulative uint64
	last       uint32
	wraps      uint64
}

// NewAccumulator creates an Accumulator seeded from a checkpoint.
func NewAccumulator(s State) *Accumulator {
	a := &Accumulator{}
	a.Restore(s)
	return a
}

// Accumulate records rawTickMs and returns the total uptime in seconds.
func (a *Accumulator) Accumulate(rawTickMs uint32) uint64 {
	return a.Observe(rawTickMs).TotalSeconds
}

// Observe is Accumulate with details about the conversion and wrap detection.
func (a *Accumulator) Observe(rawTickMs uint32) Reading {
	seconds := SecondsFromMillis(rawTickMs)

	a.mu.Lock()
	defer a.mu.Unlock()

	wrapped := seconds < a.last
	if wrapped {
		a.cumulative += uint64(a.last)
		a.wraps++
	}
	a.last = seconds

	return Reading{
		RawTickMs:    rawTickMs,
		Seconds:      seconds,
		TotalSeconds: a.cumulative + uint64(a.last),
		Wrapped:      wrapped,
	}
}

// Total returns the current total without recording a new tick.
func (a *Accumulator) Total() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cumulative + uint64(a.last)
}

// Snapshot returns the current state and total.
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		State: State{
			CumulativeSeconds:   a.cumulative,
			LastObservedSeconds: a.last,
			Wraps:               a.wraps,
		},
		TotalSeconds: a.cumulative + uint64(a.last),
	}
}

// Restore replaces the accumulator state, e.g. from a database checkpoint.
func (a *Accumulator) Restore(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cumulative = s.CumulativeSeconds
	a.last = s.LastObservedSeconds
	a.wraps = s.Wraps
}
