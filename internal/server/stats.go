package server

import (
	"sync/atomic"
)

// RecorderStats collects sample persistence statistics.
// All methods are safe for concurrent use.
type RecorderStats struct {
	samplesTotal   atomic.Uint64
	wrapsSeen      atomic.Uint64
	recordErrors   atomic.Uint64
	checkpoints    atomic.Uint64
	prunedTotal    atomic.Uint64
	writesTotal    atomic.Uint64
	writeLatencyNs atomic.Uint64
}

// NewRecorderStats creates a new statistics collector.
func NewRecorderStats() *RecorderStats {
	return &RecorderStats{}
}

// RecordSample counts one sampler reading.
func (s *RecorderStats) RecordSample(wrapped bool) {
	s.samplesTotal.Add(1)
	if wrapped {
		s.wrapsSeen.Add(1)
	}
}

// RecordError counts a failed database write.
func (s *RecorderStats) RecordError() {
	s.recordErrors.Add(1)
}

// RecordCheckpoint counts a persisted accumulator checkpoint.
func (s *RecorderStats) RecordCheckpoint() {
	s.checkpoints.Add(1)
}

// RecordPruned adds n removed history rows.
func (s *RecorderStats) RecordPruned(n int64) {
	if n > 0 {
		s.prunedTotal.Add(uint64(n))
	}
}

// RecordWrite counts a successful sample write that took ns nanoseconds.
func (s *RecorderStats) RecordWrite(ns int64) {
	s.writesTotal.Add(1)
	if ns > 0 {
		s.writeLatencyNs.Add(uint64(ns))
	}
}

// RecorderStatsSnapshot is a point-in-time snapshot of RecorderStats.
type RecorderStatsSnapshot struct {
	SamplesTotal uint64
	WritesTotal  uint64
	WrapsSeen    uint64
	RecordErrors uint64
	Checkpoints  uint64
	PrunedTotal  uint64
	AvgWriteMs   float64
}

// Snapshot returns the current statistics.
func (s *RecorderStats) Snapshot() RecorderStatsSnapshot {
	writes := s.writesTotal.Load()
	latencyNs := s.writeLatencyNs.Load()

	avgWriteMs := 0.0
	if writes > 0 {
		avgWriteMs = float64(latencyNs) / float64(writes) / 1e6
	}

	return RecorderStatsSnapshot{
		SamplesTotal: s.samplesTotal.Load(),
		WritesTotal:  writes,
		WrapsSeen:    s.wrapsSeen.Load(),
		RecordErrors: s.recordErrors.Load(),
		Checkpoints:  s.checkpoints.Load(),
		PrunedTotal:  s.prunedTotal.Load(),
		AvgWriteMs:   avgWriteMs,
	}
}
