package server

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jroosing/apphelpers/internal/database"
	"github.com/jroosing/apphelpers/internal/uptime"
)

// Recorder persists sampler readings. Every CheckpointEvery samples it saves
// the accumulator state and trims the history to MaxSamples.
//
// A nil DB turns every write into a no-op; stats are still collected.
type Recorder struct {
	Logger          *slog.Logger
	DB              *database.DB
	Accumulator     *uptime.Accumulator
	Clock           clockwork.Clock
	MaxSamples      int
	CheckpointEvery int
	Stats           *RecorderStats

	sinceCheckpoint atomic.Int64
}

// HandleSample is an uptime.SampleHandler.
func (r *Recorder) HandleSample(ctx context.Context, s uptime.Sample) {
	if r.Stats != nil {
		r.Stats.RecordSample(s.Wrapped)
	}
	if r.DB == nil {
		return
	}

	start := time.Now()
	if err := r.DB.RecordSample(ctx, s); err != nil {
		r.recordError("recorder: failed to record sample", err)
		return
	}
	if r.Stats != nil {
		r.Stats.RecordWrite(time.Since(start).Nanoseconds())
	}

	every := int64(r.CheckpointEvery)
	if every <= 0 {
		every = 1
	}
	// Wraps are checkpointed immediately.
	if r.sinceCheckpoint.Add(1) >= every || s.Wrapped {
		r.sinceCheckpoint.Store(0)
		r.Checkpoint(ctx)
		r.prune(ctx)
	}
}

// Checkpoint saves the accumulator state immediately.
func (r *Recorder) Checkpoint(ctx context.Context) {
	if r.DB == nil || r.Accumulator == nil {
		return
	}
	state := r.Accumulator.Snapshot().State
	if err := r.DB.SaveCheckpoint(ctx, state, r.now()); err != nil {
		r.recordError("recorder: failed to save checkpoint", err)
		return
	}
	if r.Stats != nil {
		r.Stats.RecordCheckpoint()
	}
	r.logger().Debug("recorder: checkpoint saved",
		"cumulative_seconds", state.CumulativeSeconds,
		"last_observed_seconds", state.LastObservedSeconds,
		"wraps", state.Wraps,
	)
}

func (r *Recorder) prune(ctx context.Context) {
	if r.MaxSamples <= 0 {
		return
	}
	n, err := r.DB.PruneSamples(ctx, r.MaxSamples)
	if err != nil {
		r.recordError("recorder: failed to prune samples", err)
		return
	}
	if r.Stats != nil {
		r.Stats.RecordPruned(n)
	}
	if n > 0 {
		r.logger().Debug("recorder: pruned samples", "removed", n, "kept", r.MaxSamples)
	}
}

func (r *Recorder) recordError(msg string, err error) {
	if r.Stats != nil {
		r.Stats.RecordError()
	}
	r.logger().Error(msg, "error", err)
}

func (r *Recorder) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock.Now()
}

func (r *Recorder) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
