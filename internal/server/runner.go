package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jroosing/apphelpers/internal/api"
	"github.com/jroosing/apphelpers/internal/api/handlers"
	"github.com/jroosing/apphelpers/internal/config"
	"github.com/jroosing/apphelpers/internal/database"
	"github.com/jroosing/apphelpers/internal/helpers"
	"github.com/jroosing/apphelpers/internal/uptime"
)

const shutdownTimeout = 5 * time.Second

// Runner orchestrates the uptime daemon startup, sampling, and shutdown.
type Runner struct {
	logger    *slog.Logger
	clock     clockwork.Clock
	source    uptime.TickSource
	buildTime time.Time
	stats     *RecorderStats

	// ready, if set, is called once every component is running.
	ready func(*Components)
}

// Components are the live parts of a running daemon.
type Components struct {
	Accumulator *uptime.Accumulator
	Sampler     *uptime.Sampler
	Recorder    *Recorder
	DB          *database.DB
	API         *api.Server
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, clock: clockwork.NewRealClock(), stats: NewRecorderStats()}
}

// SetClock replaces the wall clock used for ticking and timestamps.
func (r *Runner) SetClock(clock clockwork.Clock) {
	r.clock = clock
}

// SetSource overrides the tick source named in the config.
func (r *Runner) SetSource(src uptime.TickSource) {
	r.source = src
}

// SetBuildTime is reported by the stats endpoint.
func (r *Runner) SetBuildTime(t time.Time) {
	r.buildTime = t
}

// OnReady registers a callback invoked once all components are started.
func (r *Runner) OnReady(fn func(*Components)) {
	r.ready = fn
}

// Stats returns the recorder statistics collected by this runner.
func (r *Runner) Stats() *RecorderStats {
	return r.stats
}

// Run starts the daemon and blocks until SIGINT/SIGTERM.
//
// Lifecycle:
//  1. Open the history database (if configured) and apply migrations
//  2. Build the tick source and the accumulator, resuming from a checkpoint
//  3. Start the sampler and optionally the REST API
//  4. Wait for shutdown signal
//  5. Stop the API with a timeout and write a final checkpoint
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext runs the daemon until ctx is canceled or a component fails.
//
// Goroutine lifecycle: spawns the sampler loop and, when enabled, the HTTP
// server. The sampler has exited before the final checkpoint is written.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var db *database.DB
	if cfg.Database.Path != "" {
		var err error
		db, err = database.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	src, err := r.buildSource(cfg)
	if err != nil {
		return err
	}

	acc, err := r.buildAccumulator(ctx, cfg, db)
	if err != nil {
		return err
	}

	rec := &Recorder{
		Logger:          r.logger,
		DB:              db,
		Accumulator:     acc,
		Clock:           r.clock,
		MaxSamples:      cfg.Database.MaxSamples,
		CheckpointEvery: cfg.Database.CheckpointEvery,
		Stats:           r.stats,
	}

	sampler, err := uptime.NewSampler(r.logger, &uptime.SamplerConfig{
		Clock:       r.clock,
		Source:      src,
		Accumulator: acc,
		Interval:    cfg.Sampler.Interval,
		OnSample:    rec.HandleSample,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	r.logStartup(cfg, acc)

	errCh := make(chan error, 2)
	samplerDone := make(chan struct{})
	go func() {
		defer close(samplerDone)
		if err := sampler.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	var apiSrv *api.Server
	if cfg.API.Enabled {
		apiSrv = api.New(cfg, db, r.logger)
		h := apiSrv.Handler()
		h.SetAccumulator(acc)
		h.SetSampler(sampler)
		h.SetBuildTime(r.buildTime)
		h.SetRecorderStatsFunc(r.recorderStatsFunc())
		go func() {
			if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("api server: %w", err)
			}
		}()
		r.logger.Info("api listening", "addr", apiSrv.Addr(), "auth", cfg.API.APIKey != "")
	}

	if r.ready != nil {
		r.ready(&Components{Accumulator: acc, Sampler: sampler, Recorder: rec, DB: db, API: apiSrv})
	}

	// Wait for shutdown or error
	var runErr error
	select {
	case <-ctx.Done():
		// shutdown requested via signal
	case err := <-errCh:
		if err != nil {
			runErr = err
		}
	}
	cancelRun()
	<-samplerDone

	// Graceful shutdown
	stopCtx, cancelStop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelStop()
	if apiSrv != nil {
		if err := apiSrv.Shutdown(stopCtx); err != nil {
			r.logger.Warn("api shutdown failed", "error", err)
		}
	}
	rec.Checkpoint(stopCtx)

	snap := acc.Snapshot()
	r.logger.Info("uptimed stopped",
		"total_seconds", snap.TotalSeconds,
		"wraps", snap.Wraps,
	)
	return runErr
}

// buildSource returns the configured tick source, shifted by offset_ms.
func (r *Runner) buildSource(cfg *config.Config) (uptime.TickSource, error) {
	offset := helpers.ClampIntToUint32(cfg.Sampler.OffsetMs)
	if r.source != nil {
		if offset == 0 {
			return r.source, nil
		}
		return uptime.OffsetSource{Source: r.source, OffsetMs: offset}, nil
	}
	src, err := uptime.NewSource(cfg.Sampler.Source, offset, r.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to build tick source: %w", err)
	}
	return src, nil
}

// buildAccumulator creates the accumulator, seeded from the last checkpoint
// when resume is enabled.
func (r *Runner) buildAccumulator(ctx context.Context, cfg *config.Config, db *database.DB) (*uptime.Accumulator, error) {
	if !cfg.Sampler.Resume || db == nil {
		return uptime.NewAccumulator(uptime.State{}), nil
	}

	cp, err := db.LoadCheckpoint(ctx)
	if errors.Is(err, database.ErrNoCheckpoint) {
		r.logger.Info("no checkpoint to resume from, starting at zero")
		return uptime.NewAccumulator(uptime.State{}), nil
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("resuming from checkpoint",
		"cumulative_seconds", cp.State.CumulativeSeconds,
		"last_observed_seconds", cp.State.LastObservedSeconds,
		"wraps", cp.State.Wraps,
		"saved_at", cp.SavedAt,
	)
	return uptime.NewAccumulator(cp.State), nil
}

func (r *Runner) recorderStatsFunc() handlers.RecorderStatsFunc {
	return func() handlers.RecorderStatsSnapshot {
		s := r.stats.Snapshot()
		return handlers.RecorderStatsSnapshot{
			SamplesTotal: s.SamplesTotal,
			WritesTotal:  s.WritesTotal,
			WrapsSeen:    s.WrapsSeen,
			RecordErrors: s.RecordErrors,
			Checkpoints:  s.Checkpoints,
			PrunedTotal:  s.PrunedTotal,
			AvgWriteMs:   s.AvgWriteMs,
		}
	}
}

// logStartup logs sampler configuration at startup.
func (r *Runner) logStartup(cfg *config.Config, acc *uptime.Accumulator) {
	r.logger.Info(
		"sampler starting",
		"source", cfg.Sampler.Source,
		"interval", cfg.Sampler.Interval,
		"offset_ms", cfg.Sampler.OffsetMs,
		"history", cfg.Database.Path != "",
		"resume", cfg.Sampler.Resume,
		"total_seconds", acc.Total(),
	)
}
