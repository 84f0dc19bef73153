package uptime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sample is one accumulator observation taken by a Sampler.
type Sample struct {
	At time.Time
	Reading
}

// SampleHandler is called synchronously after every successful sample.
type SampleHandler func(ctx context.Context, s Sample)

// SamplerConfig wires a Sampler to its clock, source and accumulator.
type SamplerConfig struct {
	Clock       clockwork.Clock
	Source      TickSource
	Accumulator *Accumulator
	Interval    time.Duration

	// OnSample is optional.
	OnSample SampleHandler
}

// Validate checks that all required fields are set and the interval fits in one wrap period.
func (cfg *SamplerConfig) Validate() error {
	if cfg.Clock == nil {
		return errors.New("clock is required")
	}
	if cfg.Source == nil {
		return errors.New("tick source is required")
	}
	if cfg.Accumulator == nil {
		return errors.New("accumulator is required")
	}
	if cfg.Interval <= 0 {
		return errors.New("interval must be greater than 0")
	}
	if cfg.Interval >= WrapPeriod {
		return fmt.Errorf("interval must be shorter than the wrap period (%s)", WrapPeriod)
	}
	return nil
}

// Sampler polls a TickSource on a fixed interval and feeds the readings
// into an Accumulator.
type Sampler struct {
	log *slog.Logger
	cfg *SamplerConfig

	mu     sync.RWMutex
	latest Sample
	ok     bool
}

// NewSampler validates cfg and returns a Sampler that logs to log.
func NewSampler(log *slog.Logger, cfg *SamplerConfig) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sampler{log: log, cfg: cfg}, nil
}

// Run samples immediately and then on every tick until ctx is done.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := s.cfg.Clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("sampler: context done, stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.tick(ctx)
		}
	}
}

// SampleOnce takes a single sample outside the ticker loop. A reading that
// completes after ctx is done is discarded and ctx.Err() is returned.
func (s *Sampler) SampleOnce(ctx context.Context) (Sample, error) {
	raw, err := s.cfg.Source.TickMillis(ctx)
	if err != nil {
		return Sample{}, err
	}
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	sample := Sample{
		At:      s.cfg.Clock.Now(),
		Reading: s.cfg.Accumulator.Observe(raw),
	}

	s.mu.Lock()
	s.latest = sample
	s.ok = true
	s.mu.Unlock()

	if sample.Wrapped {
		s.log.Warn("sampler: tick counter wrapped",
			"raw_tick_ms", sample.RawTickMs,
			"total_seconds", sample.TotalSeconds,
		)
	}
	if s.cfg.OnSample != nil {
		s.cfg.OnSample(ctx, sample)
	}
	return sample, nil
}

// Latest returns the most recent sample, if any has been taken.
func (s *Sampler) Latest() (Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ok
}

func (s *Sampler) tick(ctx context.Context) {
	if _, err := s.SampleOnce(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Error("sampler: failed to read tick source", "error", err)
	}
}
