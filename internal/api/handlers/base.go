// Package handlers implements the REST API endpoint handlers for uptimed.
//
// REST API Endpoints:
//
// System Health:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Process statistics, sampler settings, history size
//
// Uptime:
//   - GET /api/v1/uptime - Accumulator snapshot with clock and period strings
//   - GET /api/v1/uptime/history?limit=N - Recent samples, newest first
//
// Tools:
//   - GET /api/v1/format/:seconds - Render a second count with every formatter
//   - GET /api/v1/codec/encode?s= - URL form encode
//   - GET /api/v1/codec/decode?s= - URL form decode
//
// Authentication:
//
// When api.api_key is configured every endpoint requires the X-API-Key header.
package handlers

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jroosing/apphelpers/internal/config"
	"github.com/jroosing/apphelpers/internal/database"
	"github.com/jroosing/apphelpers/internal/uptime"
)

// ErrNoHistory is reported when history endpoints are used without a database.
var ErrNoHistory = errors.New("sample history is disabled (database.path not set)")

// ErrNotSampling is reported before the runner has attached an accumulator.
var ErrNotSampling = errors.New("uptime accumulator not running")

// RecorderStatsSnapshot contains a point-in-time snapshot of sample
// persistence statistics.
type RecorderStatsSnapshot struct {
	SamplesTotal uint64
	WritesTotal  uint64
	WrapsSeen    uint64
	RecordErrors uint64
	Checkpoints  uint64
	PrunedTotal  uint64
	AvgWriteMs   float64
}

// RecorderStatsFunc is a function that returns recorder statistics.
type RecorderStatsFunc func() RecorderStatsSnapshot

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.DB
	logger    *slog.Logger
	startTime time.Time

	// Runtime components (set after the sampler starts)
	accumulator   *uptime.Accumulator
	sampler       *uptime.Sampler
	recorderStats RecorderStatsFunc
	buildTime     time.Time
	mu            sync.RWMutex
}

// New creates a new Handler. db may be nil when history is disabled.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

// DB returns the database connection for handlers that need it.
func (h *Handler) DB() *database.DB {
	return h.db
}

// SetAccumulator attaches the running accumulator.
func (h *Handler) SetAccumulator(acc *uptime.Accumulator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accumulator = acc
}

// GetAccumulator retrieves the accumulator with safe read access.
func (h *Handler) GetAccumulator() *uptime.Accumulator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accumulator
}

// SetSampler attaches the running sampler so the latest reading can be served.
func (h *Handler) SetSampler(s *uptime.Sampler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sampler = s
}

// GetSampler retrieves the sampler.
func (h *Handler) GetSampler() *uptime.Sampler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sampler
}

// SetRecorderStatsFunc sets the function to retrieve recorder statistics.
func (h *Handler) SetRecorderStatsFunc(fn RecorderStatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recorderStats = fn
}

// GetRecorderStatsFunc retrieves the recorder statistics function.
func (h *Handler) GetRecorderStatsFunc() RecorderStatsFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.recorderStats
}

// SetBuildTime records when the binary was built. The zero time hides it.
func (h *Handler) SetBuildTime(t time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buildTime = t
}

func (h *Handler) getBuildTime() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buildTime
}
