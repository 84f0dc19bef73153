package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/apphelpers/internal/api/models"
	"github.com/jroosing/apphelpers/internal/timefmt"
)

// Health returns server health status. With a database attached the
// connection is pinged as well.
func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Health(c.Request.Context()); err != nil {
			h.logger.Warn("api: database health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, models.StatusResponse{Status: "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats returns runtime statistics including memory, goroutines and the
// sampler configuration.
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	secs := uint64(time.Since(h.startTime) / time.Second)

	resp := models.ServerStatsResponse{
		Uptime:        timefmt.FormatPeriod(secs),
		UptimeClock:   timefmt.FormatClock(secs),
		UptimeSeconds: int64(secs),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
	}

	if bt := h.getBuildTime(); !bt.IsZero() {
		resp.BuildTime = &bt
	}

	if h.cfg != nil {
		resp.Sampler.Source = h.cfg.Sampler.Source
		resp.Sampler.Interval = h.cfg.Sampler.Interval.String()
		resp.Sampler.OffsetMs = h.cfg.Sampler.OffsetMs
	}
	if acc := h.GetAccumulator(); acc != nil {
		resp.Sampler.Wraps = acc.Snapshot().Wraps
	}
	if s := h.GetSampler(); s != nil {
		_, resp.Sampler.HasSampled = s.Latest()
	}

	if fn := h.GetRecorderStatsFunc(); fn != nil {
		rs := fn()
		resp.Recorder = &models.RecorderStatsResponse{
			SamplesTotal: rs.SamplesTotal,
			WritesTotal:  rs.WritesTotal,
			WrapsSeen:    rs.WrapsSeen,
			RecordErrors: rs.RecordErrors,
			Checkpoints:  rs.Checkpoints,
			PrunedTotal:  rs.PrunedTotal,
			AvgWriteMs:   rs.AvgWriteMs,
		}
	}

	if h.db != nil {
		n, err := h.db.CountSamples(c.Request.Context())
		if err != nil {
			h.logger.Error("api: failed to count samples", "error", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read history"})
			return
		}
		resp.History = &models.HistoryStatsResponse{SamplesStored: n}
		if h.cfg != nil {
			resp.History.MaxSamples = h.cfg.Database.MaxSamples
		}
	}

	c.JSON(http.StatusOK, resp)
}
