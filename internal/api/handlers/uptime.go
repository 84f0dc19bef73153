package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/apphelpers/internal/api/models"
	"github.com/jroosing/apphelpers/internal/helpers"
	"github.com/jroosing/apphelpers/internal/timefmt"
	"github.com/jroosing/apphelpers/internal/uptime"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// Uptime returns the accumulator snapshot and its clock and period renderings.
func (h *Handler) Uptime(c *gin.Context) {
	acc := h.GetAccumulator()
	if acc == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: ErrNotSampling.Error()})
		return
	}

	snap := acc.Snapshot()
	resp := models.UptimeResponse{
		TotalSeconds:        snap.TotalSeconds,
		CumulativeSeconds:   snap.CumulativeSeconds,
		LastObservedSeconds: snap.LastObservedSeconds,
		Wraps:               snap.Wraps,
		Clock:               timefmt.FormatClock(snap.TotalSeconds),
		Period:              timefmt.FormatPeriod(snap.TotalSeconds),
		Dense:               timefmt.FormatPeriodDense(snap.TotalSeconds),
	}

	if s := h.GetSampler(); s != nil {
		if latest, ok := s.Latest(); ok {
			sr := toSampleResponse(latest)
			resp.LastSample = &sr
		}
	}

	c.JSON(http.StatusOK, resp)
}

// History returns recent samples, newest first. limit defaults to 100 and
// values outside 1..1000 fall back to the default.
func (h *Handler) History(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: ErrNoHistory.Error()})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = helpers.Sanitize(n, defaultHistoryLimit, 1, maxHistoryLimit)
	}

	samples, err := h.db.RecentSamples(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("api: failed to read samples", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read history"})
		return
	}

	resp := models.HistoryResponse{
		Samples: make([]models.SampleResponse, 0, len(samples)),
		Count:   len(samples),
	}
	for _, s := range samples {
		resp.Samples = append(resp.Samples, toSampleResponse(s))
	}

	c.JSON(http.StatusOK, resp)
}

func toSampleResponse(s uptime.Sample) models.SampleResponse {
	return models.SampleResponse{
		At:           s.At,
		RawTickMs:    s.RawTickMs,
		Seconds:      s.Seconds,
		TotalSeconds: s.TotalSeconds,
		Wrapped:      s.Wrapped,
	}
}
