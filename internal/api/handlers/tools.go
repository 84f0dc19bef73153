package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/apphelpers/internal/api/models"
	"github.com/jroosing/apphelpers/internal/timefmt"
	"github.com/jroosing/apphelpers/internal/urlcodec"
)

// Format renders the :seconds path parameter with every duration formatter.
func (h *Handler) Format(c *gin.Context) {
	secs, err := strconv.ParseUint(c.Param("seconds"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "seconds must be a non-negative integer"})
		return
	}

	resp := models.FormatResponse{
		Seconds: secs,
		Clock:   timefmt.FormatClock(secs),
		Period:  timefmt.FormatPeriod(secs),
		Dense:   timefmt.FormatPeriodDense(secs),
	}
	if secs <= math.MaxUint32 {
		resp.EpochDate = timefmt.FormatEpochDate(uint32(secs))
	}

	c.JSON(http.StatusOK, resp)
}

// Encode URL form encodes the s query parameter.
func (h *Handler) Encode(c *gin.Context) {
	in := c.Query("s")
	c.JSON(http.StatusOK, models.CodecResponse{Input: in, Output: urlcodec.Encode(in)})
}

// Decode URL form decodes the s query parameter.
//
// gin already unescapes the query string once, so clients must escape the
// encoded value again (e.g. %2541 for "%41").
func (h *Handler) Decode(c *gin.Context) {
	in := c.Query("s")
	out, err := urlcodec.Decode(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.CodecResponse{Input: in, Output: out})
}
