package handlers_test

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/apphelpers/internal/api/handlers"
)

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/uptime", h.Uptime)
	api.GET("/uptime/history", h.History)
	api.GET("/format/:seconds", h.Format)
	api.GET("/codec/encode", h.Encode)
	api.GET("/codec/decode", h.Decode)

	return r
}
