package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/apphelpers/internal/api/handlers"
	"github.com/jroosing/apphelpers/internal/api/middleware"
	"github.com/jroosing/apphelpers/internal/config"
)

// RegisterRoutes mounts the /api/v1 endpoints on r, behind the API key when one is configured.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)

	api.GET("/uptime", h.Uptime)
	api.GET("/uptime/history", h.History)

	api.GET("/format/:seconds", h.Format)
	api.GET("/codec/encode", h.Encode)
	api.GET("/codec/decode", h.Decode)
}
