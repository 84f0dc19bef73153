// Package api_test provides behavior tests for the API package.
package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jroosing/apphelpers/internal/api"
	"github.com/jroosing/apphelpers/internal/api/models"
	"github.com/jroosing/apphelpers/internal/config"
	"github.com/jroosing/apphelpers/internal/database"
	"github.com/jroosing/apphelpers/internal/uptime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Sampler: config.SamplerConfig{
			Source:   "monotonic",
			Interval: time.Second,
		},
		API: config.APIConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    8080,
			APIKey:  "",
		},
	}
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ============================================================================
// Server Creation Tests
// ============================================================================

func TestNew_CreatesServer(t *testing.T) {
	cfg := createTestConfig()

	server := api.New(cfg, nil, nil)

	assert.NotNil(t, server)
}

func TestNew_PanicsOnNilConfig(t *testing.T) {
	assert.Panics(t, func() {
		api.New(nil, nil, nil)
	})
}

func TestServer_Addr(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Host = "0.0.0.0"
	cfg.API.Port = 9090

	server := api.New(cfg, nil, nil)

	assert.Equal(t, "0.0.0.0:9090", server.Addr())
}

func TestServer_Engine(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	engine := server.Engine()

	assert.NotNil(t, engine)
}

// ============================================================================
// Routes Tests
// ============================================================================

func TestRoutes_HealthEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestRoutes_StatsEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ServerStatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Uptime)
}

func TestRoutes_UptimeEndpoint_NotSampling(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/uptime", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_UptimeEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	acc := uptime.NewAccumulator(uptime.State{})
	acc.Accumulate(10000)
	acc.Accumulate(60000)
	acc.Accumulate(5000)
	server.Handler().SetAccumulator(acc)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/uptime", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.UptimeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, uint64(65), resp.TotalSeconds)
	assert.Equal(t, uint64(1), resp.Wraps)
	assert.Equal(t, "00:01:05", resp.Clock)
	assert.Equal(t, "1m 5s", resp.Period)
	assert.Equal(t, "1m5s", resp.Dense)
}

func TestRoutes_HistoryEndpoint_NoDatabase(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/uptime/history", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_HistoryEndpoint(t *testing.T) {
	cfg := createTestConfig()
	db, err := database.Open(filepath.Join(t.TempDir(), "uptime.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, raw := range []uint32{10000, 60000, 5000} {
		s := uptime.Sample{
			At:      base.Add(time.Duration(i) * time.Second),
			Reading: uptime.Reading{RawTickMs: raw, Seconds: uptime.SecondsFromMillis(raw), Wrapped: i == 2},
		}
		require.NoError(t, db.RecordSample(ctx, s))
	}

	server := api.New(cfg, db, nil)
	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/uptime/history?limit=2", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.HistoryResponse
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, uint32(5000), resp.Samples[0].RawTickMs)
	assert.True(t, resp.Samples[0].Wrapped)
	assert.Equal(t, uint32(60000), resp.Samples[1].RawTickMs)
}

func TestRoutes_FormatEndpoint(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/format/288425", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.FormatResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "08:07:05", resp.Clock)
	assert.Equal(t, "3d 8h 7m 5s", resp.Period)
	assert.Equal(t, "3d8h7m5s", resp.Dense)
	assert.Equal(t, "04.01.1970 08:07:05", resp.EpochDate)
}

// ============================================================================
// API Key Protection Tests
// ============================================================================

func TestRoutes_WithAPIKey_ValidKey(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.APIKey = "secret-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Api-Key", "secret-key")
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_WithAPIKey_InvalidKey(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.APIKey = "secret-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Api-Key", "wrong-key")
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_WithAPIKey_MissingKey(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.APIKey = "secret-key"
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	// No X-API-Key header
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_NoAPIKey_NoAuth(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.APIKey = "" // No API key configured
	server := api.New(cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()

	server.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// ============================================================================
// Server Lifecycle Tests
// ============================================================================

func TestServer_Shutdown(t *testing.T) {
	cfg := createTestConfig()
	cfg.API.Port = 0 // Let the OS pick a port
	server := api.New(cfg, nil, nil)

	// Shutdown should not error even if never started
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := server.Shutdown(ctx)
	assert.NoError(t, err)
}

// ============================================================================
// Not Found Tests
// ============================================================================

func TestRoutes_NotFound(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodGet, "/api/v1/nonexistent", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ============================================================================
// Method Tests
// ============================================================================

func TestRoutes_PostUptime_NotFound(t *testing.T) {
	cfg := createTestConfig()
	server := api.New(cfg, nil, nil)

	w := performRequest(server.Engine(), http.MethodPost, "/api/v1/uptime", `{}`)

	// gin answers 404 for unregistered methods unless HandleMethodNotAllowed is set
	assert.Equal(t, http.StatusNotFound, w.Code)
}
