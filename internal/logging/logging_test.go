package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/jroosing/apphelpers/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Logger Configuration Tests
// =============================================================================

func TestConfigure_DefaultConfig(t *testing.T) {
	cfg := logging.Config{
		Level: "INFO",
	}

	logger := logging.Configure(cfg)
	require.NotNil(t, logger, "Configure should return a logger")
}

func TestConfigure_AllLogLevels(t *testing.T) {
	levels := []string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"}

	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			cfg := logging.Config{Level: level}
			logger := logging.Configure(cfg)
			assert.NotNil(t, logger)
		})
	}
}

func TestConfigure_CaseInsensitiveLevel(t *testing.T) {
	levels := []string{"debug", "Debug", "DEBUG", "DeBuG"}

	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			cfg := logging.Config{Level: level}
			logger := logging.Configure(cfg)
			assert.NotNil(t, logger)
		})
	}
}

func TestConfigure_InvalidLevelDefaultsToInfo(t *testing.T) {
	cfg := logging.Config{Level: "INVALID"}
	logger := logging.Configure(cfg)
	assert.NotNil(t, logger, "Invalid level should still return a logger")
}

func TestConfigure_StructuredJSON(t *testing.T) {
	cfg := logging.Config{
		Level:            "INFO",
		Structured:       true,
		StructuredFormat: "json",
	}

	logger := logging.Configure(cfg)
	assert.NotNil(t, logger)
}

func TestConfigure_StructuredText(t *testing.T) {
	cfg := logging.Config{
		Level:            "INFO",
		Structured:       true,
		StructuredFormat: "text",
	}

	logger := logging.Configure(cfg)
	assert.NotNil(t, logger)
}

func TestConfigure_WithExtraFields(t *testing.T) {
	cfg := logging.Config{
		Level: "INFO",
		ExtraFields: map[string]string{
			"app":     "uptimed",
			"version": "1.0.0",
		},
	}

	logger := logging.Configure(cfg)
	assert.NotNil(t, logger)
}

func TestConfigure_WithPID(t *testing.T) {
	cfg := logging.Config{
		Level:      "INFO",
		IncludePID: true,
	}

	logger := logging.Configure(cfg)
	assert.NotNil(t, logger)
}

func TestConfigure_EmptyLevel(t *testing.T) {
	cfg := logging.Config{Level: ""}
	logger := logging.Configure(cfg)
	assert.NotNil(t, logger, "Empty level should default to INFO")
}

// =============================================================================
// Output Tests
// =============================================================================

func TestConfigure_JSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Configure(logging.Config{
		Level:            "DEBUG",
		Structured:       true,
		StructuredFormat: "json",
		IncludePID:       true,
		ExtraFields:      map[string]string{"app": "uptimed"},
		Output:           &buf,
	})

	logger.Debug("sample taken", "total_seconds", 65)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sample taken", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "uptimed", entry["app"])
	assert.Equal(t, float64(os.Getpid()), entry["pid"])
	assert.Equal(t, float64(65), entry["total_seconds"])
}

func TestConfigure_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Configure(logging.Config{
		Level:            "warn",
		Structured:       true,
		StructuredFormat: "text",
		Output:           &buf,
	})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("tick counter wrapped")
	assert.Contains(t, buf.String(), "tick counter wrapped")
}

func TestConfigure_ConsoleOutputHasNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Configure(logging.Config{Level: "INFO", Output: &buf})

	logger.Info("uptimed starting", "source", "monotonic")

	out := buf.String()
	assert.Contains(t, out, "uptimed starting")
	assert.Contains(t, out, "source=monotonic")
	assert.NotContains(t, out, "\x1b[")
}

func TestConfigure_ConsoleOutputHasNoColorForFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	logger := logging.Configure(logging.Config{Level: "INFO", Output: f})
	logger.Info("hello", "k", "v")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.NotContains(t, string(data), "\x1b[")
}
