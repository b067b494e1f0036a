package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/arena/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_LevelGatesDebug(t *testing.T) {
	for _, level := range []string{"info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "level %q must suppress debug", level)
	}
}

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNewLogger_WritesServiceFieldToOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	logger.Info("match started")
	_ = logger.Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, ServiceName, entries[0]["service"])
	assert.Equal(t, "match started", entries[0]["msg"])
}

func TestNewLogger_SamplesRepeatedMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.log")
	logger, err := NewLogger(config.LoggingConfig{
		Level:    "debug",
		Format:   "json",
		Output:   path,
		Sampling: config.SamplingConfig{Initial: 2, Thereafter: 0},
	})
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		logger.Debug("dice roll")
	}
	_ = logger.Sync()

	n := len(readEntries(t, path))
	assert.GreaterOrEqual(t, n, 2)
	assert.Less(t, n, 50, "repeated entries must be sampled")
}

func TestNewLogger_SamplingDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		logger.Debug("dice roll")
	}
	_ = logger.Sync()
	assert.Len(t, readEntries(t, path), 20)
}
