package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info(1, "add", "test message")

	// Verify
	content, err := os.ReadFile(domain.LogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[task-1]")
	assert.Contains(t, string(content), "[add]")
	assert.Contains(t, string(content), "test message")
}

func TestLogger_GlobalEntry(t *testing.T) {
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	// taskID = 0 is not tied to a task
	logger.Warn(0, "store", "degraded load")

	content, err := os.ReadFile(domain.LogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[WARN] [global] [store] degraded load")
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelWarn) // Only warn and above
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug(1, "task", "debug message")
	logger.Info(1, "task", "info message")
	logger.Warn(1, "task", "warn message")
	logger.Error(1, "task", "error message")

	// Verify debug and info are filtered
	content, err := os.ReadFile(domain.LogPath(logDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyLogDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	// Should not panic or create anything
	logger.Info(1, "task", "test message")
	logger.Debug(1, "task", "debug message")
	logger.Warn(1, "task", "warn message")
	logger.Error(1, "task", "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.Local) }
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info(42, "usecase", `task added: "my task"`)

	// Verify format
	content, err := os.ReadFile(domain.LogPath(logDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [task-42] [usecase] task added: "my task"`, lines[0])
}

func TestLogger_AppendsAcrossInstances(t *testing.T) {
	logDir := t.TempDir()

	first := New(logDir, slog.LevelInfo)
	first.Info(1, "add", "first run")
	require.NoError(t, first.Close())

	second := New(logDir, slog.LevelInfo)
	second.Info(2, "add", "second run")
	require.NoError(t, second.Close())

	content, err := os.ReadFile(domain.LogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

func TestLogger_CreateLogDir(t *testing.T) {
	// Setup - parent exists but the log dir doesn't
	logDir := filepath.Join(t.TempDir(), "state", "task-cli")

	logger := New(logDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()
	logger.Info(1, "task", "test message")

	stat, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.FileExists(t, domain.LogPath(logDir))
}

func TestLogger_Close_WithoutWrites(t *testing.T) {
	logger := New(t.TempDir(), slog.LevelInfo)
	assert.NoError(t, logger.Close())
}
