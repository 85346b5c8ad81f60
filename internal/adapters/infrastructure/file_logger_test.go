package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

var _ ports.Logger = (*FileLoggerAdapter)(nil)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line should be valid JSON: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestFileLoggerAdapter_NewFileLoggerAdapter(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		logger, err := NewFileLoggerAdapter("")

		assert.Nil(t, logger)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "log file path cannot be empty")
	})

	t.Run("CreatesNestedDirectories", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "deep", "nested", "weather_provider.log")

		logger, err := NewFileLoggerAdapter(logPath)

		require.NoError(t, err)
		assert.Equal(t, logPath, logger.Path())
		assert.FileExists(t, logPath)
		assert.NoError(t, logger.Close())
		assert.DirExists(t, filepath.Dir(logPath))
	})
}

func TestFileLoggerAdapter_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		log   func(l *FileLoggerAdapter, msg string, fields ...ports.Field)
	}{
		{"DEBUG", (*FileLoggerAdapter).Debug},
		{"INFO", (*FileLoggerAdapter).Info},
		{"WARN", (*FileLoggerAdapter).Warn},
		{"ERROR", (*FileLoggerAdapter).Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "test.log")
			logger, err := NewFileLoggerAdapter(logPath)
			require.NoError(t, err)
			defer logger.Close()

			tt.log(logger, "Weather API request completed")

			entries := readLogLines(t, logPath)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
			assert.Equal(t, "Weather API request completed", entries[0]["msg"])

			timestamp, ok := entries[0]["ts"].(string)
			require.True(t, ok)
			_, err = time.Parse(time.RFC3339Nano, timestamp)
			assert.NoError(t, err)
		})
	}
}

func TestFileLoggerAdapter_TrafficFieldsAreTopLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "traffic.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	defer logger.Close()
	logger.now = func() time.Time { return time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC) }

	logger.Info("Weather API request completed",
		ports.F("provider", "openweathermap"),
		ports.F("endpoint", "forecast"),
		ports.F("city", "Montevideo"),
		ports.F("country", "uy"),
		ports.F("event", "response"),
		ports.F("status", 200),
		ports.F("duration_ms", int64(125)),
		ports.F("items", 40),
		ports.F("request_id", "abc"))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "2024-01-01T10:30:00Z", entry["ts"])
	assert.Equal(t, "openweathermap", entry["provider"])
	assert.Equal(t, "forecast", entry["endpoint"])
	assert.Equal(t, "Montevideo", entry["city"])
	assert.Equal(t, "uy", entry["country"])
	assert.Equal(t, "response", entry["event"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, float64(125), entry["duration_ms"])
	assert.Equal(t, float64(40), entry["items"])
	assert.Equal(t, map[string]interface{}{"request_id": "abc"}, entry["extra"])
	assert.NotContains(t, entry, "error")
}

func TestFileLoggerAdapter_ErrorFieldsAreStrings(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "errors.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	defer logger.Close()

	logger.Error("Weather API request failed",
		ports.F("status", 404),
		ports.F("error", errors.NewCityNotFoundError("atlantis", "uy")),
		ports.F("cause", errors.NewCacheError("down", nil)))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(404), entries[0]["status"])
	assert.Contains(t, entries[0]["error"], "atlantis")
	extra, ok := entries[0]["extra"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, extra["cause"], "down")
}

func TestFileLoggerAdapter_MistypedKnownFieldGoesToExtra(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mistyped.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("Weather API request completed", ports.F("status", "ok"))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], "status")
	assert.Equal(t, map[string]interface{}{"status": "ok"}, entries[0]["extra"])
}

func TestFileLoggerAdapter_ConcurrentLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "concurrent.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	defer logger.Close()

	const goroutines, perGoroutine = 10, 5

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				logger.Info(fmt.Sprintf("Message from goroutine %d", id),
					ports.F("endpoint", "weather"),
					ports.F("items", j))
			}
		}(i)
	}
	wg.Wait()

	entries := readLogLines(t, logPath)
	assert.Len(t, entries, goroutines*perGoroutine)
	for _, entry := range entries {
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "weather", entry["endpoint"])
		assert.Contains(t, entry, "items")
	}
}

func TestFileLoggerAdapter_AppendMode(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")
	first, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	first.Info("First message")
	require.NoError(t, first.Close())

	second, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	defer second.Close()
	second.Info("Second message")

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 2)
	assert.Equal(t, "First message", entries[0]["msg"])
	assert.Equal(t, "Second message", entries[1]["msg"])

	if runtime.GOOS != "windows" {
		info, err := os.Stat(logPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}
}

func TestFileLoggerAdapter_WritesAfterCloseAreDropped(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "closed.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)

	logger.Info("kept")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
	logger.Info("dropped")

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
}

func TestFileLoggerAdapter_InvalidJSONHandling(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "invalid.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("Test message", ports.F("channel", make(chan int)))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "failed to marshal log entry", entries[0]["msg"])
	assert.Equal(t, "ERROR", entries[0]["level"])
}

func BenchmarkFileLoggerAdapter_Info(b *testing.B) {
	logger, err := NewFileLoggerAdapter(filepath.Join(b.TempDir(), "benchmark.log"))
	require.NoError(b, err)
	defer logger.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("Benchmark message",
				ports.F("provider", "openweathermap"),
				ports.F("city", "montevideo"))
		}
	})
}
