package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_toLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{in: "debug", expected: slog.LevelDebug},
		{in: "info", expected: slog.LevelInfo},
		{in: "warn", expected: slog.LevelWarn},
		{in: "error", expected: slog.LevelError},
		{in: "", expected: slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, toLevel(tc.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "test", entry["component"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", "text", &buf)

	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestOpenLogOutput(t *testing.T) {
	w, closer, err := OpenLogOutput("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "tienda.log")
	w, closer, err = OpenLogOutput(path)
	require.NoError(t, err)
	NewLogger("info", "text", w).Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	_, _, err = OpenLogOutput(filepath.Join(t.TempDir(), "missing", "tienda.log"))
	assert.Error(t, err)
}

func TestNewLogger_OperationContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("info", "text", &buf)

	log.InfoContext(logger.WithOperation(context.Background(), "report"), "generated")

	assert.Contains(t, buf.String(), "operation=report")
	assert.Contains(t, buf.String(), "operation_id=")
}
