// Package bootstrap builds process-wide dependencies such as the logger.
package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/platform/logger"
)

// NewLogger creates a new slog.Logger instance with the specified log level and format writing to w.
// Records logged with an operation context carry the operation name and ID.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	var logHandler slog.Handler
	if format == "json" {
		logHandler = slog.NewJSONHandler(w, loggerOpts)
	} else {
		logHandler = slog.NewTextHandler(w, loggerOpts)
	}
	return slog.New(logger.NewContextHandler(logHandler))
}

// OpenLogOutput resolves a configured log output. "stderr" and "stdout" map to the process streams,
// anything else is a file opened for appending. Closing the returned closer never closes a process stream.
func OpenLogOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", output, err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
