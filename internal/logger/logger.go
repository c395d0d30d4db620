// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the
// connector runtime. Output is JSON for machine consumption; the level is
// adjustable at startup.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// slog.Level. Unknown names return an error.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithDatasource returns a logger with datasource context.
func WithDatasource(datasourceID string) *slog.Logger {
	return Logger.With("datasource_id", datasourceID)
}

// WithRequest returns a logger with execution request context.
func WithRequest(requestID string, feature string) *slog.Logger {
	return Logger.With("request_id", requestID, "feature", feature)
}
