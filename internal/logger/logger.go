// Package logger holds the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
)

// Log is usable immediately; main replaces it with the configured
// logger before serving.
var Log *slog.Logger

func init() {
	Initialize("info", false)
}

// Initialize builds the global logger. Unknown level strings fall back
// to info rather than failing startup.
func Initialize(level string, useJSON bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if useJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
