package logs

import (
	"log/slog"
	"os"
	"strings"
)

// GetLoggerFromLevel returns a text handler logger on stderr at the
// given level.
func GetLoggerFromLevel(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GetLoggerFromString maps a level name to a logger, defaulting to INFO
// on anything unrecognized.
func GetLoggerFromString(level string) *slog.Logger {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return GetLoggerFromLevel(slog.LevelDebug)
	case "WARN", "WARNING":
		return GetLoggerFromLevel(slog.LevelWarn)
	case "ERROR":
		return GetLoggerFromLevel(slog.LevelError)
	default:
		return GetLoggerFromLevel(slog.LevelInfo)
	}
}
