package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/wxtools/internal/config"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Output goes to stderr so it never interleaves with command output on stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

// NewLoggerFromEnv builds a stderr logger from LOG_LEVEL and LOG_FORMAT alone,
// for commands that need no other configuration.
func NewLoggerFromEnv() *slog.Logger {
	return newLoggerFromEnv(os.Stderr)
}

func newLoggerFromEnv(w io.Writer) *slog.Logger {
	return newLogger(w, sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"), sharedcfg.EnvOrDefault("LOG_FORMAT", "text"))
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
