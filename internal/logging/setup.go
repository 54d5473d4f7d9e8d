package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/slog-logfilter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // "json" (default) or "text"
	File   string // optional path; when set, logs rotate via lumberjack
}

// Setup configures the process-wide logger.
// When Options.File is set, output goes to a size-rotated file instead of stdout.
func Setup(o Options) *slog.Logger {
	level := parseLevel(o.Level)

	var out io.Writer = os.Stdout
	if o.File != "" {
		out = &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	opts := []logfilter.Option{
		logfilter.WithLevel(level),
		logfilter.WithOutput(out),
	}

	if o.Format == "text" {
		opts = append(opts, logfilter.WithFormat("text"))
	} else {
		opts = append(opts, logfilter.WithFormat("json"))
	}

	logger := logfilter.New(opts...)
	slog.SetDefault(logger)
	return logger
}

func SetLevel(level slog.Level) {
	logfilter.SetLevel(level)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
