package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Options controls which handlers Init wires together.
type Options struct {
	Dev       bool
	SentryDSN string
	// LogFile enables an additional JSON log written to a rotating file.
	LogFile string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Init initializes the global logger based on environment
// Development: Text format with Debug level
// Production: JSON format with Info level
// Optionally mirrors records to a rotating file and sends errors to Sentry
func Init(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handlers []slog.Handler

	// Base handler (always enabled)
	if opts.Dev {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if opts.LogFile != "" {
		if h := fileHandler(opts.LogFile); h != nil {
			handlers = append(handlers, h)
		}
	}

	// Optional Sentry handler (sends errors only)
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			TracesSampleRate: 1.0,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	// Use multi-handler if we have multiple, otherwise use single
	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
	return Log
}

func fileHandler(path string) slog.Handler {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		slog.Warn("log file directory unavailable, file logging disabled", "path", path, "error", err)
		return nil
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}
