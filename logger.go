package pointkit

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pointkit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogLoad logs the outcome of loading one document.
func (l *Logger) LogLoad(ctx context.Context, path, codecName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"codec", codecName,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"path", path,
			"codec", codecName,
		)
	}
}

// LogReduce logs the outcome of summing usage reports.
func (l *Logger) LogReduce(ctx context.Context, files int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "usage sum failed",
			"files", files,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "usage sum completed",
			"files", files,
		)
	}
}
