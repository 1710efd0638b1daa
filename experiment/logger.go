package experiment

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with experiment-specific field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithCorpus adds corpus fields to the logger.
func (l *Logger) WithCorpus(name string, items int) *Logger {
	return &Logger{
		Logger: l.Logger.With("corpus", name, "items", items),
	}
}

// WithHasher adds a hasher field to the logger.
func (l *Logger) WithHasher(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("hasher", name),
	}
}

// LogProgress logs how far a single run has got.
func (l *Logger) LogProgress(ctx context.Context, done, total int) {
	l.InfoContext(ctx, "hashing",
		"done", done,
		"total", total,
	)
}

// LogRun logs the outcome of a single run.
func (l *Logger) LogRun(ctx context.Context, res Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "run completed",
		"collisions", res.Collisions,
		"filled_buckets", res.Distribution.Filled,
		"duration", res.Duration,
	)
}

// LogReport logs a finished report.
func (l *Logger) LogReport(ctx context.Context, corpora, runs int, elapsed time.Duration) {
	l.InfoContext(ctx, "experiment completed",
		"corpora", corpora,
		"runs", runs,
		"elapsed", elapsed,
	)
}
