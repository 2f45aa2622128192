package colsaw

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/colsaw/saw"
)

// Logger wraps slog.Logger with colsaw-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTable adds a table field to the logger.
func (l *Logger) WithTable(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("table", name),
	}
}

// WithColumns adds a column count field to the logger.
func (l *Logger) WithColumns(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("columns", n),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, meta *saw.Metadata, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "table saved",
		"rows", meta.Rows,
		"columns", len(meta.Columns),
		"compression", meta.Compression,
		"generation", meta.Generation,
	)
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, rows, columns int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "table loaded",
		"rows", rows,
		"columns", columns,
	)
}

// LogDrop logs a drop operation.
func (l *Logger) LogDrop(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "drop failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "table dropped")
	}
}
