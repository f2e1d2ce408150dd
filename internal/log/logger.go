package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

var CorrelatedIDKey contextKey = "correlation_id"

const LoggerKeyForContext contextKey = "logger"

// Logger writes JSON lines through slog.
type Logger struct {
	*slog.Logger
}

// NewLoggerWithJSONOutput logs to stdout at LOG_LEVEL (debug, info, warn, error; default info).
func NewLoggerWithJSONOutput() *Logger {
	return NewLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func NewLoggerWithWriter(w io.Writer) *Logger {
	return NewLogger(w, slog.LevelInfo)
}

func NewLogger(w io.Writer, level slog.Leveler) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	return l.With(string(CorrelatedIDKey), GetOrGenerateCorrelationID(ctx))
}

func GetOrGenerateCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelatedIDKey).(string); ok && id != "" {
		return id
	}

	return GenerateCorrelationID()
}

func GenerateCorrelationID() string {
	return uuid.NewString()
}

// GetLoggerInstanceFromContext prefers the request-scoped logger injected by the router.
func GetLoggerInstanceFromContext(ctx context.Context, fallbackLogger *Logger) *Logger {
	if fallbackLogger == nil {
		fallbackLogger = NewLoggerWithJSONOutput()
	}

	if ctx == nil {
		return fallbackLogger
	}

	if l, ok := ctx.Value(LoggerKeyForContext).(*Logger); ok && l != nil {
		return l
	}

	return fallbackLogger.WithCorrelationID(ctx)
}
