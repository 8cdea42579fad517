package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Logger defines the structured logging surface used across the service.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	With(args ...any) Logger
}

type SlogLogger struct {
	logger *slog.Logger
}

// New builds a logger writing to stdout. format is "json" or "text".
func New(level, format string) Logger {
	return NewWithWriter(os.Stdout, level, format)
}

func NewWithWriter(w io.Writer, level, format string) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

// Slog exposes the underlying handler chain, e.g. for http.Server.ErrorLog.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// ErrorLog adapts l for APIs that take a *log.Logger, such as
// http.Server.ErrorLog. Lines are logged at error level.
func ErrorLog(l Logger) *log.Logger {
	if sl, ok := l.(*SlogLogger); ok {
		return slog.NewLogLogger(sl.Slog().Handler(), slog.LevelError)
	}
	return log.New(errorWriter{l}, "", 0)
}

type errorWriter struct{ l Logger }

func (w errorWriter) Write(p []byte) (int, error) {
	w.l.Error(strings.TrimSpace(string(p)))
	return len(p), nil
}

// Nop discards everything. Tests use it.
func Nop() Logger {
	return NewWithWriter(io.Discard, "error", "text")
}
