// Package log provides the leveled, structured logger used throughout the
// core. It wraps log/slog the way the teacher's client/forwarder code
// expects to call it: a package-level Default() logger plus free functions
// that take a "module" (anything with String() string, typically the
// component logging the message) and key-value pairs.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Module is any component capable of naming itself in a log line.
type Module interface {
	String() string
}

// Logger wraps an *slog.Logger with the Level threshold, so callers can
// cheaply check whether a given level would even be logged (see
// hasLogTrace in the teacher's engine.go) before building an expensive
// message.
type Logger struct {
	inner *slog.Logger
	level Level
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	SetDefault(New(LevelInfo))
}

// New constructs a Logger at the given level, writing to stderr as
// human-readable text.
func New(level Level) *Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(level),
	})
	return &Logger{inner: slog.New(h), level: level}
}

// SetDefault installs l as the package-level default logger.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Default returns the package-level default logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// Level returns the logger's configured threshold.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) log(level Level, mod Module, msg string, kv []any) {
	if Level(level) < l.level {
		return
	}
	args := make([]any, 0, len(kv)+2)
	if mod != nil {
		args = append(args, "module", mod.String())
	}
	args = append(args, kv...)
	l.inner.Log(context.Background(), slog.Level(level), msg, args...)
}

func (l *Logger) Trace(mod Module, msg string, kv ...any) { l.log(LevelTrace, mod, msg, kv) }
func (l *Logger) Debug(mod Module, msg string, kv ...any) { l.log(LevelDebug, mod, msg, kv) }
func (l *Logger) Info(mod Module, msg string, kv ...any)  { l.log(LevelInfo, mod, msg, kv) }
func (l *Logger) Warn(mod Module, msg string, kv ...any)  { l.log(LevelWarn, mod, msg, kv) }
func (l *Logger) Error(mod Module, msg string, kv ...any) { l.log(LevelError, mod, msg, kv) }
func (l *Logger) Fatal(mod Module, msg string, kv ...any) {
	l.log(LevelFatal, mod, msg, kv)
	os.Exit(1)
}

// Trace logs at LevelTrace on the default logger.
func Trace(mod Module, msg string, kv ...any) { Default().Trace(mod, msg, kv...) }

// Debug logs at LevelDebug on the default logger.
func Debug(mod Module, msg string, kv ...any) { Default().Debug(mod, msg, kv...) }

// Info logs at LevelInfo on the default logger.
func Info(mod Module, msg string, kv ...any) { Default().Info(mod, msg, kv...) }

// Warn logs at LevelWarn on the default logger.
func Warn(mod Module, msg string, kv ...any) { Default().Warn(mod, msg, kv...) }

// Error logs at LevelError on the default logger.
func Error(mod Module, msg string, kv ...any) { Default().Error(mod, msg, kv...) }

// Fatal logs at LevelFatal on the default logger and exits the process.
func Fatal(mod Module, msg string, kv ...any) { Default().Fatal(mod, msg, kv...) }
