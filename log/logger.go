// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync/atomic"
)

// Levels understood by the handlers. Trace and Crit extend the slog set.
const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12
)

// Legacy verbosity values, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// FromLegacyLevel converts a numeric verbosity into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case LegacyLevelCrit:
		return LevelCrit
	case LegacyLevelError:
		return LevelError
	case LegacyLevelWarn:
		return LevelWarn
	case LegacyLevelInfo:
		return LevelInfo
	case LegacyLevelDebug:
		return LevelDebug
	}
	if lvl > LegacyLevelTrace {
		return LevelTrace
	}
	if lvl < LegacyLevelCrit {
		return LevelCrit
	}
	return LevelTrace
}

// Logger writes key/value pairs to a handler.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes
	With(ctx ...any) Logger

	// Log logs a message at the specified level with context key/value pairs
	Log(level slog.Level, msg string, ctx ...any)

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// Crit logs a message at the crit level and exits the process
	Crit(msg string, ctx ...any)

	// Enabled reports whether l emits log records at the given level.
	Enabled(level slog.Level) bool

	// Handler returns the underlying handler of the inner logger.
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger with the specified handler set
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Log(level slog.Level, msg string, ctx ...any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.Log(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.Log(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.Log(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.Log(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.Log(LevelError, msg, ctx...) }
func (l *logger) Crit(msg string, ctx ...any) {
	l.Log(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (l *logger) Enabled(level slog.Level) bool {
	return l.inner.Enabled(context.Background(), level)
}

func (l *logger) Handler() slog.Handler {
	return l.inner.Handler()
}

var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger carrying ctx. The root logger is resolved on
// every call, so loggers created at package init follow later SetDefault calls.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) With(ctx ...any) Logger {
	return &lazyLogger{ctx: slices.Concat(l.ctx, ctx)}
}

func (l *lazyLogger) Log(level slog.Level, msg string, ctx ...any) {
	Root().Log(level, msg, slices.Concat(l.ctx, ctx)...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.Log(LevelTrace, msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.Log(LevelDebug, msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.Log(LevelInfo, msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.Log(LevelWarn, msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.Log(LevelError, msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any) {
	l.Log(LevelCrit, msg, ctx...)
	os.Exit(1)
}

func (l *lazyLogger) Enabled(level slog.Level) bool {
	return Root().Enabled(level)
}

func (l *lazyLogger) Handler() slog.Handler {
	return Root().Handler()
}

// Convenience functions on the root logger.

func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }
