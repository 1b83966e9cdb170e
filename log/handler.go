// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (h *discardHandler) WithGroup(_ string) slog.Handler              { return h }
func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler         { return h }

// leveledHandler drops records below a level that is read on every call,
// so a *slog.LevelVar can change verbosity at runtime.
type leveledHandler struct {
	slog.Handler
	level slog.Leveler
}

func (h *leveledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.Handler.Enabled(ctx, level)
}

func (h *leveledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveledHandler{h.Handler.WithAttrs(attrs), h.level}
}

func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return &leveledHandler{h.Handler.WithGroup(name), h.level}
}

// NewTerminalHandlerWithLevel returns a handler which formats records for
// human readability on a terminal, dropping records below lvl.
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Leveler, useColor bool) slog.Handler {
	return &leveledHandler{ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor), lvl}
}

// JSONHandler returns a handler which prints records of all levels in JSON format.
func JSONHandler(wr io.Writer) slog.Handler {
	return JSONHandlerWithLevel(wr, LevelTrace)
}

// JSONHandlerWithLevel returns a handler which prints records in JSON format,
// dropping records below level.
func JSONHandlerWithLevel(wr io.Writer, level slog.Leveler) slog.Handler {
	return &leveledHandler{ethlog.JSONHandlerWithLevel(wr, LevelTrace), level}
}

// LogfmtHandlerWithLevel returns a logfmt handler dropping records below level.
func LogfmtHandlerWithLevel(wr io.Writer, level slog.Leveler) slog.Handler {
	return &leveledHandler{ethlog.LogfmtHandlerWithLevel(wr, LevelTrace), level}
}
