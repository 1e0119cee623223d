// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package life

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/life/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for life and the render package.
// By default nothing is logged.
//
// Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame details (vertex counts, frame time)
//   - [slog.LevelInfo]: lifecycle events (adapter opened, painter ready, disposed)
//   - [slog.LevelWarn]: non-fatal failures (shader link failure, release errors)
//
// Example:
//
//	life.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	render.SetLogger(l)
}

// Logger returns the current logger used by life.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// slogger returns the current logger for internal use.
func slogger() *slog.Logger {
	return loggerPtr.Load()
}
