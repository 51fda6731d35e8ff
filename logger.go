package scene2d

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by scene2d.
// By default scene2d produces no log output. Pass nil to restore that.
//
// Log levels used by scene2d:
//   - [slog.LevelDebug]: z-value relocation, deferred connection bookkeeping,
//     per-frame timing in debug mode
//   - [slog.LevelInfo]: render and adaptor lifecycle transitions
//   - [slog.LevelWarn]: config reload failures and rejected reloads
//
// Example:
//
//	scene2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by scene2d.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
