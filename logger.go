package tripatch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false so callers skip
// formatting entirely.
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

// SetLogger configures the logger used by the package. By default nothing
// is logged. Passing nil restores the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: an edge or auxiliary curve fell back to a
//     degenerate construction (parallel normals, antiparallel tangents,
//     chord along a cone generator)
//   - [slog.LevelWarn]: a cone triangle was rebuilt with the generic
//     construction because its cone parameters could not be resolved
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// logFallback records a degenerate-geometry fallback at debug level.
func logFallback(edge string, reason string, p0, p1 Point) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("degenerate edge",
		slog.String("edge", edge),
		slog.String("reason", reason),
		slog.String("p0", p0.String()),
		slog.String("p1", p1.String()))
}
