package harness

import (
	"context"
	"log/slog"
)

// LevelTrace is below slog.LevelDebug: per-tick records are only written
// when a handler asks for them.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
