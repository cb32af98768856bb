package errors

import (
	"context"
	"log/slog"
)

// LogHandler is an ErrorHandler that writes reports through slog.
//
// Expected degradations (zero width during construction, ignored
// out-of-range values, missing haptic hardware) are logged at debug level;
// everything else at error level.
type LogHandler struct {
	// Logger receives the records. Nil uses slog.Default().
	Logger *slog.Logger
	// Verbose enables stack traces on panics.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a WheelError.
func (h *LogHandler) HandleError(err *WheelError) {
	if err == nil {
		return
	}
	level := slog.LevelError
	switch err.Kind {
	case KindConfig, KindRange, KindHaptic:
		level = slog.LevelDebug
	}
	h.logger().Log(context.Background(), level, "wheel error",
		"op", err.Op, "kind", err.Kind.String(), "error", err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	args := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		args = append(args, "stack", err.StackTrace)
	}
	h.logger().Error("wheel panic", args...)
}
