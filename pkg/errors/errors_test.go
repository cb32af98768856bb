package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestWheelErrorString(t *testing.T) {
	err := &WheelError{
		Op:   "wheel.SetValue",
		Kind: KindRange,
		Err:  ErrOutOfRange,
	}
	got := err.Error()
	want := "wheel.SetValue [range]: value out of range [-1, 1]"
	if got != want {
		t.Errorf("WheelError.Error() = %q, want %q", got, want)
	}
}

func TestWheelErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("layout: %w", &WheelError{Op: "wheel.Layout", Kind: KindConfig, Err: ErrZeroWidth})
	if !Is(err, ErrZeroWidth) {
		t.Error("expected wrapped error to match ErrZeroWidth")
	}
	var we *WheelError
	if !As(err, &we) {
		t.Fatal("expected As to find WheelError")
	}
	if we.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", we.Kind, KindConfig)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindRange, "range"},
		{KindHaptic, "haptic"},
		{KindPanic, "panic"},
		{KindTransport, "transport"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "engine.StepFrame"
	if got, want := err.Error(), "panic in engine.StepFrame: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *WheelError
	handler := &testHandler{
		onError: func(err *WheelError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportOp("haptics.Pulse", KindHaptic, ErrHapticUnavailable)

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "haptics.Pulse" {
		t.Errorf("Op = %q, want %q", captured.Op, "haptics.Pulse")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := &LogHandler{Logger: logger}

	h.HandleError(&WheelError{Op: "wheel.Layout", Kind: KindConfig, Err: ErrZeroWidth})
	if buf.Len() != 0 {
		t.Errorf("expected config errors below info level, got %q", buf.String())
	}

	h.HandleError(&WheelError{Op: "mirror.Serve", Kind: KindTransport, Err: fmt.Errorf("closed")})
	if !strings.Contains(buf.String(), "op=mirror.Serve") {
		t.Errorf("expected transport error to be logged, got %q", buf.String())
	}
}

type testHandler struct {
	onError func(*WheelError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *WheelError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
