// Package errors provides structured error reporting for the wheel packages.
//
// None of the wheel operations return these errors to the embedding
// application. Invalid geometry, out-of-range values, missing haptic hardware
// and unavailable fling strategies all degrade to a no-op or a fallback; the
// underlying cause is reported to the active [ErrorHandler] so hosts can log
// or surface it.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates invalid geometry or configuration, such as a zero width.
	KindConfig
	// KindRange indicates an input outside its accepted range.
	KindRange
	// KindHaptic indicates the haptic device could not deliver a pulse.
	KindHaptic
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindTransport indicates a mirror transport failure.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindRange:
		return "range"
	case KindHaptic:
		return "haptic"
	case KindPanic:
		return "panic"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

var (
	// ErrZeroWidth is reported when geometry is applied before the widget has an area.
	ErrZeroWidth = stderrors.New("widget has no width")
	// ErrOutOfRange is reported when a value outside [-1, 1] is ignored.
	ErrOutOfRange = stderrors.New("value out of range [-1, 1]")
	// ErrHapticUnavailable is reported when no haptic device can be opened.
	ErrHapticUnavailable = stderrors.New("haptic device unavailable")
	// ErrInvalidConfig is reported for tick counts or rotation factors below one.
	ErrInvalidConfig = stderrors.New("invalid configuration")
)

// WheelError represents a structured error in the wheel packages.
type WheelError struct {
	// Op is the operation that failed (e.g., "wheel.SetValue").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WheelError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WheelError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.StepFrame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the wheel packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WheelError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
