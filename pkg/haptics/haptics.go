// Package haptics delivers short feedback pulses when a wheel crosses a tick.
//
// Pulses are best effort. A [Service] owns one output device and may be
// shared by every wheel on screen; device failures are reported to the
// error handler at debug level and never reach the caller.
package haptics

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/wheel/pkg/animation"
	"github.com/go-drift/wheel/pkg/errors"
)

// DefaultDuration is the length of a tick pulse.
const DefaultDuration = 10 * time.Millisecond

// Output is a haptic device.
type Output interface {
	Pulse(d time.Duration) error
}

// Func adapts a function to Output.
type Func func(d time.Duration) error

// Pulse implements Output.
func (f Func) Pulse(d time.Duration) error { return f(d) }

// Nop is an Output that does nothing.
type Nop struct{}

// Pulse implements Output.
func (Nop) Pulse(time.Duration) error { return nil }

// Beeper is any device with an audible bell, such as a tcell.Screen.
type Beeper interface {
	Beep() error
}

// Bell turns terminal bells into pulses. The duration is ignored.
type Bell struct {
	Device Beeper
}

// Pulse implements Output.
func (b Bell) Pulse(time.Duration) error {
	if b.Device == nil {
		return errors.ErrHapticUnavailable
	}
	return b.Device.Beep()
}

// Options configures a Service.
type Options struct {
	// Duration of each pulse. Zero uses DefaultDuration.
	Duration time.Duration
	// MinInterval drops pulses that arrive sooner than this after the
	// previous one. Zero disables rate limiting.
	MinInterval time.Duration
	// Clock is used for rate limiting. Nil uses the animation clock.
	Clock  animation.Clock
	Logger *slog.Logger
}

// Service sends pulses to one Output.
// All methods are safe for concurrent use.
type Service struct {
	out  Output
	opts Options

	mu      sync.Mutex
	last    time.Time
	sent    int
	dropped int
}

// NewService creates a service for out. A nil out behaves like Nop.
func NewService(out Output, opts Options) *Service {
	if out == nil {
		out = Nop{}
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{out: out, opts: opts}
}

func (s *Service) now() time.Time {
	if s.opts.Clock != nil {
		return s.opts.Clock.Now()
	}
	return animation.Now()
}

// Pulse requests one pulse. It never fails.
func (s *Service) Pulse() {
	if s == nil {
		return
	}
	s.mu.Lock()
	now := s.now()
	if s.opts.MinInterval > 0 && !s.last.IsZero() && now.Sub(s.last) < s.opts.MinInterval {
		s.dropped++
		s.mu.Unlock()
		return
	}
	s.last = now
	s.mu.Unlock()

	if err := s.out.Pulse(s.opts.Duration); err != nil {
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
		errors.ReportOp("haptics.Pulse", errors.KindHaptic,
			fmt.Errorf("%w: %v", errors.ErrHapticUnavailable, err))
		return
	}
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
}

// Stats returns the number of delivered and dropped pulses.
func (s *Service) Stats() (sent, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent, s.dropped
}
