package haptics

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/wheel/pkg/errors"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

type beeper struct {
	beeps int
	err   error
}

func (b *beeper) Beep() error {
	b.beeps++
	return b.err
}

func TestServicePulse(t *testing.T) {
	var got []time.Duration
	s := NewService(Func(func(d time.Duration) error {
		got = append(got, d)
		return nil
	}), Options{})

	s.Pulse()
	s.Pulse()

	if len(got) != 2 {
		t.Fatalf("expected 2 pulses, got %d", len(got))
	}
	if got[0] != DefaultDuration {
		t.Errorf("expected duration %v, got %v", DefaultDuration, got[0])
	}
}

func TestServiceMinInterval(t *testing.T) {
	clk := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	count := 0
	s := NewService(Func(func(time.Duration) error {
		count++
		return nil
	}), Options{MinInterval: 30 * time.Millisecond, Clock: clk})

	s.Pulse()
	clk.now = clk.now.Add(10 * time.Millisecond)
	s.Pulse()
	clk.now = clk.now.Add(25 * time.Millisecond)
	s.Pulse()

	if count != 2 {
		t.Errorf("expected 2 pulses, got %d", count)
	}
	sent, dropped := s.Stats()
	if sent != 2 || dropped != 1 {
		t.Errorf("expected 2 sent and 1 dropped, got %d and %d", sent, dropped)
	}
}

func TestServiceSwallowsDeviceErrors(t *testing.T) {
	var reported *errors.WheelError
	old := errors.DefaultHandler
	errors.SetHandler(handlerFunc(func(err *errors.WheelError) { reported = err }))
	defer errors.SetHandler(old)

	s := NewService(Func(func(time.Duration) error {
		return fmt.Errorf("permission denied")
	}), Options{})
	s.Pulse()

	if reported == nil {
		t.Fatal("expected device error to be reported")
	}
	if reported.Kind != errors.KindHaptic || !errors.Is(reported, errors.ErrHapticUnavailable) {
		t.Errorf("expected haptic unavailable report, got %v", reported)
	}
	if _, dropped := s.Stats(); dropped != 1 {
		t.Errorf("expected failed pulse to count as dropped, got %d", dropped)
	}
}

func TestNilService(t *testing.T) {
	var s *Service
	s.Pulse()
}

func TestBell(t *testing.T) {
	b := &beeper{}
	s := NewService(Bell{Device: b}, Options{})
	s.Pulse()
	if b.beeps != 1 {
		t.Errorf("expected 1 beep, got %d", b.beeps)
	}

	if err := (Bell{}).Pulse(DefaultDuration); !errors.Is(err, errors.ErrHapticUnavailable) {
		t.Errorf("expected ErrHapticUnavailable, got %v", err)
	}
}

func TestClickRequiresInit(t *testing.T) {
	c := NewClick(1)
	if err := c.Pulse(DefaultDuration); !errors.Is(err, errors.ErrHapticUnavailable) {
		t.Errorf("expected ErrHapticUnavailable before Init, got %v", err)
	}
}

func TestClickToneLength(t *testing.T) {
	tone := newClickTone(clickSampleRate, 10*time.Millisecond)
	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := clickSampleRate.N(10 * time.Millisecond); total != want {
		t.Errorf("expected %d samples, got %d", want, total)
	}
}

type handlerFunc func(*errors.WheelError)

func (f handlerFunc) HandleError(err *errors.WheelError) { f(err) }
func (f handlerFunc) HandlePanic(*errors.PanicError)     {}
