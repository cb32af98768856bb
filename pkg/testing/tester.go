package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/wheel/pkg/animation"
	"github.com/go-drift/wheel/pkg/engine"
	"github.com/go-drift/wheel/pkg/rendering"
	"github.com/go-drift/wheel/pkg/wheel"
)

const (
	// DefaultTestWidth is the default wheel width.
	DefaultTestWidth = 300
	// DefaultTestHeight is the default wheel height.
	DefaultTestHeight = 40
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: wheel did not settle")

// WheelTester runs a wheel on a private loop with a fake clock and a
// recording canvas.
type WheelTester struct {
	clock     *FakeClock
	prevClock animation.Clock
	loop      *engine.Loop
	wheel     *wheel.Wheel
	events    *Recorder
	canvas    *rendering.Recorder
}

// NewWheelTester creates a tester. opts.Loop is replaced by the tester's
// loop; a nil opts.Listener is replaced by the tester's Recorder.
// Call Cleanup() when done, or use NewWheelTesterWithT() instead.
func NewWheelTester(opts wheel.Options) *WheelTester {
	clk := NewFakeClock()
	t := &WheelTester{
		clock:  clk,
		events: &Recorder{},
		canvas: rendering.NewRecorder(rendering.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}),
	}
	t.prevClock = animation.SetClock(clk)
	t.loop = engine.NewLoop(animation.NewScheduler(clk))
	opts.Loop = t.loop
	if opts.Listener == nil {
		opts.Listener = t.events
	}
	t.wheel = wheel.New(opts)
	t.loop.OnFrame(func(time.Time) {
		t.canvas.Reset()
		t.wheel.Draw(t.canvas)
	})
	return t
}

// NewWheelTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWheelTesterWithT(t *testing.T, opts wheel.Options) *WheelTester {
	tester := NewWheelTester(opts)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock.
func (t *WheelTester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock for advancing time in tests.
func (t *WheelTester) Clock() *FakeClock { return t.clock }

// Wheel returns the wheel under test.
func (t *WheelTester) Wheel() *wheel.Wheel { return t.wheel }

// Loop returns the tester's loop.
func (t *WheelTester) Loop() *engine.Loop { return t.loop }

// Events returns the recorder that receives events when no listener was
// supplied.
func (t *WheelTester) Events() *Recorder { return t.events }

// Canvas returns the canvas the last frame was painted on.
func (t *WheelTester) Canvas() *rendering.Recorder { return t.canvas }

// Layout sizes the wheel and pumps one frame so deferred events flush.
func (t *WheelTester) Layout(width, height int) {
	t.canvas = rendering.NewRecorder(rendering.Size{Width: float64(width), Height: float64(height)})
	t.wheel.Layout(width, height)
	t.Pump()
}

// Pump runs a single frame at the current fake time.
func (t *WheelTester) Pump() {
	t.loop.StepFrame(t.clock.Now())
}

// PumpFor advances time frame by frame for d, pumping each frame.
func (t *WheelTester) PumpFor(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameDuration {
		t.clock.Frame()
		t.Pump()
	}
}

// PumpAndSettle runs frames until the loop is idle or the timeout is
// reached. Each frame advances the fake clock by FrameDuration.
// Returns ErrSettleTimeout if the wheel does not settle within timeout.
func (t *WheelTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		t.Pump()
		if !t.loop.NeedsFrame() {
			return nil
		}
		t.clock.Frame()
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}
