// Package animation provides the timing primitives that drive wheel motion.
//
// # Core Components
//
//   - [Scheduler]: Owns the set of active tickers for one UI context and
//     steps them once per frame from the host's frame loop.
//
//   - [Ticker]: Calls a callback on each frame while active. Starting an
//     active ticker is a no-op, so a ticker never has more than one pending
//     frame callback.
//
//   - [Clock]: Injectable time source. Tests pass a fake clock to
//     [NewScheduler] to step animations deterministically.
//
//   - Curves: Easing functions ([EaseOut], [CubicBezier], [SineInOut]) that
//     transform linear progress into natural-feeling motion.
//
// # Basic Usage
//
//	scheduler := animation.NewScheduler(nil)
//	ticker := scheduler.NewTicker(func(now time.Time) {
//	    // advance state to now
//	})
//	ticker.Start()
//
//	// In the host frame loop
//	scheduler.Step(time.Now())
package animation

import (
	"sync"
	"time"
)

// Scheduler drives a set of tickers from a single frame loop.
//
// A wheel and everything it animates share one Scheduler, which is stepped
// by the host once per frame (see engine.Loop).
type Scheduler struct {
	clock Clock

	mu     sync.Mutex
	active map[*Ticker]struct{}
}

// NewScheduler creates a scheduler using the given clock.
// A nil clock uses the package clock (see [SetClock]).
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{
		clock:  c,
		active: make(map[*Ticker]struct{}),
	}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return Now()
}

// NewTicker creates a stopped ticker bound to this scheduler.
func (s *Scheduler) NewTicker(callback func(now time.Time)) *Ticker {
	return &Ticker{scheduler: s, callback: callback}
}

// Step advances all active tickers to now.
// This should be called once per frame.
func (s *Scheduler) Step(now time.Time) {
	s.mu.Lock()
	if len(s.active) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks may start or stop tickers.
	tickers := make([]*Ticker, 0, len(s.active))
	for ticker := range s.active {
		tickers = append(tickers, ticker)
	}
	s.mu.Unlock()

	for _, ticker := range tickers {
		if ticker.IsActive() && ticker.callback != nil {
			ticker.callback(now)
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func (s *Scheduler) HasActiveTickers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}

// Ticker calls a callback on each frame while active.
//
// The callback receives the frame time passed to [Scheduler.Step].
type Ticker struct {
	scheduler *Scheduler
	callback  func(now time.Time)
	isActive  bool
	start     time.Time
}

// Start activates the ticker. Starting an active ticker does nothing.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.scheduler.Now()
	t.scheduler.mu.Lock()
	t.scheduler.active[t] = struct{}{}
	t.scheduler.mu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.scheduler.mu.Lock()
	delete(t.scheduler.active, t)
	t.scheduler.mu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.scheduler.Now().Sub(t.start)
}
