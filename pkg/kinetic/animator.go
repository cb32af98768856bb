package kinetic

import (
	"log/slog"
	"time"

	"github.com/go-drift/wheel/pkg/animation"
)

// Target receives the offsets produced by an Animator.
type Target interface {
	// TrackMotion stores a new offset. Implementations usually request a
	// redraw here.
	TrackMotion(offset int)
	// MovementFinished is called once when a session comes to rest, or when
	// it is stopped with notify set.
	MovementFinished()
}

// Animator runs one motion session at a time against a Target.
type Animator struct {
	strategy  Strategy
	target    Target
	scheduler *animation.Scheduler
	ticker    *animation.Ticker
	duration  time.Duration
	logger    *slog.Logger

	motion Motion
	start  time.Time
	offset int
}

// NewAnimator creates an animator stepping on scheduler and writing into
// target. The strategy is chosen once here from caps and kept for the
// animator's lifetime.
func NewAnimator(scheduler *animation.Scheduler, target Target, caps Capabilities, cfg Config) *Animator {
	return NewAnimatorWithStrategy(scheduler, target, Select(caps, cfg), cfg)
}

// NewAnimatorWithStrategy creates an animator with an explicit strategy.
func NewAnimatorWithStrategy(scheduler *animation.Scheduler, target Target, strategy Strategy, cfg Config) *Animator {
	cfg = cfg.withDefaults()
	if scheduler == nil {
		scheduler = animation.NewScheduler(nil)
	}
	a := &Animator{
		strategy:  strategy,
		target:    target,
		scheduler: scheduler,
		duration:  cfg.Duration,
		logger:    cfg.Logger,
	}
	a.ticker = scheduler.NewTicker(a.Advance)
	return a
}

// Strategy returns the strategy chosen at construction.
func (a *Animator) Strategy() Strategy {
	return a.strategy
}

// Duration returns the duration of distance motions.
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// StartUsingDistance animates from from to from+delta with an ease-out
// curve. Any running session is cancelled without notification.
func (a *Animator) StartUsingDistance(from, delta int) {
	a.begin(from, a.strategy.Distance(from, delta, a.duration))
	a.logger.Debug("kinetic distance started", "from", from, "delta", delta)
}

// StartUsingVelocity flings from from with velocity px/s until rest.
// Any running session is cancelled without notification.
func (a *Animator) StartUsingVelocity(from, velocity int) {
	m := a.strategy.Velocity(from, velocity)
	a.begin(from, m)
	a.logger.Debug("kinetic fling started", "from", from, "velocity", velocity, "rest", m.Rest())
}

func (a *Animator) begin(from int, m Motion) {
	a.Stop(false)
	a.motion = m
	a.offset = from
	a.start = a.scheduler.Now()
	a.ticker.Start()
}

// Stop cancels the running session. The target keeps the last offset it
// was given. With notify set, MovementFinished is called if a session was
// running.
func (a *Animator) Stop(notify bool) {
	if a.motion == nil {
		return
	}
	a.motion = nil
	a.ticker.Stop()
	if notify {
		a.target.MovementFinished()
	}
}

// IsFinished reports whether no session is running.
func (a *Animator) IsFinished() bool {
	return a.motion == nil
}

// Rest returns the rest offset of the running session and false when the
// animator is idle.
func (a *Animator) Rest() (int, bool) {
	if a.motion == nil {
		return 0, false
	}
	return a.motion.Rest(), true
}

// Advance steps the running session to now. It is called by the ticker
// once per frame and does nothing when idle.
func (a *Animator) Advance(now time.Time) {
	m := a.motion
	if m == nil {
		return
	}
	offset, done := m.Step(now.Sub(a.start))
	if offset != a.offset || done {
		a.offset = offset
		a.target.TrackMotion(offset)
	}
	// TrackMotion may have started or stopped a session.
	if a.motion != m || !done {
		return
	}
	a.motion = nil
	a.ticker.Stop()
	a.target.MovementFinished()
}
