// Package kinetic animates a scroll offset over time.
//
// An [Animator] runs one motion session at a time on an
// [animation.Scheduler]. Sessions come from a [Strategy], which is picked
// once per animator by [Select]:
//
//   - [Legacy]: analytic quadratic deceleration with a friction coefficient.
//   - [Physics]: exponential velocity decay stepped with a critically damped
//     harmonica spring.
//
// Both strategies animate fixed distances (snap and bounce-back) with the
// same ease-out curve and both converge to an integer rest offset.
//
// The animator never clamps to bounds. Callers that need the rest point
// inside a range re-dispatch a distance motion once the fling finishes.
package kinetic

import (
	"log/slog"
	"time"
)

// LegacyAPILevel is the highest host level without native fling physics.
const LegacyAPILevel = 8

// Defaults used when a Config field is zero.
const (
	DefaultDuration      = 200 * time.Millisecond
	DefaultFriction      = 0.015
	DefaultPixelsPerInch = 160
	DefaultDecayRate     = 4.0
)

// maxStep caps a single physics step so a stalled frame does not jump.
const maxStep = 32 * time.Millisecond

// Motion is one animation session produced by a Strategy.
type Motion interface {
	// Step returns the offset at the given time since the session started
	// and whether the motion has come to rest.
	Step(elapsed time.Duration) (offset int, done bool)
	// Rest returns the offset the motion will end at.
	Rest() int
}

// Strategy creates motions. Implementations must be deterministic for a
// given sequence of Step calls.
type Strategy interface {
	Name() string
	// Distance animates from from to from+delta over duration with an
	// ease-out curve.
	Distance(from, delta int, duration time.Duration) Motion
	// Velocity animates from from with an initial velocity in px/s until
	// the motion decays to rest.
	Velocity(from, velocity int) Motion
}

// Capabilities describes what the host offers. It is supplied by the
// embedder rather than detected at runtime.
type Capabilities struct {
	// APILevel is the host platform level. Physics needs a level above
	// LegacyAPILevel.
	APILevel int
	// DisablePhysics forces the legacy strategy.
	DisablePhysics bool
}

// Physics reports whether the physics strategy can run on this host.
func (c Capabilities) Physics() bool {
	return c.APILevel > LegacyAPILevel && !c.DisablePhysics
}

// Config tunes the strategies. Zero fields use the package defaults.
type Config struct {
	Duration      time.Duration
	Friction      float64
	PixelsPerInch float64
	DecayRate     float64
	Logger        *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.Friction <= 0 {
		c.Friction = DefaultFriction
	}
	if c.PixelsPerInch <= 0 {
		c.PixelsPerInch = DefaultPixelsPerInch
	}
	if c.DecayRate <= 0 {
		c.DecayRate = DefaultDecayRate
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Select picks the strategy for a host. A host without physics support
// falls back to the legacy strategy; the fallback is reported at debug
// level and is never an error for the caller.
func Select(caps Capabilities, cfg Config) Strategy {
	cfg = cfg.withDefaults()
	if caps.Physics() {
		cfg.Logger.Debug("kinetic strategy selected", "strategy", "physics", "api_level", caps.APILevel)
		return NewPhysics(cfg.DecayRate)
	}
	cfg.Logger.Debug("kinetic strategy selected", "strategy", "legacy", "api_level", caps.APILevel,
		"physics_disabled", caps.DisablePhysics)
	return NewLegacy(cfg.Friction, cfg.PixelsPerInch)
}
