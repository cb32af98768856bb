package kinetic

import (
	"math"
	"time"
)

// gravityInchesPerSecond2 is standard gravity converted to inches/s².
const gravityInchesPerSecond2 = 9.80665 * 39.37

// Legacy decelerates flings at a constant rate derived from a friction
// coefficient and the screen density. Position, distance and duration are
// computed analytically from the initial velocity.
type Legacy struct {
	// Deceleration in px/s².
	Deceleration float64
}

// NewLegacy returns a legacy strategy for the given friction and density.
func NewLegacy(friction, pixelsPerInch float64) *Legacy {
	if friction <= 0 {
		friction = DefaultFriction
	}
	if pixelsPerInch <= 0 {
		pixelsPerInch = DefaultPixelsPerInch
	}
	return &Legacy{Deceleration: friction * gravityInchesPerSecond2 * pixelsPerInch}
}

// Name implements Strategy.
func (*Legacy) Name() string { return "legacy" }

// Distance implements Strategy.
func (*Legacy) Distance(from, delta int, duration time.Duration) Motion {
	return newEaseMotion(from, delta, duration)
}

// Velocity implements Strategy.
func (l *Legacy) Velocity(from, velocity int) Motion {
	v := math.Abs(float64(velocity))
	sign := 1.0
	if velocity < 0 {
		sign = -1
	}
	seconds := v / l.Deceleration
	distance := v * v / (2 * l.Deceleration)
	return &decelMotion{
		from:     from,
		velocity: v,
		sign:     sign,
		decel:    l.Deceleration,
		duration: time.Duration(seconds * float64(time.Second)),
		rest:     from + int(math.Round(sign*distance)),
	}
}

type decelMotion struct {
	from     int
	velocity float64
	sign     float64
	decel    float64
	duration time.Duration
	rest     int
}

func (m *decelMotion) Step(elapsed time.Duration) (int, bool) {
	if elapsed >= m.duration {
		return m.rest, true
	}
	if elapsed <= 0 {
		return m.from, false
	}
	t := elapsed.Seconds()
	d := m.velocity*t - m.decel*t*t/2
	return m.from + int(math.Round(m.sign*d)), false
}

func (m *decelMotion) Rest() int { return m.rest }
