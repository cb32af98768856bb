package kinetic

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Rest thresholds for the physics motion.
const (
	restDistance = 0.5
	restVelocity = 5.0
)

// Physics decays fling velocity exponentially, v(t) = v0·e^(-rate·t).
//
// The decay is stepped with a critically damped harmonica spring whose
// angular frequency equals the decay rate, aimed at the projected rest point
// from + v0/rate. For that start state the spring's velocity is exactly the
// exponential decay above.
type Physics struct {
	DecayRate float64
}

// NewPhysics returns a physics strategy with the given decay rate in 1/s.
func NewPhysics(decayRate float64) *Physics {
	if decayRate <= 0 {
		decayRate = DefaultDecayRate
	}
	return &Physics{DecayRate: decayRate}
}

// Name implements Strategy.
func (*Physics) Name() string { return "physics" }

// Distance implements Strategy.
func (*Physics) Distance(from, delta int, duration time.Duration) Motion {
	return newEaseMotion(from, delta, duration)
}

// Velocity implements Strategy.
func (p *Physics) Velocity(from, velocity int) Motion {
	v := float64(velocity)
	target := float64(from) + v/p.DecayRate
	return &decayMotion{
		rate:   p.DecayRate,
		pos:    float64(from),
		vel:    v,
		target: target,
		rest:   int(math.Round(target)),
	}
}

type decayMotion struct {
	rate   float64
	pos    float64
	vel    float64
	target float64
	rest   int
	last   time.Duration
	done   bool
}

func (m *decayMotion) Step(elapsed time.Duration) (int, bool) {
	if m.done {
		return m.rest, true
	}
	dt := elapsed - m.last
	if dt <= 0 {
		return int(math.Round(m.pos)), false
	}
	m.last = elapsed
	if dt > maxStep {
		dt = maxStep
	}
	spring := harmonica.NewSpring(dt.Seconds(), m.rate, 1.0)
	m.pos, m.vel = spring.Update(m.pos, m.vel, m.target)
	if math.Abs(m.target-m.pos) < restDistance && math.Abs(m.vel) < restVelocity {
		m.done = true
		return m.rest, true
	}
	return int(math.Round(m.pos)), false
}

func (m *decayMotion) Rest() int { return m.rest }
