package kinetic

import (
	"math"
	"time"

	"github.com/go-drift/wheel/pkg/animation"
)

// easeMotion moves a fixed distance along animation.EaseOut.
type easeMotion struct {
	from, delta int
	duration    time.Duration
}

func newEaseMotion(from, delta int, duration time.Duration) *easeMotion {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &easeMotion{from: from, delta: delta, duration: duration}
}

func (m *easeMotion) Step(elapsed time.Duration) (int, bool) {
	if elapsed >= m.duration || m.delta == 0 {
		return m.Rest(), true
	}
	if elapsed <= 0 {
		return m.from, false
	}
	t := float64(elapsed) / float64(m.duration)
	return m.from + int(math.Round(float64(m.delta)*animation.EaseOut(t))), false
}

func (m *easeMotion) Rest() int {
	return m.from + m.delta
}
