// Package term hosts wheels in a terminal: a tcell-backed canvas and a
// pointer recognizer that turns mouse samples into wheel gestures.
package term

import (
	"math"
	"time"

	"github.com/go-drift/wheel/pkg/wheel"
)

// Recognizer defaults.
const (
	DefaultDragThreshold    = 8.0
	DefaultMinFlingVelocity = 50.0
	DefaultVelocityWindow   = 100 * time.Millisecond
)

type sample struct {
	x float64
	t time.Time
}

// Recognizer classifies pointer samples, in pixels, into Down, Drag,
// Fling, Up and SingleTap calls on a gesture listener.
//
// A drag is recognized once the pointer has moved DragThreshold pixels
// from the press. The first Drag reports the whole distance since the
// press; the listener is expected to compensate for the threshold.
type Recognizer struct {
	target wheel.GestureListener

	DragThreshold    float64
	MinFlingVelocity float64
	VelocityWindow   time.Duration

	down     bool
	dragging bool
	startX   float64
	lastX    float64
	samples  []sample
}

// NewRecognizer creates a recognizer feeding target.
func NewRecognizer(target wheel.GestureListener) *Recognizer {
	return &Recognizer{
		target:           target,
		DragThreshold:    DefaultDragThreshold,
		MinFlingVelocity: DefaultMinFlingVelocity,
		VelocityWindow:   DefaultVelocityWindow,
	}
}

// Active reports whether a pointer is down.
func (r *Recognizer) Active() bool { return r.down }

// Press starts a gesture at x.
func (r *Recognizer) Press(x float64, t time.Time) {
	if r.down {
		return
	}
	r.down = true
	r.dragging = false
	r.startX, r.lastX = x, x
	r.samples = append(r.samples[:0], sample{x, t})
	r.target.Down()
}

// Move reports the pointer at x.
func (r *Recognizer) Move(x float64, t time.Time) {
	if !r.down {
		return
	}
	r.record(x, t)
	if !r.dragging {
		if math.Abs(x-r.startX) < r.DragThreshold {
			return
		}
		r.dragging = true
		r.target.Drag(r.startX-x, 0)
		r.lastX = x
		return
	}
	if x == r.lastX {
		return
	}
	r.target.Drag(r.lastX-x, 0)
	r.lastX = x
}

// Release ends the gesture at x. A drag released fast enough flings; a
// press without a drag is a tap.
func (r *Recognizer) Release(x float64, t time.Time) {
	if !r.down {
		return
	}
	r.Move(x, t)
	r.down = false
	if r.dragging {
		if v := r.velocity(); math.Abs(v) >= r.MinFlingVelocity {
			r.target.Fling(v, 0)
		}
	} else {
		r.target.SingleTap()
	}
	r.target.Up()
}

func (r *Recognizer) record(x float64, t time.Time) {
	r.samples = append(r.samples, sample{x, t})
	cutoff := t.Add(-r.VelocityWindow)
	i := 0
	for i < len(r.samples)-1 && r.samples[i].t.Before(cutoff) {
		i++
	}
	r.samples = r.samples[i:]
}

// velocity returns px/s over the window, positive toward larger x.
func (r *Recognizer) velocity() float64 {
	if len(r.samples) < 2 {
		return 0
	}
	first, last := r.samples[0], r.samples[len(r.samples)-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.x - first.x) / dt
}
