package wheel

import (
	"log/slog"
	"math"
)

// DefaultTouchSlop is subtracted from the first drag sample so the wheel
// does not jump by the distance the recognizer needed to detect a drag.
const DefaultTouchSlop = 8.0

// resistanceFactor scales how strongly drags past a bound are damped.
const resistanceFactor = 10.0

// GestureListener consumes classified pointer events from a recognizer.
type GestureListener interface {
	Down()
	// Drag reports the distance moved since the previous sample, positive
	// when the pointer moved toward smaller x.
	Drag(dx, dy float64)
	// Fling reports the release velocity in px/s, positive when the pointer
	// moved toward larger x.
	Fling(vx, vy float64)
	Up()
	LongPress()
	SingleTap()
}

// Driver animates the offset. *kinetic.Animator implements it.
type Driver interface {
	StartUsingDistance(from, delta int)
	StartUsingVelocity(from, velocity int)
	Stop(notify bool)
	IsFinished() bool
}

// GestureState is the phase of the gesture lifecycle.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDragging
	StateFlinging
	StateSnappingBack
	StateSettling
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateFlinging:
		return "flinging"
	case StateSnappingBack:
		return "snapping-back"
	case StateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// GestureRouter turns gestures into offset changes and animations.
//
// Drags move the position directly, with resistance past the bounds.
// Flings hand off to the Driver. When motion ends the router settles the
// offset onto the nearest tick, bouncing back first if it is out of bounds.
type GestureRouter struct {
	pos      *Position
	driver   Driver
	notifier *Notifier
	redraw   func()
	logger   *slog.Logger

	touchSlop float64
	state     GestureState
	firstMove bool
	towardMin bool
	carry     float64
}

// NewGestureRouter creates a router. redraw may be nil.
func NewGestureRouter(pos *Position, driver Driver, notifier *Notifier, redraw func(), logger *slog.Logger) *GestureRouter {
	if redraw == nil {
		redraw = func() {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GestureRouter{
		pos:       pos,
		driver:    driver,
		notifier:  notifier,
		redraw:    redraw,
		logger:    logger,
		touchSlop: DefaultTouchSlop,
	}
}

// SetTouchSlop sets the first-sample compensation in pixels.
func (g *GestureRouter) SetTouchSlop(slop float64) {
	if slop >= 0 {
		g.touchSlop = slop
	}
}

// State returns the current gesture state.
func (g *GestureRouter) State() GestureState { return g.state }

func (g *GestureRouter) setState(s GestureState) {
	if g.state == s {
		return
	}
	g.logger.Debug("wheel gesture state", "from", g.state.String(), "to", s.String(), "offset", g.pos.Offset())
	g.state = s
}

// Down cancels any motion and starts a drag.
func (g *GestureRouter) Down() {
	g.driver.Stop(false)
	g.setState(StateDragging)
	g.firstMove = true
	g.carry = 0
}

// Drag moves the offset by -dx, damped past the bounds.
func (g *GestureRouter) Drag(dx, _ float64) {
	if g.state != StateDragging {
		g.Down()
	}
	if g.firstMove {
		if dx > 0 {
			dx -= g.touchSlop
		} else {
			dx += g.touchSlop
		}
		g.firstMove = false
		g.notifier.Started()
	}

	delta := -dx
	g.towardMin = delta < 0
	delta = g.resist(delta)

	delta += g.carry
	step := math.Trunc(delta)
	g.carry = delta - step

	g.pos.SetOffset(g.pos.Offset() + int(step))
	g.notifier.Scrolling()
	g.redraw()
}

// resist divides delta by 1 + 10·overshoot/|delta| when the move would end
// past the bound it travels toward.
func (g *GestureRouter) resist(delta float64) float64 {
	if delta == 0 {
		return 0
	}
	proposed := float64(g.pos.Offset()) + delta
	var overshoot float64
	if delta > 0 {
		overshoot = proposed - float64(g.pos.MaxOffset())
	} else {
		overshoot = float64(g.pos.MinOffset()) - proposed
	}
	if overshoot <= 0 {
		return delta
	}
	return delta / (1 + resistanceFactor*overshoot/math.Abs(delta))
}

// Fling starts momentum at half the release velocity, or bounces back when
// the offset is already past the bound in the fling direction. A fling
// with no drag before it fires the started event itself.
func (g *GestureRouter) Fling(vx, _ float64) {
	if g.firstMove || g.state == StateIdle {
		g.firstMove = false
		g.notifier.Started()
	}
	offset := g.pos.Offset()
	if vx >= 0 && offset > g.pos.MaxOffset() {
		g.setState(StateSnappingBack)
		g.driver.StartUsingDistance(offset, g.pos.MaxOffset()-offset)
		return
	}
	if vx < 0 && offset < g.pos.MinOffset() {
		g.setState(StateSnappingBack)
		g.driver.StartUsingDistance(offset, g.pos.MinOffset()-offset)
		return
	}
	g.setState(StateFlinging)
	g.driver.StartUsingVelocity(offset, int(vx)/2)
}

// Up ends the gesture. Without a running animation the wheel settles now,
// otherwise it settles when the animation finishes.
func (g *GestureRouter) Up() {
	if !g.driver.IsFinished() {
		return
	}
	g.setState(StateIdle)
	g.SettleToGrid()
}

// LongPress is ignored.
func (g *GestureRouter) LongPress() {}

// SingleTap is ignored.
func (g *GestureRouter) SingleTap() {}

// SettleToGrid snaps the offset to the nearest tick boundary, or bounces
// back to the nearest bound first. When the offset is already aligned the
// finished event fires directly. It does nothing while animating.
func (g *GestureRouter) SettleToGrid() {
	if !g.driver.IsFinished() || !g.pos.Ready() {
		return
	}
	offset := g.pos.Offset()
	switch {
	case offset > g.pos.MaxOffset():
		g.setState(StateSnappingBack)
		g.driver.StartUsingDistance(offset, g.pos.MaxOffset()-offset)
		return
	case offset < g.pos.MinOffset():
		g.setState(StateSnappingBack)
		g.driver.StartUsingDistance(offset, g.pos.MinOffset()-offset)
		return
	}

	lower, upper := g.pos.gridNeighbors()
	if offset == lower || offset == upper {
		g.setState(StateIdle)
		g.notifier.Finished()
		return
	}
	target := upper
	down, up := offset-lower, upper-offset
	if down < up || (down == up && g.towardMin) {
		target = lower
	}
	g.setState(StateSettling)
	g.driver.StartUsingDistance(offset, target-offset)
}

// MovementFinished is called by the driver when an animation ends.
func (g *GestureRouter) MovementFinished() {
	switch g.state {
	case StateFlinging, StateSnappingBack:
		g.SettleToGrid()
	case StateSettling:
		g.setState(StateIdle)
		g.notifier.Finished()
	}
}

// Cancel stops any animation and returns to idle without events.
func (g *GestureRouter) Cancel() {
	g.driver.Stop(false)
	g.setState(StateIdle)
	g.firstMove = false
	g.carry = 0
}
