// Package wheel implements a horizontal wheel picker: an endless ruler that
// scrolls with drag and fling gestures and settles on discrete ticks.
//
// A [Wheel] ties together four parts:
//
//   - [Position]: the integer offset and the geometry it is measured
//     against. Value is offset/(width·rotationFactor).
//   - [GestureRouter]: applies drags with edge resistance, starts flings
//     and settles on the nearest tick when motion ends.
//   - kinetic.Animator: runs flings and snaps frame by frame.
//   - [Notifier]: delivers started, scrolling and finished events and pulses
//     haptics on tick crossings. Events raised during layout are deferred.
//
// All methods must be called from the goroutine that steps the wheel's
// engine.Loop.
//
// # Basic Usage
//
//	loop := engine.NewLoop(nil)
//	w := wheel.New(wheel.Options{Loop: loop, Listener: listener})
//	w.Layout(300, 40)
//
//	// Forward recognizer events
//	w.Down()
//	w.Drag(-12, 0)
//	w.Up()
//
//	// Each frame
//	loop.StepFrame(time.Now())
//	w.Draw(canvas)
package wheel

import (
	"log/slog"
	"math"

	"github.com/go-drift/wheel/pkg/engine"
	"github.com/go-drift/wheel/pkg/errors"
	"github.com/go-drift/wheel/pkg/haptics"
	"github.com/go-drift/wheel/pkg/kinetic"
	"github.com/go-drift/wheel/pkg/rendering"
	"github.com/go-drift/wheel/pkg/ticks"
)

// LayoutListener is told when a wheel's geometry changes, before the first
// paint with the new geometry.
type LayoutListener interface {
	OnLayoutChanged(w *Wheel)
}

// LayoutFunc adapts a function to LayoutListener.
type LayoutFunc func(w *Wheel)

// OnLayoutChanged implements LayoutListener.
func (f LayoutFunc) OnLayoutChanged(w *Wheel) { f(w) }

// Style holds the colors a wheel paints with.
type Style struct {
	Background rendering.Color
	Tick       rendering.Color
	Indicator  rendering.Color
}

// DefaultStyle returns the default palette.
func DefaultStyle() Style {
	return Style{
		Background: rendering.ColorBackground,
		Tick:       rendering.ColorTick,
		Indicator:  rendering.ColorIndicator,
	}
}

// Options configures a Wheel. Zero values select defaults.
type Options struct {
	TickCount      int
	RotationFactor int
	// TouchSlop is the first-drag compensation in pixels. Negative values
	// disable it; zero selects DefaultTouchSlop.
	TouchSlop float64

	Capabilities kinetic.Capabilities
	Kinetic      kinetic.Config
	// Strategy overrides the strategy chosen from Capabilities.
	Strategy kinetic.Strategy

	// Loop is the UI context. Nil creates a private loop.
	Loop *engine.Loop
	// Haptics enables tick pulses. Vibration starts enabled when set.
	Haptics *haptics.Service

	Listener       Listener
	LayoutListener LayoutListener
	// OnRedraw is called whenever the wheel needs repainting, in addition
	// to requesting a frame from Loop.
	OnRedraw func()

	Style  *Style
	Logger *slog.Logger
}

// Wheel is a horizontal wheel picker.
type Wheel struct {
	pos      *Position
	animator *kinetic.Animator
	router   *GestureRouter
	notifier *Notifier
	loop     *engine.Loop
	logger   *slog.Logger
	style    Style

	layoutListener LayoutListener
	onRedraw       func()

	width, height  int
	tickCount      int
	rotationFactor int
	forceLayout    bool
	inLayout       bool
	tickWidth      float64
}

var _ GestureListener = (*Wheel)(nil)

// New creates a wheel. It has no geometry until the first Layout.
func New(opts Options) *Wheel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loop := opts.Loop
	if loop == nil {
		loop = engine.NewLoop(nil)
	}
	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}

	w := &Wheel{
		pos:            NewPosition(),
		loop:           loop,
		logger:         logger,
		style:          style,
		layoutListener: opts.LayoutListener,
		onRedraw:       opts.OnRedraw,
		tickCount:      DefaultTickCount,
		rotationFactor: DefaultRotationFactor,
	}
	if opts.TickCount > 0 {
		w.tickCount = opts.TickCount
	}
	if opts.RotationFactor > 0 {
		w.rotationFactor = opts.RotationFactor
	}

	w.notifier = NewNotifier(w.pos, loop, logger)
	w.notifier.SetListener(opts.Listener)
	if opts.Haptics != nil {
		w.notifier.SetHaptics(opts.Haptics)
		w.notifier.SetVibrationEnabled(true)
	}

	cfg := opts.Kinetic
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	target := motionTarget{w}
	if opts.Strategy != nil {
		w.animator = kinetic.NewAnimatorWithStrategy(loop.Scheduler(), target, opts.Strategy, cfg)
	} else {
		w.animator = kinetic.NewAnimator(loop.Scheduler(), target, opts.Capabilities, cfg)
	}

	w.router = NewGestureRouter(w.pos, w.animator, w.notifier, w.requestRedraw, logger)
	switch {
	case opts.TouchSlop < 0:
		w.router.SetTouchSlop(0)
	case opts.TouchSlop > 0:
		w.router.SetTouchSlop(opts.TouchSlop)
	}
	return w
}

// motionTarget receives animator output. It keeps TrackMotion and
// MovementFinished off the Wheel's public API.
type motionTarget struct{ w *Wheel }

func (t motionTarget) TrackMotion(offset int) {
	t.w.pos.SetOffset(offset)
	t.w.notifier.Scrolling()
	t.w.requestRedraw()
}

func (t motionTarget) MovementFinished() {
	t.w.router.MovementFinished()
}

func (w *Wheel) requestRedraw() {
	w.loop.RequestFrame()
	if w.onRedraw != nil {
		w.onRedraw()
	}
}

// Layout sets the wheel size. Geometry is recomputed when the size
// changed or a re-layout was forced, and the layout listener is told.
// A non-positive width leaves the wheel in its not-laid-out state.
func (w *Wheel) Layout(width, height int) {
	if w.inLayout {
		return
	}
	changed := width != w.width || height != w.height
	if !changed && !w.forceLayout {
		return
	}
	w.inLayout = true
	w.notifier.BeginLayout()
	defer func() {
		w.inLayout = false
		w.notifier.EndLayout(w.pos.Ready())
	}()

	if !w.pos.SetGeometry(width, height, w.tickCount, w.rotationFactor) {
		errors.Report(&errors.WheelError{Op: "wheel.Layout", Kind: errors.KindConfig, Err: errors.ErrZeroWidth})
		return
	}
	w.width, w.height = width, height
	w.forceLayout = false
	w.tickWidth = ticks.TickWidth(float64(width), w.tickCount)
	w.logger.Debug("wheel layout", "width", width, "height", height,
		"ticks", w.tickCount, "rotations", w.rotationFactor, "max_offset", w.pos.MaxOffset())

	if w.layoutListener != nil {
		w.layoutListener.OnLayoutChanged(w)
	}
	w.requestRedraw()
}

func (w *Wheel) relayout() {
	w.forceLayout = true
	if w.width > 0 {
		w.Layout(w.width, w.height)
	}
}

// Draw paints the current frame. It never changes the offset.
func (w *Wheel) Draw(c rendering.Canvas) {
	size := c.Size()
	c.Clear(w.style.Background)
	if !w.pos.Ready() {
		return
	}
	frame := ticks.Compute(w.pos.Offset(), ticks.Geometry{
		Width:     float64(w.pos.Width()),
		TickCount: w.pos.TickCount(),
		TickWidth: w.tickWidth,
	})
	for _, m := range frame.Ticks {
		c.DrawRect(rendering.RectFromLTWH(m.X, 0, w.tickWidth*m.ScaleX, size.Height), w.style.Tick)
	}
	if frame.HasIndicator {
		m := frame.Indicator
		c.DrawRect(rendering.RectFromLTWH(m.X, 0, w.tickWidth*m.ScaleX, size.Height), w.style.Indicator)
	}
}

// Frame returns the tick layout for the current offset.
func (w *Wheel) Frame() ticks.Frame {
	return ticks.Compute(w.pos.Offset(), ticks.Geometry{
		Width:     float64(w.pos.Width()),
		TickCount: w.pos.TickCount(),
		TickWidth: w.tickWidth,
	})
}

// SetValue moves the wheel to v in [-1, 1], stopping any animation. Values
// outside the range are ignored. With fire set a finished event follows.
func (w *Wheel) SetValue(v float64, fire bool) {
	if !w.pos.Ready() {
		errors.Report(&errors.WheelError{Op: "wheel.SetValue", Kind: errors.KindConfig, Err: errors.ErrZeroWidth})
		return
	}
	if math.IsNaN(v) || v < -1 || v > 1 {
		errors.Report(&errors.WheelError{Op: "wheel.SetValue", Kind: errors.KindRange, Err: errors.ErrOutOfRange})
		return
	}
	w.router.Cancel()
	w.pos.SetValue(v)
	w.requestRedraw()
	if fire {
		w.notifier.Finished()
	}
}

// Value returns offset/(width·rotationFactor), 0 before layout.
func (w *Wheel) Value() float64 { return w.pos.Value() }

// TickIndex returns the absolute tick at the current offset.
func (w *Wheel) TickIndex() int { return w.pos.TickIndex() }

// Offset returns the scroll offset in pixels.
func (w *Wheel) Offset() int { return w.pos.Offset() }

// SetTickCount changes the ticks per strip width and forces a re-layout.
func (w *Wheel) SetTickCount(n int) {
	if n < 1 {
		errors.Report(&errors.WheelError{Op: "wheel.SetTickCount", Kind: errors.KindConfig, Err: errors.ErrInvalidConfig})
		return
	}
	if n == w.tickCount {
		return
	}
	w.tickCount = n
	w.relayout()
}

// TickCount returns the ticks per strip width.
func (w *Wheel) TickCount() int { return w.tickCount }

// SetRotationFactor changes how many strip widths span [-1, 1] and forces
// a re-layout.
func (w *Wheel) SetRotationFactor(n int) {
	if n < 1 {
		errors.Report(&errors.WheelError{Op: "wheel.SetRotationFactor", Kind: errors.KindConfig, Err: errors.ErrInvalidConfig})
		return
	}
	if n == w.rotationFactor {
		return
	}
	w.rotationFactor = n
	w.relayout()
}

// RotationFactor returns the strip widths spanning [-1, 1].
func (w *Wheel) RotationFactor() int { return w.rotationFactor }

// VisibleTickSpan returns the ticks spanned by the value range, 0 before
// layout.
func (w *Wheel) VisibleTickSpan() int { return w.pos.TotalTicksVisible() }

// TickSpacing returns the pixels between ticks, 0 before layout.
func (w *Wheel) TickSpacing() float64 { return w.pos.TickSpacing() }

// TickWidth returns the drawn width of a tick mark.
func (w *Wheel) TickWidth() float64 { return w.tickWidth }

// SetVibrationEnabled toggles haptic pulses. It has no effect without a
// haptic service.
func (w *Wheel) SetVibrationEnabled(enabled bool) { w.notifier.SetVibrationEnabled(enabled) }

// VibrationEnabled reports whether haptic pulses are on.
func (w *Wheel) VibrationEnabled() bool { return w.notifier.VibrationEnabled() }

// SetListener replaces the scroll listener. Nil clears it.
func (w *Wheel) SetListener(l Listener) { w.notifier.SetListener(l) }

// Listener returns the scroll listener.
func (w *Wheel) Listener() Listener { return w.notifier.Listener() }

// SetLayoutListener replaces the layout listener.
func (w *Wheel) SetLayoutListener(l LayoutListener) { w.layoutListener = l }

// LayoutListener returns the layout listener.
func (w *Wheel) LayoutListener() LayoutListener { return w.layoutListener }

// Position returns the wheel's position model.
func (w *Wheel) Position() *Position { return w.pos }

// Router returns the wheel's gesture router.
func (w *Wheel) Router() *GestureRouter { return w.router }

// Animator returns the wheel's animator.
func (w *Wheel) Animator() *kinetic.Animator { return w.animator }

// Loop returns the UI context the wheel runs on.
func (w *Wheel) Loop() *engine.Loop { return w.loop }

// Down implements GestureListener.
func (w *Wheel) Down() { w.router.Down() }

// Drag implements GestureListener.
func (w *Wheel) Drag(dx, dy float64) { w.router.Drag(dx, dy) }

// Fling implements GestureListener.
func (w *Wheel) Fling(vx, vy float64) { w.router.Fling(vx, vy) }

// Up implements GestureListener.
func (w *Wheel) Up() { w.router.Up() }

// LongPress implements GestureListener.
func (w *Wheel) LongPress() { w.router.LongPress() }

// SingleTap implements GestureListener.
func (w *Wheel) SingleTap() { w.router.SingleTap() }
