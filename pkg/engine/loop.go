// Package engine runs the single UI context that wheels live on.
//
// A [Loop] owns the UI task queue and the animation [animation.Scheduler].
// Each call to [Loop.StepFrame] runs the phases in a fixed order:
//
//  1. Dispatch: run callbacks posted since the previous frame.
//  2. Animate: step every active ticker to the frame time.
//  3. Paint: call the frame callbacks registered with OnFrame if a redraw
//     was requested.
//
// Gesture delivery and StepFrame must happen on the same goroutine. Post and
// RequestFrame may be called from any goroutine.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/wheel/pkg/animation"
	"github.com/go-drift/wheel/pkg/errors"
)

// Poster schedules a callback on the UI task queue.
type Poster interface {
	Post(callback func())
}

// Loop is a single-threaded UI context with a task queue and frame stepping.
type Loop struct {
	scheduler *animation.Scheduler

	dispatchMu    sync.Mutex
	dispatchQueue []func()

	pendingFrameRequest atomic.Bool
	scheduleFrame       func()

	frameMu   sync.Mutex
	onFrame   []func(now time.Time)
	frameSeen uint64
}

// NewLoop creates a loop stepping the given scheduler.
// A nil scheduler gets a fresh one on the package clock.
func NewLoop(scheduler *animation.Scheduler) *Loop {
	if scheduler == nil {
		scheduler = animation.NewScheduler(nil)
	}
	return &Loop{scheduler: scheduler}
}

// Scheduler returns the animation scheduler stepped by this loop.
func (l *Loop) Scheduler() *animation.Scheduler {
	return l.scheduler
}

// SetScheduleFrame registers a host hook that is called whenever the loop
// wants a frame, such as a terminal wakeup event.
func (l *Loop) SetScheduleFrame(fn func()) {
	l.scheduleFrame = fn
}

// OnFrame registers a paint callback run at the end of frames that had a
// redraw request.
func (l *Loop) OnFrame(fn func(now time.Time)) {
	if fn == nil {
		return
	}
	l.frameMu.Lock()
	l.onFrame = append(l.onFrame, fn)
	l.frameMu.Unlock()
}

// Post schedules a callback to run on the UI context during the next frame.
// It is safe to call from any goroutine.
func (l *Loop) Post(callback func()) {
	if callback == nil {
		return
	}
	l.dispatchMu.Lock()
	l.dispatchQueue = append(l.dispatchQueue, callback)
	l.dispatchMu.Unlock()
	l.notifyHost()
}

// RequestFrame marks the loop as needing a repaint.
func (l *Loop) RequestFrame() {
	l.pendingFrameRequest.Store(true)
	l.notifyHost()
}

func (l *Loop) notifyHost() {
	if l.scheduleFrame != nil {
		l.scheduleFrame()
	}
}

// NeedsFrame returns true if a new frame should be run: there are posted
// callbacks, a pending redraw or running animations.
func (l *Loop) NeedsFrame() bool {
	l.dispatchMu.Lock()
	hasCallbacks := len(l.dispatchQueue) > 0
	l.dispatchMu.Unlock()
	if hasCallbacks {
		return true
	}
	if l.pendingFrameRequest.Load() {
		return true
	}
	return l.scheduler.HasActiveTickers()
}

// Frames returns the number of frames that reached the paint phase.
func (l *Loop) Frames() uint64 {
	l.frameMu.Lock()
	defer l.frameMu.Unlock()
	return l.frameSeen
}

// StepFrame runs one frame at the given time.
func (l *Loop) StepFrame(now time.Time) {
	for _, callback := range l.drainDispatchQueue() {
		l.runTask(callback)
	}

	l.animate(now)

	if !l.pendingFrameRequest.Swap(false) {
		return
	}
	l.frameMu.Lock()
	l.frameSeen++
	callbacks := append([]func(time.Time){}, l.onFrame...)
	l.frameMu.Unlock()
	for _, fn := range callbacks {
		l.paint(fn, now)
	}
}

func (l *Loop) drainDispatchQueue() []func() {
	l.dispatchMu.Lock()
	callbacks := l.dispatchQueue
	l.dispatchQueue = nil
	l.dispatchMu.Unlock()
	return callbacks
}

func (l *Loop) runTask(callback func()) {
	defer errors.Recover("engine.Dispatch")
	callback()
}

func (l *Loop) animate(now time.Time) {
	defer errors.Recover("engine.Animate")
	l.scheduler.Step(now)
}

func (l *Loop) paint(fn func(time.Time), now time.Time) {
	defer errors.Recover("engine.Paint")
	fn(now)
}
