package wheel

import (
	"log/slog"

	"github.com/go-drift/wheel/pkg/engine"
	"github.com/go-drift/wheel/pkg/haptics"
)

// Listener receives scroll events. Per drag or fling it sees one started
// event, any number of scrolling events, then one finished event. A press
// released without moving may settle and report finished alone. Values are
// read from the position at delivery time.
type Listener interface {
	OnScrollStarted(value float64, tick int)
	OnScroll(value float64, tick int)
	OnScrollFinished(value float64, tick int)
}

// ListenerFuncs adapts functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Started   func(value float64, tick int)
	Scrolling func(value float64, tick int)
	Finished  func(value float64, tick int)
}

func (f ListenerFuncs) OnScrollStarted(value float64, tick int) {
	if f.Started != nil {
		f.Started(value, tick)
	}
}

func (f ListenerFuncs) OnScroll(value float64, tick int) {
	if f.Scrolling != nil {
		f.Scrolling(value, tick)
	}
}

func (f ListenerFuncs) OnScrollFinished(value float64, tick int) {
	if f.Finished != nil {
		f.Finished(value, tick)
	}
}

// Listeners fans events out to several listeners in order. Nil entries are
// skipped.
type Listeners []Listener

func (ls Listeners) OnScrollStarted(value float64, tick int) {
	for _, l := range ls {
		if l != nil {
			l.OnScrollStarted(value, tick)
		}
	}
}

func (ls Listeners) OnScroll(value float64, tick int) {
	for _, l := range ls {
		if l != nil {
			l.OnScroll(value, tick)
		}
	}
}

func (ls Listeners) OnScrollFinished(value float64, tick int) {
	for _, l := range ls {
		if l != nil {
			l.OnScrollFinished(value, tick)
		}
	}
}

// Event identifies a notification.
type Event int

const (
	EventStarted Event = iota
	EventScrolling
	EventFinished
)

func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventScrolling:
		return "scrolling"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Notifier delivers scroll events to a listener and pulses haptics on tick
// crossings.
//
// Events raised during a layout pass, or before the first geometry, are
// held in a single pending slot. A later event replaces the held one. The
// slot is flushed once from the UI task queue after EndLayout reports the
// geometry ready.
type Notifier struct {
	pos    *Position
	poster engine.Poster
	logger *slog.Logger

	listener Listener
	haptics  *haptics.Service
	vibrate  bool

	inLayout    bool
	ready       bool
	pending     Event
	hasPending  bool
	flushPosted bool

	lastTick int
}

// NewNotifier creates a notifier reading values from pos and posting
// deferred flushes to poster.
func NewNotifier(pos *Position, poster engine.Poster, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{pos: pos, poster: poster, logger: logger}
}

// SetListener replaces the listener. Nil clears it.
func (n *Notifier) SetListener(l Listener) { n.listener = l }

// Listener returns the current listener.
func (n *Notifier) Listener() Listener { return n.listener }

// SetHaptics sets the haptic service used for tick pulses.
func (n *Notifier) SetHaptics(s *haptics.Service) { n.haptics = s }

// SetVibrationEnabled toggles tick pulses.
func (n *Notifier) SetVibrationEnabled(enabled bool) { n.vibrate = enabled }

// VibrationEnabled reports whether tick pulses are on.
func (n *Notifier) VibrationEnabled() bool { return n.vibrate }

// Pending reports the held event, if any.
func (n *Notifier) Pending() (Event, bool) { return n.pending, n.hasPending }

// BeginLayout marks the start of a layout pass.
func (n *Notifier) BeginLayout() { n.inLayout = true }

// EndLayout marks the end of a layout pass. ready reports whether the
// position now has usable geometry.
func (n *Notifier) EndLayout(ready bool) {
	n.inLayout = false
	n.ready = ready
	if n.hasPending && n.ready {
		n.scheduleFlush()
	}
}

func (n *Notifier) Started()   { n.emit(EventStarted) }
func (n *Notifier) Scrolling() { n.emit(EventScrolling) }
func (n *Notifier) Finished()  { n.emit(EventFinished) }

func (n *Notifier) emit(e Event) {
	if n.inLayout || !n.ready {
		if n.hasPending {
			n.logger.Debug("wheel notification superseded", "held", n.pending.String(), "by", e.String())
		}
		n.pending = e
		n.hasPending = true
		if n.ready {
			n.scheduleFlush()
		}
		return
	}
	n.deliver(e)
}

func (n *Notifier) scheduleFlush() {
	if n.flushPosted {
		return
	}
	if n.poster == nil {
		n.flush()
		return
	}
	n.flushPosted = true
	n.poster.Post(n.flush)
}

func (n *Notifier) flush() {
	n.flushPosted = false
	if !n.hasPending || n.inLayout || !n.ready {
		return
	}
	e := n.pending
	n.hasPending = false
	n.deliver(e)
}

func (n *Notifier) deliver(e Event) {
	value, tick := n.pos.Value(), n.pos.TickIndex()
	switch e {
	case EventStarted:
		n.lastTick = tick
	case EventScrolling:
		if tick != n.lastTick {
			n.lastTick = tick
			if n.vibrate {
				n.haptics.Pulse()
			}
		}
	}

	l := n.listener
	if l == nil {
		return
	}
	switch e {
	case EventStarted:
		l.OnScrollStarted(value, tick)
	case EventScrolling:
		l.OnScroll(value, tick)
	case EventFinished:
		l.OnScrollFinished(value, tick)
	}
}
