package mirror

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/wheel/pkg/errors"
	"github.com/go-drift/wheel/pkg/wheel"
)

// Listener publishes wheel events to a hub. It remembers the latest state
// so new clients can be greeted with it.
type Listener struct {
	hub    *Hub
	logger *slog.Logger
	// Now stamps frames. Nil uses time.Now.
	Now func() time.Time

	mu     sync.Mutex
	latest State
}

var _ wheel.Listener = (*Listener)(nil)

// NewListener creates a listener publishing to hub.
func NewListener(hub *Hub, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{hub: hub, logger: logger}
}

func (l *Listener) OnScrollStarted(value float64, tick int)  { l.publish(TypeStarted, value, tick) }
func (l *Listener) OnScroll(value float64, tick int)         { l.publish(TypeScroll, value, tick) }
func (l *Listener) OnScrollFinished(value float64, tick int) { l.publish(TypeFinished, value, tick) }

// Latest returns the state of the most recent event.
func (l *Listener) Latest() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest
}

// Set records a state without broadcasting it, for wheels whose initial
// value was set without events.
func (l *Listener) Set(s State) {
	l.mu.Lock()
	l.latest = s
	l.mu.Unlock()
}

func (l *Listener) publish(typ string, value float64, tick int) {
	s := State{Value: value, Tick: tick}
	l.Set(s)

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	msg, err := Encode(typ, s, now())
	if err != nil {
		errors.ReportOp("mirror.Publish", errors.KindTransport, err)
		return
	}
	l.hub.Broadcast(msg)
}
