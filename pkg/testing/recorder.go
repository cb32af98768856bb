package testing

import "github.com/go-drift/wheel/pkg/wheel"

// RecordedEvent is one notification seen by a Recorder.
type RecordedEvent struct {
	Event wheel.Event
	Value float64
	Tick  int
}

// Recorder is a wheel.Listener that keeps every event it receives.
type Recorder struct {
	events []RecordedEvent
}

var _ wheel.Listener = (*Recorder)(nil)

func (r *Recorder) OnScrollStarted(value float64, tick int) {
	r.events = append(r.events, RecordedEvent{Event: wheel.EventStarted, Value: value, Tick: tick})
}

func (r *Recorder) OnScroll(value float64, tick int) {
	r.events = append(r.events, RecordedEvent{Event: wheel.EventScrolling, Value: value, Tick: tick})
}

func (r *Recorder) OnScrollFinished(value float64, tick int) {
	r.events = append(r.events, RecordedEvent{Event: wheel.EventFinished, Value: value, Tick: tick})
}

// All returns the recorded events in order.
func (r *Recorder) All() []RecordedEvent {
	return append([]RecordedEvent(nil), r.events...)
}

// Kinds returns the event kinds in order.
func (r *Recorder) Kinds() []wheel.Event {
	kinds := make([]wheel.Event, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Event
	}
	return kinds
}

// Count returns how many events of a kind were recorded.
func (r *Recorder) Count(kind wheel.Event) int {
	n := 0
	for _, e := range r.events {
		if e.Event == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent event and false when none was recorded.
func (r *Recorder) Last() (RecordedEvent, bool) {
	if len(r.events) == 0 {
		return RecordedEvent{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.events = nil
}
