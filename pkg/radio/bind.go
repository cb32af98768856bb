package radio

import "github.com/go-drift/wheel/pkg/wheel"

// Bind keeps r in sync with w. On every wheel layout the radio gets
// VisibleTickSpan()/2 small ticks and RotationFactor() big ticks, and every
// scroll event moves its bar to the wheel's value. Listeners already set on
// w keep receiving their callbacks.
func Bind(r *Radio, w *wheel.Wheel) {
	prevLayout := w.LayoutListener()
	w.SetLayoutListener(wheel.LayoutFunc(func(w *wheel.Wheel) {
		r.SetTicks(w.VisibleTickSpan()/2, w.RotationFactor())
		if prevLayout != nil {
			prevLayout.OnLayoutChanged(w)
		}
	}))
	w.SetListener(&follower{radio: r, next: w.Listener()})

	if w.Position().Ready() {
		r.SetTicks(w.VisibleTickSpan()/2, w.RotationFactor())
		r.SetValue(w.Value())
	}
}

// follower moves a radio on scroll events and forwards them.
type follower struct {
	radio *Radio
	next  wheel.Listener
}

func (f *follower) OnScrollStarted(value float64, tick int) {
	f.radio.SetValue(value)
	if f.next != nil {
		f.next.OnScrollStarted(value, tick)
	}
}

func (f *follower) OnScroll(value float64, tick int) {
	f.radio.SetValue(value)
	if f.next != nil {
		f.next.OnScroll(value, tick)
	}
}

func (f *follower) OnScrollFinished(value float64, tick int) {
	f.radio.SetValue(value)
	if f.next != nil {
		f.next.OnScrollFinished(value, tick)
	}
}
