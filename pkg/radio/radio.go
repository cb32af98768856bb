// Package radio draws a compact read-only indicator that mirrors a wheel's
// value: a row of small ticks, a row of big ticks and a bar whose position
// tracks the value in [-1, 1].
//
// A radio does not handle input. [Bind] keeps one in sync with a
// wheel.Wheel.
package radio

import (
	"log/slog"
	"math"

	"github.com/go-drift/wheel/pkg/rendering"
)

const (
	PaddingLeft  = 10
	PaddingRight = 10

	// SmallLineWidth and BigLineWidth are the stroke widths of the tick
	// rows. The value bar uses BigLineWidth.
	SmallLineWidth = 1
	BigLineWidth   = 3

	DefaultSmallTicks = 25
	DefaultBigTicks   = 5
)

// Style holds the colors a radio paints with.
type Style struct {
	Value rendering.Color
	Small rendering.Color
	Big   rendering.Color
}

// DefaultStyle returns the default palette.
func DefaultStyle() Style {
	return Style{
		Value: rendering.Color(0xFFFFFFFF),
		Small: rendering.Color(0x33FFFFFF),
		Big:   rendering.Color(0x66FFFFFF),
	}
}

// Options configures a Radio. Zero values select defaults.
type Options struct {
	// SmallTicks and BigTicks are the number of tick marks per row. The
	// first mark sits on the left edge, so n marks divide the row into
	// n-1 intervals.
	SmallTicks int
	BigTicks   int

	Style    *Style
	OnRedraw func()
	Logger   *slog.Logger
}

// Radio is the indicator's state and layout.
type Radio struct {
	smallTicks int
	bigTicks   int
	value      float64

	width, height int
	forceLayout   bool
	laidOut       bool
	realRect      rendering.Rect
	smallStep     float64
	bigStep       float64
	correction    float64

	style    Style
	onRedraw func()
	logger   *slog.Logger
}

// New creates a radio with no geometry.
func New(opts Options) *Radio {
	r := &Radio{
		smallTicks: DefaultSmallTicks - 1,
		bigTicks:   DefaultBigTicks - 1,
		style:      DefaultStyle(),
		onRedraw:   opts.OnRedraw,
		logger:     opts.Logger,
	}
	if opts.SmallTicks > 1 {
		r.smallTicks = opts.SmallTicks - 1
	}
	if opts.BigTicks > 1 {
		r.bigTicks = opts.BigTicks - 1
	}
	if opts.Style != nil {
		r.style = *opts.Style
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// SetTicks sets the tick intervals of each row directly and forces a
// re-layout. Values below one are treated as one.
func (r *Radio) SetTicks(small, big int) {
	r.smallTicks = max(small, 1)
	r.bigTicks = max(big, 1)
	r.forceLayout = true
	if r.width > 0 {
		r.Layout(r.width, r.height)
	}
	r.redraw()
}

// Ticks returns the tick intervals of the small and big rows.
func (r *Radio) Ticks() (small, big int) { return r.smallTicks, r.bigTicks }

// SetValue moves the bar, clamping v to [-1, 1]. NaN is ignored.
func (r *Radio) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = math.Min(math.Max(v, -1), 1)
	if v == r.value {
		return
	}
	r.value = v
	r.redraw()
}

// Value returns the clamped value.
func (r *Radio) Value() float64 { return r.value }

func (r *Radio) redraw() {
	if r.onRedraw != nil {
		r.onRedraw()
	}
}

// Layout sets the radio size. Geometry is recomputed when the size changed
// or new tick counts are pending.
func (r *Radio) Layout(width, height int) {
	changed := width != r.width || height != r.height
	if !(width > 0 && changed) && !r.forceLayout {
		return
	}
	r.width, r.height = width, height
	r.forceLayout = false
	if width <= 0 {
		r.laidOut = false
		return
	}

	r.realRect = rendering.Rect{
		Left:   PaddingLeft,
		Top:    0,
		Right:  float64(width - PaddingRight),
		Bottom: float64(height),
	}
	realWidth := int(r.realRect.Width())
	r.smallStep = float64(width / r.smallTicks)
	r.bigStep = float64(realWidth / r.bigTicks)
	perBig := float64(realWidth) / float64(r.bigTicks)
	r.correction = (perBig - math.Floor(perBig)) * float64(r.bigTicks)
	r.laidOut = true

	r.logger.Debug("radio layout", "width", width, "height", height,
		"small", r.smallTicks, "big", r.bigTicks, "correction", r.correction)
}

// Frame is the computed drawing positions of one radio frame.
type Frame struct {
	// Small and Big hold the left edge of each tick mark.
	Small []float64
	Big   []float64
	// Indicator is the left edge of the value bar.
	Indicator float64
}

// Frame returns the mark positions for the current value. It is empty
// before the first layout.
func (r *Radio) Frame() Frame {
	var f Frame
	if !r.laidOut {
		return f
	}
	if r.smallStep > 0 {
		for x := 0.0; x < r.realRect.Right; x += r.smallStep {
			if x >= r.realRect.Left {
				f.Small = append(f.Small, x)
			}
		}
	}
	origin := float64(PaddingLeft - BigLineWidth/2)
	if r.bigStep > 0 {
		for x := origin; x < float64(r.width); x += r.bigStep {
			f.Big = append(f.Big, x)
		}
	}
	f.Indicator = origin + r.IndicatorX()
	return f
}

// IndicatorX returns the bar position relative to the big tick origin:
// rw + rw·value with rw = (realWidth - correction)/2.
func (r *Radio) IndicatorX() float64 {
	rw := (r.realRect.Width() - r.correction) / 2
	return rw + rw*r.value
}

// Draw paints the radio. Nothing is painted before the first layout.
func (r *Radio) Draw(c rendering.Canvas) {
	if !r.laidOut {
		return
	}
	h := float64(r.height)
	frame := r.Frame()

	smallTop, smallBottom := band(r.height, 2, 3)
	for _, x := range frame.Small {
		c.DrawRect(rendering.Rect{Left: x, Top: smallTop, Right: x + SmallLineWidth, Bottom: smallBottom}, r.style.Small)
	}
	bigTop, bigBottom := band(r.height, 4, 5)
	for _, x := range frame.Big {
		c.DrawRect(rendering.Rect{Left: x, Top: bigTop, Right: x + BigLineWidth, Bottom: bigBottom}, r.style.Big)
	}
	c.DrawRect(rendering.RectFromLTWH(frame.Indicator, 0, BigLineWidth, h), r.style.Value)
}

// band returns the vertical extent from h - h·num/den to h·num/den.
func band(height, num, den int) (top, bottom float64) {
	center := height * num / den
	return float64(height - center), float64(center)
}
