// Package ticks maps a wheel's scroll offset to the screen positions of its
// tick marks and center indicator.
//
// The strip repeats every width pixels of offset, so the wheel reads as an
// endless ruler. Marks are spread with a sine ease-in-out and squeezed
// horizontally by sin(πx/width), which compresses them toward both edges
// like the face of a drum seen from the front.
//
// Compute is a pure function; it holds no state between calls.
package ticks

import (
	"math"

	"github.com/go-drift/wheel/pkg/animation"
)

const (
	minTickWidth = 3.5
	maxTickWidth = 6
)

// Geometry holds the fixed inputs of a layout pass.
type Geometry struct {
	// Width is the strip width in pixels.
	Width float64
	// TickCount is the number of marks drawn across one width of offset.
	TickCount int
	// TickWidth is the drawn width of a mark before horizontal scaling.
	TickWidth float64
}

// Mark is one drawable mark.
type Mark struct {
	// X is the left edge of the mark in strip coordinates.
	X float64
	// ScaleX is the horizontal scale in [0, 1] applied to the mark.
	ScaleX float64
}

// Frame is the result of a layout pass.
type Frame struct {
	Ticks []Mark
	// Indicator is valid only when HasIndicator is true. The indicator
	// crosses the strip once per two widths of offset.
	Indicator    Mark
	HasIndicator bool
}

// TickWidth returns the mark width for a strip of the given width:
// a quarter of the tick spacing, clamped to [3.5, 6].
func TickWidth(width float64, count int) float64 {
	if width <= 0 || count <= 0 {
		return minTickWidth
	}
	w := width / float64(count) / 4
	return math.Max(minTickWidth, math.Min(maxTickWidth, w))
}

// Normalize wraps x into [0, period). Values already in range are returned
// unchanged, so Normalize is idempotent.
func Normalize(x, period float64) float64 {
	if period <= 0 {
		return 0
	}
	if x >= 0 {
		return math.Mod(x, period)
	}
	r := math.Mod(-x, period)
	if r == 0 {
		return 0
	}
	return period - r
}

// Compute lays out the marks for the given offset.
// A zero geometry produces an empty frame.
func Compute(offset int, g Geometry) Frame {
	if g.Width <= 0 || g.TickCount <= 0 {
		return Frame{}
	}
	w := g.Width
	half := g.TickWidth / 2
	off := float64(offset)

	frame := Frame{Ticks: make([]Mark, 0, g.TickCount)}
	for i := 0; i < g.TickCount; i++ {
		x := Normalize(off+float64(i)*w/float64(g.TickCount), w)
		scale := animation.SineInOut(x, 0, 1, w)
		frame.Ticks = append(frame.Ticks, Mark{
			X:      math.Trunc(scale*w) - half,
			ScaleX: math.Sin(math.Pi * x / w),
		})
	}

	ix := Normalize(w/2+off, 2*w)
	if ix < w {
		frame.Indicator = Mark{
			X:      animation.SineInOut(ix, 0, w, w) - half,
			ScaleX: math.Sin(math.Pi * ix / w),
		}
		frame.HasIndicator = true
	}
	return frame
}
