package wheel

import "math"

// Defaults for a new Position.
const (
	DefaultTickCount      = 18
	DefaultRotationFactor = 2
)

// Position is the scroll model of a wheel: an integer pixel offset and the
// geometry it is measured against.
//
// The offset is unbounded. minOffset and maxOffset are soft bounds that the
// gesture router enforces with resistance and bounce-back. Until the first
// successful SetGeometry every derived read returns 0.
type Position struct {
	offset int

	width          int
	height         int
	tickCount      int
	rotationFactor int

	tickSpacing float64
	minOffset   int
	maxOffset   int
}

// NewPosition returns a position with the default tick count and rotation
// factor and no geometry.
func NewPosition() *Position {
	return &Position{
		tickCount:      DefaultTickCount,
		rotationFactor: DefaultRotationFactor,
	}
}

// SetGeometry recomputes the derived geometry. It returns false and leaves
// the position unchanged when any argument is out of range.
func (p *Position) SetGeometry(width, height, tickCount, rotationFactor int) bool {
	if width <= 0 || tickCount < 1 || rotationFactor < 1 {
		return false
	}
	p.width = width
	p.height = height
	p.tickCount = tickCount
	p.rotationFactor = rotationFactor
	p.tickSpacing = float64(width) / float64(tickCount)
	p.maxOffset = width * rotationFactor
	p.minOffset = -p.maxOffset
	return true
}

// Ready reports whether geometry has been set.
func (p *Position) Ready() bool { return p.width > 0 }

// Offset returns the scroll offset in pixels.
func (p *Position) Offset() int { return p.offset }

// SetOffset moves to an absolute offset.
func (p *Position) SetOffset(offset int) { p.offset = offset }

func (p *Position) Width() int           { return p.width }
func (p *Position) Height() int          { return p.height }
func (p *Position) TickCount() int       { return p.tickCount }
func (p *Position) RotationFactor() int  { return p.rotationFactor }
func (p *Position) TickSpacing() float64 { return p.tickSpacing }
func (p *Position) MinOffset() int       { return p.minOffset }
func (p *Position) MaxOffset() int       { return p.maxOffset }

// Value maps the offset onto [-1, 1] at the bounds. Offsets past a bound
// produce values past ±1.
func (p *Position) Value() float64 {
	if p.maxOffset == 0 {
		return 0
	}
	return float64(p.offset) / float64(p.maxOffset)
}

// SetValue moves to round(v·width·rotationFactor). Values outside [-1, 1]
// and a missing geometry are ignored and reported as false.
func (p *Position) SetValue(v float64) bool {
	if math.IsNaN(v) || v < -1 || v > 1 || !p.Ready() {
		return false
	}
	p.offset = int(math.Round(v * float64(p.maxOffset)))
	return true
}

// CurrentPage returns floor(offset/width), the number of whole strip
// widths scrolled.
func (p *Position) CurrentPage() int {
	if p.width == 0 {
		return 0
	}
	return floorDiv(p.offset, p.width)
}

// TickIndex returns the absolute index of the tick at the offset. It counts
// across rotations, so it can exceed TickCount and be negative.
func (p *Position) TickIndex() int {
	if p.width == 0 {
		return 0
	}
	return p.tickOf(p.offset)
}

// TotalTicksVisible returns the number of ticks spanned by the full value
// range.
func (p *Position) TotalTicksVisible() int {
	if p.width == 0 {
		return 0
	}
	within := floorMod(p.offset, p.width)
	span := float64(p.maxOffset)/float64(p.width)*float64(p.tickCount) + float64(within)/p.tickSpacing
	return int(math.Floor(span)) * 2
}

// OutOfBounds reports whether the offset is past minOffset or maxOffset.
func (p *Position) OutOfBounds() bool {
	return p.offset < p.minOffset || p.offset > p.maxOffset
}

// gridNeighbors returns the first pixel of the tick holding the offset and
// the first pixel of the next tick. TickIndex at either names that tick.
func (p *Position) gridNeighbors() (lower, upper int) {
	k := p.tickOf(p.offset)
	return p.tickStart(k), p.tickStart(k + 1)
}

func (p *Position) tickOf(offset int) int {
	within := floorMod(offset, p.width)
	return floorDiv(offset, p.width)*p.tickCount + int(math.Floor(float64(within)/p.tickSpacing))
}

// tickStart returns the smallest offset in tick k. The ceiling of
// k·tickSpacing is a guess that float error can put a pixel off.
func (p *Position) tickStart(k int) int {
	b := int(math.Ceil(float64(k) * p.tickSpacing))
	for p.tickOf(b) < k {
		b++
	}
	for p.tickOf(b-1) >= k {
		b--
	}
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
