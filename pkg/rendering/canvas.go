// Package rendering defines the drawing surface that wheels paint on and
// a raster implementation of it.
//
// Wheels only need filled rectangles and straight lines, so [Canvas] is
// deliberately small. Hosts adapt it to their own surface; the terminal
// demo draws cells and [Raster] fills an image for snapshots.
package rendering

// Canvas is a drawing surface.
type Canvas interface {
	// Size returns the drawable area in pixels.
	Size() Size

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect fills a rectangle.
	DrawRect(rect Rect, color Color)

	// DrawLine draws a segment of the given stroke width.
	DrawLine(start, end Offset, width float64, color Color)
}

// Recorder is a Canvas that keeps the operations it receives, for tests
// and debugging.
type Recorder struct {
	size Size
	Ops  []Op
}

// OpKind identifies a recorded operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpRect
	OpLine
)

// Op is one recorded operation. Rect is set for OpRect; Start and End for
// OpLine.
type Op struct {
	Kind  OpKind
	Rect  Rect
	Start Offset
	End   Offset
	Width float64
	Color Color
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(size Size) *Recorder {
	return &Recorder{size: size}
}

// Size implements Canvas.
func (r *Recorder) Size() Size { return r.size }

// Clear implements Canvas.
func (r *Recorder) Clear(color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: color})
}

// DrawRect implements Canvas.
func (r *Recorder) DrawRect(rect Rect, color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Rect: rect, Color: color})
}

// DrawLine implements Canvas.
func (r *Recorder) DrawLine(start, end Offset, width float64, color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Start: start, End: end, Width: width, Color: color})
}

// Count returns the number of operations of a kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
