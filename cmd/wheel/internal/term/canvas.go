package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/wheel/pkg/rendering"
)

// Cells is the part of a tcell screen a Canvas draws into.
type Cells interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Region is a rectangle of terminal cells.
type Region struct {
	X, Y       int
	Cols, Rows int
}

// Contains reports whether the cell is inside the region.
func (r Region) Contains(col, row int) bool {
	return col >= r.X && col < r.X+r.Cols && row >= r.Y && row < r.Y+r.Rows
}

// Canvas maps pixel drawing onto terminal cells. Each cell covers
// PxPerCol by PxPerRow pixels; a cell is painted when a shape covers its
// center.
type Canvas struct {
	cells    Cells
	region   Region
	pxPerCol float64
	pxPerRow float64
	bg       rendering.Color
}

var _ rendering.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas over region.
func NewCanvas(cells Cells, region Region, pxPerCol, pxPerRow float64) *Canvas {
	return &Canvas{cells: cells, region: region, pxPerCol: pxPerCol, pxPerRow: pxPerRow}
}

// Region returns the cells the canvas draws into.
func (c *Canvas) Region() Region { return c.region }

// ColumnAt converts a screen column to a canvas x in pixels, at the
// center of the cell.
func (c *Canvas) ColumnAt(col int) float64 {
	return (float64(col-c.region.X) + 0.5) * c.pxPerCol
}

// Size implements rendering.Canvas.
func (c *Canvas) Size() rendering.Size {
	return rendering.Size{
		Width:  float64(c.region.Cols) * c.pxPerCol,
		Height: float64(c.region.Rows) * c.pxPerRow,
	}
}

// Clear implements rendering.Canvas.
func (c *Canvas) Clear(color rendering.Color) {
	c.bg = color
	style := tcell.StyleDefault.Background(cellColor(color, rendering.ColorBlack))
	for row := 0; row < c.region.Rows; row++ {
		for col := 0; col < c.region.Cols; col++ {
			c.cells.SetContent(c.region.X+col, c.region.Y+row, ' ', nil, style)
		}
	}
}

// DrawRect implements rendering.Canvas.
func (c *Canvas) DrawRect(rect rendering.Rect, color rendering.Color) {
	fg := cellColor(color, c.bg)
	style := tcell.StyleDefault.Foreground(fg).Background(cellColor(c.bg, rendering.ColorBlack))
	glyph := '█'
	if rect.Width() < c.pxPerCol {
		glyph = '│'
	}

	c0, c1 := c.span(rect.Left, rect.Right, c.pxPerCol)
	r0, r1 := c.span(rect.Top, rect.Bottom, c.pxPerRow)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, glyph, style)
		}
	}
}

// DrawLine implements rendering.Canvas.
func (c *Canvas) DrawLine(start, end rendering.Offset, _ float64, color rendering.Color) {
	style := tcell.StyleDefault.Foreground(cellColor(color, c.bg)).Background(cellColor(c.bg, rendering.ColorBlack))
	x0, y0 := start.X/c.pxPerCol, start.Y/c.pxPerRow
	x1, y1 := end.X/c.pxPerCol, end.Y/c.pxPerRow
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	glyph := '·'
	switch {
	case y0 == y1:
		glyph = '─'
	case x0 == x1:
		glyph = '│'
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), glyph, style)
	}
}

// span returns the cells whose centers lie in [lo, hi). An empty span
// that still touches a cell maps to that cell so thin marks stay visible.
func (c *Canvas) span(lo, hi, px float64) (first, last int) {
	first = int(math.Ceil(lo/px - 0.5))
	last = int(math.Ceil(hi/px-0.5)) - 1
	if last < first {
		last = int(math.Floor(lo / px))
		first = last
	}
	return first, last
}

func (c *Canvas) set(col, row int, glyph rune, style tcell.Style) {
	x, y := c.region.X+col, c.region.Y+row
	if !c.region.Contains(x, y) {
		return
	}
	c.cells.SetContent(x, y, glyph, nil, style)
}

// cellColor blends a translucent color over bg.
func cellColor(fg, bg rendering.Color) tcell.Color {
	f, b := fg.NRGBA(), bg.NRGBA()
	a := int32(f.A)
	mix := func(x, y uint8) int32 {
		return (int32(x)*a + int32(y)*(255-a)) / 255
	}
	return tcell.NewRGBColor(mix(f.R, b.R), mix(f.G, b.G), mix(f.B, b.B))
}

// DrawText writes s starting at the given cell.
func DrawText(cells Cells, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		cells.SetContent(x+i, y, r, nil, style)
	}
}
