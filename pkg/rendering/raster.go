package rendering

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Raster is a Canvas backed by an RGBA image. Shapes are anti-aliased with
// golang.org/x/image/vector.
type Raster struct {
	img  *image.RGBA
	rast *vector.Rasterizer
}

// NewRaster creates a raster of the given pixel size.
func NewRaster(width, height int) *Raster {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		rast: vector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

// Size implements Canvas.
func (r *Raster) Size() Size {
	b := r.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Clear implements Canvas.
func (r *Raster) Clear(c Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// DrawRect implements Canvas.
func (r *Raster) DrawRect(rect Rect, c Color) {
	bounds := Rect{Right: r.Size().Width, Bottom: r.Size().Height}
	rect = rect.Intersect(bounds)
	if rect.IsEmpty() {
		return
	}
	r.fill(c, func(z *vector.Rasterizer) {
		z.MoveTo(float32(rect.Left), float32(rect.Top))
		z.LineTo(float32(rect.Right), float32(rect.Top))
		z.LineTo(float32(rect.Right), float32(rect.Bottom))
		z.LineTo(float32(rect.Left), float32(rect.Bottom))
		z.ClosePath()
	})
}

// DrawLine implements Canvas. The line is filled as a quad around the
// segment.
func (r *Raster) DrawLine(start, end Offset, width float64, c Color) {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	r.fill(c, func(z *vector.Rasterizer) {
		z.MoveTo(float32(start.X+nx), float32(start.Y+ny))
		z.LineTo(float32(end.X+nx), float32(end.Y+ny))
		z.LineTo(float32(end.X-nx), float32(end.Y-ny))
		z.LineTo(float32(start.X-nx), float32(start.Y-ny))
		z.ClosePath()
	})
}

func (r *Raster) fill(c Color, path func(z *vector.Rasterizer)) {
	b := r.img.Bounds()
	r.rast.Reset(b.Dx(), b.Dy())
	r.rast.DrawOp = draw.Over
	path(r.rast)
	r.rast.Draw(r.img, b, image.NewUniform(c.NRGBA()), image.Point{})
}

// DrawLabel draws text with its baseline at the given point using a fixed
// 7x13 bitmap face.
func (r *Raster) DrawLabel(text string, at Offset, c Color) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c.NRGBA()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(at.X), int(at.Y)),
	}
	d.DrawString(text)
}

// MeasureLabel returns the advance width of text in pixels.
func MeasureLabel(text string) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, text).Round())
}

// EncodePNG writes the raster as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}
