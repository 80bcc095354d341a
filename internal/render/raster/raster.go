// Package raster is a render.Canvas backed by an in-memory RGBA image, used
// for PNG snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas draws stroked lines and circles onto an *image.RGBA.
type Canvas struct {
	img        *image.RGBA
	z          *vector.Rasterizer
	background *image.Uniform

	// LineWidth is the stroke width in pixels.
	LineWidth float32
}

// New creates a width x height canvas cleared to black.
func New(width, height int) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		z:          vector.NewRasterizer(width, height),
		background: image.NewUniform(color.Black),
		LineWidth:  1,
	}
	c.Clear()
	return c
}

func (c *Canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// SetBackground changes the colour Clear fills with.
func (c *Canvas) SetBackground(clr color.Color) {
	c.background = image.NewUniform(clr)
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), c.background, image.Point{}, draw.Src)
}

// DrawLine strokes a square-capped line between pixel centres.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	hw := float64(c.LineWidth) / 2
	// pixel centres
	x1, y1, x2, y2 = x1+0.5, y1+0.5, x2+0.5, y2+0.5

	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}
	// extend by the caps, offset by the normal
	ex, ey := ux*hw, uy*hw
	nx, ny := -uy*hw, ux*hw

	c.z.Reset(c.Width(), c.Height())
	c.z.MoveTo(float32(x1-ex+nx), float32(y1-ey+ny))
	c.z.LineTo(float32(x2+ex+nx), float32(y2+ey+ny))
	c.z.LineTo(float32(x2+ex-nx), float32(y2+ey-ny))
	c.z.LineTo(float32(x1-ex-nx), float32(y1-ey-ny))
	c.z.ClosePath()
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(clr), image.Point{})
}

// DrawCircle strokes a circle outline.
func (c *Canvas) DrawCircle(x, y, radius float64, clr color.Color) {
	hw := float32(c.LineWidth) / 2
	cx, cy := float32(x+0.5), float32(y+0.5)

	c.z.Reset(c.Width(), c.Height())
	addCircle(c.z, cx, cy, float32(radius)+hw, false)
	if inner := float32(radius) - hw; inner > 0 {
		addCircle(c.z, cx, cy, inner, true)
	}
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(clr), image.Point{})
}

// addCircle adds a circle approximated by four cubic Béziers. Opposite
// windings cut the inner circle out of the outer one.
func addCircle(z *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	z.MoveTo(cx, cy-radius)
	if clockwise {
		z.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		z.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	z.ClosePath()
}

// DrawText writes s with its baseline at (x, y) in the 7x13 bitmap font.
func (c *Canvas) DrawText(x, y int, s string, clr color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(clr),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextWidth returns the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
