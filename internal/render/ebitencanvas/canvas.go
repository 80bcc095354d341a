// Package ebitencanvas adapts an *ebiten.Image to render.Canvas.
package ebitencanvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas strokes onto an ebiten image. The target is swapped every frame
// with SetTarget since ebiten hands Draw a fresh screen image.
type Canvas struct {
	target     *ebiten.Image
	background color.Color

	LineWidth float32
	Antialias bool
}

// New creates a canvas drawing onto target.
func New(target *ebiten.Image, lineWidth float32, antialias bool) *Canvas {
	return &Canvas{
		target:     target,
		background: color.Black,
		LineWidth:  lineWidth,
		Antialias:  antialias,
	}
}

// SetTarget changes the image drawn onto.
func (c *Canvas) SetTarget(target *ebiten.Image) {
	c.target = target
}

// Target returns the image drawn onto.
func (c *Canvas) Target() *ebiten.Image {
	return c.target
}

func (c *Canvas) Width() int  { return c.target.Bounds().Dx() }
func (c *Canvas) Height() int { return c.target.Bounds().Dy() }

func (c *Canvas) Clear() {
	c.target.Fill(c.background)
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	vector.StrokeLine(c.target, float32(x1)+0.5, float32(y1)+0.5, float32(x2)+0.5, float32(y2)+0.5, c.LineWidth, clr, c.Antialias)
}

func (c *Canvas) DrawCircle(x, y, radius float64, clr color.Color) {
	vector.StrokeCircle(c.target, float32(x)+0.5, float32(y)+0.5, float32(radius), c.LineWidth, clr, c.Antialias)
}
