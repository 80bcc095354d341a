package render

import "image/color"

type drawnLine struct {
	x1, y1, x2, y2 float64
	c              color.Color
}

type drawnCircle struct {
	x, y, r float64
	c       color.Color
}

// recordingCanvas remembers every draw call since the last Clear.
type recordingCanvas struct {
	width, height int
	clears        int
	lines         []drawnLine
	circles       []drawnCircle
}

func newRecordingCanvas(width, height int) *recordingCanvas {
	return &recordingCanvas{width: width, height: height}
}

func (c *recordingCanvas) Width() int  { return c.width }
func (c *recordingCanvas) Height() int { return c.height }

func (c *recordingCanvas) Clear() {
	c.clears++
	c.lines = c.lines[:0]
	c.circles = c.circles[:0]
}

func (c *recordingCanvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	c.lines = append(c.lines, drawnLine{x1, y1, x2, y2, clr})
}

func (c *recordingCanvas) DrawCircle(x, y, r float64, clr color.Color) {
	c.circles = append(c.circles, drawnCircle{x, y, r, clr})
}

// textureColors gives each known texture a fixed colour and records every
// texture it was asked about.
type textureColors struct {
	known map[string]color.RGBA
	asked []string
}

func (tc *textureColors) assign(texture string) color.RGBA {
	tc.asked = append(tc.asked, texture)
	if c, ok := tc.known[texture]; ok {
		return c
	}
	return color.RGBA{R: 1, G: 1, B: 1, A: 255}
}
