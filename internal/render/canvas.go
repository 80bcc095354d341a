// Package render draws the first-person view of a BSP level.
//
// The ViewRenderer walks the BSP tree front to back, clips every visible
// one-sided wall against the columns already covered this frame and projects
// the remaining fragments to screen space. Output goes to a Canvas, so the
// same renderer feeds an ebiten window, a PNG snapshot or an SSH terminal.
package render

import "image/color"

// Canvas is the drawing sink the renderers write to. Calls are synchronous.
type Canvas interface {
	Width() int
	Height() int
	Clear()
	DrawLine(x1, y1, x2, y2 float64, c color.Color)
	DrawCircle(x, y, radius float64, c color.Color)
}
