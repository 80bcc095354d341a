// Package term is a render.Canvas that rasterises into a terminal
// framebuffer: one character cell holds two vertical pixels drawn with the
// upper half block and 24-bit colour escapes.
package term

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"bspview/internal/mathutil"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	halfBlock = "▀"
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// ClearLine clears the cursor's line.
func ClearLine() string {
	return CSI + "2K"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// Pixel is an opaque RGB colour.
type Pixel struct {
	R, G, B uint8
}

func toPixel(c color.Color) Pixel {
	r, g, b, _ := c.RGBA()
	return Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Canvas is a width x height pixel framebuffer. Height is rounded up to an
// even number so every cell row holds two pixels.
type Canvas struct {
	width, height int
	pixels        []Pixel
	background    Pixel
}

// New creates a cleared canvas.
func New(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the framebuffer size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.width = mathutil.IntMax(width, 1)
	c.height = mathutil.IntMax(height+height%2, 2)
	c.pixels = make([]Pixel, c.width*c.height)
	c.Clear()
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// SetBackground changes the colour Clear fills with.
func (c *Canvas) SetBackground(clr color.Color) {
	c.background = toPixel(clr)
}

func (c *Canvas) Clear() {
	for i := range c.pixels {
		c.pixels[i] = c.background
	}
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) Pixel {
	return c.pixels[y*c.width+x]
}

func (c *Canvas) set(x, y int, p Pixel) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = p
}

// DrawLine plots a one-pixel line with Bresenham's algorithm. Off-screen
// parts are dropped pixel by pixel, so endpoints may lie far outside.
func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, clr color.Color) {
	p := toPixel(clr)
	// keep the walk bounded when a projected wall edge goes far off screen
	limit := float64(4 * (c.width + c.height))
	x0, y0 := mathutil.RoundInt(mathutil.ClampFloat(x1, -limit, limit)), mathutil.RoundInt(mathutil.ClampFloat(y1, -limit, limit))
	xe, ye := mathutil.RoundInt(mathutil.ClampFloat(x2, -limit, limit)), mathutil.RoundInt(mathutil.ClampFloat(y2, -limit, limit))

	dx := mathutil.IntAbs(xe - x0)
	dy := -mathutil.IntAbs(ye - y0)
	sx, sy := 1, 1
	if x0 > xe {
		sx = -1
	}
	if y0 > ye {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, p)
		if x0 == xe && y0 == ye {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle plots a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(x, y, radius float64, clr color.Color) {
	p := toPixel(clr)
	cx, cy, r := mathutil.RoundInt(x), mathutil.RoundInt(y), mathutil.RoundInt(radius)
	px, py := r, 0
	err := 1 - r
	for px >= py {
		for _, o := range [8][2]int{
			{px, py}, {py, px}, {-py, px}, {-px, py},
			{-px, -py}, {-py, -px}, {py, -px}, {px, -py},
		} {
			c.set(cx+o[0], cy+o[1], p)
		}
		py++
		if err < 0 {
			err += 2*py + 1
		} else {
			px--
			err += 2*(py-px) + 1
		}
	}
}

// Rows returns the number of terminal rows a frame occupies.
func (c *Canvas) Rows() int {
	return c.height / 2
}

// Frame renders the framebuffer as terminal output starting at the cursor
// home position. Colour escapes are only emitted when a cell's colours
// differ from the previous cell's.
func (c *Canvas) Frame() string {
	var sb strings.Builder
	sb.Grow(c.width * c.Rows() * 8)
	sb.WriteString(MoveTo(1, 1))
	for row := 0; row < c.Rows(); row++ {
		var lastFg, lastBg Pixel
		first := true
		for x := 0; x < c.width; x++ {
			fg := c.At(x, 2*row)
			bg := c.At(x, 2*row+1)
			if first || fg != lastFg {
				writeSGR(&sb, "38", fg)
			}
			if first || bg != lastBg {
				writeSGR(&sb, "48", bg)
			}
			first = false
			lastFg, lastBg = fg, bg
			sb.WriteString(halfBlock)
		}
		sb.WriteString(Reset)
		if row < c.Rows()-1 {
			sb.WriteString("\r\n")
		}
	}
	return sb.String()
}

func writeSGR(sb *strings.Builder, layer string, p Pixel) {
	sb.WriteString(CSI)
	sb.WriteString(layer)
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(p.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(p.B)))
	sb.WriteByte('m')
}
