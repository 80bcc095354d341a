package main

import (
	"github.com/gdamore/tcell/v2"

	"bspview/internal/render/term"
	"bspview/internal/server"
)

const halfBlock = '▀'

// keyAction maps a terminal key to the same actions the SSH viewer uses.
func keyAction(ev *tcell.EventKey) server.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return server.ActionForward
	case tcell.KeyDown:
		return server.ActionBack
	case tcell.KeyLeft:
		return server.ActionTurnLeft
	case tcell.KeyRight:
		return server.ActionTurnRight
	case tcell.KeyTab:
		return server.ActionToggleMap
	case tcell.KeyPgDn:
		return server.ActionNextLevel
	case tcell.KeyPgUp:
		return server.ActionPrevLevel
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return server.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return server.ActionForward
		case 's', 'S':
			return server.ActionBack
		case 'a', 'A':
			return server.ActionTurnLeft
		case 'd', 'D':
			return server.ActionTurnRight
		case 'q', 'Q':
			return server.ActionStrafeLeft
		case 'e', 'E':
			return server.ActionStrafeRight
		case 'f', 'F':
			return server.ActionToggleStats
		case ']':
			return server.ActionNextLevel
		case '[':
			return server.ActionPrevLevel
		case 'x', 'X':
			return server.ActionQuit
		}
	}
	return server.ActionNone
}

func pixelColor(p term.Pixel) tcell.Color {
	return tcell.NewRGBColor(int32(p.R), int32(p.G), int32(p.B))
}

// drawCanvas copies the framebuffer onto the screen, two pixels per cell:
// the upper one as the foreground of a half block, the lower one as the
// background.
func drawCanvas(screen tcell.Screen, canvas *term.Canvas) {
	cols, rows := screen.Size()
	for row := 0; row < canvas.Rows() && row < rows; row++ {
		for col := 0; col < canvas.Width() && col < cols; col++ {
			style := tcell.StyleDefault.
				Foreground(pixelColor(canvas.At(col, row*2))).
				Background(pixelColor(canvas.At(col, row*2+1)))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// drawText writes text on row starting at the first column and blanks the
// rest of the row.
func drawText(screen tcell.Screen, row int, text string) {
	cols, rows := screen.Size()
	if row < 0 || row >= rows {
		return
	}
	col := 0
	for _, r := range text {
		if col >= cols {
			break
		}
		screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
	for ; col < cols; col++ {
		screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	}
}
