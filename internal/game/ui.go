package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 14

var (
	hudTextColor   = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	hudShadowColor = color.RGBA{A: 200}
)

// UISystem draws the HUD over the view
type UISystem struct {
	viewer *Viewer
}

// NewUISystem creates a new UI system
func NewUISystem(viewer *Viewer) *UISystem {
	return &UISystem{viewer: viewer}
}

// Draw draws the status line and frame counters when stats are shown
func (ui *UISystem) Draw(screen *ebiten.Image) {
	s := ui.viewer.session
	if !s.ShowStats {
		return
	}

	drawShadowedText(screen, s.StatusLine(), 4, 2)

	m := ui.viewer.monitor.GetCurrentMetrics()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f  render %v", ebiten.ActualFPS(), m.RenderTime),
		4, screen.Bounds().Dy()-16)

	hint := "Tab map  F hud"
	if len(s.Levels()) > 1 {
		hint += "  PgUp/PgDn level"
	}
	drawShadowedText(screen, hint, screen.Bounds().Dx()-textWidth(hint)-4, 2+lineHeight)
}

// drawShadowedText draws s with its top-left corner at (x, y), with a one
// pixel shadow so it stays readable over walls.
func drawShadowedText(screen *ebiten.Image, s string, x, y int) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	ebitext.Draw(screen, s, face, x+1, baseline+1, hudShadowColor)
	ebitext.Draw(screen, s, face, x, baseline, hudTextColor)
}

// textWidth returns the drawn width of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}
