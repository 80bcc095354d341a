package render

import (
	"image/color"

	"bspview/internal/player"
	"bspview/internal/world"
)

var (
	autoMapWallColor   = color.RGBA{R: 255, A: 255}
	autoMapStepColor   = color.RGBA{R: 140, G: 90, B: 40, A: 255}
	autoMapPlayerColor = color.RGBA{G: 255, A: 255}
)

// AutoMap draws the top-down overlay: every linedef plus the player.
type AutoMap struct {
	level  *world.Map
	canvas Canvas
	scale  float64 // 0 uses the level's AutoMapScale
}

// NewAutoMap creates an overlay renderer. The level's AutoMapScale should
// already fit the canvas, see world.Map.SetAutoMapScale, unless SetScale
// overrides it.
func NewAutoMap(level *world.Map, canvas Canvas) *AutoMap {
	return &AutoMap{level: level, canvas: canvas}
}

// SetLevel switches the level being drawn.
func (a *AutoMap) SetLevel(level *world.Map) {
	a.level = level
}

// SetScale overrides the level's AutoMapScale for this overlay. Renderers
// sharing a level but not a canvas size use it instead of writing to the
// level. Zero restores the level's scale.
func (a *AutoMap) SetScale(scale float64) {
	a.scale = scale
}

func (a *AutoMap) currentScale() float64 {
	if a.scale > 0 {
		return a.scale
	}
	return a.level.AutoMapScale
}

// Render clears the canvas and draws the overlay.
func (a *AutoMap) Render(p *player.Player) {
	a.canvas.Clear()
	a.Draw(p)
}

// Draw draws the overlay on top of whatever the canvas holds.
func (a *AutoMap) Draw(p *player.Player) {
	for i := range a.level.Linedefs {
		ld := &a.level.Linedefs[i]
		if ld.Flags&world.LinedefNeverOnMap != 0 {
			continue
		}
		c := autoMapWallColor
		if ld.Back != nil {
			c = autoMapStepColor
		}
		a.canvas.DrawLine(a.remapX(ld.Start.X), a.remapY(ld.Start.Y), a.remapX(ld.End.X), a.remapY(ld.End.Y), c)
	}

	x, y := p.Position()
	px, py := a.remapX(x), a.remapY(y)
	a.canvas.DrawCircle(px, py, 4, autoMapPlayerColor)
	a.canvas.DrawLine(px, py, px+p.Angle.Cos()*10, py-p.Angle.Sin()*10, autoMapPlayerColor)
}

func (a *AutoMap) remapX(x float64) float64 {
	return (x - a.level.XMin) / a.currentScale()
}

func (a *AutoMap) remapY(y float64) float64 {
	return float64(a.canvas.Height()) - (y-a.level.YMin)/a.currentScale()
}
