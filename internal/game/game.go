// Package game is the desktop viewer: an ebiten game showing one session
// full screen with keyboard movement and an optional HUD.
package game

import (
	"bspview/internal/config"
	"bspview/internal/game/keytracker"
	"bspview/internal/render/ebitencanvas"
	"bspview/internal/session"
	"bspview/internal/threading/monitoring"
	"bspview/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// Viewer implements ebiten.Game for one first-person session.
type Viewer struct {
	config  *config.Config
	session *session.Session
	canvas  *ebitencanvas.Canvas
	monitor *monitoring.PerformanceMonitor
	keys    *keytracker.KeyStateTracker

	gameLoop *GameLoop
	ui       *UISystem
}

// NewViewer creates the viewer on the current level of levels.
func NewViewer(cfg *config.Config, levels *world.LevelManager) (*Viewer, error) {
	// the screen image replaces this target on the first Draw
	target := ebiten.NewImage(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	canvas := ebitencanvas.New(target, float32(cfg.Render.LineWidth), cfg.Render.Antialias)
	monitor := monitoring.NewPerformanceMonitor()

	s, err := session.New(cfg, levels, canvas, session.NewWallColors(cfg), monitor)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		config:  cfg,
		session: s,
		canvas:  canvas,
		monitor: monitor,
		keys:    keytracker.New(),
	}
	v.gameLoop = NewGameLoop(v)
	v.ui = NewUISystem(v)
	return v, nil
}

// Session returns the viewer's session.
func (v *Viewer) Session() *session.Session {
	return v.session
}

func (v *Viewer) Update() error {
	return v.gameLoop.Update()
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	v.gameLoop.Draw(screen)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return v.gameLoop.Layout(outsideWidth, outsideHeight)
}
