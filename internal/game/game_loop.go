package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the viewer's update and render cycle
type GameLoop struct {
	viewer       *Viewer
	inputHandler *InputHandler
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(viewer *Viewer) *GameLoop {
	return &GameLoop{
		viewer:       viewer,
		inputHandler: NewInputHandler(viewer.keys),
	}
}

// Update handles input and movement for one frame
func (gl *GameLoop) Update() error {
	frameTimer := gl.viewer.monitor.StartFrame()
	defer frameTimer.EndFrame()

	return gl.inputHandler.HandleInput(gl.viewer.session)
}

// Draw renders the view and the HUD onto screen
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	gl.viewer.canvas.SetTarget(screen)
	gl.viewer.session.Render()
	gl.viewer.ui.Draw(screen)
}

// Layout keeps the logical screen at the configured size; ebiten scales it
// to the window.
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gl.viewer.config.GetScreenWidth(), gl.viewer.config.GetScreenHeight()
}
