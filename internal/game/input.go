package game

import (
	"log"

	"bspview/internal/game/keytracker"
	"bspview/internal/player"
	"bspview/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputHandler handles all keyboard input for the viewer
type InputHandler struct {
	keys *keytracker.KeyStateTracker
}

// NewInputHandler creates a new input handler
func NewInputHandler(keys *keytracker.KeyStateTracker) *InputHandler {
	return &InputHandler{keys: keys}
}

// HandleInput processes the input for the current frame. It returns
// ebiten.Termination when Escape is pressed.
func (ih *InputHandler) HandleInput(s *session.Session) error {
	if ih.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	ih.handleUIInput(s)
	s.Step(ReadControls(ih.keys.IsKeyPressed))
	return nil
}

// ReadControls maps held keys to movement: arrows or WASD walk and turn,
// Q and E strafe.
func ReadControls(pressed func(ebiten.Key) bool) player.Controls {
	return player.Controls{
		Forward:     pressed(ebiten.KeyUp) || pressed(ebiten.KeyW),
		Back:        pressed(ebiten.KeyDown) || pressed(ebiten.KeyS),
		TurnLeft:    pressed(ebiten.KeyLeft) || pressed(ebiten.KeyA),
		TurnRight:   pressed(ebiten.KeyRight) || pressed(ebiten.KeyD),
		StrafeLeft:  pressed(ebiten.KeyQ),
		StrafeRight: pressed(ebiten.KeyE),
	}
}

// handleUIInput processes the toggles
func (ih *InputHandler) handleUIInput(s *session.Session) {
	// Toggle the automap with Tab
	if ih.keys.IsKeyJustPressed(ebiten.KeyTab) {
		s.ToggleAutoMap()
	}
	// Toggle the HUD with F
	if ih.keys.IsKeyJustPressed(ebiten.KeyF) {
		s.ToggleStats()
	}

	delta := 0
	if ih.keys.IsKeyJustPressed(ebiten.KeyPageDown) {
		delta++
	}
	if ih.keys.IsKeyJustPressed(ebiten.KeyPageUp) {
		delta--
	}
	if delta != 0 {
		if err := s.CycleLevel(delta); err != nil {
			log.Printf("Warning: failed to switch level: %v", err)
			return
		}
		log.Printf("Switched to level %s", s.Level().Name)
	}
}
