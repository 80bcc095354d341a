// Package keytracker turns held keys into single presses for toggles.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers which keys were down on the previous frame.
type KeyStateTracker struct {
	pressed     func(ebiten.Key) bool
	prevPressed map[ebiten.Key]bool
}

// New creates a tracker reading the keyboard through ebiten.
func New() *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed)
}

// NewWithSource creates a tracker reading key state from pressed.
func NewWithSource(pressed func(ebiten.Key) bool) *KeyStateTracker {
	return &KeyStateTracker{
		pressed:     pressed,
		prevPressed: make(map[ebiten.Key]bool),
	}
}

// IsKeyJustPressed returns true if key was up last frame and is down now.
// Call it once per frame for each key of interest.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := k.pressed(key)
	justPressed := pressed && !k.prevPressed[key]
	k.prevPressed[key] = pressed
	return justPressed
}

// IsKeyPressed reports whether key is down now.
func (k *KeyStateTracker) IsKeyPressed(key ebiten.Key) bool {
	return k.pressed(key)
}
