package server

import (
	"unicode/utf8"

	"bspview/internal/player"
)

// Action is one key press from a terminal.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionTurnLeft
	ActionTurnRight
	ActionStrafeLeft
	ActionStrafeRight
	ActionToggleMap
	ActionToggleStats
	ActionNextLevel
	ActionPrevLevel
	ActionQuit
)

// parseInput converts raw bytes into actions. Handles WASD, arrow key
// escape sequences, Q/E strafing, Tab, F, the bracket keys for level
// switching, X and Ctrl-C.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && (data[i+1] == '[' || data[i+1] == 'O') {
			switch data[i+2] {
			case 'A':
				actions = append(actions, ActionForward)
			case 'B':
				actions = append(actions, ActionBack)
			case 'C':
				actions = append(actions, ActionTurnRight)
			case 'D':
				actions = append(actions, ActionTurnLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, ActionForward)
		case 's', 'S':
			actions = append(actions, ActionBack)
		case 'a', 'A':
			actions = append(actions, ActionTurnLeft)
		case 'd', 'D':
			actions = append(actions, ActionTurnRight)
		case 'q', 'Q':
			actions = append(actions, ActionStrafeLeft)
		case 'e', 'E':
			actions = append(actions, ActionStrafeRight)
		case '\t':
			actions = append(actions, ActionToggleMap)
		case 'f', 'F':
			actions = append(actions, ActionToggleStats)
		case ']':
			actions = append(actions, ActionNextLevel)
		case '[':
			actions = append(actions, ActionPrevLevel)
		case 'x', 'X':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}

// addMovement sets the control an action holds for the next tick. It
// reports false for actions that are not movement.
func addMovement(c *player.Controls, a Action) bool {
	switch a {
	case ActionForward:
		c.Forward = true
	case ActionBack:
		c.Back = true
	case ActionTurnLeft:
		c.TurnLeft = true
	case ActionTurnRight:
		c.TurnRight = true
	case ActionStrafeLeft:
		c.StrafeLeft = true
	case ActionStrafeRight:
		c.StrafeRight = true
	default:
		return false
	}
	return true
}
