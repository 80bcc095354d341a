// Package player holds the viewpoint: position, eye height, heading and field
// of view, plus the per-seg field-of-view clipping the view renderer asks for.
package player

import (
	"math"

	"bspview/internal/angle"
	"bspview/internal/world"
)

// DefaultEyeHeight is the viewpoint height above the floor.
const DefaultEyeHeight = 41

// Player is the viewpoint the 3D view is rendered from.
type Player struct {
	X, Y      float64
	Z         float64 // absolute eye height
	EyeHeight float64
	Angle     angle.Angle // heading, 0 = east, counter-clockwise
	FOV       angle.Angle
}

// New creates a player at (x, y) facing heading with the given field of view.
func New(x, y float64, heading, fov angle.Angle) *Player {
	return &Player{
		X:         x,
		Y:         y,
		Z:         DefaultEyeHeight,
		EyeHeight: DefaultEyeHeight,
		Angle:     heading,
		FOV:       fov,
	}
}

// Position returns the player's map position.
func (p *Player) Position() (float64, float64) {
	return p.X, p.Y
}

// DistanceToPoint returns the straight-line distance to v.
func (p *Player) DistanceToPoint(v world.Vertex) float64 {
	return math.Hypot(v.X-p.X, v.Y-p.Y)
}

// AngleToVertex returns the world angle from the player to v.
func (p *Player) AngleToVertex(v world.Vertex) angle.Angle {
	return angle.Atan2(v.Y-p.Y, v.X-p.X)
}

// ClippedAngles is the result of clipping a seg to the field of view.
type ClippedAngles struct {
	// V1Angle and V2Angle are world angles to the seg's true endpoints.
	V1Angle, V2Angle angle.Angle
	// V1AngleFromPlayer and V2AngleFromPlayer lie in [0, FOV], measured
	// from the right edge of the view; endpoints outside the view are
	// clamped to the nearest edge.
	V1AngleFromPlayer, V2AngleFromPlayer angle.Angle
}

// ClipVertexesInFOV clips the seg v1->v2 to the field of view. It reports
// false when the seg faces away from the player or lies entirely outside the
// view.
func (p *Player) ClipVertexesInFOV(v1, v2 world.Vertex) (ClippedAngles, bool) {
	v1Angle := p.AngleToVertex(v1)
	v2Angle := p.AngleToVertex(v2)

	span := v1Angle.Sub(v2Angle)
	if span.Deg() >= 180 {
		return ClippedAngles{}, false
	}

	fov := p.FOV.Deg()
	halfFOV := p.FOV.Half()
	rightEdge := p.Angle.Sub(halfFOV)

	// both measured counter-clockwise from the right edge of the view
	v1Moved := v1Angle.Sub(rightEdge).Deg()
	v2Moved := v2Angle.Sub(rightEdge).Deg()

	if v1Moved > fov {
		// v1 is left of the view, or right of it and so is the whole seg
		if v1Moved-fov >= span.Deg() {
			return ClippedAngles{}, false
		}
		v1Moved = fov
	}
	if v2Moved > fov {
		// v2 is right of the view
		v2Moved = 0
	}

	return ClippedAngles{
		V1Angle:           v1Angle,
		V2Angle:           v2Angle,
		V1AngleFromPlayer: angle.New(v1Moved),
		V2AngleFromPlayer: angle.New(v2Moved),
	}, true
}
