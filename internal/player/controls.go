package player

import "bspview/internal/collision"

// Controls is the set of movement keys held during one tick.
type Controls struct {
	Forward, Back           bool
	TurnLeft, TurnRight     bool
	StrafeLeft, StrafeRight bool
}

// Any reports whether any movement key is held.
func (c Controls) Any() bool {
	return c.Forward || c.Back || c.TurnLeft || c.TurnRight || c.StrafeLeft || c.StrafeRight
}

// Apply turns and moves the player for one tick. Walls in cs stop the move
// and the player slides along them; the eye height then follows the floor.
func (p *Player) Apply(c Controls, cs *collision.CollisionSystem, moveSpeed, turnSpeed float64) {
	if c.TurnLeft {
		p.Turn(turnSpeed)
	}
	if c.TurnRight {
		p.Turn(-turnSpeed)
	}

	var forward, side float64
	if c.Forward {
		forward += moveSpeed
	}
	if c.Back {
		forward -= moveSpeed
	}
	if c.StrafeRight {
		side += moveSpeed
	}
	if c.StrafeLeft {
		side -= moveSpeed
	}
	if forward == 0 && side == 0 {
		return
	}

	right := p.Angle.SubDeg(90)
	dx := p.Angle.Cos()*forward + right.Cos()*side
	dy := p.Angle.Sin()*forward + right.Sin()*side
	p.X, p.Y = cs.Move(p.X, p.Y, dx, dy)
	p.SetHeight(cs.Level())
}
