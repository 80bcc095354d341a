package player

import "bspview/internal/world"

// MoveForward moves along the heading; negative distances walk backwards.
func (p *Player) MoveForward(dist float64) {
	p.X += p.Angle.Cos() * dist
	p.Y += p.Angle.Sin() * dist
}

// Strafe moves sideways; positive distances go right.
func (p *Player) Strafe(dist float64) {
	right := p.Angle.SubDeg(90)
	p.X += right.Cos() * dist
	p.Y += right.Sin() * dist
}

// Turn rotates the heading counter-clockwise by deg degrees.
func (p *Player) Turn(deg float64) {
	p.Angle = p.Angle.AddDeg(deg)
}

// SetHeight places the eye EyeHeight above the floor of the sector the
// player stands in. It leaves Z alone outside any sector.
func (p *Player) SetHeight(m *world.Map) {
	if s := m.SectorAt(p.X, p.Y); s != nil {
		p.Z = s.FloorHeight + p.EyeHeight
	}
}
