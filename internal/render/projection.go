package render

import (
	"math"

	"bspview/internal/angle"
	"bspview/internal/mathutil"
)

// Projection holds the viewport geometry derived from the screen size and
// field of view. It is immutable once built.
type Projection struct {
	Width, Height int
	FOV           angle.Angle
	HalfFOV       angle.Angle
	HalfWidth     float64
	HalfHeight    float64
	// PlaneDistance is the distance from the eye to the projection plane.
	PlaneDistance float64
	// ScreenXToAngle[x] is the view-relative angle, in degrees, whose ray
	// lands on column x. Positive is left of centre. Index 0..Width.
	ScreenXToAngle []float64
}

// NewProjection builds the projection for a width x height viewport.
func NewProjection(width, height int, fov angle.Angle) *Projection {
	p := &Projection{
		Width:      width,
		Height:     height,
		FOV:        fov,
		HalfFOV:    fov.Half(),
		HalfWidth:  float64(width) / 2,
		HalfHeight: float64(height) / 2,
	}
	p.PlaneDistance = p.HalfWidth / p.HalfFOV.Tan()
	p.ScreenXToAngle = make([]float64, width+1)
	for x := 0; x <= width; x++ {
		p.ScreenXToAngle[x] = math.Atan((p.HalfWidth-float64(x))/p.PlaneDistance) * 180 / math.Pi
	}
	return p
}

// Matches reports whether p was built for this viewport.
func (p *Projection) Matches(width, height int, fov angle.Angle) bool {
	return p.Width == width && p.Height == height && p.FOV == fov
}

// AngleToScreen converts a player-relative angle, measured from the right
// edge of the view (0) to the left edge (FOV), to a screen column in
// [0, Width]. The two branches keep the tangent away from 90 degrees.
func (p *Projection) AngleToScreen(a angle.Angle) int {
	// 90 is straight ahead
	deg := a.Deg() - p.HalfFOV.Deg() + 90
	if deg > 90 {
		offset := angle.New(deg - 90)
		return mathutil.RoundInt(p.HalfWidth - offset.Tan()*p.PlaneDistance)
	}
	offset := angle.New(90 - deg)
	return mathutil.RoundInt(p.HalfWidth + offset.Tan()*p.PlaneDistance)
}

// DistanceToColumn returns the distance from the eye to the projection plane
// along the ray through column x.
func (p *Projection) DistanceToColumn(x int) float64 {
	return p.PlaneDistance / angle.New(p.ScreenXToAngle[x]).Cos()
}
