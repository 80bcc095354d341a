package render

import (
	"math"

	"bspview/internal/angle"
	"bspview/internal/mathutil"
	"bspview/internal/player"
	"bspview/internal/world"
)

// minVertexDistance keeps the height projection finite when the eye stands
// exactly on a vertex.
const minVertexDistance = 1e-3

// ViewRenderer draws the first-person view of a level. It borrows the map
// and the player and owns the projection, the occlusion ranges and the wall
// colour cache.
type ViewRenderer struct {
	level  *world.Map
	player *player.Player
	canvas Canvas
	colors *WallColors

	proj  *Projection
	solid *SolidSegs
	stats FrameStats
}

// NewViewRenderer creates a renderer for level as seen by p, drawing to
// canvas with colours from colors.
func NewViewRenderer(level *world.Map, p *player.Player, canvas Canvas, colors *WallColors) *ViewRenderer {
	r := &ViewRenderer{
		level:  level,
		player: p,
		canvas: canvas,
		colors: colors,
	}
	r.Resize()
	r.solid = NewSolidSegs(r.proj.Width)
	return r
}

// Resize rebuilds the projection for the canvas size and the player's field
// of view.
func (r *ViewRenderer) Resize() {
	r.proj = NewProjection(r.canvas.Width(), r.canvas.Height(), r.player.FOV)
}

// SetLevel switches the level being rendered.
func (r *ViewRenderer) SetLevel(level *world.Map) {
	r.level = level
}

// Projection returns the current viewport geometry.
func (r *ViewRenderer) Projection() *Projection {
	return r.proj
}

// Stats returns the counters of the last frame.
func (r *ViewRenderer) Stats() FrameStats {
	return r.stats
}

// SolidRanges returns the occlusion ranges left by the last frame.
func (r *ViewRenderer) SolidRanges() []SolidSegmentRange {
	return r.solid.Ranges()
}

// Render draws one frame.
func (r *ViewRenderer) Render() {
	if !r.proj.Matches(r.canvas.Width(), r.canvas.Height(), r.player.FOV) {
		r.Resize()
	}
	r.canvas.Clear()
	r.stats = FrameStats{}
	r.solid.Reset(r.proj.Width)

	r.level.Walk(r.level.Root(), r.player.X, r.player.Y, r.renderSubsector)

	r.stats.SolidRanges = r.solid.Len()
	r.stats.ScreenFilled = r.solid.Full()
}

func (r *ViewRenderer) renderSubsector(index int) {
	r.stats.Subsectors++
	ss := r.level.Subsectors[index]
	for i := 0; i < ss.SegCount; i++ {
		seg := &r.level.Segs[ss.FirstSeg+i]
		r.stats.Segs++
		angles, ok := r.player.ClipVertexesInFOV(seg.Start, seg.End)
		if !ok {
			continue
		}
		r.stats.SegsInFOV++
		r.addWallInFOV(seg, angles)
	}
}

func (r *ViewRenderer) addWallInFOV(seg *world.Seg, angles player.ClippedAngles) {
	x1 := r.proj.AngleToScreen(angles.V1AngleFromPlayer)
	x2 := r.proj.AngleToScreen(angles.V2AngleFromPlayer)
	if x1 == x2 {
		return
	}
	if !seg.Solid() {
		r.stats.TwoSided++
		return
	}
	r.stats.SolidWalls++
	r.solid.Clip(x1, x2, func(fx1, fx2 int) {
		r.storeWallRange(seg, fx1, fx2, angles.V1Angle, angles.V2Angle)
	})
}

// storeWallRange projects and draws one visible fragment of seg.
func (r *ViewRenderer) storeWallRange(seg *world.Seg, x1, x2 int, v1Angle, v2Angle angle.Angle) {
	r.stats.Fragments++

	distV1 := r.player.DistanceToPoint(seg.Start)
	distV2 := r.player.DistanceToPoint(seg.End)
	if x1 <= 0 {
		distV1 = r.partialSegDistance(seg, v1Angle, v2Angle, distV1, true)
	}
	if x2 >= r.proj.Width-1 {
		distV2 = r.partialSegDistance(seg, v1Angle, v2Angle, distV2, false)
	}

	ceilingV1, floorV1 := r.ceilingFloorHeight(seg, x1, distV1)
	ceilingV2, floorV2 := r.ceilingFloorHeight(seg, x2, distV2)

	c := r.colors.Color(seg.MiddleTexture())
	fx1, fx2 := float64(x1), float64(x2)
	r.canvas.DrawLine(fx1, ceilingV1, fx1, floorV1, c)
	r.canvas.DrawLine(fx2, ceilingV2, fx2, floorV2, c)
	r.canvas.DrawLine(fx1, ceilingV1, fx2, ceilingV2, c)
	r.canvas.DrawLine(fx1, floorV1, fx2, floorV2, c)
}

// partialSegDistance corrects the distance to an endpoint whose column was
// clamped to a screen edge. The triangle eye/V1/V2 gives the angle at the
// kept endpoint by the law of sines; the triangle eye/endpoint/edge point
// then gives the distance to where the seg crosses the view edge.
func (r *ViewRenderer) partialSegDistance(seg *world.Seg, v1Angle, v2Angle angle.Angle, dist float64, leftSide bool) float64 {
	sideC := seg.Length()
	if sideC == 0 {
		return dist
	}

	span := v1Angle.Sub(v2Angle)
	sinB := mathutil.ClampFloat(dist*span.Sin()/sideC, -1, 1)
	angleB := angle.FromRadians(math.Asin(sinB))
	// asin gives the acute solution; the angle at the other endpoint is
	// obtuse when dist is the longest side of the triangle.
	other := seg.End
	if !leftSide {
		other = seg.Start
	}
	otherDist := r.player.DistanceToPoint(other)
	if dist*dist > otherDist*otherDist+sideC*sideC {
		angleB = angle.New(180 - angleB.Deg())
	}
	angleA := angle.New(180 - span.Deg() - angleB.Deg())

	halfFOV := r.player.FOV.Half()
	var toFOV angle.Angle
	if leftSide {
		toFOV = v1Angle.Sub(r.player.Angle.Add(halfFOV))
	} else {
		toFOV = r.player.Angle.Sub(halfFOV).Sub(v2Angle)
	}
	newB := angle.New(180 - toFOV.Deg() - angleA.Deg())

	sinNewB := newB.Sin()
	if sinNewB == 0 {
		return dist
	}
	return dist * angleA.Sin() / sinNewB
}

// ceilingFloorHeight returns the screen Y of the seg's ceiling and floor at
// column x for an endpoint dist away. The seg must have a right sector.
func (r *ViewRenderer) ceilingFloorHeight(seg *world.Seg, x int, dist float64) (float64, float64) {
	ceiling := seg.Right.CeilingHeight - r.player.Z
	floor := seg.Right.FloorHeight - r.player.Z

	dist = math.Max(dist, minVertexDistance)
	toScreen := r.proj.DistanceToColumn(x)

	ceilingOnScreen := math.Abs(ceiling) * toScreen / dist
	floorOnScreen := math.Abs(floor) * toScreen / dist

	if ceiling > 0 {
		ceilingOnScreen = r.proj.HalfHeight - ceilingOnScreen
	} else {
		ceilingOnScreen += r.proj.HalfHeight
	}
	if floor > 0 {
		floorOnScreen = r.proj.HalfHeight - floorOnScreen
	} else {
		floorOnScreen += r.proj.HalfHeight
	}
	return ceilingOnScreen, floorOnScreen
}
