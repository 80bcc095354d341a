package collision

import (
	"bspview/internal/world"
)

const (
	// DefaultRadius is the player's collision radius in map units.
	DefaultRadius = 16
	// DefaultMaxStep is the highest floor difference the player can climb.
	DefaultMaxStep = 24
	// minHeadroom is the smallest floor-to-ceiling gap the player fits in.
	minHeadroom = 56
)

// CollisionSystem keeps a moving viewpoint out of blocking linedefs.
type CollisionSystem struct {
	level   *world.Map
	Radius  float64
	MaxStep float64
}

// NewCollisionSystem creates a collision system for level.
func NewCollisionSystem(level *world.Map) *CollisionSystem {
	return &CollisionSystem{
		level:   level,
		Radius:  DefaultRadius,
		MaxStep: DefaultMaxStep,
	}
}

// SetLevel switches the level collided against.
func (cs *CollisionSystem) SetLevel(level *world.Map) {
	cs.level = level
}

// Level returns the level collided against.
func (cs *CollisionSystem) Level() *world.Map {
	return cs.level
}

// blocks reports whether ld stops movement out of sector from.
func (cs *CollisionSystem) blocks(ld *world.Linedef, from *world.Sector) bool {
	if ld.Back == nil || ld.Flags&world.LinedefImpassable != 0 {
		return true
	}
	other := ld.Back.Sector
	if from == ld.Back.Sector {
		other = ld.Front.Sector
	}
	if from == nil || other == nil {
		return false
	}
	if other.FloorHeight-from.FloorHeight > cs.MaxStep {
		return true
	}
	return other.CeilingHeight-other.FloorHeight < minHeadroom
}

// CanMoveTo reports whether a body of Radius can move from (x0, y0) to
// (x1, y1) without crossing or touching a blocking linedef.
func (cs *CollisionSystem) CanMoveTo(x0, y0, x1, y1 float64) bool {
	from := cs.level.SectorAt(x0, y0)
	p0, p1 := Point{x0, y0}, Point{x1, y1}
	for i := range cs.level.Linedefs {
		ld := &cs.level.Linedefs[i]
		if !cs.blocks(ld, from) {
			continue
		}
		a, b := Point{ld.Start.X, ld.Start.Y}, Point{ld.End.X, ld.End.Y}
		if SegmentsIntersect(p0, p1, a, b) || DistanceToSegment(p1, a, b) < cs.Radius {
			return false
		}
	}
	return true
}

// Move tries to move by (dx, dy) and slides along walls: when the full move
// is blocked each axis is tried on its own. It returns the new position.
func (cs *CollisionSystem) Move(x, y, dx, dy float64) (float64, float64) {
	if cs.CanMoveTo(x, y, x+dx, y+dy) {
		return x + dx, y + dy
	}
	if dx != 0 && cs.CanMoveTo(x, y, x+dx, y) {
		return x + dx, y
	}
	if dy != 0 && cs.CanMoveTo(x, y, x, y+dy) {
		return x, y + dy
	}
	return x, y
}

// CheckLineOfSight reports whether no one-sided linedef lies between the
// two points.
func (cs *CollisionSystem) CheckLineOfSight(x1, y1, x2, y2 float64) bool {
	p1, p2 := Point{x1, y1}, Point{x2, y2}
	for i := range cs.level.Linedefs {
		ld := &cs.level.Linedefs[i]
		if ld.Back != nil {
			continue
		}
		if SegmentsIntersect(p1, p2, Point{ld.Start.X, ld.Start.Y}, Point{ld.End.X, ld.End.Y}) {
			return false
		}
	}
	return true
}
