// Package bspbuild is a small nodebuilder. It turns a level's linedefs into
// segs, subsectors and BSP nodes for levels shipped without them and for the
// built-in demo level.
//
// The partition choice is a plain cost search: every seg is tried as the
// partition line and the one with the fewest splits (weighted) and the best
// left/right balance wins. Nodes are stored post-order, so the root node is
// always the last one.
package bspbuild

import (
	"fmt"
	"math"

	"bspview/internal/mathutil"
	"bspview/internal/world"
)

// sideEpsilon is the distance, in map units, under which a point counts as
// lying on a partition line.
const sideEpsilon = 1.0 / 1024

// splitWeight penalises splitting a seg relative to tree imbalance.
const splitWeight = 8

type side int

const (
	sideOn side = iota
	sideRight
	sideLeft
)

type builder struct {
	m          *world.Map
	segs       []world.Seg
	subsectors []world.Subsector
	nodes      []world.Node
	splits     int
}

// Stats summarises a build.
type Stats struct {
	Segs       int
	Subsectors int
	Nodes      int
	Splits     int
}

// Build fills m.Segs, m.Subsectors and m.Nodes from m.Linedefs, replacing
// whatever the level carried before.
func Build(m *world.Map) (Stats, error) {
	seeds := seedSegs(m)
	if len(seeds) == 0 {
		return Stats{}, fmt.Errorf("level %q: no linedefs to build nodes from", m.Name)
	}
	b := &builder{m: m}
	b.build(seeds)
	m.Segs = b.segs
	m.Subsectors = b.subsectors
	m.Nodes = b.nodes
	stats := Stats{
		Segs:       len(b.segs),
		Subsectors: len(b.subsectors),
		Nodes:      len(b.nodes),
		Splits:     b.splits,
	}
	if err := m.Validate(); err != nil {
		return stats, fmt.Errorf("level %q: built tree is invalid: %w", m.Name, err)
	}
	return stats, nil
}

// seedSegs creates one seg per linedef side. Zero-length lines are dropped.
func seedSegs(m *world.Map) []world.Seg {
	seeds := make([]world.Seg, 0, len(m.Linedefs)*2)
	for i := range m.Linedefs {
		ld := &m.Linedefs[i]
		if ld.Start == ld.End {
			continue
		}
		var front, back *world.Sector
		if ld.Front != nil {
			front = ld.Front.Sector
		}
		if ld.Back != nil {
			back = ld.Back.Sector
		}
		if front != nil {
			seeds = append(seeds, world.Seg{Start: ld.Start, End: ld.End, Linedef: ld, Direction: 0, Right: front, Left: back})
		}
		if back != nil {
			seeds = append(seeds, world.Seg{Start: ld.End, End: ld.Start, Linedef: ld, Direction: 1, Right: back, Left: front})
		}
	}
	return seeds
}

func (b *builder) build(segs []world.Seg) world.Child {
	best := -1
	bestCost := math.MaxInt
	for i := range segs {
		left, right, splits := b.evaluate(&segs[i], segs)
		if left == 0 && splits == 0 {
			// every seg already lies in front of this line
			continue
		}
		cost := splits*splitWeight + mathutil.IntAbs(right-left)
		if cost < bestCost {
			best, bestCost = i, cost
		}
	}
	if best < 0 {
		return b.emitSubsector(segs)
	}

	part := segs[best]
	var rights, lefts []world.Seg
	for i := range segs {
		r, l := b.split(&part, segs[i])
		if r != nil {
			rights = append(rights, *r)
		}
		if l != nil {
			lefts = append(lefts, *l)
		}
	}

	node := world.Node{
		X:  part.Start.X,
		Y:  part.Start.Y,
		DX: part.End.X - part.Start.X,
		DY: part.End.Y - part.Start.Y,
	}
	node.Right = b.build(rights)
	node.Left = b.build(lefts)
	b.nodes = append(b.nodes, node)
	return world.Internal(len(b.nodes) - 1)
}

func (b *builder) emitSubsector(segs []world.Seg) world.Child {
	b.subsectors = append(b.subsectors, world.Subsector{FirstSeg: len(b.segs), SegCount: len(segs)})
	b.segs = append(b.segs, segs...)
	return world.Leaf(len(b.subsectors) - 1)
}

// evaluate counts how segs fall relative to the line through part.
func (b *builder) evaluate(part *world.Seg, segs []world.Seg) (left, right, splits int) {
	for i := range segs {
		switch classify(part, &segs[i]) {
		case sideRight:
			right++
		case sideLeft:
			left++
		default:
			splits++
		}
	}
	return left, right, splits
}

// classify returns sideRight or sideLeft for a seg entirely on one side of
// the partition, and sideOn when the partition cuts it.
func classify(part, s *world.Seg) side {
	a, _ := pointSide(part, s.Start)
	c, _ := pointSide(part, s.End)
	switch {
	case a == sideOn && c == sideOn:
		// collinear: facing the same way as the partition goes right
		px, py := part.End.X-part.Start.X, part.End.Y-part.Start.Y
		sx, sy := s.End.X-s.Start.X, s.End.Y-s.Start.Y
		if px*sx+py*sy > 0 {
			return sideRight
		}
		return sideLeft
	case a != sideLeft && c != sideLeft:
		return sideRight
	case a != sideRight && c != sideRight:
		return sideLeft
	}
	return sideOn
}

// pointSide returns which side of part v lies on and its signed distance
// (positive is right).
func pointSide(part *world.Seg, v world.Vertex) (side, float64) {
	dx := part.End.X - part.Start.X
	dy := part.End.Y - part.Start.Y
	length := math.Hypot(dx, dy)
	d := ((v.X-part.Start.X)*dy - (v.Y-part.Start.Y)*dx) / length
	switch {
	case d > sideEpsilon:
		return sideRight, d
	case d < -sideEpsilon:
		return sideLeft, d
	}
	return sideOn, d
}

// split sorts s to the right or left of part, cutting it in two when the
// partition crosses it.
func (b *builder) split(part *world.Seg, s world.Seg) (right, left *world.Seg) {
	switch classify(part, &s) {
	case sideRight:
		return &s, nil
	case sideLeft:
		return nil, &s
	}

	_, da := pointSide(part, s.Start)
	_, dc := pointSide(part, s.End)
	t := da / (da - dc)
	cut := world.Vertex{
		X: s.Start.X + t*(s.End.X-s.Start.X),
		Y: s.Start.Y + t*(s.End.Y-s.Start.Y),
	}
	b.m.Vertices = append(b.m.Vertices, cut)
	b.splits++

	first, second := s, s
	first.End = cut
	second.Start = cut
	second.Offset = s.Offset + world.Distance(s.Start, cut)
	if da > 0 {
		return &first, &second
	}
	return &second, &first
}

