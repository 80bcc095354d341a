package world

import "math"

// Distance returns the euclidean distance between two vertices.
func Distance(a, b Vertex) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Root returns the root of the BSP tree. The nodebuilder stores it last; a
// level with a single convex region has no nodes at all.
func (m *Map) Root() Child {
	if len(m.Nodes) == 0 {
		return Leaf(0)
	}
	return Internal(len(m.Nodes) - 1)
}

// IsOnLeftSide reports whether (x, y) lies on the left (back) side of the
// partition line. Points on the line count as left.
func (n *Node) IsOnLeftSide(x, y float64) bool {
	dx := x - n.X
	dy := y - n.Y
	return dx*n.DY-dy*n.DX <= 0
}

// Walk visits every subsector reachable from root exactly once, nearest to
// (x, y) first. The walk uses an explicit stack, so tree depth is bounded
// only by memory.
func (m *Map) Walk(root Child, x, y float64, visit func(subsector int)) {
	stack := make([]Child, 0, 64)
	stack = append(stack, root)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.Leaf {
			visit(c.Index)
			continue
		}
		node := &m.Nodes[c.Index]
		near, far := node.Right, node.Left
		if node.IsOnLeftSide(x, y) {
			near, far = node.Left, node.Right
		}
		// far goes first so near is popped next
		stack = append(stack, far, near)
	}
}

// SubsectorAt returns the index of the subsector containing (x, y).
func (m *Map) SubsectorAt(x, y float64) int {
	c := m.Root()
	for !c.Leaf {
		node := &m.Nodes[c.Index]
		if node.IsOnLeftSide(x, y) {
			c = node.Left
		} else {
			c = node.Right
		}
	}
	return c.Index
}

// SectorAt returns the sector containing (x, y), or nil when the subsector
// found carries no segs.
func (m *Map) SectorAt(x, y float64) *Sector {
	ss := m.Subsectors[m.SubsectorAt(x, y)]
	if ss.SegCount == 0 {
		return nil
	}
	return m.Segs[ss.FirstSeg].Right
}
