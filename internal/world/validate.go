package world

import (
	"errors"
	"fmt"
)

// ErrEmptyLevel is returned by Validate for a level without subsectors.
var ErrEmptyLevel = errors.New("level has no subsectors")

// Validate checks the preconditions the view renderer trusts: every index is
// in range, one-sided segs carry a right sector, and the BSP tree is acyclic
// with each subsector reachable exactly once.
func (m *Map) Validate() error {
	if len(m.Subsectors) == 0 {
		return ErrEmptyLevel
	}
	for i, ss := range m.Subsectors {
		if ss.FirstSeg < 0 || ss.SegCount < 0 || ss.FirstSeg+ss.SegCount > len(m.Segs) {
			return fmt.Errorf("subsector %d: segs [%d,+%d) out of range (%d segs)", i, ss.FirstSeg, ss.SegCount, len(m.Segs))
		}
	}
	for i := range m.Segs {
		if m.Segs[i].Right == nil {
			return fmt.Errorf("seg %d: missing right sector", i)
		}
	}

	checkChild := func(owner int, c Child) error {
		if c.Leaf && (c.Index < 0 || c.Index >= len(m.Subsectors)) {
			return fmt.Errorf("node %d: subsector child %d out of range", owner, c.Index)
		}
		if !c.Leaf && (c.Index < 0 || c.Index >= len(m.Nodes)) {
			return fmt.Errorf("node %d: node child %d out of range", owner, c.Index)
		}
		return nil
	}
	for i := range m.Nodes {
		if err := checkChild(i, m.Nodes[i].Right); err != nil {
			return err
		}
		if err := checkChild(i, m.Nodes[i].Left); err != nil {
			return err
		}
	}

	seenNode := make([]bool, len(m.Nodes))
	seenLeaf := make([]bool, len(m.Subsectors))
	stack := []Child{m.Root()}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.Leaf {
			if seenLeaf[c.Index] {
				return fmt.Errorf("subsector %d reachable more than once", c.Index)
			}
			seenLeaf[c.Index] = true
			continue
		}
		if seenNode[c.Index] {
			return fmt.Errorf("node %d reachable more than once (cycle or shared subtree)", c.Index)
		}
		seenNode[c.Index] = true
		stack = append(stack, m.Nodes[c.Index].Left, m.Nodes[c.Index].Right)
	}
	for i, ok := range seenLeaf {
		if !ok {
			return fmt.Errorf("subsector %d unreachable from root", i)
		}
	}
	return nil
}
