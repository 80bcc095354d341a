package world

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// twoRooms is a hand-built tree: one node splitting x=0, a subsector on
// each side.
func twoRooms() *Map {
	east := &Sector{FloorHeight: 0, CeilingHeight: 128}
	west := &Sector{FloorHeight: 16, CeilingHeight: 128}
	return &Map{
		Name: "TWO",
		Segs: []Seg{
			{Start: Vertex{X: 64, Y: 64}, End: Vertex{X: 64, Y: -64}, Right: east},
			{Start: Vertex{X: -64, Y: -64}, End: Vertex{X: -64, Y: 64}, Right: west},
		},
		Subsectors: []Subsector{{FirstSeg: 0, SegCount: 1}, {FirstSeg: 1, SegCount: 1}},
		// partition runs north along x=0, so east is the right side
		Nodes: []Node{{X: 0, Y: -64, DX: 0, DY: 128, Right: Leaf(0), Left: Leaf(1)}},
	}
}

func TestRoot(t *testing.T) {
	m := twoRooms()
	if got := m.Root(); got != Internal(0) {
		t.Errorf("root = %+v, want node 0", got)
	}
	m.Nodes = nil
	if got := m.Root(); got != Leaf(0) {
		t.Errorf("node-less root = %+v, want leaf 0", got)
	}
}

func TestIsOnLeftSide(t *testing.T) {
	n := &Node{X: 0, Y: 0, DX: 0, DY: 10}
	if n.IsOnLeftSide(5, 3) {
		t.Error("east of a north-running line is the right side")
	}
	if !n.IsOnLeftSide(-5, 3) {
		t.Error("west of a north-running line is the left side")
	}
	if !n.IsOnLeftSide(0, 7) {
		t.Error("points on the line count as left")
	}
}

func TestWalkVisitsNearSideFirst(t *testing.T) {
	m := twoRooms()
	var order []int
	m.Walk(m.Root(), 10, 0, func(ss int) { order = append(order, ss) })
	if fmt.Sprint(order) != "[0 1]" {
		t.Errorf("east viewer order = %v, want [0 1]", order)
	}
	order = order[:0]
	m.Walk(m.Root(), -10, 0, func(ss int) { order = append(order, ss) })
	if fmt.Sprint(order) != "[1 0]" {
		t.Errorf("west viewer order = %v, want [1 0]", order)
	}
}

func TestWalkNodelessLevel(t *testing.T) {
	m := twoRooms()
	m.Nodes = nil
	m.Subsectors = m.Subsectors[:1]
	var visits int
	m.Walk(m.Root(), 0, 0, func(int) { visits++ })
	if visits != 1 {
		t.Errorf("visited %d subsectors, want 1", visits)
	}
}

func TestSectorAt(t *testing.T) {
	m := twoRooms()
	if s := m.SectorAt(20, 0); s == nil || s.FloorHeight != 0 {
		t.Errorf("east sector = %+v", s)
	}
	if s := m.SectorAt(-20, 0); s == nil || s.FloorHeight != 16 {
		t.Errorf("west sector = %+v", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Map)
		want   string
	}{
		{"valid", func(*Map) {}, ""},
		{"seg range", func(m *Map) { m.Subsectors[1].SegCount = 5 }, "out of range"},
		{"missing sector", func(m *Map) { m.Segs[0].Right = nil }, "missing right sector"},
		{"child range", func(m *Map) { m.Nodes[0].Left = Leaf(9) }, "subsector child 9"},
		{"shared leaf", func(m *Map) { m.Nodes[0].Left = Leaf(0) }, "reachable more than once"},
		{"cycle", func(m *Map) {
			m.Nodes = append(m.Nodes, Node{Right: Internal(1), Left: Leaf(1)})
			m.Nodes[0].Left = Leaf(1)
		}, "reachable more than once"},
		{"shared subtree", func(m *Map) {
			m.Nodes = append(m.Nodes, Node{Right: Leaf(0), Left: Leaf(0)})
			m.Nodes[1].Left = Internal(0)
			m.Nodes[0].Left = Leaf(0)
		}, "reachable more than once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := twoRooms()
			tt.mutate(m)
			err := m.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateUnreachableSubsector(t *testing.T) {
	m := twoRooms()
	m.Subsectors = append(m.Subsectors, Subsector{FirstSeg: 0, SegCount: 1})
	err := m.Validate()
	if err == nil || !strings.Contains(err.Error(), "subsector 2 unreachable") {
		t.Fatalf("error = %v", err)
	}
}

func TestValidateEmptyLevel(t *testing.T) {
	if err := (&Map{}).Validate(); !errors.Is(err, ErrEmptyLevel) {
		t.Errorf("error = %v, want ErrEmptyLevel", err)
	}
}

func TestBoundsAndAutoMapScale(t *testing.T) {
	m := &Map{Vertices: []Vertex{{X: -100, Y: 50}, {X: 540, Y: 250}}}
	m.ComputeBounds()
	if m.XMin != -100 || m.YMin != 50 || m.XMax != 540 || m.YMax != 250 {
		t.Fatalf("bounds = %v %v %v %v", m.XMin, m.YMin, m.XMax, m.YMax)
	}
	m.SetAutoMapScale(320, 200)
	if m.AutoMapScale != 2 {
		t.Errorf("scale = %v, want 2", m.AutoMapScale)
	}
	m.SetAutoMapScale(0, 0)
	if m.AutoMapScale != 1 {
		t.Errorf("scale for an empty overlay = %v, want 1", m.AutoMapScale)
	}
}

func TestLevelManager(t *testing.T) {
	lm := NewLevelManager()
	if _, err := lm.Cycle(1); !errors.Is(err, ErrNoLevels) {
		t.Fatalf("cycle on empty manager: %v", err)
	}

	load := func(name string) (*Map, error) {
		if name == "BROKEN" {
			return nil, errors.New("bad lump")
		}
		m := twoRooms()
		m.Name = name
		return m, nil
	}
	if err := lm.LoadAll(load, "E1M1", "BROKEN", "E1M2", "E1M3"); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if got := lm.Available(); fmt.Sprint(got) != "[E1M1 E1M2 E1M3]" {
		t.Errorf("available = %v", got)
	}
	if lm.Current().Name != "E1M1" {
		t.Errorf("current = %s, want E1M1", lm.Current().Name)
	}
	if lm.IsLoaded("BROKEN") {
		t.Error("failed level should not be loaded")
	}

	m, err := lm.Cycle(-1)
	if err != nil || m.Name != "E1M3" {
		t.Errorf("cycle back = %v, %v; want E1M3", m, err)
	}
	m, _ = lm.Cycle(2)
	if m.Name != "E1M2" {
		t.Errorf("cycle forward = %s, want E1M2", m.Name)
	}

	if err := lm.SwitchTo("MAP01"); err == nil {
		t.Error("switching to an unknown level should fail")
	}
	if err := lm.SwitchTo("E1M3"); err != nil || lm.CurrentLevel != "E1M3" {
		t.Errorf("SwitchTo: %v, current %s", err, lm.CurrentLevel)
	}

	clone := lm.Clone()
	clone.Cycle(1)
	if clone.CurrentLevel != "E1M1" || lm.CurrentLevel != "E1M3" {
		t.Errorf("clone current %s, original %s; want E1M1, E1M3", clone.CurrentLevel, lm.CurrentLevel)
	}
	if clone.LoadedLevels["E1M2"] != lm.LoadedLevels["E1M2"] {
		t.Error("clone should share the loaded levels")
	}

	if err := NewLevelManager().LoadAll(load, "BROKEN"); !errors.Is(err, ErrNoLevels) {
		t.Errorf("all failing: %v, want ErrNoLevels", err)
	}
}
