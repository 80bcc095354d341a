package world_test

import (
	"testing"

	"bspview/internal/bspbuild"
)

func TestWalkVisitsEverySubsectorOnce(t *testing.T) {
	m := bspbuild.DemoLevel()
	points := [][2]float64{{192, 192}, {1000, 20}, {600, 900}, {200, 800}, {512, 100}, {900, 900}}
	for _, pt := range points {
		seen := make([]int, len(m.Subsectors))
		m.Walk(m.Root(), pt[0], pt[1], func(ss int) { seen[ss]++ })
		for i, n := range seen {
			if n != 1 {
				t.Errorf("from %v: subsector %d visited %d times", pt, i, n)
			}
		}
	}
}

func TestWalkStartsWithViewerSubsector(t *testing.T) {
	m := bspbuild.DemoLevel()
	for _, pt := range [][2]float64{{192, 192}, {600, 900}, {200, 800}} {
		first := -1
		m.Walk(m.Root(), pt[0], pt[1], func(ss int) {
			if first < 0 {
				first = ss
			}
		})
		if want := m.SubsectorAt(pt[0], pt[1]); first != want {
			t.Errorf("from %v: first subsector %d, want %d", pt, first, want)
		}
	}
}
