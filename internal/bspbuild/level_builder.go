package bspbuild

import (
	"fmt"

	"bspview/internal/world"
)

// NoSector marks the missing side of a one-sided line.
const NoSector = -1

type lineSpec struct {
	start, end  world.Vertex
	front, back int
	middle      string
}

// LevelBuilder assembles a level from sectors and lines. Pointers between
// linedefs, sidedefs and sectors are only wired in Finish, once every slice
// has its final size.
type LevelBuilder struct {
	name    string
	sectors []world.Sector
	lines   []lineSpec
	start   *world.Vertex
	angle   float64
}

// NewLevelBuilder starts an empty level.
func NewLevelBuilder(name string) *LevelBuilder {
	return &LevelBuilder{name: name}
}

// AddSector registers a sector and returns its index.
func (lb *LevelBuilder) AddSector(floor, ceiling float64, floorTex, ceilingTex string) int {
	lb.sectors = append(lb.sectors, world.Sector{
		FloorHeight:    floor,
		CeilingHeight:  ceiling,
		FloorTexture:   floorTex,
		CeilingTexture: ceilingTex,
		Light:          160,
	})
	return len(lb.sectors) - 1
}

// AddLine adds a line from (x1, y1) to (x2, y2). front is the sector on the
// right of the line's direction; back is NoSector for a solid wall.
func (lb *LevelBuilder) AddLine(x1, y1, x2, y2 float64, front, back int, middle string) {
	lb.lines = append(lb.lines, lineSpec{
		start:  world.Vertex{X: x1, Y: y1},
		end:    world.Vertex{X: x2, Y: y2},
		front:  front,
		back:   back,
		middle: middle,
	})
}

// AddLoop adds a closed polygon of lines through points (x0, y0, x1, y1, ...).
// Walk clockwise to enclose front, counter-clockwise to wrap a solid or
// raised block whose outside is front.
func (lb *LevelBuilder) AddLoop(front, back int, middle string, coords ...float64) {
	n := len(coords) / 2
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		lb.AddLine(coords[2*i], coords[2*i+1], coords[2*j], coords[2*j+1], front, back, middle)
	}
}

// SetPlayerStart records the player 1 start.
func (lb *LevelBuilder) SetPlayerStart(x, y, angleDeg float64) {
	lb.start = &world.Vertex{X: x, Y: y}
	lb.angle = angleDeg
}

// Finish wires the level together and runs the nodebuilder.
func (lb *LevelBuilder) Finish() (*world.Map, error) {
	m := &world.Map{Name: lb.name}
	m.Sectors = make([]world.Sector, len(lb.sectors))
	copy(m.Sectors, lb.sectors)

	sidedefCount := 0
	for _, l := range lb.lines {
		if l.front == NoSector {
			return nil, fmt.Errorf("level %q: line (%v)-(%v) has no front sector", lb.name, l.start, l.end)
		}
		for _, s := range []int{l.front, l.back} {
			if s >= len(m.Sectors) {
				return nil, fmt.Errorf("level %q: sector %d out of range", lb.name, s)
			}
			if s != NoSector {
				sidedefCount++
			}
		}
	}

	m.Sidedefs = make([]world.Sidedef, 0, sidedefCount)
	m.Linedefs = make([]world.Linedef, len(lb.lines))
	vertexIndex := make(map[world.Vertex]bool)
	for i, l := range lb.lines {
		ld := &m.Linedefs[i]
		ld.Start, ld.End = l.start, l.end
		ld.Flags = world.LinedefImpassable

		m.Sidedefs = append(m.Sidedefs, world.Sidedef{Middle: l.middle, Sector: &m.Sectors[l.front]})
		ld.Front = &m.Sidedefs[len(m.Sidedefs)-1]
		if l.back != NoSector {
			ld.Flags = world.LinedefTwoSided
			m.Sidedefs = append(m.Sidedefs, world.Sidedef{Sector: &m.Sectors[l.back]})
			ld.Back = &m.Sidedefs[len(m.Sidedefs)-1]
		}

		for _, v := range []world.Vertex{l.start, l.end} {
			if !vertexIndex[v] {
				vertexIndex[v] = true
				m.Vertices = append(m.Vertices, v)
			}
		}
	}

	if lb.start != nil {
		m.PlayerStart = *lb.start
		m.PlayerStartAngle = lb.angle
		m.HasPlayerStart = true
	}

	if _, err := Build(m); err != nil {
		return nil, err
	}
	m.ComputeBounds()
	return m, nil
}

// DemoLevel is a single room with a square pillar and a raised platform,
// used whenever no WAD is configured.
func DemoLevel() *world.Map {
	lb := NewLevelBuilder("DEMO")
	room := lb.AddSector(0, 128, "FLOOR4_8", "CEIL3_5")
	platform := lb.AddSector(24, 128, "FLAT20", "CEIL3_5")

	lb.AddLoop(room, NoSector, "STARTAN3", 0, 0, 0, 1024, 1024, 1024, 1024, 0)
	lb.AddLoop(room, NoSector, "PIPE4", 448, 448, 576, 448, 576, 576, 448, 576)
	lb.AddLoop(room, platform, "", 128, 704, 320, 704, 320, 896, 128, 896)
	lb.AddLine(768, 1024, 768, 832, room, NoSector, "BROWN1")
	lb.AddLine(768, 832, 768, 1024, room, NoSector, "BROWN1")
	lb.SetPlayerStart(192, 192, 45)

	m, err := lb.Finish()
	if err != nil {
		panic("Failed to build demo level: " + err.Error())
	}
	return m
}
