package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"bspview/internal/bspbuild"
	"bspview/internal/world"
)

const (
	noSidedef       = 0xFFFF
	subsectorFlag   = 0x8000
	playerOneThing  = 1
	maxLevelLumpGap = 11
)

var levelLumps = map[string]bool{
	"THINGS": true, "LINEDEFS": true, "SIDEDEFS": true, "VERTEXES": true,
	"SEGS": true, "SSECTORS": true, "NODES": true, "SECTORS": true,
	"REJECT": true, "BLOCKMAP": true, "BEHAVIOR": true,
}

type rawVertex struct {
	X, Y int16
}

type rawLinedef struct {
	Start, End uint16
	Flags      uint16
	Special    uint16
	Tag        uint16
	Sides      [2]uint16
}

type rawSidedef struct {
	XOffset, YOffset int16
	Upper            [8]byte
	Lower            [8]byte
	Middle           [8]byte
	Sector           uint16
}

type rawSector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorPic      [8]byte
	CeilingPic    [8]byte
	Light         int16
	Special       int16
	Tag           int16
}

type rawThing struct {
	X, Y  int16
	Angle int16
	Type  int16
	Flags int16
}

type rawSeg struct {
	Start, End uint16
	Angle      int16
	Linedef    uint16
	Direction  int16
	Offset     int16
}

type rawSubsector struct {
	SegCount uint16
	FirstSeg uint16
}

type rawNode struct {
	X, Y, DX, DY int16
	BBox         [2][4]int16
	Children     [2]uint16 // right, left
}

// levelLumpSet maps the lumps following a level marker by name.
type levelLumpSet map[string]int

func (w *File) levelLumps(name string) (levelLumpSet, error) {
	marker := -1
	for i, l := range w.Lumps {
		if l.Name == name && IsLevelName(l.Name) {
			marker = i
			break
		}
	}
	if marker < 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrLevelNotFound)
	}
	set := make(levelLumpSet)
	for i := marker + 1; i < len(w.Lumps) && i <= marker+maxLevelLumpGap; i++ {
		n := w.Lumps[i].Name
		if !levelLumps[n] {
			break
		}
		if _, dup := set[n]; !dup {
			set[n] = i
		}
	}
	return set, nil
}

// readRecords decodes lump name of the level as a packed array of T. A
// missing optional lump yields an empty slice.
func readRecords[T any](w *File, level string, set levelLumpSet, name string, optional bool) ([]T, error) {
	i, ok := set[name]
	if !ok {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%s %s: %w", level, name, ErrLumpNotFound)
	}
	data, err := w.ReadLump(i)
	if err != nil {
		return nil, err
	}
	var zero T
	size := binary.Size(zero)
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%s %s: size %d is not a multiple of %d", level, name, len(data), size)
	}
	out := make([]T, len(data)/size)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("%s %s: %w", level, name, err)
	}
	return out, nil
}

// LoadLevel decodes level name into a world.Map. Levels without nodes, or
// any level when rebuild is set, get fresh nodes from bspbuild.
func (w *File) LoadLevel(name string, rebuild bool) (*world.Map, error) {
	set, err := w.levelLumps(name)
	if err != nil {
		return nil, err
	}
	if _, hexen := set["BEHAVIOR"]; hexen {
		return nil, fmt.Errorf("%s: hexen format: %w", name, ErrUnsupportedMap)
	}

	vertices, err := readRecords[rawVertex](w, name, set, "VERTEXES", false)
	if err != nil {
		return nil, err
	}
	linedefs, err := readRecords[rawLinedef](w, name, set, "LINEDEFS", false)
	if err != nil {
		return nil, err
	}
	sidedefs, err := readRecords[rawSidedef](w, name, set, "SIDEDEFS", false)
	if err != nil {
		return nil, err
	}
	sectors, err := readRecords[rawSector](w, name, set, "SECTORS", false)
	if err != nil {
		return nil, err
	}
	things, err := readRecords[rawThing](w, name, set, "THINGS", true)
	if err != nil {
		return nil, err
	}
	segs, err := readRecords[rawSeg](w, name, set, "SEGS", true)
	if err != nil {
		return nil, err
	}
	subsectors, err := readRecords[rawSubsector](w, name, set, "SSECTORS", true)
	if err != nil {
		return nil, err
	}
	nodes, err := readRecords[rawNode](w, name, set, "NODES", true)
	if err != nil {
		return nil, err
	}

	m := &world.Map{Name: name}
	if err := buildGeometry(m, vertices, linedefs, sidedefs, sectors); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for _, t := range things {
		if t.Type == playerOneThing {
			m.PlayerStart = world.Vertex{X: float64(t.X), Y: float64(t.Y)}
			m.PlayerStartAngle = float64(t.Angle)
			m.HasPlayerStart = true
			break
		}
	}

	if rebuild || len(segs) == 0 || len(subsectors) == 0 {
		if _, err := bspbuild.Build(m); err != nil {
			return nil, fmt.Errorf("%s: failed to build nodes: %w", name, err)
		}
	} else {
		if err := buildTree(m, segs, subsectors, nodes); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	m.ComputeBounds()
	return m, nil
}

func buildGeometry(m *world.Map, vertices []rawVertex, linedefs []rawLinedef, sidedefs []rawSidedef, sectors []rawSector) error {
	m.Vertices = make([]world.Vertex, len(vertices))
	for i, v := range vertices {
		m.Vertices[i] = world.Vertex{X: float64(v.X), Y: float64(v.Y)}
	}

	m.Sectors = make([]world.Sector, len(sectors))
	for i, s := range sectors {
		m.Sectors[i] = world.Sector{
			FloorHeight:    float64(s.FloorHeight),
			CeilingHeight:  float64(s.CeilingHeight),
			FloorTexture:   textureName(s.FloorPic),
			CeilingTexture: textureName(s.CeilingPic),
			Light:          int(s.Light),
			Tag:            int(s.Tag),
		}
	}

	m.Sidedefs = make([]world.Sidedef, len(sidedefs))
	for i, sd := range sidedefs {
		if int(sd.Sector) >= len(m.Sectors) {
			return fmt.Errorf("sidedef %d: sector %d out of range", i, sd.Sector)
		}
		m.Sidedefs[i] = world.Sidedef{
			XOffset: float64(sd.XOffset),
			YOffset: float64(sd.YOffset),
			Upper:   textureName(sd.Upper),
			Lower:   textureName(sd.Lower),
			Middle:  textureName(sd.Middle),
			Sector:  &m.Sectors[sd.Sector],
		}
	}

	m.Linedefs = make([]world.Linedef, len(linedefs))
	for i, ld := range linedefs {
		if int(ld.Start) >= len(m.Vertices) || int(ld.End) >= len(m.Vertices) {
			return fmt.Errorf("linedef %d: vertex out of range", i)
		}
		line := &m.Linedefs[i]
		line.Start = m.Vertices[ld.Start]
		line.End = m.Vertices[ld.End]
		line.Flags = ld.Flags
		line.Action = int(ld.Special)
		line.Tag = int(ld.Tag)
		sides := [2]**world.Sidedef{&line.Front, &line.Back}
		for s, idx := range ld.Sides {
			if idx == noSidedef {
				continue
			}
			if int(idx) >= len(m.Sidedefs) {
				return fmt.Errorf("linedef %d: sidedef %d out of range", i, idx)
			}
			*sides[s] = &m.Sidedefs[idx]
		}
		if line.Front == nil {
			return fmt.Errorf("linedef %d: no front sidedef", i)
		}
	}
	return nil
}

func buildTree(m *world.Map, segs []rawSeg, subsectors []rawSubsector, nodes []rawNode) error {
	m.Segs = make([]world.Seg, len(segs))
	for i, s := range segs {
		if int(s.Start) >= len(m.Vertices) || int(s.End) >= len(m.Vertices) {
			return fmt.Errorf("seg %d: vertex out of range", i)
		}
		if int(s.Linedef) >= len(m.Linedefs) {
			return fmt.Errorf("seg %d: linedef %d out of range", i, s.Linedef)
		}
		line := &m.Linedefs[s.Linedef]
		seg := world.Seg{
			Start:     m.Vertices[s.Start],
			End:       m.Vertices[s.End],
			Linedef:   line,
			Direction: int(s.Direction),
			Offset:    float64(s.Offset),
		}
		front, back := line.Front, line.Back
		if seg.Direction != 0 {
			front, back = back, front
		}
		if front != nil {
			seg.Right = front.Sector
		}
		if back != nil {
			seg.Left = back.Sector
		}
		m.Segs[i] = seg
	}

	m.Subsectors = make([]world.Subsector, len(subsectors))
	for i, ss := range subsectors {
		m.Subsectors[i] = world.Subsector{FirstSeg: int(ss.FirstSeg), SegCount: int(ss.SegCount)}
	}

	m.Nodes = make([]world.Node, len(nodes))
	for i, n := range nodes {
		m.Nodes[i] = world.Node{
			X:     float64(n.X),
			Y:     float64(n.Y),
			DX:    float64(n.DX),
			DY:    float64(n.DY),
			Right: child(n.Children[0]),
			Left:  child(n.Children[1]),
		}
	}
	return nil
}

// child converts the on-disk tagged child reference.
func child(c uint16) world.Child {
	if c&subsectorFlag != 0 {
		return world.Leaf(int(c &^ subsectorFlag))
	}
	return world.Internal(int(c))
}

// textureName turns a lump-style texture name into a map key; "-" means
// no texture.
func textureName(b [8]byte) string {
	name := lumpName(b[:])
	if name == "-" {
		return ""
	}
	return name
}
