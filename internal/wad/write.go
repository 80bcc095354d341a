package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"bspview/internal/mathutil"
	"bspview/internal/world"
)

const thingFlagsAllSkills = 0x0007

// lumpData is a named lump waiting to be written.
type lumpData struct {
	name string
	data []byte
}

// WriteLevel writes m as a single-level PWAD under marker name, nodes
// included. Coordinates, heights and offsets are rounded to whole map
// units, so levels with split vertices off the integer grid move slightly.
func WriteLevel(w io.Writer, name string, m *world.Map) error {
	if !IsLevelName(name) {
		return fmt.Errorf("%q is not a level name", name)
	}
	lumps, err := encodeLevel(m)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return writeLumps(w, append([]lumpData{{name: name}}, lumps...))
}

// writeLumps lays out a PWAD: header, lump data, then the directory.
func writeLumps(w io.Writer, lumps []lumpData) error {
	dir := make([]directoryEntry, len(lumps))
	pos := int32(binary.Size(header{}))
	for i, l := range lumps {
		dir[i] = directoryEntry{FilePos: pos, Size: int32(len(l.data))}
		copy(dir[i].Name[:], l.name)
		pos += int32(len(l.data))
	}

	h := header{LumpCount: int32(len(lumps)), DirectoryStart: pos}
	copy(h.Magic[:], pwadMagic)
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	for _, l := range lumps {
		if _, err := w.Write(l.data); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, dir)
}

// levelEncoder turns the pointer graph of a world.Map back into indices.
type levelEncoder struct {
	m        *world.Map
	vertices []rawVertex
	vertexAt map[rawVertex]uint16
	sectorAt map[*world.Sector]uint16
	sideAt   map[*world.Sidedef]uint16
	lineAt   map[*world.Linedef]uint16
}

func encodeLevel(m *world.Map) ([]lumpData, error) {
	e := &levelEncoder{
		m:        m,
		vertexAt: make(map[rawVertex]uint16),
		sectorAt: make(map[*world.Sector]uint16, len(m.Sectors)),
		sideAt:   make(map[*world.Sidedef]uint16, len(m.Sidedefs)),
		lineAt:   make(map[*world.Linedef]uint16, len(m.Linedefs)),
	}
	for i := range m.Sectors {
		e.sectorAt[&m.Sectors[i]] = uint16(i)
	}
	for i := range m.Sidedefs {
		e.sideAt[&m.Sidedefs[i]] = uint16(i)
	}
	for i := range m.Linedefs {
		e.lineAt[&m.Linedefs[i]] = uint16(i)
	}
	for _, v := range m.Vertices {
		e.vertex(v)
	}

	var things []rawThing
	if m.HasPlayerStart {
		things = append(things, rawThing{
			X:     roundInt16(m.PlayerStart.X),
			Y:     roundInt16(m.PlayerStart.Y),
			Angle: roundInt16(m.PlayerStartAngle),
			Type:  playerOneThing,
			Flags: thingFlagsAllSkills,
		})
	}
	linedefs, err := e.linedefs()
	if err != nil {
		return nil, err
	}
	sidedefs, err := e.sidedefs()
	if err != nil {
		return nil, err
	}
	segs, err := e.segs()
	if err != nil {
		return nil, err
	}
	subsectors := make([]rawSubsector, len(m.Subsectors))
	for i, ss := range m.Subsectors {
		subsectors[i] = rawSubsector{SegCount: uint16(ss.SegCount), FirstSeg: uint16(ss.FirstSeg)}
	}

	// e.vertices is complete once linedefs and segs are encoded
	ordered := []struct {
		name    string
		records any
	}{
		{"THINGS", things},
		{"LINEDEFS", linedefs},
		{"SIDEDEFS", sidedefs},
		{"VERTEXES", e.vertices},
		{"SEGS", segs},
		{"SSECTORS", subsectors},
		{"NODES", e.nodes()},
		{"SECTORS", e.sectors()},
	}
	lumps := make([]lumpData, 0, len(ordered))
	for _, o := range ordered {
		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.LittleEndian, o.records); err != nil {
			return nil, fmt.Errorf("%s: %w", o.name, err)
		}
		lumps = append(lumps, lumpData{name: o.name, data: buf.Bytes()})
	}
	return lumps, nil
}

func (e *levelEncoder) vertex(v world.Vertex) uint16 {
	rv := rawVertex{X: roundInt16(v.X), Y: roundInt16(v.Y)}
	if i, ok := e.vertexAt[rv]; ok {
		return i
	}
	i := uint16(len(e.vertices))
	e.vertices = append(e.vertices, rv)
	e.vertexAt[rv] = i
	return i
}

func (e *levelEncoder) side(sd *world.Sidedef) (uint16, error) {
	if sd == nil {
		return noSidedef, nil
	}
	i, ok := e.sideAt[sd]
	if !ok {
		return 0, errors.New("sidedef outside the level")
	}
	return i, nil
}

func (e *levelEncoder) linedefs() ([]rawLinedef, error) {
	out := make([]rawLinedef, len(e.m.Linedefs))
	for i := range e.m.Linedefs {
		ld := &e.m.Linedefs[i]
		front, err := e.side(ld.Front)
		if err != nil {
			return nil, fmt.Errorf("linedef %d: %w", i, err)
		}
		back, err := e.side(ld.Back)
		if err != nil {
			return nil, fmt.Errorf("linedef %d: %w", i, err)
		}
		out[i] = rawLinedef{
			Start:   e.vertex(ld.Start),
			End:     e.vertex(ld.End),
			Flags:   ld.Flags,
			Special: uint16(ld.Action),
			Tag:     uint16(ld.Tag),
			Sides:   [2]uint16{front, back},
		}
	}
	return out, nil
}

func (e *levelEncoder) sidedefs() ([]rawSidedef, error) {
	out := make([]rawSidedef, len(e.m.Sidedefs))
	for i, sd := range e.m.Sidedefs {
		sector, ok := e.sectorAt[sd.Sector]
		if !ok {
			return nil, fmt.Errorf("sidedef %d: sector outside the level", i)
		}
		out[i] = rawSidedef{
			XOffset: roundInt16(sd.XOffset),
			YOffset: roundInt16(sd.YOffset),
			Upper:   lumpTextureName(sd.Upper),
			Lower:   lumpTextureName(sd.Lower),
			Middle:  lumpTextureName(sd.Middle),
			Sector:  sector,
		}
	}
	return out, nil
}

func (e *levelEncoder) sectors() []rawSector {
	out := make([]rawSector, len(e.m.Sectors))
	for i, s := range e.m.Sectors {
		out[i] = rawSector{
			FloorHeight:   roundInt16(s.FloorHeight),
			CeilingHeight: roundInt16(s.CeilingHeight),
			FloorPic:      lumpTextureName(s.FloorTexture),
			CeilingPic:    lumpTextureName(s.CeilingTexture),
			Light:         int16(s.Light),
			Tag:           int16(s.Tag),
		}
	}
	return out
}

func (e *levelEncoder) segs() ([]rawSeg, error) {
	out := make([]rawSeg, len(e.m.Segs))
	for i := range e.m.Segs {
		seg := &e.m.Segs[i]
		line, ok := e.lineAt[seg.Linedef]
		if !ok {
			return nil, fmt.Errorf("seg %d: linedef outside the level", i)
		}
		out[i] = rawSeg{
			Start:     e.vertex(seg.Start),
			End:       e.vertex(seg.End),
			Angle:     binaryAngle(seg.End.Y-seg.Start.Y, seg.End.X-seg.Start.X),
			Linedef:   line,
			Direction: int16(seg.Direction),
			Offset:    roundInt16(seg.Offset),
		}
	}
	return out, nil
}

func (e *levelEncoder) nodes() []rawNode {
	out := make([]rawNode, len(e.m.Nodes))
	for i, n := range e.m.Nodes {
		out[i] = rawNode{
			X:        roundInt16(n.X),
			Y:        roundInt16(n.Y),
			DX:       roundInt16(n.DX),
			DY:       roundInt16(n.DY),
			BBox:     [2][4]int16{e.bbox(n.Right), e.bbox(n.Left)},
			Children: [2]uint16{childRef(n.Right), childRef(n.Left)},
		}
	}
	return out
}

// bbox returns the top, bottom, left, right extent of the segs under c.
func (e *levelEncoder) bbox(c world.Child) [4]int16 {
	top, bottom := math.Inf(-1), math.Inf(1)
	left, right := math.Inf(1), math.Inf(-1)
	var grow func(c world.Child)
	grow = func(c world.Child) {
		if !c.Leaf {
			n := &e.m.Nodes[c.Index]
			grow(n.Right)
			grow(n.Left)
			return
		}
		ss := e.m.Subsectors[c.Index]
		for _, seg := range e.m.Segs[ss.FirstSeg : ss.FirstSeg+ss.SegCount] {
			for _, v := range []world.Vertex{seg.Start, seg.End} {
				top, bottom = math.Max(top, v.Y), math.Min(bottom, v.Y)
				left, right = math.Min(left, v.X), math.Max(right, v.X)
			}
		}
	}
	grow(c)
	if math.IsInf(top, -1) {
		return [4]int16{}
	}
	return [4]int16{roundInt16(top), roundInt16(bottom), roundInt16(left), roundInt16(right)}
}

// childRef is the on-disk form of c.
func childRef(c world.Child) uint16 {
	if c.Leaf {
		return uint16(c.Index) | subsectorFlag
	}
	return uint16(c.Index)
}

// binaryAngle converts a direction to the 16-bit angle stored in SEGS.
func binaryAngle(dy, dx float64) int16 {
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return int16(uint16(mathutil.RoundInt(deg*65536/360) & 0xFFFF))
}

// lumpTextureName is the inverse of textureName.
func lumpTextureName(name string) [8]byte {
	var b [8]byte
	if name == "" {
		name = "-"
	}
	copy(b[:], name)
	return b
}

func roundInt16(f float64) int16 {
	return int16(mathutil.IntClamp(mathutil.RoundInt(f), math.MinInt16, math.MaxInt16))
}
