package world

// Vertex is a point in map space.
type Vertex struct {
	X, Y float64
}

// Sector is a floor/ceiling region. Only the heights and texture names are
// consumed by the view renderer.
type Sector struct {
	FloorHeight    float64
	CeilingHeight  float64
	FloorTexture   string
	CeilingTexture string
	Light          int
	Tag            int
}

// Sidedef describes one face of a linedef.
type Sidedef struct {
	XOffset, YOffset float64
	Upper            string // upper texture name
	Lower            string // lower texture name
	Middle           string // middle texture name, used as the wall colour key
	Sector           *Sector
}

// Linedef flag bits shared by the Doom family of games.
const (
	LinedefImpassable uint16 = 0x0001
	LinedefTwoSided   uint16 = 0x0004
	LinedefSecret     uint16 = 0x0020
	LinedefNeverOnMap uint16 = 0x0080
)

// Linedef is an editor line. Back is nil for one-sided lines.
type Linedef struct {
	Start, End  Vertex
	Flags       uint16
	Action      int
	Tag         int
	Front, Back *Sidedef
}

// Seg is a directed wall fragment produced by the nodebuilder. The
// right-hand side of Start->End faces the viewer when the seg is visible.
type Seg struct {
	Start, End Vertex
	Linedef    *Linedef
	Direction  int // 0: same direction as the linedef, 1: opposite
	Offset     float64
	Right      *Sector
	Left       *Sector // nil for one-sided (solid) walls
}

// Solid reports whether the seg is a one-sided opaque wall.
func (s *Seg) Solid() bool {
	return s.Left == nil
}

// Sidedef returns the linedef side the seg was cut from.
func (s *Seg) Sidedef() *Sidedef {
	if s.Linedef == nil {
		return nil
	}
	if s.Direction == 0 {
		return s.Linedef.Front
	}
	return s.Linedef.Back
}

// MiddleTexture returns the middle texture of the seg's facing side, or ""
// when the seg has no sidedef.
func (s *Seg) MiddleTexture() string {
	if sd := s.Sidedef(); sd != nil {
		return sd.Middle
	}
	return ""
}

// Length returns the distance between the seg's endpoints.
func (s *Seg) Length() float64 {
	return Distance(s.Start, s.End)
}

// Subsector is a convex leaf region made of a contiguous run of segs.
type Subsector struct {
	FirstSeg int
	SegCount int
}

// Child references either another node or a subsector leaf.
type Child struct {
	Leaf  bool
	Index int
}

// Leaf references subsector i.
func Leaf(i int) Child { return Child{Leaf: true, Index: i} }

// Internal references node i.
func Internal(i int) Child { return Child{Index: i} }

// Node is a BSP partition. The partition line starts at (X, Y) and runs
// along (DX, DY); Right is the front side.
type Node struct {
	X, Y   float64
	DX, DY float64
	Right  Child
	Left   Child
}

// Map is an immutable BSP level. The renderer only borrows it.
type Map struct {
	Name       string
	Vertices   []Vertex
	Sectors    []Sector
	Sidedefs   []Sidedef
	Linedefs   []Linedef
	Segs       []Seg
	Subsectors []Subsector
	Nodes      []Node

	XMin, YMin   float64
	XMax, YMax   float64
	AutoMapScale float64

	// PlayerStart is the first player start thing, if the level has one.
	PlayerStart      Vertex
	PlayerStartAngle float64
	HasPlayerStart   bool
}
