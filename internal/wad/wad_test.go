package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bspview/internal/bspbuild"
	"bspview/internal/world"
)

type testLump struct {
	name string
	data []byte
}

func name8(s string) [8]byte {
	var b [8]byte
	copy(b[:], s)
	return b
}

func pack(t *testing.T, records interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, records); err != nil {
		t.Fatalf("pack: %v", err)
	}
	return buf.Bytes()
}

// buildWAD lays out a PWAD: header, lump data, then the directory.
func buildWAD(t *testing.T, magic string, lumps []testLump) []byte {
	t.Helper()
	var body bytes.Buffer
	dir := make([]directoryEntry, len(lumps))
	pos := int32(12)
	for i, l := range lumps {
		dir[i] = directoryEntry{FilePos: pos, Size: int32(len(l.data)), Name: name8(l.name)}
		body.Write(l.data)
		pos += int32(len(l.data))
	}
	var h header
	copy(h.Magic[:], magic)
	h.LumpCount = int32(len(lumps))
	h.DirectoryStart = pos

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, h)
	out.Write(body.Bytes())
	binary.Write(&out, binary.LittleEndian, dir)
	return out.Bytes()
}

// squareRoom is a 128x128 room split at x=64 by one node.
func squareRoom(t *testing.T, marker string, withNodes bool) []testLump {
	vertices := []rawVertex{{0, 0}, {0, 128}, {128, 128}, {128, 0}, {64, 128}, {64, 0}}
	linedefs := []rawLinedef{
		{Start: 0, End: 1, Flags: 1, Sides: [2]uint16{0, noSidedef}},
		{Start: 1, End: 2, Flags: 1, Sides: [2]uint16{1, noSidedef}},
		{Start: 2, End: 3, Flags: 1, Sides: [2]uint16{2, noSidedef}},
		{Start: 3, End: 0, Flags: 1, Sides: [2]uint16{3, noSidedef}},
	}
	sidedefs := make([]rawSidedef, 4)
	for i := range sidedefs {
		sidedefs[i] = rawSidedef{Upper: name8("-"), Lower: name8("-"), Middle: name8("STARTAN3"), Sector: 0}
	}
	sidedefs[2].Middle = name8("startan2")
	sectors := []rawSector{{FloorHeight: 0, CeilingHeight: 128, FloorPic: name8("FLOOR4_8"), CeilingPic: name8("CEIL3_5"), Light: 160, Tag: 3}}
	things := []rawThing{{X: 32, Y: 32, Angle: 90, Type: 2}, {X: 96, Y: 64, Angle: 180, Type: playerOneThing}}

	lumps := []testLump{
		{marker, nil},
		{"THINGS", pack(t, things)},
		{"LINEDEFS", pack(t, linedefs)},
		{"SIDEDEFS", pack(t, sidedefs)},
		{"VERTEXES", pack(t, vertices)},
	}
	if withNodes {
		segs := []rawSeg{
			{Start: 4, End: 2, Linedef: 1, Offset: 64},
			{Start: 2, End: 3, Linedef: 2},
			{Start: 3, End: 5, Linedef: 3},
			{Start: 5, End: 0, Linedef: 3, Offset: 64},
			{Start: 0, End: 1, Linedef: 0},
			{Start: 1, End: 4, Linedef: 1},
		}
		subsectors := []rawSubsector{{SegCount: 3, FirstSeg: 0}, {SegCount: 3, FirstSeg: 3}}
		nodes := []rawNode{{X: 64, Y: 0, DX: 0, DY: 128, Children: [2]uint16{subsectorFlag | 0, subsectorFlag | 1}}}
		lumps = append(lumps,
			testLump{"SEGS", pack(t, segs)},
			testLump{"SSECTORS", pack(t, subsectors)},
			testLump{"NODES", pack(t, nodes)},
		)
	}
	return append(lumps, testLump{"SECTORS", pack(t, sectors)}, testLump{"REJECT", nil}, testLump{"BLOCKMAP", nil})
}

func readWAD(t *testing.T, data []byte) *File {
	t.Helper()
	w, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return w
}

func TestReadDirectory(t *testing.T) {
	lumps := append(squareRoom(t, "E1M1", true), testLump{"PLAYPAL", make([]byte, 768)})
	lumps = append(lumps, squareRoom(t, "MAP07", false)...)
	w := readWAD(t, buildWAD(t, "PWAD", lumps))

	if w.Kind != "PWAD" {
		t.Errorf("kind = %s", w.Kind)
	}
	if len(w.Lumps) != len(lumps) {
		t.Fatalf("%d lumps, want %d", len(w.Lumps), len(lumps))
	}
	if got := w.Levels(); !reflect.DeepEqual(got, []string{"E1M1", "MAP07"}) {
		t.Errorf("levels = %v", got)
	}
	i := w.LumpIndex("PLAYPAL", 0)
	if i < 0 {
		t.Fatal("PLAYPAL not found")
	}
	data, err := w.ReadLump(i)
	if err != nil || len(data) != 768 {
		t.Errorf("ReadLump = %d bytes, %v", len(data), err)
	}
	if w.LumpIndex("THINGS", i) < 0 || w.LumpIndex("COLORMAP", 0) != -1 {
		t.Error("LumpIndex search range wrong")
	}
}

func TestReadRejectsBadFiles(t *testing.T) {
	bad := buildWAD(t, "ZWAD", nil)
	if _, err := Read(bytes.NewReader(bad), int64(len(bad))); !errors.Is(err, ErrBadMagic) {
		t.Errorf("bad magic: %v", err)
	}
	if _, err := Read(bytes.NewReader([]byte("IWAD")), 4); err == nil {
		t.Error("truncated header should fail")
	}
	data := buildWAD(t, "IWAD", squareRoom(t, "E1M1", false))
	truncated := data[:len(data)-5]
	if _, err := Read(bytes.NewReader(truncated), int64(len(truncated))); err == nil {
		t.Error("truncated directory should fail")
	}
}

func TestReadRejectsOversizedDirectory(t *testing.T) {
	var out bytes.Buffer
	h := header{LumpCount: 0x7fffffff, DirectoryStart: 12}
	copy(h.Magic[:], "PWAD")
	binary.Write(&out, binary.LittleEndian, h)
	data := out.Bytes()

	_, err := Read(bytes.NewReader(data), int64(len(data)))
	if err == nil || !strings.Contains(err.Error(), "corrupt header") {
		t.Errorf("huge lump count: got %v, want corrupt header", err)
	}
}

func TestReadRejectsLumpPastEnd(t *testing.T) {
	data := buildWAD(t, "PWAD", []testLump{{"PLAYPAL", make([]byte, 16)}})
	// entry 0 size field sits 4 bytes into the directory at the end
	binary.LittleEndian.PutUint32(data[len(data)-12:], 1<<30)

	_, err := Read(bytes.NewReader(data), int64(len(data)))
	if err == nil || !strings.Contains(err.Error(), "corrupt directory entry") {
		t.Errorf("oversized lump: got %v, want corrupt directory entry", err)
	}
}

func TestLoadLevelWithNodes(t *testing.T) {
	w := readWAD(t, buildWAD(t, "IWAD", squareRoom(t, "E1M1", true)))
	m, err := w.LoadLevel("E1M1", false)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	if m.Name != "E1M1" || len(m.Linedefs) != 4 || len(m.Segs) != 6 || len(m.Subsectors) != 2 {
		t.Fatalf("unexpected counts: %d linedefs, %d segs, %d subsectors", len(m.Linedefs), len(m.Segs), len(m.Subsectors))
	}
	n := m.Nodes[0]
	if n.Right != world.Leaf(0) || n.Left != world.Leaf(1) {
		t.Errorf("children = %+v, %+v", n.Right, n.Left)
	}
	if m.Root() != world.Internal(0) {
		t.Errorf("root = %+v", m.Root())
	}
	if m.Segs[0].Offset != 64 || m.Segs[0].Right != &m.Sectors[0] || !m.Segs[0].Solid() {
		t.Errorf("seg 0 = %+v", m.Segs[0])
	}
	if got := m.Segs[1].MiddleTexture(); got != "STARTAN2" {
		t.Errorf("middle texture = %q, want STARTAN2", got)
	}
	sd := m.Linedefs[0].Front
	if sd.Upper != "" || sd.Middle != "STARTAN3" {
		t.Errorf("sidedef = %+v", sd)
	}
	sec := m.Sectors[0]
	if sec.CeilingHeight != 128 || sec.FloorTexture != "FLOOR4_8" || sec.Light != 160 || sec.Tag != 3 {
		t.Errorf("sector = %+v", sec)
	}
	if !m.HasPlayerStart || m.PlayerStart != (world.Vertex{X: 96, Y: 64}) || m.PlayerStartAngle != 180 {
		t.Errorf("player start = %v %v %v", m.HasPlayerStart, m.PlayerStart, m.PlayerStartAngle)
	}
	if m.XMax != 128 || m.YMax != 128 {
		t.Errorf("bounds = %v,%v", m.XMax, m.YMax)
	}
	if got := m.SubsectorAt(100, 50); got != 0 {
		t.Errorf("east half is subsector %d, want 0", got)
	}
	if got := m.SubsectorAt(20, 50); got != 1 {
		t.Errorf("west half is subsector %d, want 1", got)
	}
}

func TestLoadLevelBuildsMissingNodes(t *testing.T) {
	w := readWAD(t, buildWAD(t, "PWAD", squareRoom(t, "MAP01", false)))
	m, err := w.LoadLevel("MAP01", false)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if len(m.Subsectors) != 1 || len(m.Nodes) != 0 || len(m.Segs) != 4 {
		t.Errorf("convex room built into %d subsectors, %d nodes, %d segs", len(m.Subsectors), len(m.Nodes), len(m.Segs))
	}

	w = readWAD(t, buildWAD(t, "PWAD", squareRoom(t, "MAP01", true)))
	m, err = w.LoadLevel("MAP01", true)
	if err != nil {
		t.Fatalf("LoadLevel with rebuild: %v", err)
	}
	if len(m.Subsectors) != 1 {
		t.Errorf("rebuild kept the stored tree: %d subsectors", len(m.Subsectors))
	}
}

func TestLoadLevelErrors(t *testing.T) {
	w := readWAD(t, buildWAD(t, "IWAD", squareRoom(t, "E1M1", true)))
	if _, err := w.LoadLevel("E1M9", false); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("missing level: %v", err)
	}

	var lumps []testLump
	for _, l := range squareRoom(t, "E1M1", false) {
		if l.name != "LINEDEFS" {
			lumps = append(lumps, l)
		}
	}
	w = readWAD(t, buildWAD(t, "IWAD", lumps))
	if _, err := w.LoadLevel("E1M1", false); !errors.Is(err, ErrLumpNotFound) {
		t.Errorf("missing LINEDEFS: %v", err)
	}

	lumps = squareRoom(t, "E1M1", false)
	lumps[4].data = lumps[4].data[:len(lumps[4].data)-1] // VERTEXES
	w = readWAD(t, buildWAD(t, "IWAD", lumps))
	if _, err := w.LoadLevel("E1M1", false); err == nil {
		t.Error("odd-sized VERTEXES should fail")
	}

	lumps = append(squareRoom(t, "MAP01", false), testLump{"BEHAVIOR", []byte{0}})
	w = readWAD(t, buildWAD(t, "IWAD", lumps))
	if _, err := w.LoadLevel("MAP01", false); !errors.Is(err, ErrUnsupportedMap) {
		t.Errorf("hexen map: %v", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.wad")
	if err := os.WriteFile(path, buildWAD(t, "PWAD", squareRoom(t, "E2M3", false)), 0o644); err != nil {
		t.Fatalf("write wad: %v", err)
	}
	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer w.Close()
	if _, err := w.LoadLevel("E2M3", false); err != nil {
		t.Errorf("LoadLevel: %v", err)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.wad")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestWriteLevelRoundTrip(t *testing.T) {
	m := bspbuild.DemoLevel()
	var buf bytes.Buffer
	if err := WriteLevel(&buf, "MAP01", m); err != nil {
		t.Fatalf("WriteLevel: %v", err)
	}

	w := readWAD(t, buf.Bytes())
	if w.Kind != "PWAD" {
		t.Errorf("kind %s, want PWAD", w.Kind)
	}
	if got := w.Levels(); len(got) != 1 || got[0] != "MAP01" {
		t.Fatalf("levels = %v, want [MAP01]", got)
	}
	got, err := w.LoadLevel("MAP01", false)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	counts := []struct {
		name      string
		got, want int
	}{
		{"sectors", len(got.Sectors), len(m.Sectors)},
		{"sidedefs", len(got.Sidedefs), len(m.Sidedefs)},
		{"linedefs", len(got.Linedefs), len(m.Linedefs)},
		{"segs", len(got.Segs), len(m.Segs)},
		{"subsectors", len(got.Subsectors), len(m.Subsectors)},
		{"nodes", len(got.Nodes), len(m.Nodes)},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s: got %d, want %d", c.name, c.got, c.want)
		}
	}
	if !got.HasPlayerStart || got.PlayerStart != m.PlayerStart || got.PlayerStartAngle != m.PlayerStartAngle {
		t.Errorf("player start %v/%v, want %v/%v", got.PlayerStart, got.PlayerStartAngle, m.PlayerStart, m.PlayerStartAngle)
	}
	for i := range m.Segs {
		if got.Segs[i].Start != m.Segs[i].Start || got.Segs[i].End != m.Segs[i].End {
			t.Errorf("seg %d moved", i)
		}
		if got.Segs[i].MiddleTexture() != m.Segs[i].MiddleTexture() || got.Segs[i].Solid() != m.Segs[i].Solid() {
			t.Errorf("seg %d: texture %q solid %v, want %q %v", i,
				got.Segs[i].MiddleTexture(), got.Segs[i].Solid(), m.Segs[i].MiddleTexture(), m.Segs[i].Solid())
		}
	}
	for _, p := range [][2]float64{{192, 192}, {500, 300}, {224, 800}, {900, 900}, {700, 600}} {
		if a, b := got.SubsectorAt(p[0], p[1]), m.SubsectorAt(p[0], p[1]); a != b {
			t.Errorf("subsector at %v: %d, want %d", p, a, b)
		}
	}
}

func TestWriteLevelRejectsBadName(t *testing.T) {
	if err := WriteLevel(io.Discard, "DEMO", bspbuild.DemoLevel()); err == nil {
		t.Error("expected an error for a non-level marker name")
	}
}

func TestBinaryAngle(t *testing.T) {
	tests := []struct {
		dy, dx float64
		want   int16
	}{
		{0, 1, 0},
		{1, 0, 16384},
		{0, -1, -32768},
		{-1, 0, -16384},
	}
	for _, tt := range tests {
		if got := binaryAngle(tt.dy, tt.dx); got != tt.want {
			t.Errorf("binaryAngle(%v, %v) = %d, want %d", tt.dy, tt.dx, got, tt.want)
		}
	}
}
