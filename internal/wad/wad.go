// Package wad reads Doom-format WAD files: the lump directory and the map
// lumps a level is made of.
package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	ErrBadMagic       = errors.New("not a WAD file")
	ErrLumpNotFound   = errors.New("lump not found")
	ErrLevelNotFound  = errors.New("level not found")
	ErrUnsupportedMap = errors.New("unsupported map format")
)

const (
	iwadMagic = "IWAD"
	pwadMagic = "PWAD"
)

var (
	mapSequel = regexp.MustCompile(`^MAP[0-9][0-9]$`)
	mapExMx   = regexp.MustCompile(`^E[1-9]M[0-9][0-9]?$`)
)

// IsLevelName reports whether a lump name marks the start of a level.
func IsLevelName(name string) bool {
	return mapSequel.MatchString(name) || mapExMx.MatchString(name)
}

type header struct {
	Magic          [4]byte
	LumpCount      int32
	DirectoryStart int32
}

type directoryEntry struct {
	FilePos int32
	Size    int32
	Name    [8]byte
}

// Lump is one directory entry.
type Lump struct {
	Name   string
	Offset int64
	Size   int64
}

// File is an opened WAD.
type File struct {
	Kind  string // IWAD or PWAD
	Lumps []Lump

	r      io.ReaderAt
	closer io.Closer
}

// Open opens and indexes the WAD at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wad: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat wad: %w", err)
	}
	w, err := Read(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w.closer = f
	return w, nil
}

// Read indexes a WAD of size bytes held by r. The directory and every lump
// must lie inside those bytes.
func Read(r io.ReaderAt, size int64) (*File, error) {
	var h header
	if err := binary.Read(io.NewSectionReader(r, 0, 12), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	kind := string(h.Magic[:])
	if kind != iwadMagic && kind != pwadMagic {
		return nil, ErrBadMagic
	}
	if h.LumpCount < 0 || h.DirectoryStart < 0 ||
		int64(h.DirectoryStart)+int64(h.LumpCount)*16 > size {
		return nil, fmt.Errorf("corrupt header: %d lumps at %d in %d bytes", h.LumpCount, h.DirectoryStart, size)
	}

	entries := make([]directoryEntry, h.LumpCount)
	dir := io.NewSectionReader(r, int64(h.DirectoryStart), int64(h.LumpCount)*16)
	if err := binary.Read(dir, binary.LittleEndian, entries); err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	w := &File{Kind: kind, Lumps: make([]Lump, len(entries)), r: r}
	for i, e := range entries {
		if e.FilePos < 0 || e.Size < 0 || int64(e.FilePos)+int64(e.Size) > size {
			return nil, fmt.Errorf("lump %d: corrupt directory entry (%d bytes at %d)", i, e.Size, e.FilePos)
		}
		w.Lumps[i] = Lump{Name: lumpName(e.Name[:]), Offset: int64(e.FilePos), Size: int64(e.Size)}
	}
	return w, nil
}

// Close releases the underlying file, if Open created one.
func (w *File) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// LumpIndex returns the index of the first lump called name at or after
// from, or -1.
func (w *File) LumpIndex(name string, from int) int {
	for i := from; i < len(w.Lumps); i++ {
		if w.Lumps[i].Name == name {
			return i
		}
	}
	return -1
}

// ReadLump returns the contents of lump i.
func (w *File) ReadLump(i int) ([]byte, error) {
	l := w.Lumps[i]
	data := make([]byte, l.Size)
	n, err := w.r.ReadAt(data, l.Offset)
	if n < len(data) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("failed to read lump %s: %w", l.Name, err)
	}
	return data, nil
}

// Levels lists the level markers in directory order.
func (w *File) Levels() []string {
	var names []string
	for _, l := range w.Lumps {
		if IsLevelName(l.Name) {
			names = append(names, l.Name)
		}
	}
	return names
}

// lumpName trims the NUL padding of an 8-byte name.
func lumpName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.ToUpper(string(b))
}
