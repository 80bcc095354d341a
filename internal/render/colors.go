package render

import (
	"hash/fnv"
	"image/color"
	"math/rand"
	"sync"
)

// ColorFunc assigns a display colour to a texture name the first time the
// name is seen.
type ColorFunc func(texture string) color.RGBA

// RandomColors returns a ColorFunc drawing opaque colours from rng.
func RandomColors(rng *rand.Rand) ColorFunc {
	var mu sync.Mutex
	return func(string) color.RGBA {
		mu.Lock()
		defer mu.Unlock()
		return color.RGBA{
			R: uint8(rng.Intn(16) * 17),
			G: uint8(rng.Intn(16) * 17),
			B: uint8(rng.Intn(16) * 17),
			A: 255,
		}
	}
}

// HashColors derives the colour from the texture name alone, so every
// renderer agrees on it without sharing state.
func HashColors(texture string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(texture))
	sum := h.Sum32()
	return color.RGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 255}
}

// PaletteColors returns a ColorFunc that takes colours from lookup and
// falls back to fallback for textures lookup does not know.
func PaletteColors(lookup func(texture string) (color.RGBA, bool), fallback ColorFunc) ColorFunc {
	return func(texture string) color.RGBA {
		if c, ok := lookup(texture); ok {
			return c
		}
		return fallback(texture)
	}
}

// WallColors caches one colour per middle texture for the lifetime of the
// renderer. Safe for concurrent use so several renderers can share it.
type WallColors struct {
	mutex  sync.RWMutex
	assign ColorFunc
	colors map[string]color.RGBA
}

// NewWallColors creates an empty cache backed by assign.
func NewWallColors(assign ColorFunc) *WallColors {
	return &WallColors{
		assign: assign,
		colors: make(map[string]color.RGBA),
	}
}

// Color returns the cached colour for texture, assigning one on first use.
func (wc *WallColors) Color(texture string) color.RGBA {
	wc.mutex.RLock()
	if c, ok := wc.colors[texture]; ok {
		wc.mutex.RUnlock()
		return c
	}
	wc.mutex.RUnlock()

	wc.mutex.Lock()
	defer wc.mutex.Unlock()
	// another renderer may have assigned it meanwhile
	if c, ok := wc.colors[texture]; ok {
		return c
	}
	c := wc.assign(texture)
	wc.colors[texture] = c
	return c
}

// Len returns the number of cached textures.
func (wc *WallColors) Len() int {
	wc.mutex.RLock()
	defer wc.mutex.RUnlock()
	return len(wc.colors)
}
