// Package session ties one viewpoint to the loaded levels: the player, the
// view renderer, the automap and collision, plus the level loading and
// colour setup every binary shares.
package session

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"bspview/internal/bspbuild"
	"bspview/internal/config"
	"bspview/internal/render"
	"bspview/internal/wad"
	"bspview/internal/world"
)

// LoadLevels loads the configured levels, or the built-in demo level when
// no WAD is configured. With no map names every level in the WAD is loaded.
func LoadLevels(cfg *config.Config) (*world.LevelManager, error) {
	levels := world.NewLevelManager()
	if cfg.UsesDemoLevel() {
		m := bspbuild.DemoLevel()
		levels.Add(m)
		log.Printf("Level loaded: %s (%d segs, %d subsectors, %d nodes)",
			m.Name, len(m.Segs), len(m.Subsectors), len(m.Nodes))
		return levels, nil
	}

	f, err := wad.Open(cfg.Level.WadPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := cfg.Level.Maps
	if len(names) == 0 {
		names = f.Levels()
	}
	load := func(name string) (*world.Map, error) {
		return f.LoadLevel(name, cfg.Level.RebuildNodes)
	}
	if err := levels.LoadAll(load, names...); err != nil {
		return nil, fmt.Errorf("failed to load levels from %s: %w", cfg.Level.WadPath, err)
	}
	return levels, nil
}

// MustLoadLevels loads levels and panics on error
func MustLoadLevels(cfg *config.Config) *world.LevelManager {
	levels, err := LoadLevels(cfg)
	if err != nil {
		panic("Failed to load levels: " + err.Error())
	}
	return levels
}

// NewWallColors returns the wall colour cache for cfg. Textures listed in
// the texture palette get their configured colour. Others hash their name
// when the colour seed is zero, or draw from a seeded generator.
func NewWallColors(cfg *config.Config) *render.WallColors {
	assign := render.HashColors
	if cfg.Render.ColorSeed != 0 {
		assign = render.RandomColors(rand.New(rand.NewSource(cfg.Render.ColorSeed)))
	}
	if cfg.Render.TexturesPath == "" {
		return render.NewWallColors(assign)
	}

	textures := world.NewTextureManager()
	if err := textures.LoadTextureConfig(cfg.Render.TexturesPath); err != nil {
		log.Printf("Warning: Failed to load texture config: %v", err)
		return render.NewWallColors(assign)
	}
	lookup := func(texture string) (color.RGBA, bool) {
		c, ok := textures.GetWallColor(texture)
		return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}, ok
	}
	return render.NewWallColors(render.PaletteColors(lookup, assign))
}
