package main

import (
	"log"

	"bspview/internal/config"
	"bspview/internal/game"
	"bspview/internal/session"
	"bspview/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Load levels from the configured WAD, or the demo level
	world.GlobalLevelManager = session.MustLoadLevels(cfg)

	// Set window properties from config
	scale := cfg.Display.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(cfg.GetScreenWidth()*scale, cfg.GetScreenHeight()*scale)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	v, err := game.NewViewer(cfg, world.GlobalLevelManager)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
