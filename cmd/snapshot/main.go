// Command snapshot renders the view from the player start at several
// headings and writes one PNG per heading.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sync"

	"bspview/internal/angle"
	"bspview/internal/config"
	"bspview/internal/render"
	"bspview/internal/render/raster"
	"bspview/internal/session"
	"bspview/internal/threading/core"
	"bspview/internal/threading/monitoring"
	"bspview/internal/world"
)

var hudColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	outDir := flag.String("out", "", "output directory (overrides snapshot.output_dir)")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	if *outDir != "" {
		cfg.Snapshot.OutputDir = *outDir
	}

	levels, err := session.LoadLevels(cfg)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	for _, name := range levels.Available() {
		if err := levels.SwitchTo(name); err != nil {
			log.Fatal(err)
		}
		paths, err := renderSnapshots(cfg, levels)
		if err != nil {
			log.Fatalf("Snapshot error: %v", err)
		}
		log.Printf("Level %s: wrote %d snapshots to %s", name, len(paths), cfg.Snapshot.OutputDir)
	}
}

// renderSnapshots renders the current level once per configured heading on
// a worker pool. Each job owns its canvas and session; the level and the
// wall colours are shared.
func renderSnapshots(cfg *config.Config, levels *world.LevelManager) ([]string, error) {
	if err := os.MkdirAll(cfg.Snapshot.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	headings := cfg.Snapshot.Headings
	colors := session.NewWallColors(cfg)
	monitor := monitoring.NewPerformanceMonitor()

	pool := core.NewWorkerPool(cfg.Snapshot.Workers)
	pool.Start()
	defer pool.Stop()

	var (
		mu    sync.Mutex
		errs  []error
		paths = make([]string, len(headings))
	)
	pool.ParallelFor(0, len(headings), func(i int) {
		path, err := renderSnapshot(cfg, levels, colors, monitor, headings[i])
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
			return
		}
		paths[i] = path
	})
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return paths, nil
}

func renderSnapshot(cfg *config.Config, levels *world.LevelManager, colors *render.WallColors, monitor *monitoring.PerformanceMonitor, heading float64) (string, error) {
	canvas := raster.New(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	s, err := session.New(cfg, levels, canvas, colors, monitor)
	if err != nil {
		return "", err
	}
	s.Player.Angle = angle.New(heading)
	s.Render()

	if cfg.Snapshot.ShowHUD {
		canvas.DrawText(4, 13, s.StatusLine(), hudColor)
	}

	path := filepath.Join(cfg.Snapshot.OutputDir, fmt.Sprintf("%s_%03.0f.png", s.Level().Name, s.Player.Angle.Deg()))
	if err := canvas.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}
