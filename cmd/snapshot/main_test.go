package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"bspview/internal/bspbuild"
	"bspview/internal/config"
	"bspview/internal/world"
)

func TestRenderSnapshots(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.OutputDir = filepath.Join(t.TempDir(), "shots")
	cfg.Snapshot.Headings = []float64{0, 90, 180, 270}
	cfg.Snapshot.Workers = 2

	levels := world.NewLevelManager()
	levels.Add(bspbuild.DemoLevel())

	paths, err := renderSnapshots(cfg, levels)
	if err != nil {
		t.Fatalf("renderSnapshots: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("got %d paths, want 4", len(paths))
	}
	if want := filepath.Join(cfg.Snapshot.OutputDir, "DEMO_090.png"); paths[1] != want {
		t.Errorf("paths[1] = %s, want %s", paths[1], want)
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
			t.Errorf("%s is %dx%d, want 320x200", path, b.Dx(), b.Dy())
		}
	}
}

func TestRenderSnapshotsBadDirectory(t *testing.T) {
	cfg := config.Default()
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Snapshot.OutputDir = filepath.Join(file, "shots")

	levels := world.NewLevelManager()
	levels.Add(bspbuild.DemoLevel())
	if _, err := renderSnapshots(cfg, levels); err == nil {
		t.Error("expected an error for an output directory under a file")
	}
}
