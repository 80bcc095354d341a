package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func isRed(c color.RGBA) bool {
	return c.R > 200 && c.G < 50 && c.B < 50
}

func TestDrawLine(t *testing.T) {
	c := New(64, 48)
	c.DrawLine(5, 10, 20, 10, red)

	for x := 5; x <= 20; x++ {
		if got := c.Image().RGBAAt(x, 10); !isRed(got) {
			t.Fatalf("pixel (%d,10) = %v, want red", x, got)
		}
	}
	for _, pt := range [][2]int{{3, 10}, {23, 10}, {10, 8}, {10, 12}} {
		if got := c.Image().RGBAAt(pt[0], pt[1]); got != (color.RGBA{A: 255}) {
			t.Errorf("pixel %v = %v, want background", pt, got)
		}
	}
}

func TestDrawVerticalAndDegenerateLines(t *testing.T) {
	c := New(32, 32)
	c.DrawLine(8, 2, 8, 20, red)
	c.DrawLine(25, 25, 25, 25, red)
	if got := c.Image().RGBAAt(8, 12); !isRed(got) {
		t.Errorf("vertical line pixel = %v", got)
	}
	if got := c.Image().RGBAAt(25, 25); !isRed(got) {
		t.Errorf("single-point line pixel = %v", got)
	}
}

func TestDrawCircle(t *testing.T) {
	c := New(64, 64)
	c.LineWidth = 2
	c.DrawCircle(32, 32, 10, red)
	if got := c.Image().RGBAAt(42, 32); !isRed(got) {
		t.Errorf("ring pixel = %v, want red", got)
	}
	if got := c.Image().RGBAAt(32, 32); got != (color.RGBA{A: 255}) {
		t.Errorf("centre pixel = %v, want background", got)
	}
}

func TestClear(t *testing.T) {
	c := New(16, 16)
	c.DrawLine(0, 0, 15, 15, red)
	c.SetBackground(color.RGBA{B: 80, A: 255})
	c.Clear()
	if got := c.Image().RGBAAt(7, 7); got != (color.RGBA{B: 80, A: 255}) {
		t.Errorf("pixel after clear = %v", got)
	}
}

func TestDrawTextAndPNG(t *testing.T) {
	c := New(120, 20)
	c.DrawText(2, 14, "E1M1", color.White)
	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < TextWidth("E1M1")+2; x++ {
			if c.Image().RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("text left no pixels")
	}
	if TextWidth("E1M1") != 28 {
		t.Errorf("text width = %d, want 28", TextWidth("E1M1"))
	}

	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 20 {
		t.Errorf("decoded size = %v", img.Bounds())
	}

	if err := c.SavePNG(filepath.Join(t.TempDir(), "out.png")); err != nil {
		t.Errorf("SavePNG: %v", err)
	}
}
