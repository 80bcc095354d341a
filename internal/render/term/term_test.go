package term

import (
	"image/color"
	"strings"
	"testing"
)

var white = Pixel{255, 255, 255}

func TestResizeRoundsHeightUp(t *testing.T) {
	c := New(10, 7)
	if c.Height() != 8 || c.Rows() != 4 {
		t.Errorf("height %d rows %d, want 8 and 4", c.Height(), c.Rows())
	}
}

func TestDrawLineEndpointsAndDiagonal(t *testing.T) {
	c := New(16, 16)
	c.DrawLine(1, 1, 10, 10, color.White)
	for i := 1; i <= 10; i++ {
		if c.At(i, i) != white {
			t.Errorf("diagonal pixel %d not set", i)
		}
	}
	if c.At(11, 11) == white || c.At(2, 1) == white {
		t.Error("line overran")
	}
}

func TestDrawLineClipsOffscreen(t *testing.T) {
	c := New(8, 8)
	c.DrawLine(3, -1e9, 3, 1e9, color.White)
	for y := 0; y < 8; y++ {
		if c.At(3, y) != white {
			t.Errorf("pixel (3,%d) not set", y)
		}
	}
	if c.At(2, 4) == white {
		t.Error("neighbouring column touched")
	}
}

func TestDrawCircle(t *testing.T) {
	c := New(21, 21)
	c.DrawCircle(10, 10, 5, color.White)
	for _, pt := range [][2]int{{15, 10}, {5, 10}, {10, 15}, {10, 5}} {
		if c.At(pt[0], pt[1]) != white {
			t.Errorf("circle point %v not set", pt)
		}
	}
	if c.At(10, 10) == white {
		t.Error("circle centre set")
	}
}

func TestFrame(t *testing.T) {
	c := New(3, 4)
	c.DrawLine(0, 0, 2, 0, color.RGBA{R: 255, A: 255})
	frame := c.Frame()

	if !strings.HasPrefix(frame, MoveTo(1, 1)) {
		t.Error("frame should start at the home position")
	}
	if n := strings.Count(frame, halfBlock); n != 6 {
		t.Errorf("%d cells, want 6", n)
	}
	if n := strings.Count(frame, "\r\n"); n != 1 {
		t.Errorf("%d line breaks, want 1", n)
	}
	// one foreground change per row: red on row 0, black on row 1
	if n := strings.Count(frame, CSI+"38;2;255;0;0m"); n != 1 {
		t.Errorf("red foreground emitted %d times, want 1", n)
	}
	if !strings.HasSuffix(frame, Reset) {
		t.Error("frame should end with a reset")
	}
}
