package main

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"bspview/internal/bspbuild"
	"bspview/internal/config"
	"bspview/internal/render/term"
	"bspview/internal/server"
	"bspview/internal/session"
	"bspview/internal/world"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want server.Action
	}{
		{tcell.KeyUp, 0, server.ActionForward},
		{tcell.KeyDown, 0, server.ActionBack},
		{tcell.KeyLeft, 0, server.ActionTurnLeft},
		{tcell.KeyRight, 0, server.ActionTurnRight},
		{tcell.KeyTab, 0, server.ActionToggleMap},
		{tcell.KeyPgDn, 0, server.ActionNextLevel},
		{tcell.KeyPgUp, 0, server.ActionPrevLevel},
		{tcell.KeyEscape, 0, server.ActionQuit},
		{tcell.KeyCtrlC, 0, server.ActionQuit},
		{tcell.KeyRune, 'W', server.ActionForward},
		{tcell.KeyRune, 'q', server.ActionStrafeLeft},
		{tcell.KeyRune, 'e', server.ActionStrafeRight},
		{tcell.KeyRune, 'f', server.ActionToggleStats},
		{tcell.KeyRune, '[', server.ActionPrevLevel},
		{tcell.KeyRune, 'x', server.ActionQuit},
		{tcell.KeyRune, 'z', server.ActionNone},
		{tcell.KeyF1, 0, server.ActionNone},
	}
	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone)
		if got := keyAction(ev); got != tt.want {
			t.Errorf("keyAction(%v, %q) = %d, want %d", tt.key, tt.ch, got, tt.want)
		}
	}
}

func TestDrawCanvasHalfBlocks(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	canvas := term.New(4, 4)
	canvas.DrawLine(0, 0, 3, 0, color.RGBA{R: 255, A: 255})
	canvas.DrawLine(0, 1, 3, 1, color.RGBA{B: 255, A: 255})

	drawCanvas(screen, canvas)

	r, _, style, _ := screen.GetContent(2, 0)
	if r != halfBlock {
		t.Fatalf("cell rune %q, want %q", r, halfBlock)
	}
	fg, bg, _ := style.Decompose()
	if r, g, b := fg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("foreground (%d, %d, %d), want red", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 0 || g != 0 || b != 255 {
		t.Errorf("background (%d, %d, %d), want blue", r, g, b)
	}
	if r, _, _, _ := screen.GetContent(5, 0); r == halfBlock {
		t.Error("drew past the canvas width")
	}
}

func TestDrawTextBlanksRow(t *testing.T) {
	screen := newSimScreen(t, 8, 3)
	drawText(screen, 1, "abcdefghijk")
	if r, _, _, _ := screen.GetContent(7, 1); r != 'h' {
		t.Errorf("last cell %q, want 'h'", r)
	}

	drawText(screen, 1, "ab")
	if r, _, _, _ := screen.GetContent(5, 1); r != ' ' {
		t.Errorf("cell after text %q, want blank", r)
	}
	// rows outside the screen are ignored
	drawText(screen, 3, "zz")
}

func TestRunDrawsUntilQuit(t *testing.T) {
	screen := newSimScreen(t, 80, 25)
	cfg := config.Default()
	levels := world.NewLevelManager()
	levels.Add(bspbuild.DemoLevel())

	go func() {
		time.Sleep(300 * time.Millisecond)
		screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	}()

	done := make(chan error, 1)
	go func() { done <- run(screen, cfg, session.NewWallColors(cfg), levels) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop on Escape")
	}

	cells, _, _ := screen.GetContents()
	blocks := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == halfBlock {
			blocks++
		}
	}
	if blocks == 0 {
		t.Error("no frame was shown")
	}
}
