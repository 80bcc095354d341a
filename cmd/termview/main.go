// Command termview shows the first-person view in the local terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"bspview/internal/config"
	"bspview/internal/game/loop"
	"bspview/internal/render"
	"bspview/internal/render/term"
	"bspview/internal/server"
	"bspview/internal/session"
	"bspview/internal/threading/monitoring"
	"bspview/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	logPath := flag.String("log", "termview.log", "log file; the terminal is taken by the view")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg := config.MustLoadConfig(*configPath)
	levels := session.MustLoadLevels(cfg)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	if err := run(screen, cfg, session.NewWallColors(cfg), levels); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("View stopped: %v", err)
	}
}

func run(screen tcell.Screen, cfg *config.Config, colors *render.WallColors, levels *world.LevelManager) error {
	monitor := monitoring.NewPerformanceMonitor()
	canvas := term.New(fitScreen(cfg, screen))
	view, err := session.New(cfg, levels, canvas, colors, monitor)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	actions := make(chan server.Action, 64)

	var sizeMu sync.Mutex
	resized := false

	// Goroutine: poll terminal events
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				cancel()
				return
			case *tcell.EventResize:
				sizeMu.Lock()
				resized = true
				sizeMu.Unlock()
			case *tcell.EventKey:
				action := keyAction(ev)
				if action == server.ActionQuit {
					cancel()
					return
				}
				if action == server.ActionNone {
					continue
				}
				select {
				case actions <- action:
				default:
				}
			}
		}
	}()

	frameLoop := loop.New(cfg.GetTickInterval())
	return frameLoop.Run(ctx, func(time.Duration) {
		frameTimer := monitor.StartFrame()
		defer frameTimer.EndFrame()

		server.ApplyActions(view, actions)

		sizeMu.Lock()
		changed := resized
		resized = false
		sizeMu.Unlock()
		if changed {
			canvas.Resize(fitScreen(cfg, screen))
			screen.Sync()
		}

		view.Render()
		drawCanvas(screen, canvas)
		status := ""
		if view.ShowStats {
			status = view.StatusLine()
		}
		drawText(screen, canvas.Rows(), status)
		screen.Show()
	})
}

func fitScreen(cfg *config.Config, screen tcell.Screen) (int, int) {
	cols, rows := screen.Size()
	return server.FitCanvas(cfg, cols, rows)
}
