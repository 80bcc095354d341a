// Package server serves the first-person view over SSH: every connection
// walks the levels on its own and sees the view as half-block ANSI art.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gliderlabs/ssh"

	"bspview/internal/config"
	"bspview/internal/game/loop"
	"bspview/internal/mathutil"
	"bspview/internal/player"
	"bspview/internal/render"
	"bspview/internal/render/term"
	"bspview/internal/session"
	"bspview/internal/threading/core"
	"bspview/internal/threading/monitoring"
	"bspview/internal/world"
)

const (
	minCanvasWidth  = 16
	minCanvasHeight = 8
	statusRows      = 1
)

// SSHServer wraps the SSH listener and the per-connection views.
type SSHServer struct {
	cfg      *config.Config
	levels   *world.LevelManager
	colors   *render.WallColors
	monitor  *monitoring.PerformanceMonitor
	sessions *core.SafeCounter
	addr     string
	hostKey  string
}

// NewSSHServer creates a new SSH server for the loaded levels. All
// connections share the wall colours and the monitor.
func NewSSHServer(cfg *config.Config, levels *world.LevelManager, monitor *monitoring.PerformanceMonitor) *SSHServer {
	return &SSHServer{
		cfg:      cfg,
		levels:   levels,
		colors:   session.NewWallColors(cfg),
		monitor:  monitor,
		sessions: core.NewSafeCounter(),
		addr:     cfg.Server.Address,
		hostKey:  cfg.Server.HostKeyPath,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

// ActiveSessions returns the number of connected viewers.
func (s *SSHServer) ActiveSessions() int {
	return int(s.sessions.Get())
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	if !s.sessions.TryAcquire(int64(s.cfg.Server.MaxSessions)) {
		fmt.Fprintln(sess, "Server full, try again later.")
		return
	}
	defer s.sessions.Decrement()

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}
	log.Printf("Viewer connected: %s (%s)", username, sess.RemoteAddr())
	s.monitor.SessionStarted()
	defer func() {
		s.monitor.SessionEnded()
		log.Printf("Viewer disconnected: %s", username)
	}()

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	canvas := term.New(s.canvasSize(termW, termH))
	view, err := session.New(s.cfg, s.levels, canvas, s.colors, s.monitor)
	if err != nil {
		fmt.Fprintf(sess, "Error: %v\n", err)
		return
	}

	// Setup terminal
	io.WriteString(sess, term.EnableAltScreen())
	io.WriteString(sess, term.HideCursor())
	io.WriteString(sess, term.ClearScreen())
	defer func() {
		io.WriteString(sess, term.ShowCursor())
		io.WriteString(sess, term.DisableAltScreen())
	}()

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()
	actions := make(chan Action, 64)

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				cancel()
				return
			}
			for _, action := range parseInput(buf[:n]) {
				if action == ActionQuit {
					cancel()
					return
				}
				select {
				case actions <- action:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	lastW, lastH := termW, termH
	frameLoop := loop.New(s.cfg.GetTickInterval())
	err = frameLoop.Run(ctx, func(time.Duration) {
		frameTimer := s.monitor.StartFrame()
		defer frameTimer.EndFrame()

		ApplyActions(view, actions)

		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()
		if w != lastW || h != lastH {
			canvas.Resize(s.canvasSize(w, h))
			io.WriteString(sess, term.ClearScreen())
			lastW, lastH = w, h
		}

		view.Render()
		io.WriteString(sess, canvas.Frame()+statusLine(view, canvas.Rows()+1, w))
	})
	if unexpectedStop(err) {
		log.Printf("Warning: frame loop for %s stopped: %v", username, err)
	}
}

// unexpectedStop reports whether a frame loop ended for any reason other
// than its session closing.
func unexpectedStop(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// ApplyActions drains the queued key presses into one tick of movement and
// the toggles. Terminals send no key-up events, so a movement key counts
// once per tick however often it repeated.
func ApplyActions(view *session.Session, actions <-chan Action) {
	var controls player.Controls
	for {
		select {
		case a := <-actions:
			if addMovement(&controls, a) {
				continue
			}
			switch a {
			case ActionToggleMap:
				view.ToggleAutoMap()
			case ActionToggleStats:
				view.ToggleStats()
			case ActionNextLevel, ActionPrevLevel:
				delta := 1
				if a == ActionPrevLevel {
					delta = -1
				}
				if err := view.CycleLevel(delta); err != nil {
					log.Printf("Warning: failed to switch level: %v", err)
				}
			}
		default:
			view.Step(controls)
			return
		}
	}
}

func (s *SSHServer) canvasSize(cols, rows int) (int, int) {
	return FitCanvas(s.cfg, cols, rows)
}

// FitCanvas fits a half-block canvas to a cols x rows terminal, leaving
// room for the status line and capped at the configured canvas size.
func FitCanvas(cfg *config.Config, cols, rows int) (int, int) {
	w := mathutil.IntClamp(cols, minCanvasWidth, mathutil.IntMax(cfg.Server.CanvasWidth, minCanvasWidth))
	h := mathutil.IntClamp((rows-statusRows)*2, minCanvasHeight, mathutil.IntMax(cfg.Server.CanvasHeight, minCanvasHeight))
	return w, h
}

// statusLine renders the session's status text on row, cut to cols
// characters, or blanks the row when stats are hidden.
func statusLine(view *session.Session, row, cols int) string {
	line := term.MoveTo(row, 1) + term.ClearLine()
	if !view.ShowStats {
		return line
	}
	text := []rune(view.StatusLine())
	if cols > 0 && len(text) > cols {
		text = text[:cols]
	}
	return line + string(text)
}
