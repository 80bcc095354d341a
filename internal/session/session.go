package session

import (
	"fmt"

	"bspview/internal/angle"
	"bspview/internal/collision"
	"bspview/internal/config"
	"bspview/internal/player"
	"bspview/internal/render"
	"bspview/internal/threading/monitoring"
	"bspview/internal/world"
)

// Session is one viewer walking through the levels.
type Session struct {
	cfg       *config.Config
	levels    *world.LevelManager
	canvas    render.Canvas
	monitor   *monitoring.PerformanceMonitor
	collision *collision.CollisionSystem
	view      *render.ViewRenderer
	autoMap   *render.AutoMap

	Player      *player.Player
	ShowAutoMap bool
	ShowStats   bool
}

// New creates a session on the current level of levels drawing to canvas.
// The session keeps its own current level; levels itself is not changed.
func New(cfg *config.Config, levels *world.LevelManager, canvas render.Canvas, colors *render.WallColors, monitor *monitoring.PerformanceMonitor) (*Session, error) {
	levels = levels.Clone()
	level := levels.Current()
	if level == nil {
		return nil, world.ErrNoLevels
	}

	p := player.New(0, 0, angle.New(0), angle.New(cfg.GetFOV()))
	p.EyeHeight = cfg.GetEyeHeight()

	s := &Session{
		cfg:         cfg,
		levels:      levels,
		canvas:      canvas,
		monitor:     monitor,
		collision:   collision.NewCollisionSystem(level),
		view:        render.NewViewRenderer(level, p, canvas, colors),
		autoMap:     render.NewAutoMap(level, canvas),
		Player:      p,
		ShowAutoMap: cfg.View.ShowAutoMap,
		ShowStats:   cfg.View.ShowStats,
	}
	s.placePlayer(level)
	return s, nil
}

// placePlayer puts the player at the configured start, the level's player 1
// start, or the middle of the level, in that order.
func (s *Session) placePlayer(level *world.Map) {
	p := s.Player
	switch {
	case s.cfg.Player.UseStart:
		p.X, p.Y = s.cfg.Player.StartX, s.cfg.Player.StartY
		p.Angle = angle.New(s.cfg.Player.StartAngle)
	case level.HasPlayerStart:
		p.X, p.Y = level.PlayerStart.X, level.PlayerStart.Y
		p.Angle = angle.New(level.PlayerStartAngle)
	default:
		p.X, p.Y = (level.XMin+level.XMax)/2, (level.YMin+level.YMax)/2
		p.Angle = angle.New(90)
	}
	p.Z = p.EyeHeight
	p.SetHeight(level)
}

// Level returns the level being viewed.
func (s *Session) Level() *world.Map {
	return s.levels.Current()
}

// Step applies one tick of movement.
func (s *Session) Step(c player.Controls) {
	s.Player.Apply(c, s.collision, s.cfg.GetMoveSpeed(), s.cfg.GetRotSpeed())
}

// CycleLevel switches delta levels forward or back and respawns the player.
func (s *Session) CycleLevel(delta int) error {
	level, err := s.levels.Cycle(delta)
	if err != nil {
		return err
	}
	s.view.SetLevel(level)
	s.autoMap.SetLevel(level)
	s.collision.SetLevel(level)
	s.placePlayer(level)
	return nil
}

// ToggleAutoMap shows or hides the overlay.
func (s *Session) ToggleAutoMap() {
	s.ShowAutoMap = !s.ShowAutoMap
}

// ToggleStats shows or hides the status text.
func (s *Session) ToggleStats() {
	s.ShowStats = !s.ShowStats
}

// Render draws the view and, when shown, the automap over it.
func (s *Session) Render() {
	timer := s.monitor.StartRender()
	s.view.Render()
	timer.EndRender(s.view.Stats())

	if s.ShowAutoMap {
		s.autoMap.SetScale(s.Level().FitScale(s.canvas.Width(), s.canvas.Height()))
		s.autoMap.Draw(s.Player)
	}
}

// Stats returns the counters of the last rendered frame.
func (s *Session) Stats() render.FrameStats {
	return s.view.Stats()
}

// StatusLine summarizes the position and the last frame.
func (s *Session) StatusLine() string {
	p := s.Player
	st := s.view.Stats()
	return fmt.Sprintf("%s  x:%.0f y:%.0f z:%.0f  %3.0f°  segs %d/%d  frags %d",
		s.Level().Name, p.X, p.Y, p.Z, p.Angle.Deg(), st.SegsInFOV, st.Segs, st.Fragments)
}

// Levels returns the names of the levels the session can switch between.
func (s *Session) Levels() []string {
	return s.levels.Available()
}
