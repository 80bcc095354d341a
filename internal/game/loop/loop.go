// Package loop runs a callback at a fixed rate until its context ends. It
// drives headless views; the desktop viewer is ticked by ebiten instead.
package loop

import (
	"context"
	"sync/atomic"
	"time"
)

// Loop is a pausable fixed-rate ticker.
type Loop struct {
	interval time.Duration
	running  atomic.Bool
}

// New creates a loop ticking every interval. It starts out paused.
func New(interval time.Duration) *Loop {
	return &Loop{interval: interval}
}

// Play resumes ticking.
func (l *Loop) Play() {
	l.running.Store(true)
}

// Pause stops tick from being called until Play. Time spent paused is not
// reported to the next tick.
func (l *Loop) Pause() {
	l.running.Store(false)
}

// Running reports whether the loop is playing.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Interval returns the tick interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Run plays the loop and calls tick with the time since the previous tick
// until ctx is done, then returns ctx.Err().
func (l *Loop) Run(ctx context.Context, tick func(dt time.Duration)) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.Play()
	previous := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.Pause()
			return ctx.Err()
		case now := <-ticker.C:
			if !l.Running() {
				previous = now
				continue
			}
			tick(now.Sub(previous))
			previous = now
		}
	}
}
