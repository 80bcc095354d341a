package world

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// ErrNoLevels is returned when a manager has nothing to switch to.
var ErrNoLevels = errors.New("no levels loaded")

// LoadFunc loads one level by name.
type LoadFunc func(name string) (*Map, error)

// LevelManager keeps several loaded levels and tracks the current one.
type LevelManager struct {
	CurrentLevel string
	LoadedLevels map[string]*Map
	order        []string
}

// GlobalLevelManager is the manager used by the desktop viewer.
var GlobalLevelManager *LevelManager

// NewLevelManager creates an empty manager.
func NewLevelManager() *LevelManager {
	return &LevelManager{
		LoadedLevels: make(map[string]*Map),
	}
}

// Add registers an already built level. The first level added becomes
// current.
func (lm *LevelManager) Add(m *Map) {
	if _, exists := lm.LoadedLevels[m.Name]; !exists {
		lm.order = append(lm.order, m.Name)
	}
	lm.LoadedLevels[m.Name] = m
	if lm.CurrentLevel == "" {
		lm.CurrentLevel = m.Name
	}
}

// LoadAll loads every named level with load. Levels that fail to load are
// logged and skipped; an error is returned only when none loaded.
func (lm *LevelManager) LoadAll(load LoadFunc, names ...string) error {
	for _, name := range names {
		m, err := load(name)
		if err != nil {
			log.Printf("Warning: failed to load level %s: %v", name, err)
			continue
		}
		lm.Add(m)
		log.Printf("Level loaded: %s (%d segs, %d subsectors, %d nodes)",
			name, len(m.Segs), len(m.Subsectors), len(m.Nodes))
	}
	if len(lm.LoadedLevels) == 0 {
		return ErrNoLevels
	}
	return nil
}

// Current returns the active level, or nil when nothing is loaded.
func (lm *LevelManager) Current() *Map {
	return lm.LoadedLevels[lm.CurrentLevel]
}

// SwitchTo makes name the current level.
func (lm *LevelManager) SwitchTo(name string) error {
	if _, exists := lm.LoadedLevels[name]; !exists {
		return fmt.Errorf("level not loaded: %s", name)
	}
	lm.CurrentLevel = name
	return nil
}

// Cycle moves delta levels forward (or back) in load order, wrapping
// around, and returns the new current level.
func (lm *LevelManager) Cycle(delta int) (*Map, error) {
	n := len(lm.order)
	if n == 0 {
		return nil, ErrNoLevels
	}
	i := 0
	for j, name := range lm.order {
		if name == lm.CurrentLevel {
			i = j
			break
		}
	}
	i = ((i+delta)%n + n) % n
	lm.CurrentLevel = lm.order[i]
	return lm.Current(), nil
}

// Available returns the loaded level names, sorted.
func (lm *LevelManager) Available() []string {
	names := make([]string, 0, len(lm.LoadedLevels))
	for name := range lm.LoadedLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLoaded reports whether name has been loaded.
func (lm *LevelManager) IsLoaded(name string) bool {
	_, exists := lm.LoadedLevels[name]
	return exists
}

// Clone returns a manager over the same levels with its own current level.
// Levels are read-only once loaded, so clones can be used from different
// goroutines.
func (lm *LevelManager) Clone() *LevelManager {
	clone := &LevelManager{
		CurrentLevel: lm.CurrentLevel,
		LoadedLevels: make(map[string]*Map, len(lm.LoadedLevels)),
		order:        append([]string(nil), lm.order...),
	}
	for name, m := range lm.LoadedLevels {
		clone.LoadedLevels[name] = m
	}
	return clone
}
