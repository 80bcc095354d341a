package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"bspview/internal/render"
)

// smoothing is the weight of the newest sample in the moving averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame timing, BSP render timing and the
// per-frame counters reported by the view renderer. Safe for concurrent
// use; the SSH server shares one between sessions.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds
	renderTime atomic.Uint64 // nanoseconds spent in the view renderer

	// Last frame's BSP counters
	subsectors atomic.Int64
	segs       atomic.Int64
	segsInFOV  atomic.Int64
	fragments  atomic.Int64
	ranges     atomic.Int64

	activeSessions atomic.Int32

	mutex         sync.RWMutex
	avgFrameTime  float64
	avgRenderTime float64
	startTime     time.Time

	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer measures one whole frame.
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	ft.monitor.frameCount.Add(1)

	if ft.monitor.enableDetailed {
		ft.monitor.mutex.Lock()
		ft.monitor.avgFrameTime = average(ft.monitor.avgFrameTime, float64(frameTime.Nanoseconds()))
		ft.monitor.mutex.Unlock()
	}
}

// RenderTimer measures one call into the view renderer.
type RenderTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRender begins render timing
func (pm *PerformanceMonitor) StartRender() *RenderTimer {
	return &RenderTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRender completes render timing and records the frame's counters.
func (rt *RenderTimer) EndRender(stats render.FrameStats) {
	renderTime := time.Since(rt.startTime)
	rt.monitor.renderTime.Store(uint64(renderTime.Nanoseconds()))
	rt.monitor.RecordFrameStats(stats)

	if rt.monitor.enableDetailed {
		rt.monitor.mutex.Lock()
		rt.monitor.avgRenderTime = average(rt.monitor.avgRenderTime, float64(renderTime.Nanoseconds()))
		rt.monitor.mutex.Unlock()
	}
}

func average(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + smoothing*(sample-avg)
}

// RecordFrameStats stores the counters of the last rendered frame.
func (pm *PerformanceMonitor) RecordFrameStats(stats render.FrameStats) {
	pm.subsectors.Store(int64(stats.Subsectors))
	pm.segs.Store(int64(stats.Segs))
	pm.segsInFOV.Store(int64(stats.SegsInFOV))
	pm.fragments.Store(int64(stats.Fragments))
	pm.ranges.Store(int64(stats.SolidRanges))
}

// SessionStarted counts a connected viewer.
func (pm *PerformanceMonitor) SessionStarted() {
	pm.activeSessions.Add(1)
}

// SessionEnded counts a disconnected viewer.
func (pm *PerformanceMonitor) SessionEnded() {
	pm.activeSessions.Add(-1)
}

// RenderMetrics is a snapshot of the monitor.
type RenderMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RenderTime      time.Duration
	Subsectors      int
	Segs            int
	SegsInFOV       int
	Fragments       int
	SolidRanges     int
	ActiveSessions  int
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() RenderMetrics {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	pm.mutex.RUnlock()

	fps := 0.0
	if avgFrame > 0 {
		fps = float64(time.Second) / avgFrame
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RenderMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(pm.frameTime.Load()),
		RenderTime:      time.Duration(pm.renderTime.Load()),
		Subsectors:      int(pm.subsectors.Load()),
		Segs:            int(pm.segs.Load()),
		SegsInFOV:       int(pm.segsInFOV.Load()),
		Fragments:       int(pm.fragments.Load()),
		SolidRanges:     int(pm.ranges.Load()),
		ActiveSessions:  int(pm.activeSessions.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":     time.Since(pm.startTime).Seconds(),
		"frame_count":        pm.frameCount.Load(),
		"avg_frame_time_ms":  pm.avgFrameTime / 1e6,
		"avg_render_time_ms": pm.avgRenderTime / 1e6,
		"subsectors":         pm.subsectors.Load(),
		"segs":               pm.segs.Load(),
		"segs_in_fov":        pm.segsInFOV.Load(),
		"fragments":          pm.fragments.Load(),
		"solid_ranges":       pm.ranges.Load(),
		"active_sessions":    pm.activeSessions.Load(),
		"memory_alloc_mb":    memStats.Alloc / 1024 / 1024,
		"gc_cycles":          memStats.NumGC,
		"goroutines":         runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports when the average frame rate drops below
// minFPS or a single render pass exceeds maxRender.
func (pm *PerformanceMonitor) CheckPerformanceAlerts(minFPS float64, maxRender time.Duration) []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	m := pm.GetCurrentMetrics()
	if m.FramesPerSecond > 0 && m.FramesPerSecond < minFPS {
		alerts = append(alerts, PerformanceAlert{
			Type:      "low_fps",
			Message:   "Frame rate is below target",
			Value:     m.FramesPerSecond,
			Threshold: minFPS,
			Timestamp: now,
		})
	}
	if m.RenderTime > maxRender {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_render",
			Message:   "BSP render pass is too slow",
			Value:     float64(m.RenderTime) / 1e6,
			Threshold: float64(maxRender) / 1e6,
			Timestamp: now,
		})
	}
	return alerts
}

// EnableDetailedLogging enables/disables the moving averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.renderTime.Store(0)
	pm.RecordFrameStats(render.FrameStats{})

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRenderTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
