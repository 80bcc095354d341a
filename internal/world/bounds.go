package world

import "math"

// ComputeBounds sets XMin/YMin/XMax/YMax from the vertex list, falling back
// to linedef endpoints for levels built without a shared vertex table.
func (m *Map) ComputeBounds() {
	m.XMin, m.YMin = math.Inf(1), math.Inf(1)
	m.XMax, m.YMax = math.Inf(-1), math.Inf(-1)
	grow := func(v Vertex) {
		m.XMin = math.Min(m.XMin, v.X)
		m.YMin = math.Min(m.YMin, v.Y)
		m.XMax = math.Max(m.XMax, v.X)
		m.YMax = math.Max(m.YMax, v.Y)
	}
	for _, v := range m.Vertices {
		grow(v)
	}
	for i := range m.Linedefs {
		grow(m.Linedefs[i].Start)
		grow(m.Linedefs[i].End)
	}
	if math.IsInf(m.XMin, 1) {
		m.XMin, m.YMin, m.XMax, m.YMax = 0, 0, 0, 0
	}
}

// SetAutoMapScale sets AutoMapScale to FitScale(width, height).
func (m *Map) SetAutoMapScale(width, height int) {
	m.AutoMapScale = m.FitScale(width, height)
}

// FitScale returns the scale factor, in map units per overlay pixel, that
// fits the level into a width x height overlay.
func (m *Map) FitScale(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	sx := (m.XMax - m.XMin) / float64(width)
	sy := (m.YMax - m.YMin) / float64(height)
	if scale := math.Max(sx, sy); scale > 0 {
		return scale
	}
	return 1
}
