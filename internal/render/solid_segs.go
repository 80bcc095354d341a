package render

import "math"

// SolidSegmentRange is an inclusive run of screen columns already covered
// by an opaque wall this frame.
type SolidSegmentRange struct {
	XStart, XEnd int
}

// SolidSegs tracks the covered columns of the current frame. Ranges stay
// sorted by XStart, never overlap and never touch, and are bounded by two
// sentinels covering everything left of column 0 and from Width on. A
// sentinel may grow by absorbing neighbouring coverage but its columns are
// never uncovered.
type SolidSegs struct {
	width  int
	ranges []SolidSegmentRange
}

// NewSolidSegs returns a cleared tracker for a width-column screen.
func NewSolidSegs(width int) *SolidSegs {
	s := &SolidSegs{ranges: make([]SolidSegmentRange, 0, 32)}
	s.Reset(width)
	return s
}

// Reset clears all coverage except the two sentinels.
func (s *SolidSegs) Reset(width int) {
	s.width = width
	s.ranges = append(s.ranges[:0],
		SolidSegmentRange{XStart: math.MinInt, XEnd: -1},
		SolidSegmentRange{XStart: width, XEnd: math.MaxInt},
	)
}

// Ranges returns a copy of the current ranges, sentinels included.
func (s *SolidSegs) Ranges() []SolidSegmentRange {
	out := make([]SolidSegmentRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len returns the number of ranges, sentinels included.
func (s *SolidSegs) Len() int {
	return len(s.ranges)
}

// Covered reports whether column x is covered.
func (s *SolidSegs) Covered(x int) bool {
	for _, r := range s.ranges {
		if x < r.XStart {
			return false
		}
		if x <= r.XEnd {
			return true
		}
	}
	return false
}

// Full reports whether every column of the screen is covered.
func (s *SolidSegs) Full() bool {
	return len(s.ranges) == 1
}

// Clip adds the opaque wall [xStart, xEnd] and calls emit once for every
// sub-range of it that was not covered before, left to right.
func (s *SolidSegs) Clip(xStart, xEnd int, emit func(x1, x2 int)) {
	r := s.ranges

	// first range touching or overlapping the wall from the left; the right
	// sentinel stops the scan
	found := 0
	for found < len(r)-1 && r[found].XEnd < xStart-1 {
		found++
	}

	if xStart < r[found].XStart {
		if xEnd < r[found].XStart-1 {
			emit(xStart, xEnd)
			s.insertAt(found, SolidSegmentRange{XStart: xStart, XEnd: xEnd})
			return
		}
		emit(xStart, r[found].XStart-1)
		r[found].XStart = xStart
	}

	if xEnd <= r[found].XEnd {
		return
	}

	next := found
	for next+1 < len(r) && xEnd >= r[next+1].XStart-1 {
		emit(r[next].XEnd+1, r[next+1].XStart-1)
		next++
		if xEnd <= r[next].XEnd {
			r[found].XEnd = r[next].XEnd
			s.deleteRange(found+1, next+1)
			return
		}
	}

	emit(r[next].XEnd+1, xEnd)
	r[found].XEnd = xEnd
	s.deleteRange(found+1, next+1)
}

func (s *SolidSegs) insertAt(i int, r SolidSegmentRange) {
	s.ranges = append(s.ranges, SolidSegmentRange{})
	copy(s.ranges[i+1:], s.ranges[i:])
	s.ranges[i] = r
}

// deleteRange removes ranges[from:to].
func (s *SolidSegs) deleteRange(from, to int) {
	if from >= to {
		return
	}
	s.ranges = append(s.ranges[:from], s.ranges[to:]...)
}
