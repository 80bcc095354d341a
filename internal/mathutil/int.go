package mathutil

import "math"

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IntClamp limits x to [lo, hi] (search: int-math).
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// RoundInt rounds half away from zero and converts to int.
func RoundInt(f float64) int {
	return int(math.Round(f))
}

// ClampFloat limits f to [lo, hi]; NaN maps to lo.
func ClampFloat(f, lo, hi float64) float64 {
	if f != f || f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
