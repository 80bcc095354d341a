// Package angle provides an immutable angle type measured in degrees.
//
// Every value is normalized into [0, 360). Arithmetic returns new values and
// never modifies the receiver, so the same Angle can be reused freely across
// projection computations.
package angle

import "math"

// Angle is a direction in degrees, normalized to [0, 360).
type Angle struct {
	deg float64
}

// New returns the normalized angle for deg degrees.
func New(deg float64) Angle {
	return Angle{deg: normalize(deg)}
}

// FromRadians converts a radian value.
func FromRadians(rad float64) Angle {
	return New(rad * 180 / math.Pi)
}

// Atan2 returns the direction of the vector (x, y).
func Atan2(y, x float64) Angle {
	return FromRadians(math.Atan2(y, x))
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod(-1e-18, 360) + 360 rounds to 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Deg returns the value in degrees.
func (a Angle) Deg() float64 { return a.deg }

// Rad returns the value in radians.
func (a Angle) Rad() float64 { return a.deg * math.Pi / 180 }

func (a Angle) Sin() float64 { return math.Sin(a.Rad()) }
func (a Angle) Cos() float64 { return math.Cos(a.Rad()) }
func (a Angle) Tan() float64 { return math.Tan(a.Rad()) }

// Add returns a + b.
func (a Angle) Add(b Angle) Angle { return New(a.deg + b.deg) }

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle { return New(a.deg - b.deg) }

// AddDeg returns a + deg.
func (a Angle) AddDeg(deg float64) Angle { return New(a.deg + deg) }

// SubDeg returns a - deg.
func (a Angle) SubDeg(deg float64) Angle { return New(a.deg - deg) }

// Half returns a/2 without wrapping, so Half of 360-epsilon stays below 180.
func (a Angle) Half() Angle { return Angle{deg: a.deg / 2} }
