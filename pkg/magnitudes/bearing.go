package magnitudes

import "math"

// Bearing is a direction in degrees clockwise from true north, always kept
// in [0, 360).
type Bearing struct {
	degrees float64
}

// Degrees returns a bearing of deg degrees, normalized.
func Degrees(deg float64) Bearing {
	var b Bearing
	b.SetDegrees(deg)
	return b
}

// Radians returns a bearing of rad radians, normalized.
func Radians(rad float64) Bearing {
	var b Bearing
	b.SetRadians(rad)
	return b
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative number can round up to exactly 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}

func (b Bearing) InDegrees() float64 { return b.degrees }
func (b Bearing) InRadians() float64 { return b.degrees * math.Pi / 180.0 }

func (b *Bearing) SetDegrees(deg float64) { b.degrees = NormalizeDegrees(deg) }
func (b *Bearing) SetRadians(rad float64) { b.SetDegrees(rad * 180.0 / math.Pi) }

// Turn adds delta degrees (positive is clockwise) and re-normalizes.
func (b *Bearing) Turn(delta float64) { b.SetDegrees(b.degrees + delta) }

// TurnPort turns counter-clockwise by deg degrees.
func (b *Bearing) TurnPort(deg float64) { b.Turn(-deg) }

// TurnStarboard turns clockwise by deg degrees.
func (b *Bearing) TurnStarboard(deg float64) { b.Turn(deg) }

// Reciprocal returns the opposite bearing.
func (b Bearing) Reciprocal() Bearing { return Degrees(b.degrees + 180) }
