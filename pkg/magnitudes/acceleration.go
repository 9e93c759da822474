package magnitudes

import "math"

// Acceleration is a change of speed per unit time, stored in m/s².
type Acceleration struct {
	mps2 float64
}

// MetersPerSecondSquared returns an acceleration of v m/s².
func MetersPerSecondSquared(v float64) Acceleration { return Acceleration{mps2: v} }

// SpeedPer returns the acceleration that gains s every t.
// A zero interval yields zero.
func SpeedPer(s Speed, t Time) Acceleration {
	if t.InSeconds() == 0 {
		return Acceleration{}
	}
	return Acceleration{mps2: s.InMetersPerSecond() / t.InSeconds()}
}

// FromForce returns the acceleration a force in newtons imparts to m.
// A zero mass yields zero.
func FromForce(m Mass, newtons float64) Acceleration {
	if m.InKilograms() == 0 {
		return Acceleration{}
	}
	return Acceleration{mps2: newtons / m.InKilograms()}
}

func (a Acceleration) InMetersPerSecondSquared() float64 { return a.mps2 }

// InKnotsPerSecond is handy for naval performance tables.
func (a Acceleration) InKnotsPerSecond() float64 { return a.mps2 / MetersPerSecondPerKnot }

func (a *Acceleration) SetMetersPerSecondSquared(v float64) { a.mps2 = v }

// Over returns the change of speed accumulated during t.
func (a Acceleration) Over(t Time) Speed {
	return MetersPerSecond(a.mps2 * t.InSeconds())
}

// Scale returns a multiplied by f.
func (a Acceleration) Scale(f float64) Acceleration {
	return Acceleration{mps2: a.mps2 * f}
}

// DragModel is the quadratic hull drag F = ½·ρ·v²·A·Cd.
type DragModel struct {
	// Density of the medium in kg/m³ (seawater is about 1025).
	Density float64
	// CrossSection is the wetted frontal area in m².
	CrossSection float64
	// Coefficient is the dimensionless drag coefficient.
	Coefficient float64
}

// Force returns the drag force in newtons at speed s.
func (d DragModel) Force(s Speed) float64 {
	v := s.InMetersPerSecond()
	return 0.5 * d.Density * v * v * d.CrossSection * d.Coefficient
}

// Deceleration returns the drag deceleration of mass m at speed s.
func (d DragModel) Deceleration(m Mass, s Speed) Acceleration {
	return FromForce(m, d.Force(s))
}

// TerminalSpeed returns the speed at which a constant thrust in newtons is
// balanced by drag.
func (d DragModel) TerminalSpeed(thrustNewtons float64) Speed {
	k := 0.5 * d.Density * d.CrossSection * d.Coefficient
	if k <= 0 || thrustNewtons <= 0 {
		return Speed{}
	}
	return MetersPerSecond(math.Sqrt(thrustNewtons / k))
}
