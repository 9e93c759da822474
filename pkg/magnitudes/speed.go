package magnitudes

const (
	// MetersPerSecondPerKnot is one nautical mile per hour in meters per second.
	MetersPerSecondPerKnot = MetersPerNauticalMile / SecondsPerHour

	// MetersPerSecondPerKmh is one kilometer per hour in meters per second.
	MetersPerSecondPerKmh = MetersPerKilometer / SecondsPerHour

	// MetersPerSecondPerFpm is one foot per minute in meters per second.
	MetersPerSecondPerFpm = MetersPerFoot / SecondsPerMinute
)

// SpeedUnit selects the unit of a speed value.
type SpeedUnit int

const (
	UnitMetersPerSecond SpeedUnit = iota
	UnitKilometersPerHour
	UnitKnots
	UnitFeetPerMinute
)

// Speed is a rate of travel stored in meters per second.
type Speed struct {
	mps float64
}

// MetersPerSecond returns a speed of v m/s.
func MetersPerSecond(v float64) Speed { return Speed{mps: v} }

// KilometersPerHour returns a speed of v km/h.
func KilometersPerHour(v float64) Speed { return Speed{mps: v * MetersPerSecondPerKmh} }

// Knots returns a speed of v knots.
func Knots(v float64) Speed { return Speed{mps: v * MetersPerSecondPerKnot} }

// FeetPerMinute returns a speed of v ft/min.
func FeetPerMinute(v float64) Speed { return Speed{mps: v * MetersPerSecondPerFpm} }

// NewSpeed builds a speed from a value expressed in unit.
func NewSpeed(value float64, unit SpeedUnit) Speed {
	switch unit {
	case UnitKilometersPerHour:
		return KilometersPerHour(value)
	case UnitKnots:
		return Knots(value)
	case UnitFeetPerMinute:
		return FeetPerMinute(value)
	default:
		return MetersPerSecond(value)
	}
}

// SpeedOver returns the speed that covers d in t. A zero interval yields zero.
func SpeedOver(d Distance, t Time) Speed {
	if t.InSeconds() == 0 {
		return Speed{}
	}
	return Speed{mps: d.InMeters() / t.InSeconds()}
}

func (s Speed) InMetersPerSecond() float64   { return s.mps }
func (s Speed) InKilometersPerHour() float64 { return s.mps / MetersPerSecondPerKmh }
func (s Speed) InKnots() float64             { return s.mps / MetersPerSecondPerKnot }
func (s Speed) InFeetPerMinute() float64     { return s.mps / MetersPerSecondPerFpm }

func (s *Speed) SetMetersPerSecond(v float64)   { s.mps = v }
func (s *Speed) SetKilometersPerHour(v float64) { s.mps = v * MetersPerSecondPerKmh }
func (s *Speed) SetKnots(v float64)             { s.mps = v * MetersPerSecondPerKnot }
func (s *Speed) SetFeetPerMinute(v float64)     { s.mps = v * MetersPerSecondPerFpm }

// Over returns the distance covered at s during t.
func (s Speed) Over(t Time) Distance {
	return Meters(s.mps * t.InSeconds())
}
