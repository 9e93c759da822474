// Package magnitudes provides unit-safe physical quantities used by the
// navigation and kinematics packages.
//
// Every magnitude stores a single canonical value (meters, seconds, meters per
// second, degrees, kilograms) and converts on access, so a value set in one
// unit and read back in another is always a linear scaling of the same number.
package magnitudes

// Conversion factors to the canonical SI unit.
const (
	MetersPerKilometer    = 1000.0
	MetersPerNauticalMile = 1852.0
	MetersPerYard         = 0.9144
	MetersPerFoot         = 0.3048
)

// DistanceUnit selects the unit of a distance value.
type DistanceUnit int

const (
	UnitMeters DistanceUnit = iota
	UnitKilometers
	UnitNauticalMiles
	UnitYards
	UnitFeet
)

// Distance is a length stored in meters.
type Distance struct {
	meters float64
}

// Meters returns a distance of m meters.
func Meters(m float64) Distance { return Distance{meters: m} }

// Kilometers returns a distance of km kilometers.
func Kilometers(km float64) Distance { return Distance{meters: km * MetersPerKilometer} }

// NauticalMiles returns a distance of nm nautical miles.
func NauticalMiles(nm float64) Distance { return Distance{meters: nm * MetersPerNauticalMile} }

// Yards returns a distance of yd yards.
func Yards(yd float64) Distance { return Distance{meters: yd * MetersPerYard} }

// Feet returns a distance of ft feet.
func Feet(ft float64) Distance { return Distance{meters: ft * MetersPerFoot} }

// NewDistance builds a distance from a value expressed in unit.
func NewDistance(value float64, unit DistanceUnit) Distance {
	var d Distance
	switch unit {
	case UnitKilometers:
		d.SetKilometers(value)
	case UnitNauticalMiles:
		d.SetNauticalMiles(value)
	case UnitYards:
		d.SetYards(value)
	case UnitFeet:
		d.SetFeet(value)
	default:
		d.SetMeters(value)
	}
	return d
}

func (d Distance) InMeters() float64        { return d.meters }
func (d Distance) InKilometers() float64    { return d.meters / MetersPerKilometer }
func (d Distance) InNauticalMiles() float64 { return d.meters / MetersPerNauticalMile }
func (d Distance) InYards() float64         { return d.meters / MetersPerYard }
func (d Distance) InFeet() float64          { return d.meters / MetersPerFoot }

func (d *Distance) SetMeters(m float64)         { d.meters = m }
func (d *Distance) SetKilometers(km float64)    { d.meters = km * MetersPerKilometer }
func (d *Distance) SetNauticalMiles(nm float64) { d.meters = nm * MetersPerNauticalMile }
func (d *Distance) SetYards(yd float64)         { d.meters = yd * MetersPerYard }
func (d *Distance) SetFeet(ft float64)          { d.meters = ft * MetersPerFoot }

// Add returns d + other.
func (d Distance) Add(other Distance) Distance {
	return Distance{meters: d.meters + other.meters}
}

// Scale returns d multiplied by f.
func (d Distance) Scale(f float64) Distance {
	return Distance{meters: d.meters * f}
}
