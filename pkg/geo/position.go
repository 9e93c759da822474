// Package geo implements spherical-earth navigation: positions with
// range-normalizing setters and the geodesic calculations (distance, bearing,
// destination point, path intersection) used by the simulation.
//
// Formulas follow the usual spherical trigonometry references
// (https://www.movable-type.co.uk/scripts/latlong.html). All trigonometry runs
// in radians; the public API speaks degrees.
package geo

import (
	"fmt"
	"math"

	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusMeters is the mean Earth radius used by every formula.
	EarthRadiusMeters = 6371000.0
)

// Position2D is a point on the Earth's surface in decimal degrees.
//
// Latitude is kept in [-90, 90] and longitude in (-180, 180]. Values outside
// those ranges are folded back rather than clamped, so a position integrated
// across a pole or the antimeridian always stays valid.
//
// The zero value is 0° N, 0° E.
type Position2D struct {
	lat float64
	lon float64
}

// NewPosition2D returns a normalized position at lat, lon.
func NewPosition2D(lat, lon float64) Position2D {
	var p Position2D
	p.SetPosition(lat, lon)
	return p
}

// NewPosition2DRadians returns a normalized position from radians.
func NewPosition2DRadians(lat, lon float64) Position2D {
	var p Position2D
	p.SetPositionRadians(lat, lon)
	return p
}

// Lat returns the latitude in decimal degrees.
func (p Position2D) Lat() float64 { return p.lat }

// Lon returns the longitude in decimal degrees.
func (p Position2D) Lon() float64 { return p.lon }

// LatRadians returns the latitude in radians.
func (p Position2D) LatRadians() float64 { return p.lat * DegreesToRadians }

// LonRadians returns the longitude in radians.
func (p Position2D) LonRadians() float64 { return p.lon * DegreesToRadians }

// SetLat sets the latitude. Angles past a pole are reflected: 100 becomes 80,
// -100 becomes -80. The sign of the input is kept.
func (p *Position2D) SetLat(lat float64) {
	abs := latitudeFromCircularAngle(math.Abs(math.Mod(lat, 360)))
	if lat < 0 {
		abs = -abs
	}
	p.lat = abs
}

// SetLon sets the longitude, wrapping it into (-180, 180]: 190 becomes -170.
func (p *Position2D) SetLon(lon float64) {
	p.lon = NormalizeLongitude(lon)
}

func (p *Position2D) SetLatRadians(lat float64) { p.SetLat(lat * RadiansToDegrees) }
func (p *Position2D) SetLonRadians(lon float64) { p.SetLon(lon * RadiansToDegrees) }

// SetPosition sets both coordinates in decimal degrees.
func (p *Position2D) SetPosition(lat, lon float64) {
	p.SetLat(lat)
	p.SetLon(lon)
}

// SetPositionRadians sets both coordinates in radians.
func (p *Position2D) SetPositionRadians(lat, lon float64) {
	p.SetLatRadians(lat)
	p.SetLonRadians(lon)
}

// Move advances p along course for the given distance. See MovePosition.
func (p *Position2D) Move(course magnitudes.Bearing, distance magnitudes.Distance) {
	MovePosition(p, course, distance)
}

// MoveTowards steps p toward end. See MoveTowards.
func (p *Position2D) MoveTowards(end Position2D, distance magnitudes.Distance) {
	MoveTowards(p, end, distance)
}

// String formats the position as "lat,lon" with five decimals (about a meter).
func (p Position2D) String() string {
	return fmt.Sprintf("%.5f,%.5f", p.lat, p.lon)
}

// NormalizeLongitude wraps any longitude into (-180, 180].
func NormalizeLongitude(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l > 180 {
		l -= 360
	}
	if l <= -180 {
		l += 360
	}
	return l
}

// NormalizeLatitude reflects any latitude into [-90, 90] the same way SetLat does.
func NormalizeLatitude(lat float64) float64 {
	var p Position2D
	p.SetLat(lat)
	return p.lat
}

// latitudeFromCircularAngle maps an angle in [0, 360] measured from the
// equator onto the [0, 90] latitude it reaches.
func latitudeFromCircularAngle(deg float64) float64 {
	switch {
	case deg > 90 && deg <= 180:
		return 180 - deg
	case deg > 180 && deg <= 270:
		return deg - 180
	case deg > 270 && deg <= 360:
		return 360 - deg
	}
	return deg
}

// Position3D is a Position2D plus an altitude, positive above mean sea level
// and negative below it.
type Position3D struct {
	Position2D
	altitude magnitudes.Distance
}

// NewPosition3D returns a normalized position at lat, lon and altitude.
func NewPosition3D(lat, lon float64, altitude magnitudes.Distance) Position3D {
	return Position3D{Position2D: NewPosition2D(lat, lon), altitude: altitude}
}

// Altitude returns the altitude above mean sea level.
func (p Position3D) Altitude() magnitudes.Distance { return p.altitude }

// SetAltitude replaces the altitude.
func (p *Position3D) SetAltitude(altitude magnitudes.Distance) { p.altitude = altitude }

// Climb adds delta to the altitude; a negative delta descends.
func (p *Position3D) Climb(delta magnitudes.Distance) {
	p.altitude = p.altitude.Add(delta)
}

func (p Position3D) String() string {
	return fmt.Sprintf("%s,%.1fm", p.Position2D.String(), p.altitude.InMeters())
}
