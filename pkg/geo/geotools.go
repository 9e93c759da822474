package geo

import (
	"math"

	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// parallelEpsilon is how close to zero a bearing-offset sine must be for two
// paths to count as running along the same great circle.
const parallelEpsilon = 1e-12

// antipodalEpsilon is how close to π radians two start points must be to
// count as antipodal. It is loose because asin loses precision near 1.
const antipodalEpsilon = 1e-6

// LongitudeDifference returns the eastward span in degrees from left to right,
// in [0, 360). Crossing the antimeridian is handled: from 179 to -179 is 2.
func LongitudeDifference(left, right Position2D) float64 {
	l := left.Lon()
	r := right.Lon()
	if l <= r {
		return r - l
	}
	return (180 - l) + (180 + r)
}

// LatitudeDifference returns the degrees of latitude between upper and lower.
// When the two points are on opposite sides of the globe (longitudes 180° or
// more apart) the shorter way is over the pole, so the latitudes are summed.
func LatitudeDifference(upper, lower Position2D) float64 {
	if math.Abs(upper.Lon()-lower.Lon()) < 180.0 {
		return math.Abs(upper.Lat() - lower.Lat())
	}
	return math.Abs(upper.Lat() + lower.Lat())
}

// Distance calculates the great-circle distance between two points using the
// haversine formula.
func Distance(from, to Position2D) magnitudes.Distance {
	phi1 := from.LatRadians()
	phi2 := to.LatRadians()
	dPhi := (to.Lat() - from.Lat()) * DegreesToRadians
	dLambda := (to.Lon() - from.Lon()) * DegreesToRadians

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// Near-antipodal pairs can round a past 1
	a = clampRange(a, 0, 1)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return magnitudes.Meters(EarthRadiusMeters * c)
}

// Bearing calculates the initial bearing (forward azimuth) from one point to
// another along the great circle.
// Returns degrees in [0, 360), where 0 = North, 90 = East.
func Bearing(from, to Position2D) float64 {
	return math.Mod(forwardAzimuth(from, to)*RadiansToDegrees+360, 360)
}

// InitialBearing is Bearing wrapped as a magnitude.
func InitialBearing(from, to Position2D) magnitudes.Bearing {
	return magnitudes.Degrees(Bearing(from, to))
}

// forwardAzimuth returns the raw initial bearing in radians, in (-π, π].
func forwardAzimuth(from, to Position2D) float64 {
	phi1 := from.LatRadians()
	lambda1 := from.LonRadians()
	phi2 := to.LatRadians()
	lambda2 := to.LonRadians()

	y := math.Sin(lambda2-lambda1) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(lambda2-lambda1)
	return math.Atan2(y, x)
}

// MovePosition solves the direct problem: it moves start in place along the
// great circle leaving at bearing for the given distance. The result goes
// through the normalizing setters.
func MovePosition(start *Position2D, bearing magnitudes.Bearing, distance magnitudes.Distance) {
	phi, lambda := destination(start.LatRadians(), start.LonRadians(), bearing.InRadians(), distance.InMeters()/EarthRadiusMeters)
	start.SetPositionRadians(phi, lambda)
}

// MoveTowards moves start in place by distance along the great circle toward
// end. It does not stop at end: a distance longer than the separation carries
// the position past the target.
func MoveTowards(start *Position2D, end Position2D, distance magnitudes.Distance) {
	theta := forwardAzimuth(*start, end)
	phi, lambda := destination(start.LatRadians(), start.LonRadians(), theta, distance.InMeters()/EarthRadiusMeters)
	start.SetPositionRadians(phi, lambda)
}

// Destination is the pure form of MovePosition.
func Destination(start Position2D, bearing magnitudes.Bearing, distance magnitudes.Distance) Position2D {
	p := start
	MovePosition(&p, bearing, distance)
	return p
}

// destination applies the spherical direct-solution formulas.
// delta is the angular distance (distance / earth radius).
func destination(phi, lambda, theta, delta float64) (float64, float64) {
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinDelta, cosDelta := math.Sin(delta), math.Cos(delta)

	phi2 := math.Asin(sinPhi*cosDelta + cosPhi*sinDelta*math.Cos(theta))
	lambda2 := lambda + math.Atan2(math.Sin(theta)*sinDelta*cosPhi, cosDelta-sinPhi*math.Sin(phi2))
	return phi2, lambda2
}

// Intersection returns where two great-circle paths cross, each path given by
// a start point and an initial bearing in degrees. Inputs are not modified.
//
// Returns ErrInfiniteSolutions when both paths run along the same great
// circle and ErrAmbiguousSolution when they diverge from each other or start
// at antipodal points, where every pair of paths meets twice. When both paths
// start at the same point, that point is returned.
func Intersection(p1 Position2D, bearing1 float64, p2 Position2D, bearing2 float64) (Position2D, error) {
	phi1 := p1.LatRadians()
	lambda1 := p1.LonRadians()
	theta13 := bearing1 * DegreesToRadians

	phi2 := p2.LatRadians()
	lambda2 := p2.LonRadians()
	theta23 := bearing2 * DegreesToRadians

	dPhi := phi2 - phi1
	dLambda := lambda2 - lambda1

	// Angular distance p1-p2
	delta12 := 2 * math.Asin(math.Sqrt(clampRange(
		math.Pow(math.Sin(dPhi/2), 2)+math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2),
		0, 1,
	)))
	if delta12 == 0 {
		return p1, nil
	}
	if math.Pi-delta12 < antipodalEpsilon {
		return Position2D{}, ErrAmbiguousSolution
	}

	// Initial / final bearings between p1 and p2
	thetaA := math.Acos(clampUnit((math.Sin(phi2) - math.Sin(phi1)*math.Cos(delta12)) / (math.Sin(delta12) * math.Cos(phi1))))
	thetaB := math.Acos(clampUnit((math.Sin(phi1) - math.Sin(phi2)*math.Cos(delta12)) / (math.Sin(delta12) * math.Cos(phi2))))

	var theta12, theta21 float64
	if math.Sin(lambda2-lambda1) > 0 {
		theta12 = thetaA
		theta21 = 2*math.Pi - thetaB
	} else {
		theta12 = 2*math.Pi - thetaA
		theta21 = thetaB
	}

	alpha1 := theta13 - theta12 // angle p2-p1-p3
	alpha2 := theta21 - theta23 // angle p1-p2-p3
	sinAlpha1 := math.Sin(alpha1)
	sinAlpha2 := math.Sin(alpha2)

	if math.Abs(sinAlpha1) < parallelEpsilon && math.Abs(sinAlpha2) < parallelEpsilon {
		return Position2D{}, ErrInfiniteSolutions
	}
	if sinAlpha1*sinAlpha2 < 0 {
		return Position2D{}, ErrAmbiguousSolution
	}

	// Angle p1-p3-p2
	alpha3 := math.Acos(clampUnit(-math.Cos(alpha1)*math.Cos(alpha2) + sinAlpha1*sinAlpha2*math.Cos(delta12)))

	// Angular distance p1-p3
	delta13 := math.Atan2(math.Sin(delta12)*sinAlpha1*sinAlpha2, math.Cos(alpha2)+math.Cos(alpha1)*math.Cos(alpha3))

	phi3, lambda3 := destination(phi1, lambda1, theta13, delta13)
	if math.IsNaN(phi3) || math.IsNaN(lambda3) {
		return Position2D{}, ErrAmbiguousSolution
	}
	return NewPosition2DRadians(phi3, lambda3), nil
}

// clampUnit guards acos against arguments a rounding error pushed past ±1.
func clampUnit(x float64) float64 {
	return clampRange(x, -1, 1)
}

func clampRange(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
