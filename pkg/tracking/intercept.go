package tracking

import (
	"fmt"
	"math"

	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// Crossing is the point where the tracks of two vessels meet.
type Crossing struct {
	// Point is the intersection of the two great-circle tracks
	Point geo.Position2D

	// DistanceA and DistanceB are how far each vessel is from Point
	DistanceA magnitudes.Distance
	DistanceB magnitudes.Distance

	// TimeA and TimeB are how long each vessel takes to reach Point at its
	// current horizontal speed. A stopped vessel never arrives (+Inf seconds).
	TimeA magnitudes.Time
	TimeB magnitudes.Time
}

// Intercept intersects the tracks of a and b.
//
// The crossing is the one ahead of both vessels as described by
// geo.Intersection. Parallel or coincident tracks return
// geo.ErrInfiniteSolutions; tracks that meet only behind one of the vessels
// return geo.ErrAmbiguousSolution. Both are wrapped.
func Intercept(a, b kinematics.Snapshot) (Crossing, error) {
	pa := a.Position.Position2D
	pb := b.Position.Position2D

	point, err := geo.Intersection(pa, a.Course, pb, b.Course)
	if err != nil {
		return Crossing{}, fmt.Errorf("intercept %s/%s: %w", a.Name, b.Name, err)
	}

	c := Crossing{
		Point:     point,
		DistanceA: geo.Distance(pa, point),
		DistanceB: geo.Distance(pb, point),
	}
	c.TimeA = timeToCover(c.DistanceA, a.HorizontalSpeed)
	c.TimeB = timeToCover(c.DistanceB, b.HorizontalSpeed)
	return c, nil
}

func timeToCover(d magnitudes.Distance, s magnitudes.Speed) magnitudes.Time {
	ms := s.InMetersPerSecond()
	if ms <= 0 {
		return magnitudes.Seconds(math.Inf(1))
	}
	return magnitudes.Seconds(d.InMeters() / ms)
}

// Approach is the closest point of approach between two vessels holding
// course and speed.
type Approach struct {
	// Time until closest approach; zero when the vessels are already opening
	Time magnitudes.Time

	// Distance between the vessels at closest approach
	Distance magnitudes.Distance

	// Observer and Target are the predicted positions at closest approach
	Observer geo.Position2D
	Target   geo.Position2D
}

// ClosestApproach calculates the closest point of approach (CPA) of target
// relative to observer.
//
// The geometry is solved on a local flat plane centred on the observer,
// which is accurate for the ranges at which CPA matters (tens of nautical
// miles). The positions at CPA are then projected back onto the sphere by
// dead reckoning.
func ClosestApproach(observer, target kinematics.Snapshot) Approach {
	rng, brg := RangeAndBearing(observer, target)

	// Relative position in metres, east and north of the observer
	rx := rng.InMeters() * math.Sin(brg.InRadians())
	ry := rng.InMeters() * math.Cos(brg.InRadians())

	// Relative velocity of target with respect to observer
	ovx, ovy := velocity(observer)
	tvx, tvy := velocity(target)
	vx := tvx - ovx
	vy := tvy - ovy

	t := 0.0
	if v2 := vx*vx + vy*vy; v2 > 0 {
		t = math.Max(0, -(rx*vx+ry*vy)/v2)
	}

	dx := rx + vx*t
	dy := ry + vy*t

	after := magnitudes.Seconds(t)
	return Approach{
		Time:     after,
		Distance: magnitudes.Meters(math.Hypot(dx, dy)),
		Observer: PredictPosition(observer, after).Position.Position2D,
		Target:   PredictPosition(target, after).Position.Position2D,
	}
}

// velocity splits horizontal speed into east and north components in m/s.
func velocity(s kinematics.Snapshot) (float64, float64) {
	ms := s.HorizontalSpeed.InMetersPerSecond()
	rad := s.Course * geo.DegreesToRadians
	return ms * math.Sin(rad), ms * math.Cos(rad)
}
