package api

import (
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/tracking"
)

// Vessel is the JSON form of a vehicle's state. Speeds are in knots except
// the vertical speed, which is in metres per second.
type Vessel struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AltitudeM float64 `json:"altitude_m"`

	CourseDeg       float64 `json:"course_deg"`
	DiveAngleDeg    float64 `json:"dive_angle_deg"`
	TurnRateDegMin  float64 `json:"turn_rate_deg_min"`
	DiveRateDegMin  float64 `json:"dive_rate_deg_min"`
	SpeedKnots      float64 `json:"speed_knots"`
	HorizontalKnots float64 `json:"horizontal_knots"`
	VerticalMps     float64 `json:"vertical_mps"`
	AccelMps2       float64 `json:"accel_mps2"`

	Throttle float64 `json:"throttle"`
	Rudder   float64 `json:"rudder"`
	Planes   float64 `json:"planes"`
}

// Frame is the JSON form of a published frame.
type Frame struct {
	Tick     uint64   `json:"tick"`
	ElapsedS float64  `json:"elapsed_s"`
	Paused   bool     `json:"paused"`
	Vessels  []Vessel `json:"vessels"`
}

// Intercept is the JSON form of a track crossing and closest approach.
type Intercept struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DistanceNM  float64 `json:"distance_nm"`
	TimeS       float64 `json:"time_s"`
	TargetNM    float64 `json:"target_distance_nm"`
	TargetTimeS float64 `json:"target_time_s"`
}

// Approach is the JSON form of a closest point of approach.
type Approach struct {
	TimeS      float64 `json:"time_s"`
	DistanceNM float64 `json:"distance_nm"`
}

func toVessel(v sim.VehicleState) Vessel {
	return Vessel{
		ID:              v.ID,
		Name:            v.Name,
		Class:           v.Class,
		Latitude:        v.Position.Lat(),
		Longitude:       v.Position.Lon(),
		AltitudeM:       v.Position.Altitude().InMeters(),
		CourseDeg:       v.Course,
		DiveAngleDeg:    v.DiveAngle,
		TurnRateDegMin:  v.TurningRate,
		DiveRateDegMin:  v.DivingRate,
		SpeedKnots:      v.Speed.InKnots(),
		HorizontalKnots: v.HorizontalSpeed.InKnots(),
		VerticalMps:     v.VerticalSpeed.InMetersPerSecond(),
		AccelMps2:       v.Acceleration.InMetersPerSecondSquared(),
		Throttle:        v.Throttle,
		Rudder:          v.Rudder,
		Planes:          v.Planes,
	}
}

func toFrame(f *sim.Frame) Frame {
	out := Frame{
		Tick:     f.Tick,
		ElapsedS: f.Elapsed.InSeconds(),
		Paused:   f.Paused,
		Vessels:  make([]Vessel, len(f.Vehicles)),
	}
	for i, v := range f.Vehicles {
		out.Vessels[i] = toVessel(v)
	}
	return out
}

// toIntercept drops infinite times, which JSON cannot carry, as -1.
func toIntercept(c tracking.Crossing) Intercept {
	return Intercept{
		Latitude:    c.Point.Lat(),
		Longitude:   c.Point.Lon(),
		DistanceNM:  c.DistanceA.InNauticalMiles(),
		TimeS:       finite(c.TimeA.InSeconds()),
		TargetNM:    c.DistanceB.InNauticalMiles(),
		TargetTimeS: finite(c.TimeB.InSeconds()),
	}
}

func toApproach(a tracking.Approach) Approach {
	return Approach{
		TimeS:      a.Time.InSeconds(),
		DistanceNM: a.Distance.InNauticalMiles(),
	}
}
