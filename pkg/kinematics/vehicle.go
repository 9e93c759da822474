package kinematics

import (
	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/profile"
)

// Profiles is the performance envelope of a vehicle class. Nil profiles
// behave as empty ones.
type Profiles struct {
	Accel *profile.AccelProfile
	Drag  *profile.DragProfile
	Turn  *profile.TurnProfile
	Dive  *profile.TurnProfile
}

func (p *Profiles) fill() {
	if p.Accel == nil {
		p.Accel = &profile.AccelProfile{}
	}
	if p.Drag == nil {
		p.Drag = &profile.DragProfile{}
	}
	if p.Turn == nil {
		p.Turn = &profile.TurnProfile{}
	}
	if p.Dive == nil {
		p.Dive = &profile.TurnProfile{}
	}
}

// Vehicle is a controllable platform: kinematic state driven by controls
// through performance profiles.
//
// A Vehicle is not safe for concurrent use. The simulation loop is expected
// to be its only writer and to publish Snapshots to readers.
type Vehicle struct {
	Kinematics
	Controls

	name     string
	class    string
	profiles Profiles
}

// NewVehicle returns a vehicle named name of class with the given envelope and
// initial state. The profiles are owned by the vehicle from then on: their
// lookup cursors are not safe to share between vehicles.
func NewVehicle(name, class string, profiles Profiles, state Kinematics) *Vehicle {
	profiles.fill()
	return &Vehicle{
		Kinematics: state,
		name:       name,
		class:      class,
		profiles:   profiles,
	}
}

func (v *Vehicle) Name() string  { return v.name }
func (v *Vehicle) Class() string { return v.class }

// MaxSpeed is the top speed of the acceleration profile.
func (v *Vehicle) MaxSpeed() magnitudes.Speed {
	top, _ := v.profiles.Accel.MaxSpeed()
	return top
}

// Step advances the vehicle by dt seconds:
//
//  1. pick acceleration from the accel profile below the throttle-scaled top
//     speed, from the drag profile above it, zero exactly at it;
//  2. integrate speed;
//  3. derive turning and diving rates from the new speed and rudder/planes;
//  4. integrate course, dive angle, then position and altitude.
func (v *Vehicle) Step(dt float64) {
	speed := v.Speed()
	ms := speed.InMetersPerSecond()
	limit := v.MaxSpeed().InMetersPerSecond() * v.Throttle()

	switch {
	case ms < limit:
		v.SetAcceleration(v.profiles.Accel.Interpolate(speed, v.Throttle()))
	case ms > limit:
		v.SetAcceleration(v.profiles.Drag.Interpolate(speed, v.Throttle()))
	default:
		v.SetAcceleration(magnitudes.Acceleration{})
	}

	v.integrateSpeed(dt)

	speed = v.Speed()
	v.SetTurningRate(v.profiles.Turn.Interpolate(speed) * v.Rudder())
	v.SetDivingRate(v.profiles.Dive.Interpolate(speed) * v.Planes())

	v.advance(dt)
}

// Snapshot is an immutable copy of everything a display needs.
type Snapshot struct {
	Name            string
	Class           string
	Position        geo.Position3D
	Course          float64
	DiveAngle       float64
	TurningRate     float64
	DivingRate      float64
	Speed           magnitudes.Speed
	HorizontalSpeed magnitudes.Speed
	VerticalSpeed   magnitudes.Speed
	Acceleration    magnitudes.Acceleration
	Throttle        float64
	Rudder          float64
	Planes          float64
}

// Snapshot copies the current state.
func (v *Vehicle) Snapshot() Snapshot {
	return Snapshot{
		Name:            v.name,
		Class:           v.class,
		Position:        v.Position(),
		Course:          v.Course().InDegrees(),
		DiveAngle:       v.DiveAngle(),
		TurningRate:     v.TurningRate(),
		DivingRate:      v.DivingRate(),
		Speed:           v.Speed(),
		HorizontalSpeed: v.HorizontalSpeed(),
		VerticalSpeed:   v.VerticalSpeed(),
		Acceleration:    v.Acceleration(),
		Throttle:        v.Throttle(),
		Rudder:          v.Rudder(),
		Planes:          v.Planes(),
	}
}
