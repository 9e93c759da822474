// Package kinematics integrates vessel motion at a fixed time step.
//
// A Vehicle is composed of three parts: Kinematics (position, course, dive
// angle, speed and their rates), Controls (throttle, rudder, planes) and the
// Profiles that translate controls into rates. Anything that advances with
// time implements Stepper; anything a display can read implements Observer.
package kinematics

import (
	"math"

	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// Stepper is a simulation participant advanced once per physics tick.
type Stepper interface {
	// Step advances the state by dt seconds.
	Step(dt float64)
}

// Observer is a participant whose state can be copied out for display.
type Observer interface {
	Snapshot() Snapshot
}

// Dive angle limits in degrees.
const (
	MaxDiveAngle = 90.0
	MinDiveAngle = -90.0
)

// Kinematics is the continuous state of a body moving over the sphere.
//
// Course is kept normalized in [0, 360). Rates are in degrees per minute.
// Horizontal and vertical speed are derived from speed and dive angle and
// cannot be set directly.
type Kinematics struct {
	position     geo.Position3D
	course       magnitudes.Bearing
	diveAngle    float64
	turningRate  float64
	divingRate   float64
	speed        magnitudes.Speed
	acceleration magnitudes.Acceleration

	horizontalSpeed magnitudes.Speed
	verticalSpeed   magnitudes.Speed
}

// NewKinematics returns a body at position heading course at speed with the
// given dive angle (clamped to ±90°) and no rates.
func NewKinematics(position geo.Position3D, course magnitudes.Bearing, speed magnitudes.Speed, diveAngle float64) Kinematics {
	k := Kinematics{
		position: position,
		course:   course,
		speed:    speed,
	}
	k.SetDiveAngle(diveAngle)
	return k
}

func (k *Kinematics) Position() geo.Position3D              { return k.position }
func (k *Kinematics) Course() magnitudes.Bearing            { return k.course }
func (k *Kinematics) DiveAngle() float64                    { return k.diveAngle }
func (k *Kinematics) TurningRate() float64                  { return k.turningRate }
func (k *Kinematics) DivingRate() float64                   { return k.divingRate }
func (k *Kinematics) Speed() magnitudes.Speed               { return k.speed }
func (k *Kinematics) Acceleration() magnitudes.Acceleration { return k.acceleration }
func (k *Kinematics) HorizontalSpeed() magnitudes.Speed     { return k.horizontalSpeed }
func (k *Kinematics) VerticalSpeed() magnitudes.Speed       { return k.verticalSpeed }

func (k *Kinematics) SetPosition(p geo.Position3D)   { k.position = p }
func (k *Kinematics) SetCourse(c magnitudes.Bearing) { k.course = c }

// SetSpeed replaces the speed and refreshes the horizontal/vertical split.
func (k *Kinematics) SetSpeed(s magnitudes.Speed) {
	k.speed = s
	k.updateDerived()
}

// SetAcceleration sets the acceleration applied by the next free-body Step.
func (k *Kinematics) SetAcceleration(a magnitudes.Acceleration) { k.acceleration = a }

// SetDiveAngle sets the dive angle in degrees, clamped to [-90, 90].
func (k *Kinematics) SetDiveAngle(deg float64) {
	k.diveAngle = math.Max(MinDiveAngle, math.Min(MaxDiveAngle, deg))
	k.updateDerived()
}

// SetTurningRate sets the course change rate in degrees per minute,
// positive to starboard.
func (k *Kinematics) SetTurningRate(degPerMin float64) { k.turningRate = degPerMin }

// SetDivingRate sets the dive angle change rate in degrees per minute.
func (k *Kinematics) SetDivingRate(degPerMin float64) { k.divingRate = degPerMin }

// Step integrates a free body: speed from the current acceleration, then
// course, dive angle and position from the current rates.
func (k *Kinematics) Step(dt float64) {
	k.integrateSpeed(dt)
	k.advance(dt)
}

// integrateSpeed applies one Euler step of the acceleration.
func (k *Kinematics) integrateSpeed(dt float64) {
	k.speed = magnitudes.MetersPerSecond(k.speed.InMetersPerSecond() + k.acceleration.InMetersPerSecondSquared()*dt)
}

// advance turns, pitches and moves the body for dt seconds at the current
// speed and rates.
func (k *Kinematics) advance(dt float64) {
	k.course.Turn(k.turningRate / 60 * dt)
	k.SetDiveAngle(k.diveAngle + k.divingRate/60*dt)

	k.position.Move(k.course, magnitudes.Meters(k.horizontalSpeed.InMetersPerSecond()*dt))
	k.position.Climb(magnitudes.Meters(k.verticalSpeed.InMetersPerSecond() * dt))
}

func (k *Kinematics) updateDerived() {
	ms := k.speed.InMetersPerSecond()
	angle := k.diveAngle * geo.DegreesToRadians
	k.verticalSpeed = magnitudes.MetersPerSecond(ms * math.Sin(angle))
	k.horizontalSpeed = magnitudes.MetersPerSecond(ms * math.Cos(angle))
}
