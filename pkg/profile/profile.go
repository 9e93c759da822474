package profile

import "github.com/unklstewy/shipcommand/pkg/magnitudes"

// AccelProfile is the acceleration available at full throttle, by speed.
type AccelProfile struct {
	c curve
}

// Add appends a breakpoint.
func (p *AccelProfile) Add(speed magnitudes.Speed, accel magnitudes.Acceleration) {
	p.c.add(speed, accel.InMetersPerSecondSquared())
}

// MaxSpeed returns the speed of the top breakpoint. ok is false for an empty profile.
func (p *AccelProfile) MaxSpeed() (speed magnitudes.Speed, ok bool) {
	return p.c.maxSpeed()
}

// Len returns the number of breakpoints.
func (p *AccelProfile) Len() int { return len(p.c.points) }

// Breakpoints returns a copy of the table.
func (p *AccelProfile) Breakpoints() []Breakpoint { return p.c.breakpoints() }

// Validate reports a table whose speeds are not strictly increasing.
func (p *AccelProfile) Validate() error { return p.c.validate() }

// Interpolate returns the acceleration at speed scaled by ratio (the throttle
// setting, 0 to 1). At or above the top breakpoint there is no further
// acceleration and the result is zero; an empty profile also yields zero.
func (p *AccelProfile) Interpolate(speed magnitudes.Speed, ratio float64) magnitudes.Acceleration {
	if len(p.c.points) == 0 {
		return magnitudes.Acceleration{}
	}
	ms := speed.InMetersPerSecond()
	i := p.c.seek(ms)
	if i == len(p.c.points)-1 {
		return magnitudes.Acceleration{}
	}
	return magnitudes.MetersPerSecondSquared(p.c.lerp(i, ms) * ratio)
}

// DragProfile is the deceleration from hull drag, by speed. Values are stored
// as positive magnitudes; Interpolate returns them negated.
type DragProfile struct {
	c curve
}

// Add appends a breakpoint. drag is the magnitude of the deceleration.
func (p *DragProfile) Add(speed magnitudes.Speed, drag magnitudes.Acceleration) {
	p.c.add(speed, drag.InMetersPerSecondSquared())
}

func (p *DragProfile) MaxSpeed() (magnitudes.Speed, bool) { return p.c.maxSpeed() }
func (p *DragProfile) Len() int                           { return len(p.c.points) }
func (p *DragProfile) Breakpoints() []Breakpoint          { return p.c.breakpoints() }
func (p *DragProfile) Validate() error                    { return p.c.validate() }

// Interpolate returns the (negative) drag acceleration at speed. Inside the
// table the drag is scaled by 1-ratio, so less throttle means more braking.
// Past the top breakpoint drag grows in proportion to speed along the line
// from the origin through the last breakpoint, unscaled by ratio.
// An empty profile yields zero.
func (p *DragProfile) Interpolate(speed magnitudes.Speed, ratio float64) magnitudes.Acceleration {
	if len(p.c.points) == 0 {
		return magnitudes.Acceleration{}
	}
	ms := speed.InMetersPerSecond()
	i := p.c.seek(ms)
	if i == len(p.c.points)-1 {
		return magnitudes.MetersPerSecondSquared(-p.c.throughOrigin(ms))
	}
	return magnitudes.MetersPerSecondSquared(-p.c.lerp(i, ms) * (1 - ratio))
}

// TurnProfile is a turn rate per unit of rudder (or planes) in degrees per
// minute, by speed.
type TurnProfile struct {
	c curve
}

// Add appends a breakpoint of degPerMin at speed.
func (p *TurnProfile) Add(speed magnitudes.Speed, degPerMin float64) {
	p.c.add(speed, degPerMin)
}

func (p *TurnProfile) MaxSpeed() (magnitudes.Speed, bool) { return p.c.maxSpeed() }
func (p *TurnProfile) Len() int                           { return len(p.c.points) }
func (p *TurnProfile) Breakpoints() []Breakpoint          { return p.c.breakpoints() }
func (p *TurnProfile) Validate() error                    { return p.c.validate() }

// Interpolate returns the turn rate in degrees per minute at full rudder.
// Past the top breakpoint the rate is extrapolated linearly through the
// origin. An empty profile yields zero.
func (p *TurnProfile) Interpolate(speed magnitudes.Speed) float64 {
	if len(p.c.points) == 0 {
		return 0
	}
	ms := speed.InMetersPerSecond()
	i := p.c.seek(ms)
	if i == len(p.c.points)-1 {
		return p.c.throughOrigin(ms)
	}
	return p.c.lerp(i, ms)
}
