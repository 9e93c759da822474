package kinematics

import "math"

// Controls are the operator inputs of a vehicle. Setters clamp to range:
// throttle to [0, 1], rudder and planes to [-1, 1].
type Controls struct {
	throttle float64
	rudder   float64
	planes   float64
}

func (c *Controls) Throttle() float64 { return c.throttle }
func (c *Controls) Rudder() float64   { return c.rudder }
func (c *Controls) Planes() float64   { return c.planes }

func (c *Controls) SetThrottle(v float64) { c.throttle = clamp(v, 0, 1) }

// SetRudder sets the rudder; positive turns to starboard.
func (c *Controls) SetRudder(v float64) { c.rudder = clamp(v, -1, 1) }

// SetPlanes sets the dive planes; positive raises the bow.
func (c *Controls) SetPlanes(v float64) { c.planes = clamp(v, -1, 1) }

// ControlInput is a full set of control positions. Nil fields leave the
// current setting unchanged.
type ControlInput struct {
	Throttle *float64 `json:"throttle,omitempty"`
	Rudder   *float64 `json:"rudder,omitempty"`
	Planes   *float64 `json:"planes,omitempty"`
}

// Apply copies the non-nil fields of in into c through the clamping setters.
func (c *Controls) Apply(in ControlInput) {
	if in.Throttle != nil {
		c.SetThrottle(*in.Throttle)
	}
	if in.Rudder != nil {
		c.SetRudder(*in.Rudder)
	}
	if in.Planes != nil {
		c.SetPlanes(*in.Planes)
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
