package kinematics

import (
	"math"
	"testing"

	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/profile"
)

const physicsDt = 1.0 / 60.0

func kt(v float64) magnitudes.Speed { return magnitudes.Knots(v) }

func mps2(v float64) magnitudes.Acceleration { return magnitudes.MetersPerSecondSquared(v) }

// testProfiles is a 30 kt destroyer-like envelope.
func testProfiles() Profiles {
	accel := &profile.AccelProfile{}
	accel.Add(kt(0), mps2(0.30))
	accel.Add(kt(10), mps2(0.20))
	accel.Add(kt(20), mps2(0.10))
	accel.Add(kt(30), mps2(0.02))

	drag := &profile.DragProfile{}
	drag.Add(kt(0), mps2(0))
	drag.Add(kt(10), mps2(0.05))
	drag.Add(kt(20), mps2(0.12))
	drag.Add(kt(30), mps2(0.25))

	turn := &profile.TurnProfile{}
	turn.Add(kt(0), 0)
	turn.Add(kt(5), 120)
	turn.Add(kt(30), 240)

	return Profiles{Accel: accel, Drag: drag, Turn: turn}
}

func run(s Stepper, seconds float64) {
	steps := int(math.Round(seconds / physicsDt))
	for i := 0; i < steps; i++ {
		s.Step(physicsDt)
	}
}

func newTestVehicle(p Profiles, speed magnitudes.Speed) *Vehicle {
	state := NewKinematics(geo.NewPosition3D(0, 0, magnitudes.Meters(0)), magnitudes.Degrees(0), speed, 0)
	return NewVehicle("Test", "test", p, state)
}

// TestAtRestStaysAtRest is the energy sanity check.
func TestAtRestStaysAtRest(t *testing.T) {
	t.Run("zero throttle", func(t *testing.T) {
		v := newTestVehicle(testProfiles(), kt(0))
		run(v, 600)
		if v.Speed().InMetersPerSecond() != 0 {
			t.Errorf("Expected speed 0, got %f", v.Speed().InMetersPerSecond())
		}
		if v.Position().Lat() != 0 || v.Position().Lon() != 0 {
			t.Errorf("Expected no movement, got %s", v.Position())
		}
	})

	t.Run("throttle with no thrust at zero speed", func(t *testing.T) {
		accel := &profile.AccelProfile{}
		accel.Add(kt(0), mps2(0))
		accel.Add(kt(10), mps2(0.2))
		v := newTestVehicle(Profiles{Accel: accel}, kt(0))
		v.SetThrottle(1)
		run(v, 60)
		if v.Speed().InMetersPerSecond() != 0 {
			t.Errorf("Expected speed 0, got %f", v.Speed().InMetersPerSecond())
		}
	})
}

// TestAcceleratesToThrottleSpeed checks that speed settles at top speed × throttle.
func TestAcceleratesToThrottleSpeed(t *testing.T) {
	tests := []struct {
		name     string
		throttle float64
		wantKt   float64
	}{
		{"full ahead", 1.0, 30},
		{"half ahead", 0.5, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVehicle(testProfiles(), kt(0))
			v.SetThrottle(tt.throttle)
			run(v, 600)

			got := v.Speed().InKnots()
			if math.Abs(got-tt.wantKt) > 0.2 {
				t.Errorf("Expected speed near %f kt, got %f", tt.wantKt, got)
			}
			if v.Position().Lat() <= 0 {
				t.Errorf("Expected to have moved north, got %s", v.Position())
			}
		})
	}
}

// TestDragSlowsWhenThrottledBack tests coasting down after closing the throttle.
func TestDragSlowsWhenThrottledBack(t *testing.T) {
	v := newTestVehicle(testProfiles(), kt(25))
	v.SetThrottle(0)

	prev := v.Speed().InMetersPerSecond()
	for i := 0; i < 120; i++ {
		run(v, 1)
		cur := v.Speed().InMetersPerSecond()
		if cur > prev {
			t.Fatalf("Speed increased while coasting: %f -> %f", prev, cur)
		}
		if cur < 0 {
			t.Fatalf("Speed went negative: %f", cur)
		}
		prev = cur
	}
	if v.Speed().InKnots() >= 25 {
		t.Errorf("Expected to slow down from 25 kt, got %f", v.Speed().InKnots())
	}
	if v.Acceleration().InMetersPerSecondSquared() >= 0 {
		t.Errorf("Expected negative acceleration, got %f", v.Acceleration().InMetersPerSecondSquared())
	}
}

// TestTurnRate tests that rudder turns at the profile rate.
func TestTurnRate(t *testing.T) {
	turn := &profile.TurnProfile{}
	turn.Add(kt(0), 240)
	turn.Add(kt(40), 240)

	v := newTestVehicle(Profiles{Turn: turn}, kt(15))
	v.SetRudder(1)
	run(v, 60)

	if got := v.Course().InDegrees(); math.Abs(got-240) > 1e-6 {
		t.Errorf("Expected course 240 after one minute at 240°/min, got %f", got)
	}
	if got := v.TurningRate(); got != 240 {
		t.Errorf("Expected turning rate 240, got %f", got)
	}

	v.SetRudder(-0.5)
	run(v, 60)
	if got := v.Course().InDegrees(); math.Abs(got-120) > 1e-6 {
		t.Errorf("Expected course 120 after turning to port, got %f", got)
	}
	if math.Abs(v.Speed().InKnots()-15) > 1e-9 {
		t.Errorf("Speed changed without an acceleration profile: %f", v.Speed().InKnots())
	}
}

// TestDiveAngleClamps tests dive integration and the ±90° limit.
func TestDiveAngleClamps(t *testing.T) {
	dive := &profile.TurnProfile{}
	dive.Add(kt(0), 60)
	dive.Add(kt(40), 60)

	v := newTestVehicle(Profiles{Dive: dive}, kt(10))
	v.SetPlanes(-1)
	run(v, 30)
	if got := v.DiveAngle(); math.Abs(got+30) > 1e-6 {
		t.Errorf("Expected -30° after 30 s at 60°/min, got %f", got)
	}
	if v.Position().Altitude().InMeters() >= 0 {
		t.Errorf("Expected to descend with negative dive angle, got %f", v.Position().Altitude().InMeters())
	}

	run(v, 300)
	if got := v.DiveAngle(); got != MinDiveAngle {
		t.Errorf("Expected dive angle clamped at -90, got %f", got)
	}
	if h := v.HorizontalSpeed().InMetersPerSecond(); math.Abs(h) > 1e-9 {
		t.Errorf("Expected no horizontal speed straight down, got %f", h)
	}
}

// TestSpeedDecomposition checks the horizontal/vertical split.
func TestSpeedDecomposition(t *testing.T) {
	k := NewKinematics(geo.NewPosition3D(0, 0, magnitudes.Meters(0)), magnitudes.Degrees(90), magnitudes.MetersPerSecond(10), 30)
	if got := k.VerticalSpeed().InMetersPerSecond(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Expected vertical 5 m/s, got %f", got)
	}
	if got := k.HorizontalSpeed().InMetersPerSecond(); math.Abs(got-10*math.Cos(math.Pi/6)) > 1e-9 {
		t.Errorf("Expected horizontal 8.66 m/s, got %f", got)
	}

	run(&k, 100)
	if got := k.Position().Altitude().InMeters(); math.Abs(got-500) > 1e-6 {
		t.Errorf("Expected to climb 500 m, got %f", got)
	}
	wantLon := 100 * 10 * math.Cos(math.Pi/6) / geo.EarthRadiusMeters * geo.RadiansToDegrees
	if got := k.Position().Lon(); math.Abs(got-wantLon) > 1e-6 {
		t.Errorf("Expected longitude %f, got %f", wantLon, got)
	}

	k.SetDiveAngle(120)
	if k.DiveAngle() != MaxDiveAngle {
		t.Errorf("Expected dive angle clamped to 90, got %f", k.DiveAngle())
	}
}

// TestFreeBodyStep tests Kinematics on its own with an external acceleration.
func TestFreeBodyStep(t *testing.T) {
	k := NewKinematics(geo.NewPosition3D(0, 0, magnitudes.Meters(0)), magnitudes.Degrees(0), magnitudes.MetersPerSecond(0), 0)
	k.SetAcceleration(mps2(1))
	k.SetTurningRate(60)
	run(&k, 10)

	if got := k.Speed().InMetersPerSecond(); math.Abs(got-10) > 1e-9 {
		t.Errorf("Expected 10 m/s after 10 s at 1 m/s², got %f", got)
	}
	if got := k.Course().InDegrees(); math.Abs(got-10) > 1e-9 {
		t.Errorf("Expected course 10 after 10 s at 60°/min, got %f", got)
	}
	moved := geo.Distance(geo.NewPosition2D(0, 0), k.Position().Position2D).InMeters()
	if math.Abs(moved-50) > 1 {
		t.Errorf("Expected roughly 50 m travelled, got %f", moved)
	}
}

func TestControlsClamp(t *testing.T) {
	var c Controls
	c.SetThrottle(1.5)
	c.SetRudder(-3)
	c.SetPlanes(2)
	if c.Throttle() != 1 || c.Rudder() != -1 || c.Planes() != 1 {
		t.Errorf("Expected clamped controls, got %f %f %f", c.Throttle(), c.Rudder(), c.Planes())
	}

	c.SetThrottle(-0.2)
	c.SetRudder(math.NaN())
	if c.Throttle() != 0 || c.Rudder() != 0 {
		t.Errorf("Expected 0 throttle and rudder, got %f %f", c.Throttle(), c.Rudder())
	}

	half := 0.5
	c.Apply(ControlInput{Throttle: &half})
	if c.Throttle() != 0.5 || c.Planes() != 1 {
		t.Errorf("Apply changed more than the throttle: %+v", c)
	}
}

func TestSnapshot(t *testing.T) {
	v := newTestVehicle(testProfiles(), kt(12))
	v.SetThrottle(0.4)
	v.SetRudder(0.25)
	v.Step(physicsDt)

	s := v.Snapshot()
	if s.Name != "Test" || s.Class != "test" {
		t.Errorf("Unexpected identity %q %q", s.Name, s.Class)
	}
	if s.Throttle != 0.4 || s.Rudder != 0.25 {
		t.Errorf("Controls missing from snapshot: %+v", s)
	}
	if s.Speed != v.Speed() || s.Position != v.Position() {
		t.Error("Snapshot does not match vehicle state")
	}

	v.Step(physicsDt)
	if s.Position == v.Position() {
		t.Error("Snapshot should not follow later steps")
	}
	if math.Abs(v.MaxSpeed().InKnots()-30) > 1e-9 {
		t.Errorf("Expected 30 kt max speed, got %f", v.MaxSpeed().InKnots())
	}
}
