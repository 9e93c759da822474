// Package tracking predicts where vessels will be and where their tracks meet.
//
// All functions work on kinematics.Snapshot values so they can be called from
// any goroutine against a published frame without touching live vehicles.
package tracking

import (
	"math"

	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// PredictedPosition represents a vessel's predicted future position.
type PredictedPosition struct {
	// Position is the predicted location and altitude
	Position geo.Position3D

	// After is how far ahead of the snapshot the prediction is
	After magnitudes.Time

	// Confidence is a measure of prediction reliability (0-1)
	// Lower for longer predictions and for vessels that are turning
	Confidence float64
}

// PredictPosition dead-reckons a snapshot forward by after.
//
// The prediction assumes:
// - The vessel keeps its current course, speed and dive angle
// - Rates of turn and dive are ignored (they lower the confidence instead)
// - Altitude changes at the current vertical speed
//
// Parameters:
//   - state: Snapshot of the vessel
//   - after: How far ahead to predict
//
// Returns: Predicted position with confidence score
func PredictPosition(state kinematics.Snapshot, after magnitudes.Time) PredictedPosition {
	seconds := after.InSeconds()

	// For zero or negative deltas, return current position
	if seconds <= 0 {
		return PredictedPosition{
			Position:   state.Position,
			After:      magnitudes.Seconds(0),
			Confidence: 1.0,
		}
	}

	// Confidence decreases with prediction time
	// 1.0 at 0s, 0.5 at 5 min, 0.0 at 10 min+
	confidence := math.Max(0.0, 1.0-seconds/600.0)

	// A vessel already turning will not be where dead reckoning says
	if state.TurningRate != 0 || state.DivingRate != 0 {
		confidence *= 0.5
	}

	predicted := state.Position
	predicted.Move(magnitudes.Degrees(state.Course), state.HorizontalSpeed.Over(after))
	predicted.Climb(state.VerticalSpeed.Over(after))

	return PredictedPosition{
		Position:   predicted,
		After:      after,
		Confidence: confidence,
	}
}

// RangeAndBearing returns the great-circle range and true bearing from
// observer to target.
func RangeAndBearing(observer, target kinematics.Snapshot) (magnitudes.Distance, magnitudes.Bearing) {
	from := observer.Position.Position2D
	to := target.Position.Position2D
	return geo.Distance(from, to), geo.InitialBearing(from, to)
}

// RelativeBearing returns the bearing of target off observer's bow in
// degrees, in (-180, 180]. Positive is to starboard.
func RelativeBearing(observer, target kinematics.Snapshot) float64 {
	_, bearing := RangeAndBearing(observer, target)
	return normalizeAngle(bearing.InDegrees() - observer.Course)
}

// normalizeAngle normalizes an angle to (-180, 180].
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360.0)
	if angle > 180.0 {
		angle -= 360.0
	} else if angle <= -180.0 {
		angle += 360.0
	}
	return angle
}
