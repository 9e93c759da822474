package sim

import (
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// VehicleState is the published state of one vehicle.
type VehicleState struct {
	ID string
	kinematics.Snapshot
}

// Frame is an immutable picture of the world after a physics tick. Frames
// are shared between readers and must not be modified.
type Frame struct {
	// Tick is the number of physics steps taken so far
	Tick uint64

	// Elapsed is the simulated time since the world was created
	Elapsed magnitudes.Time

	Paused bool

	// Vehicles are ordered by name
	Vehicles []VehicleState
}

// Vehicle returns the state of the vehicle with id.
func (f *Frame) Vehicle(id string) (VehicleState, bool) {
	for _, v := range f.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return VehicleState{}, false
}

// VehicleByName returns the state of the first vehicle called name.
func (f *Frame) VehicleByName(name string) (VehicleState, bool) {
	for _, v := range f.Vehicles {
		if v.Name == name {
			return v, true
		}
	}
	return VehicleState{}, false
}
