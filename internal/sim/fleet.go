package sim

import (
	"context"
	"fmt"

	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/pkg/config"
	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/vesselclass"
)

// NewVessel builds a vehicle from its configured initial state using the
// profiles of its class.
func NewVessel(vc config.VesselConfig, catalog *vesselclass.Catalog) (*kinematics.Vehicle, error) {
	profiles, err := catalog.Build(vc.Class)
	if err != nil {
		return nil, fmt.Errorf("vessel %s: %w", vc.Name, err)
	}

	state := kinematics.NewKinematics(
		geo.NewPosition3D(vc.Latitude, vc.Longitude, magnitudes.Meters(vc.AltitudeM)),
		magnitudes.Degrees(vc.CourseDeg),
		magnitudes.Knots(vc.SpeedKnots),
		0,
	)
	v := kinematics.NewVehicle(vc.Name, vc.Class, profiles, state)
	v.SetThrottle(vc.Throttle)
	return v, nil
}

// Spawn adds every vessel of fleet to w and returns their ids by name.
// Nothing is added when any vessel fails to build.
func (w *World) Spawn(fleet []config.VesselConfig, catalog *vesselclass.Catalog) (map[string]string, error) {
	vehicles := make([]*kinematics.Vehicle, 0, len(fleet))
	for _, vc := range fleet {
		v, err := NewVessel(vc, catalog)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	ids := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		ids[v.Name()] = w.Add(v)
		w.log.Info(context.Background(), "vessel spawned", "name", v.Name(), "class", v.Class(), "position", v.Position().String())
	}
	return ids, nil
}

// FromConfig creates a world for cfg and spawns its fleet. Classes from
// cfg.ClassesPath, when set, are merged over the built-in catalog.
func FromConfig(cfg *config.Config, log *logging.Logger) (*World, map[string]string, error) {
	catalog := vesselclass.Default()
	if cfg.ClassesPath != "" {
		extra, err := vesselclass.Load(cfg.ClassesPath)
		if err != nil {
			return nil, nil, err
		}
		catalog.Merge(extra)
	}

	w := NewWorld(cfg.Simulation, log)
	ids, err := w.Spawn(cfg.Fleet, catalog)
	if err != nil {
		return nil, nil, err
	}
	return w, ids, nil
}
