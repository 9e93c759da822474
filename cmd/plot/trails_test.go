package main

import (
	"testing"

	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

func frameAt(seconds float64, ids ...string) *sim.Frame {
	f := &sim.Frame{Elapsed: magnitudes.Seconds(seconds)}
	for i, id := range ids {
		f.Vehicles = append(f.Vehicles, sim.VehicleState{
			ID: id,
			Snapshot: kinematics.Snapshot{
				Name:     id,
				Position: geo.NewPosition3D(-38, -57+seconds/1000+float64(i), magnitudes.Meters(0)),
			},
		})
	}
	return f
}

func TestTrailsSampling(t *testing.T) {
	tr := newTrails(magnitudes.Seconds(10), 100)

	tr.record(frameAt(0, "a"))
	tr.record(frameAt(5, "a"))
	tr.record(frameAt(10, "a"))
	tr.record(frameAt(12, "a"))
	tr.record(frameAt(25, "a"))

	if got := len(tr.trail("a")); got != 3 {
		t.Errorf("Expected samples at 0, 10 and 25 s, got %d", got)
	}
}

func TestTrailsMaxLength(t *testing.T) {
	tr := newTrails(magnitudes.Seconds(1), 3)
	for i := 0; i < 10; i++ {
		tr.record(frameAt(float64(i), "a"))
	}

	trail := tr.trail("a")
	if len(trail) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(trail))
	}
	newest := frameAt(9, "a").Vehicles[0].Position.Position2D
	if trail[2] != newest {
		t.Errorf("Expected newest point last, got %s", trail[2])
	}
}

func TestTrailsDropRemovedVessels(t *testing.T) {
	tr := newTrails(magnitudes.Seconds(1), 10)
	tr.record(frameAt(0, "a", "b"))
	tr.record(frameAt(1, "a"))

	if len(tr.trail("a")) != 2 {
		t.Errorf("Expected 2 points for a, got %d", len(tr.trail("a")))
	}
	if tr.trail("b") != nil {
		t.Error("Expected trail of removed vessel to be dropped")
	}
}
