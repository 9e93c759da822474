package main

import (
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
)

// trails keeps a breadcrumb history per vessel, sampled on simulated time.
type trails struct {
	every     magnitudes.Time
	maxLength int
	last      magnitudes.Time
	sampled   bool
	points    map[string][]geo.Position2D
}

func newTrails(every magnitudes.Time, maxLength int) *trails {
	return &trails{
		every:     every,
		maxLength: maxLength,
		points:    make(map[string][]geo.Position2D),
	}
}

// record adds the vessels of f when at least one sample period of simulated
// time has passed since the previous sample. Trails of vessels that are no
// longer in the world are dropped.
func (t *trails) record(f *sim.Frame) {
	if t.sampled && f.Elapsed.InSeconds()-t.last.InSeconds() < t.every.InSeconds() {
		return
	}
	t.sampled = true
	t.last = f.Elapsed

	seen := make(map[string]bool, len(f.Vehicles))
	for _, v := range f.Vehicles {
		seen[v.ID] = true
		trail := append(t.points[v.ID], v.Position.Position2D)
		if len(trail) > t.maxLength {
			trail = trail[len(trail)-t.maxLength:]
		}
		t.points[v.ID] = trail
	}
	for id := range t.points {
		if !seen[id] {
			delete(t.points, id)
		}
	}
}

func (t *trails) trail(id string) []geo.Position2D {
	return t.points[id]
}
