// Package vesselclass loads vessel performance envelopes from YAML and turns
// them into kinematics profiles.
//
// YAML schema:
//
//	classes:
//	  - name: frigate
//	    description: General purpose escort
//	    accel: [{knots: 0, mps2: 0.3}, {knots: 30, mps2: 0.02}]
//	    drag:  [{knots: 0, mps2: 0}, {knots: 30, mps2: 0.25}]
//	    turn:  [{knots: 0, deg_per_min: 0}, {knots: 30, deg_per_min: 300}]
//	    dive:  [{knots: 0, deg_per_min: 0}, {knots: 20, deg_per_min: 120}]
//	    hull:  {mass_tonnes: 3500, density: 1025, cross_section_m2: 60, coefficient: 0.02}
//
// Breakpoints must be listed in strictly increasing speed. When a class has
// no drag table but describes its hull, drag is sampled from the quadratic
// hull model at each acceleration breakpoint.
package vesselclass

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/profile"
)

//go:embed classes.yaml
var builtin []byte

// ErrUnknownClass is returned when a class name is not in the catalog.
var ErrUnknownClass = errors.New("vesselclass: unknown class")

// AccelPoint is an acceleration or drag breakpoint.
type AccelPoint struct {
	Knots float64 `yaml:"knots"`
	MPS2  float64 `yaml:"mps2"`
}

// RatePoint is a turn or dive rate breakpoint.
type RatePoint struct {
	Knots     float64 `yaml:"knots"`
	DegPerMin float64 `yaml:"deg_per_min"`
}

// Hull describes the quadratic drag model of a hull.
type Hull struct {
	MassTonnes     float64 `yaml:"mass_tonnes"`
	Density        float64 `yaml:"density"`
	CrossSectionM2 float64 `yaml:"cross_section_m2"`
	Coefficient    float64 `yaml:"coefficient"`
}

// Class is one vessel class as written in YAML.
type Class struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Accel       []AccelPoint `yaml:"accel"`
	Drag        []AccelPoint `yaml:"drag"`
	Turn        []RatePoint  `yaml:"turn"`
	Dive        []RatePoint  `yaml:"dive"`
	Hull        *Hull        `yaml:"hull"`
}

type file struct {
	Classes []Class `yaml:"classes"`
}

// Catalog is a set of classes by name.
type Catalog struct {
	classes map[string]Class
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("vesselclass: built-in catalog: %v", err))
	}
	return c
}

// Load reads and parses a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classes file: %w", err)
	}
	return Parse(b)
}

// Parse parses a YAML catalog and checks that every class builds.
func Parse(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse classes: %w", err)
	}

	c := &Catalog{classes: make(map[string]Class, len(f.Classes))}
	for i, class := range f.Classes {
		if class.Name == "" {
			return nil, fmt.Errorf("class %d: name is required", i)
		}
		if _, dup := c.classes[class.Name]; dup {
			return nil, fmt.Errorf("class %q: defined twice", class.Name)
		}
		if _, err := class.Profiles(); err != nil {
			return nil, err
		}
		c.classes[class.Name] = class
	}
	return c, nil
}

// Merge adds the classes of other to c, replacing classes of the same name.
func (c *Catalog) Merge(other *Catalog) {
	for name, class := range other.classes {
		c.classes[name] = class
	}
}

// Names returns the class names in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Class returns the named class.
func (c *Catalog) Class(name string) (Class, bool) {
	class, ok := c.classes[name]
	return class, ok
}

// Build returns a fresh set of profiles for the named class. Each call
// returns new profiles, so every vehicle gets its own lookup cursors.
func (c *Catalog) Build(name string) (kinematics.Profiles, error) {
	class, ok := c.classes[name]
	if !ok {
		return kinematics.Profiles{}, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return class.Profiles()
}

// Profiles converts the class tables into validated profiles.
func (c Class) Profiles() (kinematics.Profiles, error) {
	if len(c.Accel) < 2 {
		return kinematics.Profiles{}, fmt.Errorf("class %q: accel needs at least two breakpoints", c.Name)
	}

	accel := &profile.AccelProfile{}
	for _, p := range c.Accel {
		accel.Add(magnitudes.Knots(p.Knots), magnitudes.MetersPerSecondSquared(p.MPS2))
	}

	drag := &profile.DragProfile{}
	switch {
	case len(c.Drag) > 0:
		for _, p := range c.Drag {
			drag.Add(magnitudes.Knots(p.Knots), magnitudes.MetersPerSecondSquared(p.MPS2))
		}
	case c.Hull != nil:
		if c.Hull.MassTonnes <= 0 {
			return kinematics.Profiles{}, fmt.Errorf("class %q: hull mass must be positive", c.Name)
		}
		model := c.Hull.model()
		mass := magnitudes.Tonnes(c.Hull.MassTonnes)
		for _, p := range c.Accel {
			speed := magnitudes.Knots(p.Knots)
			drag.Add(speed, model.Deceleration(mass, speed))
		}
	}

	turn := rateProfile(c.Turn)
	dive := rateProfile(c.Dive)

	checks := []struct {
		table string
		err   error
	}{
		{"accel", accel.Validate()},
		{"drag", drag.Validate()},
		{"turn", turn.Validate()},
		{"dive", dive.Validate()},
	}
	for _, check := range checks {
		if check.err != nil {
			return kinematics.Profiles{}, fmt.Errorf("class %q %s: %w", c.Name, check.table, check.err)
		}
	}

	return kinematics.Profiles{Accel: accel, Drag: drag, Turn: turn, Dive: dive}, nil
}

// TopSpeed is the speed of the last acceleration breakpoint.
func (c Class) TopSpeed() magnitudes.Speed {
	if len(c.Accel) == 0 {
		return magnitudes.Speed{}
	}
	return magnitudes.Knots(c.Accel[len(c.Accel)-1].Knots)
}

// Submersible reports whether the class can change depth.
func (c Class) Submersible() bool { return len(c.Dive) > 0 }

func (h Hull) model() magnitudes.DragModel {
	return magnitudes.DragModel{
		Density:      h.Density,
		CrossSection: h.CrossSectionM2,
		Coefficient:  h.Coefficient,
	}
}

func rateProfile(points []RatePoint) *profile.TurnProfile {
	p := &profile.TurnProfile{}
	for _, pt := range points {
		p.Add(magnitudes.Knots(pt.Knots), pt.DegPerMin)
	}
	return p
}
