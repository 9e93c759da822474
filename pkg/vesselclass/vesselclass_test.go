package vesselclass

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/unklstewy/shipcommand/pkg/magnitudes"
	"github.com/unklstewy/shipcommand/pkg/profile"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	names := c.Names()
	expected := []string{"frigate", "patrol-boat", "submarine", "tanker"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d classes, got %v", len(expected), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected class %d to be %s, got %s", i, name, names[i])
		}
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := c.Build(name)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			class, _ := c.Class(name)
			top, ok := p.Accel.MaxSpeed()
			if !ok || top != class.TopSpeed() {
				t.Errorf("Expected top speed %f kt, got %f", class.TopSpeed().InKnots(), top.InKnots())
			}
			if p.Drag.Len() == 0 {
				t.Error("Expected a drag table")
			}
		})
	}
}

func TestBuild(t *testing.T) {
	c := Default()

	t.Run("frigate top speed", func(t *testing.T) {
		p, err := c.Build("frigate")
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		top, _ := p.Accel.MaxSpeed()
		if math.Abs(top.InKnots()-30) > 1e-9 {
			t.Errorf("Expected 30 kt, got %f", top.InKnots())
		}
		if p.Dive.Len() != 0 {
			t.Error("Frigate should not dive")
		}
	})

	t.Run("submarine dives", func(t *testing.T) {
		class, ok := c.Class("submarine")
		if !ok || !class.Submersible() {
			t.Fatal("Expected a submersible submarine class")
		}
		p, _ := c.Build("submarine")
		if got := p.Dive.Interpolate(magnitudes.Knots(5)); got != 60 {
			t.Errorf("Expected 60°/min at 5 kt, got %f", got)
		}
	})

	t.Run("hull model drag", func(t *testing.T) {
		p, err := c.Build("tanker")
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		class, _ := c.Class("tanker")
		if p.Drag.Len() != len(class.Accel) {
			t.Fatalf("Expected %d sampled drag points, got %d", len(class.Accel), p.Drag.Len())
		}

		speed := magnitudes.Knots(8)
		want := class.Hull.model().Deceleration(magnitudes.Tonnes(class.Hull.MassTonnes), speed)
		got := p.Drag.Interpolate(speed, 0)
		if math.Abs(got.InMetersPerSecondSquared()+want.InMetersPerSecondSquared()) > 1e-12 {
			t.Errorf("Expected drag %f, got %f", -want.InMetersPerSecondSquared(), got.InMetersPerSecondSquared())
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		_, err := c.Build("battleship")
		if !errors.Is(err, ErrUnknownClass) {
			t.Errorf("Expected ErrUnknownClass, got %v", err)
		}
	})

	t.Run("profiles are not shared", func(t *testing.T) {
		a, _ := c.Build("frigate")
		b, _ := c.Build("frigate")
		if a.Accel == b.Accel || a.Turn == b.Turn {
			t.Error("Expected separate profiles per build")
		}
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		errText bool
	}{
		{
			name: "valid",
			yaml: `
classes:
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
    turn: [{knots: 0, deg_per_min: 0}, {knots: 12, deg_per_min: 200}]
`,
		},
		{
			name: "non-increasing accel",
			yaml: `
classes:
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.1}, {knots: 12, mps2: 0.0}]
`,
			wantErr: profile.ErrNonIncreasing,
		},
		{
			name: "non-increasing turn",
			yaml: `
classes:
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
    turn: [{knots: 5, deg_per_min: 100}, {knots: 0, deg_per_min: 0}]
`,
			wantErr: profile.ErrNonIncreasing,
		},
		{
			name: "missing name",
			yaml: `
classes:
  - accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
`,
			errText: true,
		},
		{
			name: "duplicate",
			yaml: `
classes:
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
`,
			errText: true,
		},
		{
			name: "single accel breakpoint",
			yaml: `
classes:
  - name: tug
    accel: [{knots: 0, mps2: 0.2}]
`,
			errText: true,
		},
		{
			name: "massless hull",
			yaml: `
classes:
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
    hull: {density: 1025, cross_section_m2: 20, coefficient: 0.02}
`,
			errText: true,
		},
		{
			name:    "malformed",
			yaml:    "classes: [",
			errText: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
			case tt.errText:
				if err == nil {
					t.Error("Expected an error")
				}
			default:
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if _, ok := c.Class("tug"); !ok {
					t.Error("Expected class tug")
				}
			}
		})
	}
}

func TestLoadAndMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classes.yaml")
	custom := `
classes:
  - name: frigate
    description: Up-engined frigate
    accel: [{knots: 0, mps2: 0.4}, {knots: 35, mps2: 0.0}]
  - name: tug
    accel: [{knots: 0, mps2: 0.2}, {knots: 12, mps2: 0.0}]
`
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatalf("Failed to write classes: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	c := Default()
	c.Merge(loaded)

	if len(c.Names()) != 5 {
		t.Errorf("Expected 5 classes after merge, got %v", c.Names())
	}
	frigate, _ := c.Class("frigate")
	if frigate.Description != "Up-engined frigate" {
		t.Errorf("Expected frigate to be replaced, got %q", frigate.Description)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
