// pkg/config/scale_test.go
package config

import (
	"math"
	"testing"

	"github.com/opd-ai/go-solarflight/pkg/entity"
)

func TestScaleCatalogues(t *testing.T) {
	tests := []struct {
		name   string
		bodies []BodyConfig
		belts  []BeltConfig
	}{
		{"True scale", TrueScale(), TrueScaleBelts()},
		{"Display scale", DisplayScale(), DisplayScaleBelts()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Bodies = tt.bodies
			cfg.Belts = tt.belts
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Expected catalogue to validate, got %v", err)
			}

			names := make(map[string]bool)
			for _, b := range tt.bodies {
				names[b.Name] = true
				for _, m := range b.Moons {
					names[m.Name] = true
				}
			}
			for _, want := range []string{"sun", "earth", "moon", "phobos", "io", "saturn", "pluto"} {
				if !names[want] {
					t.Errorf("Expected %s in catalogue", want)
				}
			}
			if tt.bodies[0].Name != "sun" || tt.bodies[0].OrbitalPeriod != 0 {
				t.Error("Expected the sun first with no orbit")
			}

			prev := 0.0
			for _, b := range tt.bodies[1:] {
				if b.Distance <= prev {
					t.Errorf("Expected %s further out than %v, got %v", b.Name, prev, b.Distance)
				}
				prev = b.Distance
			}
			if len(tt.belts) != 2 {
				t.Errorf("Expected 2 belts, got %d", len(tt.belts))
			}
		})
	}
}

func TestScales_SharePeriods(t *testing.T) {
	display := DisplayScale()
	for i, b := range TrueScale() {
		if display[i].Name != b.Name {
			t.Fatalf("Expected body %d to be %s in both scales, got %s", i, b.Name, display[i].Name)
		}
		if display[i].OrbitalPeriod != b.OrbitalPeriod {
			t.Errorf("%s: expected period %v, got %v", b.Name, b.OrbitalPeriod, display[i].OrbitalPeriod)
		}
	}
}

func TestBuildSystem(t *testing.T) {
	system := BuildSystem(DisplayScale())
	if len(system) != 10 {
		t.Fatalf("Expected 10 top-level bodies, got %d", len(system))
	}

	sun := system[0]
	if sun.Kind != entity.Star || sun.Revolves() {
		t.Errorf("Expected a stationary star, got kind %v", sun.Kind)
	}

	var jupiter, saturn *entity.CelestialBody
	for _, b := range system {
		switch b.Name {
		case "jupiter":
			jupiter = b
		case "saturn":
			saturn = b
		}
	}
	if jupiter == nil || len(jupiter.Moons) != 4 {
		t.Fatal("Expected jupiter with 4 moons")
	}
	for _, m := range jupiter.Moons {
		if m.Parent != jupiter || m.Kind != entity.Moon {
			t.Errorf("Expected %s to be a moon of jupiter", m.Name)
		}
	}
	if saturn.Ring == nil || saturn.Ring.InnerRadius != 18 || saturn.Ring.OuterRadius != 29 {
		t.Errorf("Expected saturn ring 18-29, got %+v", saturn.Ring)
	}
	if math.Abs(saturn.AxialTilt-26*math.Pi/180) > 1e-12 {
		t.Errorf("Expected tilt in radians, got %v", saturn.AxialTilt)
	}
}

func TestBeltBuild(t *testing.T) {
	belt := DisplayScaleBelts()[0].Build()
	if belt.Len() != 1000 {
		t.Errorf("Expected 1000 asteroids, got %d", belt.Len())
	}
	for _, p := range belt.Asteroids() {
		r := math.Hypot(p.X(), p.Z())
		if r < 130-1e-9 || r > 160+1e-9 {
			t.Fatalf("Asteroid at radius %v outside the belt", r)
		}
	}
}

func TestResolvedBodies(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ResolvedBodies()[3].Distance != 90 {
		t.Error("Expected display catalogue by default")
	}
	cfg.Scale = ScaleTrue
	if cfg.ResolvedBodies()[3].Distance != 150e6 {
		t.Error("Expected true-scale catalogue")
	}
	if cfg.ResolvedBelts()[0].MinRadius != 329e6 {
		t.Error("Expected true-scale belts")
	}
	cfg.Bodies = []BodyConfig{{Name: "sun", Kind: "star", Radius: 1}}
	if len(cfg.ResolvedBodies()) != 1 {
		t.Error("Expected configured bodies to win over the catalogue")
	}
}

// extent is the distance from the sun to the farthest orbit in a catalogue
func extent(bodies []BodyConfig) float64 {
	far := 0.0
	for _, b := range bodies {
		for _, m := range b.Moons {
			far = math.Max(far, b.Distance+m.Distance)
		}
		far = math.Max(far, b.Distance)
	}
	return far
}

func TestResolvedStart(t *testing.T) {
	tests := []struct {
		name  string
		scale string
	}{
		{"Display scale", ScaleDisplay},
		{"True scale", ScaleTrue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Scale = tt.scale
			start := cfg.ResolvedStart()

			dist := math.Sqrt(start[0]*start[0] + start[1]*start[1] + start[2]*start[2])
			bodies := cfg.ResolvedBodies()
			if far := extent(bodies); dist >= far {
				t.Errorf("Expected the start within %v of the sun, got %v", far, dist)
			}
			if sun := bodies[0].Radius; dist <= sun {
				t.Errorf("Expected the start outside the sun of radius %v, got %v", sun, dist)
			}
		})
	}

	cfg := DefaultConfig()
	if cfg.ResolvedStart() != DefaultStartPosition(ScaleDisplay) {
		t.Errorf("Expected the display start by default, got %v", cfg.ResolvedStart())
	}
	cfg.Scale = ScaleTrue
	if cfg.ResolvedStart() != DefaultStartPosition(ScaleTrue) {
		t.Errorf("Expected the start to follow a scale override, got %v", cfg.ResolvedStart())
	}
	cfg.Flight.StartPosition = &[3]float64{1, 2, 3}
	if cfg.ResolvedStart() != [3]float64{1, 2, 3} {
		t.Errorf("Expected a configured start to win, got %v", cfg.ResolvedStart())
	}
}
