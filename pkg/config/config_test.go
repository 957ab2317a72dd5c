// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/go-solarflight/pkg/input"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if config.Scale != ScaleDisplay {
		t.Errorf("Expected scale %q, got %q", ScaleDisplay, config.Scale)
	}
	if len(config.Flight.Tiers) != 3 {
		t.Fatalf("Expected 3 tiers, got %d", len(config.Flight.Tiers))
	}
	if config.Flight.Tiers[1].Magnitude != 299792.46 {
		t.Errorf("Expected light tier 299792.46, got %v", config.Flight.Tiers[1].Magnitude)
	}
	if config.Render.FOV != 75 {
		t.Errorf("Expected FOV 75, got %v", config.Render.FOV)
	}
	if config.Input.KeyHold != input.DefaultKeyHold {
		t.Errorf("Expected key hold %v, got %v", input.DefaultKeyHold, config.Input.KeyHold)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected defaults to be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Unknown scale", func(c *Config) { c.Scale = "galactic" }, "scale must be"},
		{"No tiers", func(c *Config) { c.Flight.Tiers = nil }, "flight.tiers"},
		{"Zero tier", func(c *Config) { c.Flight.Tiers[0].Magnitude = 0 }, "magnitude must be positive"},
		{"Acceleration too high", func(c *Config) { c.Time.OrbitAcceleration = 11 }, "time.orbitAcceleration"},
		{"Negative spin acceleration", func(c *Config) { c.Time.SpinAcceleration = -1 }, "time.spinAcceleration"},
		{"Bad epoch", func(c *Config) { c.Time.Epoch = "yesterday" }, "time.epoch"},
		{"Sun too bright", func(c *Config) { c.Render.SunIntensity = 20 }, "sunIntensity"},
		{"Negative body radius", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "rock", Radius: -1}}
		}, "must not be negative"},
		{"Negative moon period", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "earth", Moons: []BodyConfig{{Name: "moon", Kind: "moon", OrbitalPeriod: -27}}}}
		}, "bodies.earth.moons.moon"},
		{"Unknown kind", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "x", Kind: "comet"}}
		}, "unknown kind"},
		{"Inverted ring", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "saturn", Ring: &RingConfig{Inner: 10, Outer: 5}}}
		}, "ring"},
		{"Bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"Negative connect rate", func(c *Config) { c.Server.ConnectsPerMinute = -1 }, "server.connectsPerMinute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solarflight.json")

	cfg := DefaultConfig()
	cfg.Scale = ScaleTrue
	cfg.Time.DaysPerSecond = 5
	cfg.Flight.Tiers = []TierConfig{{Name: "cruise", Magnitude: 10}, {Name: "warp", Magnitude: 1e4}}
	cfg.Input.Bindings = map[string]input.Binding{"gearUp": {Positive: []string{"w"}}}
	cfg.Flight.StartPosition = &[3]float64{5, 6, 7}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Scale != ScaleTrue {
		t.Errorf("Expected scale %q, got %q", ScaleTrue, loaded.Scale)
	}
	if loaded.Time.DaysPerSecond != 5 {
		t.Errorf("Expected 5 days per second, got %v", loaded.Time.DaysPerSecond)
	}
	if len(loaded.Flight.Tiers) != 2 || loaded.Flight.Tiers[1].Name != "warp" {
		t.Errorf("Expected custom tiers, got %+v", loaded.Flight.Tiers)
	}
	if loaded.Input.KeyHold != input.DefaultKeyHold {
		t.Errorf("Expected key hold %v, got %v", input.DefaultKeyHold, loaded.Input.KeyHold)
	}
	if loaded.ResolvedStart() != [3]float64{5, 6, 7} {
		t.Errorf("Expected saved start, got %v", loaded.ResolvedStart())
	}
	if got := loaded.Input.ResolvedBindings()[input.GearUp].Positive; len(got) != 1 || got[0] != "w" {
		t.Errorf("Expected gear up bound to w, got %v", got)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	content := "scale: \"true\"\ntime:\n  orbitAcceleration: 3\ninput:\n  keyHold: 250ms\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Scale != ScaleTrue {
		t.Errorf("Expected scale true, got %q", cfg.Scale)
	}
	if cfg.Time.OrbitAcceleration != 3 {
		t.Errorf("Expected orbit acceleration 3, got %v", cfg.Time.OrbitAcceleration)
	}
	if cfg.Time.SpinAcceleration != 1 {
		t.Errorf("Expected default spin acceleration 1, got %v", cfg.Time.SpinAcceleration)
	}
	if cfg.Input.KeyHold != 250*time.Millisecond {
		t.Errorf("Expected key hold 250ms, got %v", cfg.Input.KeyHold)
	}
	if len(cfg.Flight.Tiers) != 3 {
		t.Errorf("Expected default tiers, got %d", len(cfg.Flight.Tiers))
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"scale": "galactic"}`), 0o644)
	if _, err := LoadConfig(invalid); err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestSaveConfig_BadPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "c.json"))
	if err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}

func TestEpochTime(t *testing.T) {
	tc := TimeConfig{}
	epoch, err := tc.EpochTime()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !epoch.Equal(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected J2000, got %v", epoch)
	}
}

func TestConfig_Unit(t *testing.T) {
	tests := []struct {
		scale string
		want  string
	}{
		{ScaleTrue, "km"},
		{ScaleDisplay, "u"},
	}

	for _, tt := range tests {
		t.Run(tt.scale, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Scale = tt.scale
			if got := cfg.Unit(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
