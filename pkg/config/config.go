// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-solarflight/pkg/input"
)

// EnvPrefix prefixes every environment override, e.g. SOLARFLIGHT_SCALE
const EnvPrefix = "SOLARFLIGHT"

// Unit scales
const (
	ScaleTrue    = "true"
	ScaleDisplay = "display"
)

// Config contains configuration for a flythrough
type Config struct {
	Scale  string       `json:"scale" mapstructure:"scale"`
	Bodies []BodyConfig `json:"bodies,omitempty" mapstructure:"bodies"`
	Belts  []BeltConfig `json:"belts,omitempty" mapstructure:"belts"`
	Flight FlightConfig `json:"flight" mapstructure:"flight"`
	Time   TimeConfig   `json:"time" mapstructure:"time"`
	Render RenderConfig `json:"render" mapstructure:"render"`
	Input  InputConfig  `json:"input" mapstructure:"input"`
	Server ServerConfig `json:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" mapstructure:"log"`
}

// TierConfig is one gearbox speed
type TierConfig struct {
	Name      string  `json:"name" mapstructure:"name"`
	Magnitude float64 `json:"magnitude" mapstructure:"magnitude"`
}

// FlightConfig contains craft handling configuration
type FlightConfig struct {
	Tiers            []TierConfig `json:"tiers" mapstructure:"tiers"`
	RotationRate     float64      `json:"rotationRate" mapstructure:"rotationRate"`
	ShakeThreshold   float64      `json:"shakeThreshold" mapstructure:"shakeThreshold"`
	MouseSensitivity float64      `json:"mouseSensitivity" mapstructure:"mouseSensitivity"`
	StartPosition    *[3]float64  `json:"startPosition,omitempty" mapstructure:"startPosition"`
	CockpitShown     bool         `json:"cockpitShown" mapstructure:"cockpitShown"`
}

// TimeConfig controls how fast simulated time passes
type TimeConfig struct {
	DaysPerSecond     float64 `json:"daysPerSecond" mapstructure:"daysPerSecond"`
	OrbitAcceleration float64 `json:"orbitAcceleration" mapstructure:"orbitAcceleration"`
	SpinAcceleration  float64 `json:"spinAcceleration" mapstructure:"spinAcceleration"`
	Epoch             string  `json:"epoch" mapstructure:"epoch"`
}

// RenderConfig contains front-end configuration
type RenderConfig struct {
	FOV            float64 `json:"fov" mapstructure:"fov"`
	SunIntensity   float64 `json:"sunIntensity" mapstructure:"sunIntensity"`
	FPS            int     `json:"fps" mapstructure:"fps"`
	TerminalWidth  int     `json:"terminalWidth" mapstructure:"terminalWidth"`
	TerminalHeight int     `json:"terminalHeight" mapstructure:"terminalHeight"`
	WindowWidth    int     `json:"windowWidth" mapstructure:"windowWidth"`
	WindowHeight   int     `json:"windowHeight" mapstructure:"windowHeight"`
	Audio          bool    `json:"audio" mapstructure:"audio"`

	// TextureDir and TextureURL name where body textures come from. Bodies
	// without a texture are drawn procedurally.
	TextureDir string `json:"textureDir,omitempty" mapstructure:"textureDir"`
	TextureURL string `json:"textureURL,omitempty" mapstructure:"textureURL"`
}

// InputConfig contains key handling configuration
type InputConfig struct {
	KeyHold   time.Duration            `json:"keyHold" mapstructure:"keyHold"`
	MouseLook bool                     `json:"mouseLook" mapstructure:"mouseLook"`
	Bindings  map[string]input.Binding `json:"bindings,omitempty" mapstructure:"bindings"`
}

// ServerConfig contains SSH and metrics endpoint configuration
type ServerConfig struct {
	Host        string        `json:"host" mapstructure:"host"`
	Port        int           `json:"port" mapstructure:"port"`
	HostKeyPath string        `json:"hostKeyPath" mapstructure:"hostKeyPath"`
	MetricsAddr string        `json:"metricsAddr" mapstructure:"metricsAddr"`
	MaxSessions int           `json:"maxSessions" mapstructure:"maxSessions"`
	IdleTimeout time.Duration `json:"idleTimeout" mapstructure:"idleTimeout"`

	// ConnectsPerMinute limits new sessions per remote host; 0 disables it
	ConnectsPerMinute int `json:"connectsPerMinute" mapstructure:"connectsPerMinute"`
}

// LogConfig selects the log level and destination
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

// DefaultEpoch is J2000.0
const DefaultEpoch = "2000-01-01T12:00:00Z"

// DefaultConfig returns a default configuration using the display scale
func DefaultConfig() *Config {
	return &Config{
		Scale: ScaleDisplay,
		Flight: FlightConfig{
			Tiers: []TierConfig{
				{Name: "normal", Magnitude: 100},
				{Name: "light", Magnitude: 299792.46},
				{Name: "supraLight", Magnitude: 50000000},
			},
			RotationRate:     1,
			ShakeThreshold:   100,
			MouseSensitivity: 0.002,
			CockpitShown:     true,
		},
		Time: TimeConfig{
			DaysPerSecond:     1,
			OrbitAcceleration: 1,
			SpinAcceleration:  1,
			Epoch:             DefaultEpoch,
		},
		Render: RenderConfig{
			FOV:            75,
			SunIntensity:   5,
			FPS:            60,
			TerminalWidth:  100,
			TerminalHeight: 32,
			WindowWidth:    1280,
			WindowHeight:   720,
			Audio:          true,
		},
		Input: InputConfig{
			KeyHold:   input.DefaultKeyHold,
			MouseLook: true,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2323,
			HostKeyPath: ".ssh/solarflight_ed25519",
			MaxSessions: 16,
			IdleTimeout: 10 * time.Minute,

			ConnectsPerMinute: 10,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// LoadConfig loads a configuration file layered over the defaults, then
// applies SOLARFLIGHT_* environment overrides. An empty path loads defaults
// and environment only. The file format follows the extension.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
			v.SetConfigType("json")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigFromEnv loads the defaults with environment overrides applied
func LoadConfigFromEnv() (*Config, error) {
	return LoadConfig("")
}

// newViper registers every scalar default so that environment variables can
// override keys that the config file does not mention.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := map[string]interface{}{
		"scale":                    cfg.Scale,
		"flight.rotationRate":      cfg.Flight.RotationRate,
		"flight.shakeThreshold":    cfg.Flight.ShakeThreshold,
		"flight.mouseSensitivity":  cfg.Flight.MouseSensitivity,
		"flight.cockpitShown":      cfg.Flight.CockpitShown,
		"time.daysPerSecond":       cfg.Time.DaysPerSecond,
		"time.orbitAcceleration":   cfg.Time.OrbitAcceleration,
		"time.spinAcceleration":    cfg.Time.SpinAcceleration,
		"time.epoch":               cfg.Time.Epoch,
		"render.fov":               cfg.Render.FOV,
		"render.sunIntensity":      cfg.Render.SunIntensity,
		"render.fps":               cfg.Render.FPS,
		"render.terminalWidth":     cfg.Render.TerminalWidth,
		"render.terminalHeight":    cfg.Render.TerminalHeight,
		"render.windowWidth":       cfg.Render.WindowWidth,
		"render.windowHeight":      cfg.Render.WindowHeight,
		"render.audio":             cfg.Render.Audio,
		"render.textureDir":        cfg.Render.TextureDir,
		"render.textureURL":        cfg.Render.TextureURL,
		"input.keyHold":            cfg.Input.KeyHold,
		"input.mouseLook":          cfg.Input.MouseLook,
		"server.host":              cfg.Server.Host,
		"server.port":              cfg.Server.Port,
		"server.hostKeyPath":       cfg.Server.HostKeyPath,
		"server.metricsAddr":       cfg.Server.MetricsAddr,
		"server.maxSessions":       cfg.Server.MaxSessions,
		"server.idleTimeout":       cfg.Server.IdleTimeout,
		"server.connectsPerMinute": cfg.Server.ConnectsPerMinute,
		"log.level":                cfg.Log.Level,
		"log.file":                 cfg.Log.File,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// SaveConfig saves a configuration to a file as indented JSON
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Acceleration bounds shared by both acceleration settings
const (
	MinAcceleration = 0.0
	MaxAcceleration = 10.0
)

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var errs []error

	if c.Scale != ScaleTrue && c.Scale != ScaleDisplay {
		errs = append(errs, fmt.Errorf("scale must be %q or %q, got %q", ScaleTrue, ScaleDisplay, c.Scale))
	}
	for _, b := range c.Bodies {
		errs = append(errs, b.validate("bodies")...)
	}
	for _, b := range c.Belts {
		if b.Count < 0 || b.MinRadius < 0 || b.MaxRadius < 0 || b.OrbitalPeriod < 0 {
			errs = append(errs, fmt.Errorf("belt %q: counts, radii and period must not be negative", b.Name))
		}
	}

	if len(c.Flight.Tiers) == 0 {
		errs = append(errs, errors.New("flight.tiers must not be empty"))
	}
	for _, t := range c.Flight.Tiers {
		if t.Magnitude <= 0 {
			errs = append(errs, fmt.Errorf("flight tier %q: magnitude must be positive", t.Name))
		}
	}
	if c.Flight.RotationRate <= 0 {
		errs = append(errs, errors.New("flight.rotationRate must be positive"))
	}

	if c.Time.DaysPerSecond < 0 {
		errs = append(errs, errors.New("time.daysPerSecond must not be negative"))
	}
	for name, a := range map[string]float64{
		"time.orbitAcceleration": c.Time.OrbitAcceleration,
		"time.spinAcceleration":  c.Time.SpinAcceleration,
	} {
		if a < MinAcceleration || a > MaxAcceleration {
			errs = append(errs, fmt.Errorf("%s must be within [%v, %v], got %v", name, MinAcceleration, MaxAcceleration, a))
		}
	}
	if _, err := c.Time.EpochTime(); err != nil {
		errs = append(errs, err)
	}

	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		errs = append(errs, fmt.Errorf("render.fov must be within (0, 180), got %v", c.Render.FOV))
	}
	if c.Render.SunIntensity < 1 || c.Render.SunIntensity > 10 {
		errs = append(errs, fmt.Errorf("render.sunIntensity must be within [1, 10], got %v", c.Render.SunIntensity))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, errors.New("render.fps must be positive"))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.ConnectsPerMinute < 0 {
		errs = append(errs, errors.New("server.connectsPerMinute must not be negative"))
	}

	return errors.Join(errs...)
}

// EpochTime parses the simulation start date
func (t TimeConfig) EpochTime() (time.Time, error) {
	if t.Epoch == "" {
		return time.Parse(time.RFC3339, DefaultEpoch)
	}
	epoch, err := time.Parse(time.RFC3339, t.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.epoch: %w", err)
	}
	return epoch, nil
}

// TierNames returns the configured gearbox tier names in order
func (f FlightConfig) TierNames() []string {
	names := make([]string, len(f.Tiers))
	for i, t := range f.Tiers {
		names[i] = t.Name
	}
	return names
}

// ResolvedBindings returns the default key map with configured overrides
func (i InputConfig) ResolvedBindings() input.Bindings {
	return input.DefaultBindings().Merge(i.Bindings)
}

// ResolvedBodies returns the configured bodies, or the selected scale's catalogue
func (c *Config) ResolvedBodies() []BodyConfig {
	if len(c.Bodies) > 0 {
		return c.Bodies
	}
	if c.Scale == ScaleTrue {
		return TrueScale()
	}
	return DisplayScale()
}

// ResolvedBelts returns the configured belts, or the selected scale's belts
func (c *Config) ResolvedBelts() []BeltConfig {
	if len(c.Belts) > 0 {
		return c.Belts
	}
	if c.Scale == ScaleTrue {
		return TrueScaleBelts()
	}
	return DisplayScaleBelts()
}

// ResolvedStart returns the configured start point, or the selected scale's
func (c *Config) ResolvedStart() [3]float64 {
	if c.Flight.StartPosition != nil {
		return *c.Flight.StartPosition
	}
	return DefaultStartPosition(c.Scale)
}

// Unit returns the distance unit shown next to HUD figures
func (c *Config) Unit() string {
	if c.Scale == ScaleTrue {
		return "km"
	}
	return "u"
}
