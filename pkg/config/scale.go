// pkg/config/scale.go
package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/entity"
)

// BodyConfig contains the static parameters of one body. Distances share the
// scale's unit; periods are in Earth days; tilt is in degrees.
type BodyConfig struct {
	Name           string       `json:"name" mapstructure:"name"`
	Kind           string       `json:"kind" mapstructure:"kind"`
	Radius         float64      `json:"radius" mapstructure:"radius"`
	Distance       float64      `json:"distance" mapstructure:"distance"`
	OrbitalPeriod  float64      `json:"orbitalPeriod" mapstructure:"orbitalPeriod"`
	RotationPeriod float64      `json:"rotationPeriod" mapstructure:"rotationPeriod"`
	AxialTilt      float64      `json:"axialTilt" mapstructure:"axialTilt"`
	Color          string       `json:"color,omitempty" mapstructure:"color"`
	Ring           *RingConfig  `json:"ring,omitempty" mapstructure:"ring"`
	Moons          []BodyConfig `json:"moons,omitempty" mapstructure:"moons"`
}

// RingConfig is a ring measured from the body's centre
type RingConfig struct {
	Inner float64 `json:"inner" mapstructure:"inner"`
	Outer float64 `json:"outer" mapstructure:"outer"`
}

// BeltConfig describes an asteroid belt revolving around the sun
type BeltConfig struct {
	Name          string  `json:"name" mapstructure:"name"`
	Count         int     `json:"count" mapstructure:"count"`
	MinRadius     float64 `json:"minRadius" mapstructure:"minRadius"`
	MaxRadius     float64 `json:"maxRadius" mapstructure:"maxRadius"`
	OrbitalPeriod float64 `json:"orbitalPeriod" mapstructure:"orbitalPeriod"`
	Seed          uint64  `json:"seed" mapstructure:"seed"`
}

func (b BodyConfig) validate(path string) []error {
	var errs []error
	where := fmt.Sprintf("%s.%s", path, b.Name)
	if b.Name == "" {
		errs = append(errs, fmt.Errorf("%s: body needs a name", path))
	}
	if _, ok := entity.ParseBodyKind(b.Kind); !ok {
		errs = append(errs, fmt.Errorf("%s: unknown kind %q", where, b.Kind))
	}
	if b.Radius < 0 || b.Distance < 0 {
		errs = append(errs, fmt.Errorf("%s: radius and distance must not be negative", where))
	}
	if b.OrbitalPeriod < 0 || b.RotationPeriod < 0 {
		errs = append(errs, fmt.Errorf("%s: periods must not be negative", where))
	}
	if b.Ring != nil && (b.Ring.Inner < 0 || b.Ring.Outer < b.Ring.Inner) {
		errs = append(errs, fmt.Errorf("%s: ring needs 0 <= inner <= outer", where))
	}
	for _, m := range b.Moons {
		errs = append(errs, m.validate(where+".moons")...)
	}
	return errs
}

// Build creates the body and its moons
func (b BodyConfig) Build() *entity.CelestialBody {
	kind, _ := entity.ParseBodyKind(b.Kind)
	body := entity.NewCelestialBody(entity.GenerateID(), b.Name, kind)
	body.Radius = b.Radius
	body.OrbitRadius = b.Distance
	body.OrbitalPeriod = b.OrbitalPeriod
	body.RotationPeriod = b.RotationPeriod
	body.AxialTilt = mgl64.DegToRad(b.AxialTilt)
	body.Color = b.Color
	if b.Ring != nil {
		body.Ring = &entity.Ring{InnerRadius: b.Ring.Inner, OuterRadius: b.Ring.Outer}
	}
	for _, m := range b.Moons {
		body.AddMoon(m.Build())
	}
	return body
}

// Build creates the belt
func (b BeltConfig) Build() *entity.AsteroidBelt {
	return entity.NewAsteroidBelt(entity.GenerateID(), b.Name, b.Count, b.MinRadius, b.MaxRadius, b.OrbitalPeriod, b.Seed)
}

// BuildSystem creates every top-level body with its moons attached
func BuildSystem(bodies []BodyConfig) []*entity.CelestialBody {
	system := make([]*entity.CelestialBody, 0, len(bodies))
	for _, b := range bodies {
		system = append(system, b.Build())
	}
	return system
}

// Orbital and rotation periods in Earth days, shared by both scales
const (
	mercuryYear = 88
	venusYear   = 225
	earthYear   = 365
	marsYear    = 687
	jupiterYear = 4380
	saturnYear  = 10767.5
	uranusYear  = 30660
	neptuneYear = 60225
	plutoYear   = 90520

	// The main belt turns at a tenth of Earth's rate, the Kuiper belt with Pluto.
	mainBeltYear   = 3650
	kuiperBeltYear = plutoYear
)

const million = 1e6

// DefaultStartPosition returns where the craft starts for a scale. The display
// start looks at the sun from just inside Jupiter's orbit; the true-scale
// start sits 1e8 km out, slightly above the orbital plane.
func DefaultStartPosition(scale string) [3]float64 {
	if scale == ScaleTrue {
		return [3]float64{100 * million, 100000, 0}
	}
	return [3]float64{0, 20, 190}
}

// TrueScale returns the solar system in kilometres and days
func TrueScale() []BodyConfig {
	return []BodyConfig{
		{Name: "sun", Kind: "star", Radius: 696340, RotationPeriod: 25, Color: "#ffcc33"},
		{Name: "mercury", Radius: 2439.7, Distance: 57.9 * million, OrbitalPeriod: mercuryYear, RotationPeriod: 58.6, AxialTilt: 0.034, Color: "#9c9c9c"},
		{Name: "venus", Radius: 6051.8, Distance: 108.2 * million, OrbitalPeriod: venusYear, RotationPeriod: 243, AxialTilt: 177.4, Color: "#e3bb76"},
		{Name: "earth", Radius: 6371, Distance: 150 * million, OrbitalPeriod: earthYear, RotationPeriod: 1, AxialTilt: 23.5, Color: "#2f6fdc",
			Moons: []BodyConfig{
				{Name: "moon", Kind: "moon", Radius: 1737.4, Distance: 384400, OrbitalPeriod: 27, RotationPeriod: 27, Color: "#cfcfcf"},
			}},
		{Name: "mars", Radius: 3389.5, Distance: 227.9 * million, OrbitalPeriod: marsYear, RotationPeriod: 1.03, AxialTilt: 25.19, Color: "#c1440e",
			Moons: []BodyConfig{
				{Name: "phobos", Kind: "moon", Radius: 11.267, Distance: 9377, OrbitalPeriod: 0.319, RotationPeriod: 0.319, Color: "#8a7f74"},
				{Name: "deimos", Kind: "moon", Radius: 6.2, Distance: 23460, OrbitalPeriod: 1.26244, RotationPeriod: 1.26244, Color: "#a39a8f"},
			}},
		{Name: "jupiter", Radius: 69911, Distance: 778.5 * million, OrbitalPeriod: jupiterYear, RotationPeriod: 0.41, AxialTilt: 3.13, Color: "#d8ca9d",
			Moons: []BodyConfig{
				{Name: "ganymede", Kind: "moon", Radius: 5262.4, Distance: 1070400, OrbitalPeriod: 7.1545529, RotationPeriod: 7.1545529, Color: "#9e9284"},
				{Name: "callisto", Kind: "moon", Radius: 4820.3, Distance: 1882700, OrbitalPeriod: 16.6890184, RotationPeriod: 16.6890184, Color: "#6b6357"},
				{Name: "europa", Kind: "moon", Radius: 3121.6, Distance: 671100, OrbitalPeriod: 3.551181, RotationPeriod: 3.551181, Color: "#c9b99a"},
				{Name: "io", Kind: "moon", Radius: 3643.2, Distance: 421800, OrbitalPeriod: 1.769, RotationPeriod: 1.769, Color: "#e8d35a"},
			}},
		{Name: "saturn", Radius: 58232, Distance: 1433.5 * million, OrbitalPeriod: saturnYear, RotationPeriod: 0.45, AxialTilt: 26.73, Color: "#e3d9a6",
			Ring: &RingConfig{Inner: 74500, Outer: 140220}},
		{Name: "uranus", Radius: 25362, Distance: 2872 * million, OrbitalPeriod: uranusYear, RotationPeriod: 0.72, AxialTilt: 97.77, Color: "#9fe3e6",
			Ring: &RingConfig{Inner: 41837, Outer: 51149}},
		{Name: "neptune", Radius: 24622, Distance: 4495 * million, OrbitalPeriod: neptuneYear, RotationPeriod: 0.67, AxialTilt: 28.32, Color: "#3f54ba"},
		{Name: "pluto", Kind: "dwarf_planet", Radius: 1188.3, Distance: 5906 * million, OrbitalPeriod: plutoYear, RotationPeriod: 6.4, AxialTilt: 122.53, Color: "#c2a384"},
	}
}

// TrueScaleBelts returns the main and Kuiper belts in kilometres
func TrueScaleBelts() []BeltConfig {
	return []BeltConfig{
		{Name: "main belt", Count: 1000, MinRadius: 329 * million, MaxRadius: 479 * million, OrbitalPeriod: mainBeltYear, Seed: 1},
		{Name: "kuiper belt", Count: 3000, MinRadius: 4488 * million, MaxRadius: 7480 * million, OrbitalPeriod: kuiperBeltYear, Seed: 2},
	}
}

// DisplayScale returns the compressed layout used for sightseeing: planets a
// few hundred units apart with exaggerated sizes.
func DisplayScale() []BodyConfig {
	return []BodyConfig{
		{Name: "sun", Kind: "star", Radius: 697.0 / 40, RotationPeriod: 25, Color: "#ffcc33"},
		{Name: "mercury", Radius: 2.4, Distance: 40, OrbitalPeriod: mercuryYear, RotationPeriod: 58.6, Color: "#9c9c9c"},
		{Name: "venus", Radius: 6.1, Distance: 65, OrbitalPeriod: venusYear, RotationPeriod: 243, AxialTilt: 3, Color: "#e3bb76"},
		{Name: "earth", Radius: 6.4, Distance: 90, OrbitalPeriod: earthYear, RotationPeriod: 1, AxialTilt: 23.5, Color: "#2f6fdc",
			Moons: []BodyConfig{
				{Name: "moon", Kind: "moon", Radius: 1.6, Distance: 10, OrbitalPeriod: 27, RotationPeriod: 27, Color: "#cfcfcf"},
			}},
		{Name: "mars", Radius: 3.4, Distance: 115, OrbitalPeriod: marsYear, RotationPeriod: 1.03, AxialTilt: 25, Color: "#c1440e",
			Moons: []BodyConfig{
				{Name: "phobos", Kind: "moon", Radius: 0.5, Distance: 5, OrbitalPeriod: 0.319, RotationPeriod: 0.319, Color: "#8a7f74"},
				{Name: "deimos", Kind: "moon", Radius: 0.3, Distance: 9, OrbitalPeriod: 1.26244, RotationPeriod: 1.26244, Color: "#a39a8f"},
			}},
		{Name: "jupiter", Radius: 69.0 / 4, Distance: 200, OrbitalPeriod: jupiterYear, RotationPeriod: 0.41, AxialTilt: 3, Color: "#d8ca9d",
			Moons: []BodyConfig{
				{Name: "io", Kind: "moon", Radius: 1.6, Distance: 20, OrbitalPeriod: 1.769, RotationPeriod: 1.769, Color: "#e8d35a"},
				{Name: "europa", Kind: "moon", Radius: 1.4, Distance: 24, OrbitalPeriod: 3.551181, RotationPeriod: 3.551181, Color: "#c9b99a"},
				{Name: "ganymede", Kind: "moon", Radius: 2, Distance: 28, OrbitalPeriod: 7.1545529, RotationPeriod: 7.1545529, Color: "#9e9284"},
				{Name: "callisto", Kind: "moon", Radius: 1.7, Distance: 32, OrbitalPeriod: 16.6890184, RotationPeriod: 16.6890184, Color: "#6b6357"},
			}},
		{Name: "saturn", Radius: 58.0 / 4, Distance: 270, OrbitalPeriod: saturnYear, RotationPeriod: 0.45, AxialTilt: 26, Color: "#e3d9a6",
			Ring: &RingConfig{Inner: 18, Outer: 29}},
		{Name: "uranus", Radius: 25.0 / 4, Distance: 320, OrbitalPeriod: uranusYear, RotationPeriod: 0.72, AxialTilt: 82, Color: "#9fe3e6",
			Ring: &RingConfig{Inner: 6, Outer: 8}},
		{Name: "neptune", Radius: 24.0 / 4, Distance: 340, OrbitalPeriod: neptuneYear, RotationPeriod: 0.67, AxialTilt: 28, Color: "#3f54ba"},
		{Name: "pluto", Kind: "dwarf_planet", Radius: 1, Distance: 350, OrbitalPeriod: plutoYear, RotationPeriod: 6.4, AxialTilt: 57, Color: "#c2a384"},
	}
}

// DisplayScaleBelts returns the belts for the display layout
func DisplayScaleBelts() []BeltConfig {
	return []BeltConfig{
		{Name: "main belt", Count: 1000, MinRadius: 130, MaxRadius: 160, OrbitalPeriod: mainBeltYear, Seed: 1},
		{Name: "kuiper belt", Count: 3000, MinRadius: 352, MaxRadius: 370, OrbitalPeriod: kuiperBeltYear, Seed: 2},
	}
}
