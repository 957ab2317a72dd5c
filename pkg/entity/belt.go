// pkg/entity/belt.go
package entity

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// asteroid is one rock of a belt in polar form at orbital angle zero
type asteroid struct {
	angle  float64
	radius float64
	height float64
}

// AsteroidBelt is a ring of small bodies revolving as one group around the origin
type AsteroidBelt struct {
	BaseEntity
	MinRadius     float64
	MaxRadius     float64
	OrbitalPeriod float64
	OrbitalAngle  float64

	rocks []asteroid
}

// NewAsteroidBelt scatters count asteroids between minRadius and maxRadius.
// The same seed always produces the same belt.
func NewAsteroidBelt(id ID, name string, count int, minRadius, maxRadius, period float64, seed uint64) *AsteroidBelt {
	if maxRadius < minRadius {
		minRadius, maxRadius = maxRadius, minRadius
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	thickness := (maxRadius - minRadius) * 0.1
	rocks := make([]asteroid, count)
	for i := range rocks {
		rocks[i] = asteroid{
			angle:  rng.Float64() * 2 * math.Pi,
			radius: minRadius + rng.Float64()*(maxRadius-minRadius),
			height: (rng.Float64()*2 - 1) * thickness,
		}
	}

	return &AsteroidBelt{
		BaseEntity: BaseEntity{
			ID:          id,
			Name:        name,
			Orientation: mgl64.QuatIdent(),
			Active:      true,
		},
		MinRadius:     minRadius,
		MaxRadius:     maxRadius,
		OrbitalPeriod: period,
		rocks:         rocks,
	}
}

// Len returns the number of asteroids in the belt
func (b *AsteroidBelt) Len() int {
	return len(b.rocks)
}

// Asteroids returns the current world position of every asteroid
func (b *AsteroidBelt) Asteroids() []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, len(b.rocks))
	for i, r := range b.rocks {
		a := r.angle + b.OrbitalAngle
		positions[i] = mgl64.Vec3{r.radius * math.Cos(a), r.height, r.radius * math.Sin(a)}
	}
	return positions
}
