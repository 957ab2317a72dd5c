// Package flight turns per-frame control snapshots into craft motion.
//
// The controller owns the FlightState exclusively. It pulls one snapshot per
// frame from an input.Source, shifts gear on edge-triggered intents, rotates
// the craft roll first, then yaw about the current up axis, then pitch about
// the current right axis, and translates it in its own frame. There is no
// inertia: speed is recomputed from scratch every frame.
package flight

import (
	"errors"
	"fmt"
)

// Tier is one selectable speed magnitude
type Tier struct {
	Name      string  `json:"name" mapstructure:"name"`
	Magnitude float64 `json:"magnitude" mapstructure:"magnitude"`
}

// Default tier magnitudes in distance units per second
const (
	NormalSpeed     = 100.0
	LightSpeed      = 299792.46
	SupraLightSpeed = 50000000.0
)

// ErrNoTiers is returned when a gearbox is built without tiers
var ErrNoTiers = errors.New("gearbox needs at least one tier")

// DefaultTiers returns normal, light and supra-light
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "normal", Magnitude: NormalSpeed},
		{Name: "light", Magnitude: LightSpeed},
		{Name: "supraLight", Magnitude: SupraLightSpeed},
	}
}

// Gearbox cycles through a fixed list of tiers
type Gearbox struct {
	tiers []Tier
	index int
}

// NewGearbox creates a gearbox in its first tier
func NewGearbox(tiers []Tier) (*Gearbox, error) {
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}
	for _, t := range tiers {
		if t.Magnitude <= 0 {
			return nil, fmt.Errorf("tier %q: magnitude must be positive, got %v", t.Name, t.Magnitude)
		}
	}
	copied := make([]Tier, len(tiers))
	copy(copied, tiers)
	return &Gearbox{tiers: copied}, nil
}

// Up shifts to the next tier, wrapping from the last to the first
func (g *Gearbox) Up() Tier {
	g.index = (g.index + 1) % len(g.tiers)
	return g.Current()
}

// Down shifts to the previous tier, wrapping from the first to the last
func (g *Gearbox) Down() Tier {
	n := len(g.tiers)
	g.index = (g.index - 1 + n) % n
	return g.Current()
}

// Current returns the selected tier
func (g *Gearbox) Current() Tier {
	return g.tiers[g.index]
}

// Index returns the selected tier position
func (g *Gearbox) Index() int {
	return g.index
}

// Len returns the number of tiers
func (g *Gearbox) Len() int {
	return len(g.tiers)
}

// Tiers returns a copy of the tier list
func (g *Gearbox) Tiers() []Tier {
	out := make([]Tier, len(g.tiers))
	copy(out, g.tiers)
	return out
}
