// pkg/hud/pick.go
package hud

import "math"

// Target is a body's disc as drawn this frame
type Target struct {
	Name     string
	X, Y     float64
	Radius   float64 // on-screen, in rows or pixels
	Distance float64
}

// Picker collects the discs drawn in a frame and picks the one under a point
type Picker struct {
	// Aspect is the width of one horizontal screen unit in vertical units
	Aspect float64
	// Slack widens every disc so that distant dots can still be picked
	Slack float64

	targets []Target
}

// Reset forgets the previous frame's targets
func (p *Picker) Reset() {
	p.targets = p.targets[:0]
}

// Add records a drawn disc
func (p *Picker) Add(t Target) {
	p.targets = append(p.targets, t)
}

// Pick returns the nearest body whose disc covers (x, y)
func (p *Picker) Pick(x, y float64) (Target, bool) {
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	var best Target
	found := false
	for _, t := range p.targets {
		if math.Hypot((t.X-x)*aspect, t.Y-y) > t.Radius+p.Slack {
			continue
		}
		if !found || t.Distance < best.Distance {
			best, found = t, true
		}
	}
	return best, found
}
