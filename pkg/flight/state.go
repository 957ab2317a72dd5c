// pkg/flight/state.go
package flight

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// State is the craft's authoritative flight state. Only the Controller
// writes it; everyone else gets a copy.
type State struct {
	Pose      physics.Pose
	Velocity  mgl64.Vec3 // this frame's world velocity
	Speed     float64
	Tier      Tier
	TierIndex int
}

// Position returns the craft position
func (s State) Position() mgl64.Vec3 {
	return s.Pose.Position
}

// Heading returns the unit forward direction, or false when the craft has
// no usable orientation.
func (s State) Heading() (mgl64.Vec3, bool) {
	return physics.SafeNormalize(s.Pose.Forward())
}

// Direction returns the unit direction of travel. A stationary craft has
// none and returns false.
func (s State) Direction() (mgl64.Vec3, bool) {
	return physics.SafeNormalize(s.Velocity)
}
