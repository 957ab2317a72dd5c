// pkg/flight/shake.go
package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultShakeThreshold is the speed above which the cockpit starts to shake
const DefaultShakeThreshold = 100.0

// shakeFloor keeps the logarithm's argument positive
const shakeFloor = 95.0

// Shake jitters the cockpit model at high speed. It is cosmetic only and
// never touches the flight state.
type Shake struct {
	Threshold float64
	Amplitude float64
}

// DefaultShake returns the standard threshold and amplitude
func DefaultShake() Shake {
	return Shake{Threshold: DefaultShakeThreshold, Amplitude: 0.001}
}

// Apply returns the next cockpit offset. A stationary craft snaps back to
// base; below the threshold the offset is left where it is.
func (s Shake) Apply(offset, base mgl64.Vec3, speed, elapsed float64) mgl64.Vec3 {
	if speed == 0 {
		return base
	}
	if speed <= s.Threshold || speed <= shakeFloor {
		return offset
	}
	strength := math.Log(speed-shakeFloor) * s.Amplitude
	offset[0] += math.Sin(elapsed*3*speed/50) * strength
	offset[1] += math.Cos(elapsed*2*speed/50) * strength
	return offset
}
