// pkg/input/snapshot.go
package input

// Control names one intent the flight controller understands
type Control string

const (
	Roll          Control = "roll"
	Yaw           Control = "yaw"
	Pitch         Control = "pitch"
	Forward       Control = "forward"
	Strafe        Control = "strafe"
	GearUp        Control = "gearUp"
	GearDown      Control = "gearDown"
	ToggleCockpit Control = "toggleCockpit"
	PointerLock   Control = "pointerLock"
	Quit          Control = "quit"
)

// Axes are the controls with a signed continuous intent
var Axes = []Control{Roll, Yaw, Pitch, Forward, Strafe}

// Buttons are the edge-triggered controls
var Buttons = []Control{GearUp, GearDown, ToggleCockpit, PointerLock, Quit}

// Snapshot is one frame's worth of control intents.
//
// Axis intents are in [-1, 1]: positive roll rolls left, positive yaw turns
// left, positive pitch raises the nose, positive forward moves ahead and
// positive strafe moves right. Button intents are true only on the frame the
// key went down. LookYaw and LookPitch are extra rotations in radians from a
// look-capable source and follow the same signs.
type Snapshot struct {
	Roll    float64
	Yaw     float64
	Pitch   float64
	Forward float64
	Strafe  float64

	GearUp        bool
	GearDown      bool
	ToggleCockpit bool
	PointerLock   bool
	Quit          bool

	LookYaw   float64
	LookPitch float64
}

// Value returns the signed intent for a control; buttons read as 0 or 1.
func (s Snapshot) Value(c Control) float64 {
	switch c {
	case Roll:
		return s.Roll
	case Yaw:
		return s.Yaw
	case Pitch:
		return s.Pitch
	case Forward:
		return s.Forward
	case Strafe:
		return s.Strafe
	case GearUp:
		return boolIntent(s.GearUp)
	case GearDown:
		return boolIntent(s.GearDown)
	case ToggleCockpit:
		return boolIntent(s.ToggleCockpit)
	case PointerLock:
		return boolIntent(s.PointerLock)
	case Quit:
		return boolIntent(s.Quit)
	}
	return 0
}

// Moving reports whether any translation intent is set
func (s Snapshot) Moving() bool {
	return s.Forward != 0 || s.Strafe != 0
}

func boolIntent(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
