// pkg/flight/controller.go
package flight

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/event"
	"github.com/opd-ai/go-solarflight/pkg/input"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// DefaultRotationRate is the base turn rate in radians per second
const DefaultRotationRate = 1.0

// rollAxis points out of the back of the craft, so a positive roll lowers the left wing.
var rollAxis = mgl64.Vec3{0, 0, 1}

// Options configures a Controller
type Options struct {
	Tiers         []Tier
	RotationRate  float64
	StartPosition mgl64.Vec3
	CockpitShown  bool
}

// DefaultOptions returns the standard gearbox, turn rate and start point
func DefaultOptions() Options {
	return Options{
		Tiers:         DefaultTiers(),
		RotationRate:  DefaultRotationRate,
		StartPosition: mgl64.Vec3{0, 20, 190},
		CockpitShown:  true,
	}
}

// Frame summarises what happened during one Update
type Frame struct {
	Snapshot       input.Snapshot
	Shifted        bool
	CockpitToggled bool
	Quit           bool
}

// Controller is the sole writer of the flight state
type Controller struct {
	source  input.Source
	gearbox *Gearbox
	rate    float64
	bus     *event.Bus

	state   State
	cockpit bool
}

// NewController creates a controller reading from source. bus may be nil.
func NewController(source input.Source, opts Options, bus *event.Bus) (*Controller, error) {
	if source == nil {
		return nil, fmt.Errorf("flight controller needs an input source")
	}
	if len(opts.Tiers) == 0 {
		opts.Tiers = DefaultTiers()
	}
	gearbox, err := NewGearbox(opts.Tiers)
	if err != nil {
		return nil, fmt.Errorf("failed to build gearbox: %w", err)
	}
	if opts.RotationRate <= 0 {
		opts.RotationRate = DefaultRotationRate
	}

	c := &Controller{
		source:  source,
		gearbox: gearbox,
		rate:    opts.RotationRate,
		bus:     bus,
		cockpit: opts.CockpitShown,
	}
	c.state.Pose = physics.NewPose(opts.StartPosition)
	c.syncTier()
	return c, nil
}

// Source returns the injected input source
func (c *Controller) Source() input.Source {
	return c.source
}

// Update polls the source once and applies the snapshot
func (c *Controller) Update(dt float64) Frame {
	return c.Apply(dt, c.source.Current())
}

// Apply advances the flight state by dt seconds under the given intents
func (c *Controller) Apply(dt float64, snap input.Snapshot) Frame {
	if dt < 0 {
		dt = 0
	}
	frame := Frame{Snapshot: snap, Quit: snap.Quit}

	if snap.GearUp {
		c.shift(+1)
		frame.Shifted = true
	}
	if snap.GearDown {
		c.shift(-1)
		frame.Shifted = true
	}
	if snap.ToggleCockpit {
		c.cockpit = !c.cockpit
		frame.CockpitToggled = true
		c.publish(event.NewToggleEvent(event.CockpitToggled, c, c.cockpit))
	}

	c.rotate(dt, snap)
	c.translate(dt, snap)
	return frame
}

// rotate applies roll, then yaw about the rolled up axis, then pitch about
// the rolled and yawed right axis. Look deltas are mouse angles and are not
// clamped.
func (c *Controller) rotate(dt float64, snap input.Snapshot) {
	step := c.rate * dt
	pose := &c.state.Pose
	pose.RotateLocal(rollAxis, physics.ClampUnit(snap.Roll)*step)
	pose.RotateLocal(physics.AxisUp, physics.ClampUnit(snap.Yaw)*step+snap.LookYaw)
	pose.RotateLocal(physics.AxisRight, physics.ClampUnit(snap.Pitch)*step+snap.LookPitch)
}

func (c *Controller) translate(dt float64, snap input.Snapshot) {
	magnitude := c.gearbox.Current().Magnitude
	local := mgl64.Vec3{
		physics.ClampUnit(snap.Strafe),
		0,
		-physics.ClampUnit(snap.Forward),
	}.Mul(magnitude)

	velocity := c.state.Pose.ToWorld(local)
	c.state.Velocity = velocity
	c.state.Speed = velocity.Len()
	c.state.Pose.Position = c.state.Pose.Position.Add(velocity.Mul(dt))
}

func (c *Controller) shift(direction int) {
	var tier Tier
	if direction > 0 {
		tier = c.gearbox.Up()
	} else {
		tier = c.gearbox.Down()
	}
	c.syncTier()
	c.publish(event.NewGearEvent(c, tier.Name, tier.Magnitude, c.gearbox.Index(), direction))
}

func (c *Controller) syncTier() {
	c.state.Tier = c.gearbox.Current()
	c.state.TierIndex = c.gearbox.Index()
}

func (c *Controller) publish(ev event.Event) {
	if c.bus != nil {
		c.bus.Publish(ev)
	}
}

// State returns a copy of the flight state
func (c *Controller) State() State {
	return c.state
}

// CockpitVisible reports whether the cockpit overlay is shown
func (c *Controller) CockpitVisible() bool {
	return c.cockpit
}

// Gearbox exposes the tier list and selection
func (c *Controller) Gearbox() *Gearbox {
	return c.gearbox
}
