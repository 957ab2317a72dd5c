// Package hud publishes read-only cockpit telemetry once per frame: speed,
// position, the selected gear and screen-space labels for named bodies.
package hud

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/flight"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// TrackedLabels lists the bodies that get a cockpit label, in display order
var TrackedLabels = []string{
	"sun", "mercury", "venus", "earth", "moon", "mars", "phobos", "deimos",
	"jupiter", "ganymede", "callisto", "europa", "io",
	"saturn", "uranus", "neptune", "pluto",
}

// Label is one body's screen-space marker
type Label struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Distance float64 `json:"distance"`
	Visible  bool    `json:"visible"`
}

// Telemetry is the HUD snapshot for one frame
type Telemetry struct {
	Speed          float64    `json:"speed"`
	Position       mgl64.Vec3 `json:"position"`
	Gear           string     `json:"gear"`
	GearMagnitude  float64    `json:"gearMagnitude"`
	CockpitVisible bool       `json:"cockpitVisible"`
	JulianDate     float64    `json:"julianDate"`
	Labels         []Label    `json:"labels"`
}

// HUD holds the latest published telemetry. Front ends may read it from
// another goroutine.
type HUD struct {
	camera  Camera
	tracked map[string]int

	mu        sync.RWMutex
	telemetry Telemetry
}

// New creates a HUD projecting labels through camera
func New(camera Camera) *HUD {
	tracked := make(map[string]int, len(TrackedLabels))
	for i, id := range TrackedLabels {
		tracked[id] = i
	}
	return &HUD{camera: camera, tracked: tracked}
}

// SetViewport resizes the label projection
func (h *HUD) SetViewport(width, height float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.camera.Width = width
	h.camera.Height = height
}

// Camera returns the projection used for labels
func (h *HUD) Camera() Camera {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.camera
}

// Publish replaces the telemetry with this frame's values. It must run after
// every mutation of the frame has completed.
func (h *HUD) Publish(state flight.State, cockpitVisible bool, julianDate float64, bodies []*entity.CelestialBody) Telemetry {
	camera := h.Camera()
	t := Telemetry{
		Speed:          state.Speed,
		Position:       state.Position(),
		Gear:           state.Tier.Name,
		GearMagnitude:  state.Tier.Magnitude,
		CockpitVisible: cockpitVisible,
		JulianDate:     julianDate,
		Labels:         h.labels(camera, state.Pose, bodies),
	}

	h.mu.Lock()
	h.telemetry = t
	h.mu.Unlock()
	return t
}

func (h *HUD) labels(camera Camera, pose physics.Pose, bodies []*entity.CelestialBody) []Label {
	slots := make([]*Label, len(TrackedLabels))
	for _, b := range bodies {
		i, ok := h.tracked[b.Name]
		if !ok {
			continue
		}
		x, y, visible := camera.Project(pose, b.Position)
		slots[i] = &Label{
			ID:       b.Name,
			X:        x,
			Y:        y,
			Distance: physics.Distance(pose.Position, b.Position),
			Visible:  visible,
		}
	}

	labels := make([]Label, 0, len(bodies))
	for _, l := range slots {
		if l != nil {
			labels = append(labels, *l)
		}
	}
	return labels
}

// Telemetry returns the last published snapshot
func (h *HUD) Telemetry() Telemetry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t := h.telemetry
	t.Labels = append([]Label(nil), h.telemetry.Labels...)
	return t
}

// Speed returns the last published speed
func (h *HUD) Speed() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.telemetry.Speed
}

// Position returns the last published craft position
func (h *HUD) Position() mgl64.Vec3 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.telemetry.Position
}

// Labels returns the last published labels
func (h *HUD) Labels() []Label {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Label(nil), h.telemetry.Labels...)
}

// Label returns the label for one body id
func (h *HUD) Label(id string) (Label, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, l := range h.telemetry.Labels {
		if l.ID == id {
			return l, true
		}
	}
	return Label{}, false
}
