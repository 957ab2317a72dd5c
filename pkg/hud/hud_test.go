// pkg/hud/hud_test.go
package hud

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/flight"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

func TestCamera_Project(t *testing.T) {
	cam := NewCamera(800, 600)
	pose := physics.NewPose(mgl64.Vec3{})

	tests := []struct {
		name    string
		point   mgl64.Vec3
		visible bool
		check   func(x, y float64) bool
	}{
		{"Straight ahead", mgl64.Vec3{0, 0, -10}, true, func(x, y float64) bool {
			return math.Abs(x-400) < 1e-6 && math.Abs(y-300) < 1e-6
		}},
		{"Right of centre", mgl64.Vec3{1, 0, -10}, true, func(x, y float64) bool { return x > 400 }},
		{"Above centre", mgl64.Vec3{0, 1, -10}, true, func(x, y float64) bool { return y < 300 }},
		{"Behind", mgl64.Vec3{0, 0, 10}, false, nil},
		{"Off screen left", mgl64.Vec3{-100, 0, -1}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, visible := cam.Project(pose, tt.point)
			if visible != tt.visible {
				t.Errorf("Expected visible=%v, got %v (x=%v y=%v)", tt.visible, visible, x, y)
			}
			if tt.check != nil && !tt.check(x, y) {
				t.Errorf("Unexpected projection x=%v y=%v", x, y)
			}
		})
	}
}

func TestCamera_ProjectFollowsPose(t *testing.T) {
	cam := NewCamera(100, 100)
	pose := physics.NewPose(mgl64.Vec3{50, 0, 0})
	pose.RotateLocal(physics.AxisUp, math.Pi/2) // now facing -X

	x, y, visible := cam.Project(pose, mgl64.Vec3{0, 0, 0})
	if !visible {
		t.Fatal("Expected origin to be visible after turning towards it")
	}
	if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("Expected origin at centre, got (%v, %v)", x, y)
	}
}

func TestCamera_ApparentSize(t *testing.T) {
	cam := NewCamera(100, 100)
	near := cam.ApparentSize(1, 10)
	far := cam.ApparentSize(1, 100)
	if near <= far {
		t.Errorf("Expected closer body to look bigger, got %v <= %v", near, far)
	}
	tests := []struct {
		name     string
		distance float64
	}{
		{"Zero distance", 0},
		{"Inside", 0.5},
		{"On the surface", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.ApparentSize(1, tt.distance); got != 200 {
				t.Errorf("Expected the viewport covered, got %v", got)
			}
		})
	}
	if got := cam.ApparentSize(1, 1.0001); got < 100 {
		t.Errorf("Expected a grazing view to overflow the viewport, got %v", got)
	}
}

func newBody(name string, pos mgl64.Vec3) *entity.CelestialBody {
	b := entity.NewCelestialBody(entity.GenerateID(), name, entity.Planet)
	b.Position = pos
	return b
}

func TestHUD_Publish(t *testing.T) {
	h := New(NewCamera(800, 600))
	state := flight.State{
		Pose:  physics.NewPose(mgl64.Vec3{0, 0, 0}),
		Speed: 100,
		Tier:  flight.Tier{Name: "normal", Magnitude: 100},
	}
	bodies := []*entity.CelestialBody{
		newBody("mars", mgl64.Vec3{0, 0, 100}),
		newBody("earth", mgl64.Vec3{0, 0, -50}),
		newBody("nibiru", mgl64.Vec3{0, 0, -5}),
	}

	tel := h.Publish(state, true, 2451545, bodies)

	if tel.Speed != 100 || h.Speed() != 100 {
		t.Errorf("Expected speed 100, got %v", h.Speed())
	}
	if tel.Gear != "normal" || !tel.CockpitVisible || tel.JulianDate != 2451545 {
		t.Errorf("Unexpected telemetry %+v", tel)
	}
	if len(tel.Labels) != 2 {
		t.Fatalf("Expected 2 labels for tracked bodies, got %d", len(tel.Labels))
	}
	if tel.Labels[0].ID != "earth" || tel.Labels[1].ID != "mars" {
		t.Errorf("Expected labels in tracked order, got %v, %v", tel.Labels[0].ID, tel.Labels[1].ID)
	}

	earth, ok := h.Label("earth")
	if !ok {
		t.Fatal("Expected an earth label")
	}
	if !earth.Visible || earth.Distance != 50 {
		t.Errorf("Expected visible earth at 50, got %+v", earth)
	}
	mars, _ := h.Label("mars")
	if mars.Visible {
		t.Error("Expected mars behind the craft to be hidden")
	}
	if _, ok := h.Label("nibiru"); ok {
		t.Error("Expected untracked body to have no label")
	}
}

func TestHUD_AccessorsReturnCopies(t *testing.T) {
	h := New(NewCamera(10, 10))
	state := flight.State{Pose: physics.NewPose(mgl64.Vec3{1, 2, 3})}
	h.Publish(state, false, 0, []*entity.CelestialBody{newBody("sun", mgl64.Vec3{})})

	labels := h.Labels()
	labels[0].ID = "changed"
	if l, _ := h.Label("sun"); l.ID != "sun" {
		t.Error("Expected Labels to return a copy")
	}
	if h.Position() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Expected position (1,2,3), got %v", h.Position())
	}
}

func TestTrackedLabels(t *testing.T) {
	if len(TrackedLabels) != 17 {
		t.Errorf("Expected 17 tracked labels, got %d", len(TrackedLabels))
	}
}
