// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/hud"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// minSpriteSize keeps distant bodies visible as a dot
const minSpriteSize = 2

// depthRange is the number of decades of distance mapped onto z indices
const depthRange = 20

// hudZIndex draws overlays above every body
const hudZIndex = depthRange + 10

// setZIndex notifies the engine mailbox, which only exists once the engine
// runs; tests replace it.
var setZIndex = (*common.RenderComponent).SetZIndex

// Placement is where a sprite goes on screen this frame
type Placement struct {
	X, Y    float32 // top-left corner
	Size    float32 // diameter in pixels
	Z       float32
	Visible bool
}

// Place projects a sphere seen from pose onto the viewport
func Place(camera hud.Camera, pose physics.Pose, center mgl64.Vec3, radius float64) Placement {
	x, y, visible := camera.Project(pose, center)
	if !visible {
		return Placement{}
	}
	dist := physics.Distance(pose.Position, center)
	size := 2 * camera.ApparentSize(radius, dist)
	if size < minSpriteSize {
		size = minSpriteSize
	}
	return Placement{
		X:       float32(x - size/2),
		Y:       float32(y - size/2),
		Size:    float32(size),
		Z:       depthIndex(dist),
		Visible: true,
	}
}

// depthIndex grows as distance shrinks so nearer sprites draw on top
func depthIndex(dist float64) float32 {
	if dist < 1 {
		dist = 1
	}
	return float32(depthRange - math.Log10(dist))
}

// CameraSystem keeps the simulation's projection in step with the window
type CameraSystem struct {
	resize func(width, height float64)
	size   func() (float32, float32)

	width  float32
	height float32
}

// NewCameraSystem creates a system calling resize whenever the game area changes
func NewCameraSystem(resize func(width, height float64)) *CameraSystem {
	return &CameraSystem{resize: resize, size: gameSize}
}

func gameSize() (float32, float32) {
	return engo.GameWidth(), engo.GameHeight()
}

// Priority runs the camera before the simulation step
func (cs *CameraSystem) Priority() int { return 25 }

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System
func (cs *CameraSystem) Update(dt float32) {
	w, h := cs.size()
	if w <= 0 || h <= 0 || (w == cs.width && h == cs.height) {
		return
	}
	cs.width, cs.height = w, h
	if cs.resize != nil {
		cs.resize(float64(w), float64(h))
	}
}

// Viewport returns the last seen game area
func (cs *CameraSystem) Viewport() (float32, float32) {
	return cs.width, cs.height
}
