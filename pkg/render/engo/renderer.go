// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/asset"
	"github.com/opd-ai/go-solarflight/pkg/engine"
	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/hud"
	"github.com/opd-ai/go-solarflight/pkg/orbit"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// Dot sizes in pixels
const (
	asteroidSize = 2
	orbitDotSize = 1
	ringDotSize  = 1.5
)

// Samples per orbit and per ring edge
const (
	orbitSamples = 128
	ringSamples  = 64
)

// cockpitShakeScale converts the cockpit offset into pixels
const cockpitShakeScale = 2000

// highlightMargin and highlightWidth size the box around the picked body
const (
	highlightMargin = 4
	highlightWidth  = 1.5
)

var (
	beltColor      = color.RGBA{110, 100, 90, 255}
	cockpitColor   = color.RGBA{60, 60, 70, 230}
	orbitColor     = color.RGBA{70, 70, 110, 160}
	highlightColor = color.RGBA{255, 255, 0, 255}
)

// spriteSink is the part of common.RenderSystem the renderer draws through
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	basic    ecs.BasicEntity
	render   common.RenderComponent
	space    common.SpaceComponent
	textured bool
	seen     bool
}

func newSprite(d common.Drawable, c color.Color) *sprite {
	return &sprite{
		basic:  ecs.NewBasic(),
		render: common.RenderComponent{Drawable: d, Color: c, Scale: engo.Point{X: 1, Y: 1}},
	}
}

func (s *sprite) place(p Placement) {
	s.render.Hidden = !p.Visible
	if !p.Visible {
		return
	}
	s.space.Position = engo.Point{X: p.X, Y: p.Y}
	s.space.Width, s.space.Height = p.Size, p.Size
	if w := s.render.Drawable.Width(); w > 0 {
		s.render.Scale = engo.Point{X: p.Size / w, Y: p.Size / s.render.Drawable.Height()}
	}
	setZIndex(&s.render, p.Z)
}

// dotPool hands out small rectangles, reusing last frame's
type dotPool struct {
	sink    spriteSink
	sprites []*sprite
	used    int
}

func (p *dotPool) place(x, y float64, size, z float32, c color.Color) {
	if p.used == len(p.sprites) {
		s := newSprite(common.Rectangle{}, c)
		p.sprites = append(p.sprites, s)
		p.sink.Add(&s.basic, &s.render, &s.space)
	}
	s := p.sprites[p.used]
	p.used++
	s.render.Color = c
	s.place(Placement{
		X:       float32(x) - size/2,
		Y:       float32(y) - size/2,
		Size:    size,
		Z:       z,
		Visible: true,
	})
}

// hideUnused hides the dots not placed this frame
func (p *dotPool) hideUnused() {
	for _, s := range p.sprites[p.used:] {
		s.render.Hidden = true
	}
}

// EngoRenderer implements engine.ViewRenderer by keeping one sprite per
// body, a pool of dots for belts, orbits and rings, and a cockpit bar in the
// render system. The body under the mouse is boxed.
type EngoRenderer struct {
	sink     spriteSink
	textures *TextureCache
	hud      *HUDSystem

	view   engine.View
	camera hud.Camera

	bodies  map[entity.ID]*sprite
	dots    dotPool
	cockpit *sprite
	frames  uint64

	// pointer reports where the mouse is. Without one, or while it reports
	// ok false, the crosshair is used.
	pointer  func() (x, y float32, ok bool)
	picker   hud.Picker
	box      [4]*sprite
	target   hud.Target
	targeted bool
}

// NewEngoRenderer creates a renderer adding its entities to sink. hud may be nil.
func NewEngoRenderer(sink spriteSink, textures *TextureCache, h *HUDSystem) *EngoRenderer {
	if textures == nil {
		textures = NewTextureCache()
	}
	return &EngoRenderer{
		sink:     sink,
		textures: textures,
		hud:      h,
		bodies:   make(map[entity.ID]*sprite),
		dots:     dotPool{sink: sink},
		picker:   hud.Picker{Aspect: 1, Slack: highlightMargin},
	}
}

// SetPointer replaces where the highlight looks for the pointer
func (r *EngoRenderer) SetPointer(pointer func() (x, y float32, ok bool)) {
	r.pointer = pointer
}

// SetView implements engine.ViewRenderer
func (r *EngoRenderer) SetView(view engine.View) {
	r.view = view
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	r.camera = r.view.Camera
	for _, s := range r.bodies {
		s.seen = false
	}
	r.dots.used = 0
	r.picker.Reset()
}

// RenderBody implements entity.Renderer. The body's orbit is traced behind
// every body and its ring edges are drawn at their own depth.
func (r *EngoRenderer) RenderBody(body *entity.CelestialBody) {
	r.orbit(body)
	r.ring(body)

	d, tint, textured := r.textures.Drawable(body, r.view.Resources[body.ID])

	s, ok := r.bodies[body.ID]
	if ok && s.textured != textured {
		// the shader is picked when the entity is added
		r.sink.Remove(s.basic)
		ok = false
	}
	if !ok {
		s = newSprite(d, tint)
		s.textured = textured
		r.bodies[body.ID] = s
		r.sink.Add(&s.basic, &s.render, &s.space)
	}
	s.render.Drawable, s.render.Color = d, tint
	s.seen = true

	p := Place(r.camera, r.view.Pose, body.Position, body.Radius)
	s.place(p)
	if p.Visible {
		r.picker.Add(hud.Target{
			Name:     body.DisplayName,
			X:        float64(p.X + p.Size/2),
			Y:        float64(p.Y + p.Size/2),
			Radius:   float64(p.Size / 2),
			Distance: physics.Distance(r.view.Pose.Position, body.Position),
		})
	}
}

func (r *EngoRenderer) orbit(body *entity.CelestialBody) {
	for _, p := range orbit.Path(body, orbitSamples) {
		if x, y, visible := r.camera.Project(r.view.Pose, p); visible {
			r.dots.place(x, y, orbitDotSize, 0, orbitColor)
		}
	}
}

func (r *EngoRenderer) ring(body *entity.CelestialBody) {
	inner, outer := orbit.RingEdges(body, ringSamples)
	c := asset.ParseColor(body.Color)
	if res, ok := r.view.Resources[body.ID]; ok {
		c = res.Color
	}
	pose := r.view.Pose
	for _, edge := range [][]mgl64.Vec3{inner, outer} {
		for _, p := range edge {
			if x, y, visible := r.camera.Project(pose, p); visible {
				r.dots.place(x, y, ringDotSize, depthIndex(physics.Distance(pose.Position, p)), c)
			}
		}
	}
}

// RenderBelt implements entity.Renderer
func (r *EngoRenderer) RenderBelt(belt *entity.AsteroidBelt) {
	pose := r.view.Pose
	for _, p := range belt.Asteroids() {
		x, y, visible := r.camera.Project(pose, p)
		if !visible {
			continue
		}
		r.dots.place(x, y, asteroidSize, depthIndex(physics.Distance(pose.Position, p)), beltColor)
	}
}

// RenderShip implements entity.Renderer. The craft is seen from inside, so
// only the cockpit bar and the HUD are drawn.
func (r *EngoRenderer) RenderShip(ship *entity.Ship) {
	if r.cockpit == nil {
		r.cockpit = newSprite(common.Rectangle{}, cockpitColor)
		r.sink.Add(&r.cockpit.basic, &r.cockpit.render, &r.cockpit.space)
	}

	w, h := float32(r.camera.Width), float32(r.camera.Height)
	bar := h * 0.12
	dx := float32(ship.CockpitOffset.X()-ship.CockpitBase.X()) * cockpitShakeScale
	dy := float32(ship.CockpitOffset.Y()-ship.CockpitBase.Y()) * cockpitShakeScale
	r.cockpit.render.Hidden = !ship.CockpitVisible
	r.cockpit.space.Position = engo.Point{X: dx, Y: h - bar - dy}
	r.cockpit.space.Width, r.cockpit.space.Height = w, bar
	setZIndex(&r.cockpit.render, hudZIndex-1)

	if r.hud != nil {
		r.hud.SetTelemetry(r.view.Telemetry, 1, 1)
	}
}

// Present implements entity.Renderer. Sprites not drawn this frame are hidden.
func (r *EngoRenderer) Present() {
	for _, s := range r.bodies {
		if !s.seen {
			s.render.Hidden = true
		}
	}
	r.dots.hideUnused()
	r.highlight()
	r.frames++
}

// Target returns the body boxed in the last frame
func (r *EngoRenderer) Target() (hud.Target, bool) {
	return r.target, r.targeted
}

// highlight boxes the nearest body under the pointer
func (r *EngoRenderer) highlight() {
	x, y := float32(r.camera.Width/2), float32(r.camera.Height/2)
	if r.pointer != nil {
		if px, py, ok := r.pointer(); ok {
			x, y = px, py
		}
	}
	r.target, r.targeted = r.picker.Pick(float64(x), float64(y))
	if !r.targeted {
		for _, s := range r.box {
			if s != nil {
				s.render.Hidden = true
			}
		}
		return
	}

	if r.box[0] == nil {
		for i := range r.box {
			r.box[i] = newSprite(common.Rectangle{}, highlightColor)
			r.sink.Add(&r.box[i].basic, &r.box[i].render, &r.box[i].space)
		}
	}

	half := float32(r.target.Radius) + highlightMargin
	left, top := float32(r.target.X)-half, float32(r.target.Y)-half
	side := 2 * half
	edges := [4][4]float32{
		{left, top, side, highlightWidth},
		{left, top + side - highlightWidth, side, highlightWidth},
		{left, top, highlightWidth, side},
		{left + side - highlightWidth, top, highlightWidth, side},
	}
	for i, e := range edges {
		s := r.box[i]
		s.render.Hidden = false
		s.space.Position = engo.Point{X: e[0], Y: e[1]}
		s.space.Width, s.space.Height = e[2], e[3]
		setZIndex(&s.render, hudZIndex-1)
	}
}

// Frames returns how many frames were presented
func (r *EngoRenderer) Frames() uint64 {
	return r.frames
}

// RemoveBody drops a body's sprite and texture
func (r *EngoRenderer) RemoveBody(id entity.ID) {
	if s, ok := r.bodies[id]; ok {
		r.sink.Remove(s.basic)
		delete(r.bodies, id)
	}
	r.textures.Forget(id)
}
