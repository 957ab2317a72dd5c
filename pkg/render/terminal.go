// pkg/render/terminal.go
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-solarflight/pkg/asset"
	"github.com/opd-ai/go-solarflight/pkg/engine"
	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/hud"
	"github.com/opd-ai/go-solarflight/pkg/orbit"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// CellAspect is the width to height ratio of one terminal cell
const CellAspect = 0.5

// cockpitShakeScale converts the cockpit offset into columns
const cockpitShakeScale = 400.0

// orbitSamples is how many dots trace one orbit
const orbitSamples = 96

// behind is the depth of background marks; anything drawn covers them
const behind = math.MaxFloat64

var (
	hudColor       = color.RGBA{120, 255, 120, 255}
	labelColor     = color.RGBA{180, 180, 255, 255}
	beltColor      = color.RGBA{110, 100, 90, 255}
	cockpitColor   = color.RGBA{160, 160, 160, 255}
	orbitColor     = color.RGBA{60, 60, 90, 255}
	highlightColor = color.RGBA{255, 255, 0, 255}
)

// TerminalRenderer projects the scene from the craft onto a grid of
// characters. Nearer bodies hide farther ones; the HUD and cockpit are
// drawn on top. The body under the crosshair is bracketed.
type TerminalRenderer struct {
	surface Surface
	unit    string

	width  int
	height int
	cells  [][]Cell
	depth  [][]float64

	view   engine.View
	camera hud.Camera

	picker   hud.Picker
	target   hud.Target
	targeted bool
}

// NewTerminalRenderer creates a renderer drawing onto surface. unit is
// appended to distances in the HUD.
func NewTerminalRenderer(surface Surface, unit string) *TerminalRenderer {
	return &TerminalRenderer{surface: surface, unit: unit}
}

// TerminalCamera returns the default lens for a grid of width by height cells
func TerminalCamera(width, height int) hud.Camera {
	c := hud.NewCamera(float64(width), float64(height))
	c.Aspect = CellAspect
	return c
}

// SetView implements engine.ViewRenderer
func (r *TerminalRenderer) SetView(view engine.View) {
	r.view = view
}

// Cells returns the current frame buffer
func (r *TerminalRenderer) Cells() [][]Cell {
	return r.cells
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	w, h := r.surface.Size()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		r.cells = make([][]Cell, h)
		r.depth = make([][]float64, h)
		for y := range r.cells {
			r.cells[y] = make([]Cell, w)
			r.depth[y] = make([]float64, w)
		}
	}
	for y := range r.cells {
		for x := range r.cells[y] {
			r.cells[y][x] = blank
			r.depth[y][x] = math.Inf(1)
		}
	}

	r.camera = r.view.Camera
	if r.camera.FOV == 0 {
		r.camera = hud.NewCamera(0, 0)
	}
	r.camera.Width = float64(w)
	r.camera.Height = float64(h)
	r.camera.Aspect = CellAspect

	r.picker.Reset()
	r.picker.Aspect, r.picker.Slack = CellAspect, 1
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.highlight()
	r.surface.Show(r.cells)
}

// Target returns the body bracketed in the last frame
func (r *TerminalRenderer) Target() (hud.Target, bool) {
	return r.target, r.targeted
}

// highlight brackets the nearest body under the crosshair and names it
func (r *TerminalRenderer) highlight() {
	r.target, r.targeted = r.picker.Pick(float64(r.width)/2, float64(r.height)/2)
	if !r.targeted {
		return
	}
	t := r.target
	half := math.Min(t.Radius/CellAspect, float64(r.width))
	row := int(t.Y)
	r.text(int(t.X-half)-1, row, "[", highlightColor)
	r.text(int(t.X+half)+1, row, "]", highlightColor)
	r.text(0, 2, fmt.Sprintf("TARGET %s %s %s", t.Name, hud.FormatDistance(t.Distance, 0), r.unit), highlightColor)
}

// RenderBelt implements entity.Renderer
func (r *TerminalRenderer) RenderBelt(belt *entity.AsteroidBelt) {
	pose := r.view.Pose
	for _, p := range belt.Asteroids() {
		x, y, visible := r.camera.Project(pose, p)
		if !visible {
			continue
		}
		r.plot(int(x), int(y), Cell{Rune: '.', Color: beltColor}, physics.Distance(pose.Position, p))
	}
}

// RenderBody implements entity.Renderer. The body's orbit is traced behind
// everything else.
func (r *TerminalRenderer) RenderBody(body *entity.CelestialBody) {
	pose := r.view.Pose
	r.orbit(body)
	x, y, visible := r.camera.Project(pose, body.Position)
	if !visible {
		return
	}
	dist := physics.Distance(pose.Position, body.Position)

	cell := Cell{Rune: asset.GlyphFor(body.Kind), Color: asset.ParseColor(body.Color)}
	if res, ok := r.view.Resources[body.ID]; ok {
		cell = Cell{Rune: res.Glyph, Color: res.Color}
	}

	size := r.camera.ApparentSize(body.Radius, dist)
	if body.Ring != nil && body.Radius > 0 {
		r.ring(x, y, size*body.Ring.OuterRadius/body.Radius, size*body.Ring.InnerRadius/body.Radius, cell.Color, dist)
	}
	r.picker.Add(hud.Target{Name: body.DisplayName, X: x, Y: y, Radius: size, Distance: dist})
	if size < 0.5 {
		r.plot(int(x), int(y), cell, dist)
		return
	}
	r.disc(x, y, size, cell, dist)
}

func (r *TerminalRenderer) orbit(body *entity.CelestialBody) {
	cell := Cell{Rune: '·', Color: orbitColor}
	for _, p := range orbit.Path(body, orbitSamples) {
		if x, y, visible := r.camera.Project(r.view.Pose, p); visible {
			r.plot(int(x), int(y), cell, behind)
		}
	}
}

// disc fills an ellipse that is round on screen. Only rows and columns on
// the grid are visited, so a body filling the view costs one pass.
func (r *TerminalRenderer) disc(cx, cy, radius float64, cell Cell, depth float64) {
	rx := radius / CellAspect
	top := math.Max(math.Floor(cy-radius), 0)
	bottom := math.Min(cy+radius, float64(r.height-1))
	for row := int(top); row <= int(bottom); row++ {
		dy := (float64(row) + 0.5 - cy) / radius
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		left := math.Max(math.Floor(cx-half), 0)
		right := math.Min(cx+half, float64(r.width-1))
		for col := int(left); col <= int(right); col++ {
			r.plot(col, row, cell, depth)
		}
	}
}

// ring outlines a flattened annulus seen at an angle. The step count is
// bounded by the grid's perimeter.
func (r *TerminalRenderer) ring(cx, cy, outer, inner float64, c color.RGBA, depth float64) {
	if outer < 1 {
		return
	}
	ox, oy := outer/CellAspect, outer*0.3
	if cx+ox < 0 || cx-ox >= float64(r.width) || cy+oy < 0 || cy-oy >= float64(r.height) {
		return
	}
	cell := Cell{Rune: '-', Color: c}
	steps := int(math.Min(outer*8, float64(2*(r.width+r.height)))) + 16
	for _, radius := range []float64{inner, outer} {
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			col := cx + math.Cos(a)*radius/CellAspect
			row := cy + math.Sin(a)*radius*0.3
			// the far half of the ring passes behind the body
			d := depth * 0.9999
			if math.Sin(a) < 0 {
				d = depth * 1.0001
			}
			r.plot(int(col), int(row), cell, d)
		}
	}
}

func (r *TerminalRenderer) plot(x, y int, cell Cell, depth float64) {
	if x < 0 || y < 0 || y >= r.height || x >= r.width {
		return
	}
	if depth >= r.depth[y][x] {
		return
	}
	r.cells[y][x] = cell
	r.depth[y][x] = depth
}

// text writes s over everything, clipped to the grid
func (r *TerminalRenderer) text(x, y int, s string, c color.RGBA) {
	if y < 0 || y >= r.height {
		return
	}
	for _, ch := range s {
		if x >= 0 && x < r.width {
			r.cells[y][x] = Cell{Rune: ch, Color: c}
		}
		x++
	}
}

// RenderShip implements entity.Renderer. It draws the labels, the cockpit
// frame and the telemetry lines.
func (r *TerminalRenderer) RenderShip(ship *entity.Ship) {
	t := r.view.Telemetry
	r.labels(t.Labels)

	if ship.CockpitVisible && r.height > 4 {
		shift := int(math.Round((ship.CockpitOffset.X() - ship.CockpitBase.X()) * cockpitShakeScale))
		lift := int(math.Round((ship.CockpitOffset.Y() - ship.CockpitBase.Y()) * cockpitShakeScale / 2))
		row := r.height - 3 - lift
		for col := 1; col < r.width-1; col++ {
			r.text(col+shift, row, "=", cockpitColor)
		}
		r.text(shift, row, "/", cockpitColor)
		r.text(r.width-1+shift, row, "\\", cockpitColor)
		r.text(r.width/2-1+shift, row-1, "+", cockpitColor)
	}

	r.text(0, 0, fmt.Sprintf("SPEED %s %s/s  GEAR %s", hud.FormatDistance(t.Speed, 0), r.unit, t.Gear), hudColor)
	r.text(0, 1, fmt.Sprintf("POS %s %s %s", hud.FormatNumber(t.Position.X(), 0), hud.FormatNumber(t.Position.Y(), 0), hud.FormatNumber(t.Position.Z(), 0)), hudColor)
	r.text(0, r.height-1, fmt.Sprintf("JD %.2f", t.JulianDate), hudColor)
}

// labels writes each visible label next to its body, rescaled from the HUD
// viewport to the grid
func (r *TerminalRenderer) labels(labels []hud.Label) {
	sx, sy := 1.0, 1.0
	if r.view.Camera.Width > 0 && r.view.Camera.Height > 0 {
		sx = float64(r.width) / r.view.Camera.Width
		sy = float64(r.height) / r.view.Camera.Height
	}
	for _, l := range labels {
		if !l.Visible {
			continue
		}
		col := int(l.X*sx) + 2
		row := int(l.Y * sy)
		r.text(col, row, fmt.Sprintf("%s %s %s", l.ID, hud.FormatDistance(l.Distance, 0), r.unit), labelColor)
	}
}
