// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-solarflight/pkg/hud"
)

var (
	hudColor   = color.RGBA{120, 255, 120, 255}
	labelColor = color.RGBA{180, 180, 255, 255}
)

// HUDLines returns the telemetry text in display order
func HUDLines(t hud.Telemetry, unit string) []string {
	return []string{
		fmt.Sprintf("SPEED %s %s/s", hud.FormatDistance(t.Speed, 0), unit),
		"GEAR " + t.Gear,
		fmt.Sprintf("POS %s %s %s", hud.FormatNumber(t.Position.X(), 0), hud.FormatNumber(t.Position.Y(), 0), hud.FormatNumber(t.Position.Z(), 0)),
		fmt.Sprintf("JD %.2f", t.JulianDate),
	}
}

// LabelText returns the marker text shown next to a body
func LabelText(l hud.Label, unit string) string {
	return fmt.Sprintf("%s %s %s", l.ID, hud.FormatDistance(l.Distance, 0), unit)
}

type textSlot struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	font   *common.Font
}

func newTextSlot(font *common.Font, c color.Color) *textSlot {
	s := &textSlot{basic: ecs.NewBasic(), font: font}
	s.render = common.RenderComponent{
		Drawable: common.Text{Font: font},
		Color:    c,
		Hidden:   true,
	}
	setZIndex(&s.render, hudZIndex)
	return s
}

func (s *textSlot) set(text string, x, y float32) {
	s.render.Drawable = common.Text{Font: s.font, Text: text}
	s.space.Position = engo.Point{X: x, Y: y}
	s.render.Hidden = false
}

// HUDSystem draws the telemetry lines and the body labels as text
type HUDSystem struct {
	unit       string
	lineHeight float32

	lines  []*textSlot
	labels []*textSlot

	telemetry hud.Telemetry
	scaleX    float32
	scaleY    float32
}

// NewHUDSystem creates the text entities on sink. With a nil font the HUD
// stays empty.
func NewHUDSystem(sink spriteSink, font *common.Font, unit string) *HUDSystem {
	h := &HUDSystem{unit: unit, lineHeight: 18, scaleX: 1, scaleY: 1}
	if font == nil {
		return h
	}
	if font.Size > 0 {
		h.lineHeight = float32(font.Size) + 4
	}
	for range HUDLines(hud.Telemetry{}, unit) {
		h.lines = append(h.lines, newTextSlot(font, hudColor))
	}
	for range hud.TrackedLabels {
		h.labels = append(h.labels, newTextSlot(font, labelColor))
	}
	for _, s := range append(append([]*textSlot(nil), h.lines...), h.labels...) {
		sink.Add(&s.basic, &s.render, &s.space)
	}
	return h
}

// SetTelemetry records the telemetry to show on the next update. scaleX and
// scaleY map label coordinates onto the game area.
func (h *HUDSystem) SetTelemetry(t hud.Telemetry, scaleX, scaleY float32) {
	h.telemetry = t
	h.scaleX, h.scaleY = scaleX, scaleY
}

// Telemetry returns the telemetry last handed to the HUD
func (h *HUDSystem) Telemetry() hud.Telemetry {
	return h.telemetry
}

// Priority draws the HUD after the simulation step
func (h *HUDSystem) Priority() int { return 10 }

// Remove satisfies the ecs.System interface
func (h *HUDSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System
func (h *HUDSystem) Update(dt float32) {
	if len(h.lines) == 0 {
		return
	}
	for i, text := range HUDLines(h.telemetry, h.unit) {
		h.lines[i].set(text, 10, 10+float32(i)*h.lineHeight)
	}

	n := 0
	for _, l := range h.telemetry.Labels {
		if !l.Visible || n >= len(h.labels) {
			continue
		}
		h.labels[n].set(LabelText(l, h.unit), float32(l.X)*h.scaleX+8, float32(l.Y)*h.scaleY)
		n++
	}
	for _, s := range h.labels[n:] {
		s.render.Hidden = true
	}
}
