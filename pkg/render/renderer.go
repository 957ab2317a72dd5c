// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/logging"
)

// NullRenderer draws nothing and logs every call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called", "frame", d.frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	d.frames++
}

// Frames returns how many frames were presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// RenderBody implements entity.Renderer.
func (d *NullRenderer) RenderBody(body *entity.CelestialBody) {
	ctx := context.Background()
	if body == nil {
		d.logger.Debug(ctx, "RenderBody called with nil body")
		return
	}
	d.logger.Debug(ctx, "RenderBody called",
		"body", body.Name,
		"kind", body.Kind.String(),
		"x", body.Position.X(),
		"y", body.Position.Y(),
		"z", body.Position.Z(),
	)
}

// RenderBelt implements entity.Renderer.
func (d *NullRenderer) RenderBelt(belt *entity.AsteroidBelt) {
	ctx := context.Background()
	if belt == nil {
		d.logger.Debug(ctx, "RenderBelt called with nil belt")
		return
	}
	d.logger.Debug(ctx, "RenderBelt called",
		"belt", belt.Name,
		"asteroids", belt.Len(),
		"angle", belt.OrbitalAngle,
	)
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.Ship) {
	ctx := context.Background()
	if ship == nil {
		d.logger.Debug(ctx, "RenderShip called with nil ship")
		return
	}
	d.logger.Debug(ctx, "RenderShip called",
		"speed", ship.Speed,
		"gear", ship.GearName,
		"cockpit", ship.CockpitVisible,
	)
}
