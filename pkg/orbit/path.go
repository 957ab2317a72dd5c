// pkg/orbit/path.go
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/entity"
)

// Circle returns n points evenly spaced on a circle of the given radius
// around centre. The circle lies in the orbital plane turned by tilt.
func Circle(centre mgl64.Vec3, radius float64, tilt mgl64.Quat, n int) []mgl64.Vec3 {
	if n <= 0 || radius <= 0 {
		return nil
	}
	points := make([]mgl64.Vec3, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = centre.Add(tilt.Rotate(Offset(radius, angle)))
	}
	return points
}

// Path samples the body's orbit around its parent's current position.
// Bodies that do not revolve have no path.
func Path(body *entity.CelestialBody, n int) []mgl64.Vec3 {
	if !body.Revolves() || body.OrbitRadius <= 0 {
		return nil
	}
	return Circle(body.ParentPosition(), body.OrbitRadius, mgl64.QuatIdent(), n)
}

// RingEdges samples the inner and outer edges of the body's ring, which lies
// in its equatorial plane.
func RingEdges(body *entity.CelestialBody, n int) (inner, outer []mgl64.Vec3) {
	if body.Ring == nil {
		return nil, nil
	}
	tilt := body.TiltRotation()
	return Circle(body.Position, body.Ring.InnerRadius, tilt, n),
		Circle(body.Position, body.Ring.OuterRadius, tilt, n)
}
