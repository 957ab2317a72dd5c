package entity

// Renderer draws scene entities for one frame
type Renderer interface {
	RenderBody(body *CelestialBody)
	RenderBelt(belt *AsteroidBelt)
	RenderShip(ship *Ship)
	Clear()
	Present()
}
