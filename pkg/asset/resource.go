// Package asset resolves the visual resource of each body off the frame
// loop. Results are drained by the simulation, which only then registers the
// body for animation.
package asset

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/opd-ai/go-solarflight/pkg/entity"
)

// Request identifies the body whose resource is wanted. It carries copies of
// the static fields so workers never touch the body itself.
type Request struct {
	BodyID entity.ID
	Name   string
	Kind   entity.BodyKind
	Color  string

	// Intensity makes the body emissive, as for a star. Zero means lit.
	Intensity float64
}

// RequestFor builds the request for a body
func RequestFor(body *entity.CelestialBody) Request {
	return Request{
		BodyID: body.ID,
		Name:   body.Name,
		Kind:   body.Kind,
		Color:  body.Color,
	}
}

// Resource is a resolved visual for one body
type Resource struct {
	BodyID entity.ID
	Name   string
	Glyph  rune
	Color  color.RGBA
	Image  *image.RGBA
}

// Resolver turns a request into a resource
type Resolver interface {
	Resolve(ctx context.Context, req Request) (*Resource, error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, req Request) (*Resource, error)

// Resolve implements Resolver
func (f ResolverFunc) Resolve(ctx context.Context, req Request) (*Resource, error) {
	return f(ctx, req)
}

// SpriteSize is the edge length of procedural sprites in pixels
const SpriteSize = 64

// ProceduralResolver draws a shaded disc in the body's colour. It never fails.
type ProceduralResolver struct {
	Size int
}

// Resolve implements Resolver
func (p ProceduralResolver) Resolve(ctx context.Context, req Request) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := p.Size
	if size <= 0 {
		size = SpriteSize
	}
	c := Glow(ParseColor(req.Color), req.Intensity)
	return &Resource{
		BodyID: req.BodyID,
		Name:   req.Name,
		Glyph:  GlyphFor(req.Kind),
		Color:  c,
		Image:  drawBody(size, c, req.Intensity > 0),
	}, nil
}

// FileResolver loads <Dir>/<name>.png. When the file is missing and Fallback
// is set, the fallback resolves the request instead.
type FileResolver struct {
	Dir      string
	Fallback Resolver
}

// Resolve implements Resolver
func (f FileResolver) Resolve(ctx context.Context, req Request) (*Resource, error) {
	path := filepath.Join(f.Dir, req.Name+".png")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && f.Fallback != nil {
			return f.Fallback.Resolve(ctx, req)
		}
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()
	return decodeTexture(file, req, path)
}

// decodeTexture reads a PNG texture for req. source names it in errors.
func decodeTexture(r io.Reader, req Request, source string) (*Resource, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", source, err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return &Resource{
		BodyID: req.BodyID,
		Name:   req.Name,
		Glyph:  GlyphFor(req.Kind),
		Color:  Glow(averageColor(rgba), req.Intensity),
		Image:  rgba,
	}, nil
}

// GlyphFor returns the terminal glyph used for a kind of body
func GlyphFor(kind entity.BodyKind) rune {
	switch kind {
	case entity.Star:
		return '@'
	case entity.Moon:
		return 'o'
	case entity.DwarfPlanet:
		return '.'
	default:
		return 'O'
	}
}

// ParseColor reads #rrggbb; anything else is light grey
func ParseColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{200, 200, 200, 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{200, 200, 200, 255}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// DefaultSunIntensity leaves a star's colour as configured
const DefaultSunIntensity = 5

// Glow brightens or dims c for an emissive body. Intensity 1 gives 60% of
// the colour, DefaultSunIntensity all of it and 10 half as much again,
// saturating per channel. Intensity <= 0 returns c.
func Glow(c color.RGBA, intensity float64) color.RGBA {
	if intensity <= 0 {
		return c
	}
	f := 0.5 + intensity/(2*DefaultSunIntensity)
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*f)))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

// drawBody renders a disc filling the sprite. Lit bodies are shaded from the
// upper left; emissive ones only darken towards the limb. Rings are drawn by
// the front ends from the body's geometry.
func drawBody(size int, c color.RGBA, emissive bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	radius := float64(size) / 2
	light := [3]float64{-0.5, -0.5, 0.707}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - radius) / radius
			dy := (float64(y) + 0.5 - radius) / radius
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			dz := math.Sqrt(1 - d2)
			shade := 0.25 + 0.75*math.Max(0, dx*light[0]+dy*light[1]+dz*light[2])
			if emissive {
				shade = 0.8 + 0.2*dz
			}
			img.SetRGBA(x, y, color.RGBA{
				uint8(float64(c.R) * shade),
				uint8(float64(c.G) * shade),
				uint8(float64(c.B) * shade),
				255,
			})
		}
	}
	return img
}

func averageColor(img *image.RGBA) color.RGBA {
	var r, g, b, n uint64
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i+3] == 0 {
			continue
		}
		r += uint64(img.Pix[i])
		g += uint64(img.Pix[i+1])
		b += uint64(img.Pix[i+2])
		n++
	}
	if n == 0 {
		return color.RGBA{200, 200, 200, 255}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}
