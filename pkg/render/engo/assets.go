// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-solarflight/pkg/asset"
	"github.com/opd-ai/go-solarflight/pkg/entity"
)

var white = color.RGBA{255, 255, 255, 255}

// TextureCache turns resolved body resources into drawables, uploading each
// body's image once.
type TextureCache struct {
	upload   func(*image.NRGBA) common.Drawable
	textures map[entity.ID]common.Drawable
}

// NewTextureCache creates an empty cache. Uploading needs a GL context.
func NewTextureCache() *TextureCache {
	return &TextureCache{
		upload:   uploadTexture,
		textures: make(map[entity.ID]common.Drawable),
	}
}

func uploadTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// Drawable returns what to draw for body and the tint to draw it with.
// Bodies without an image get a flat circle in their configured colour.
func (tc *TextureCache) Drawable(body *entity.CelestialBody, res *asset.Resource) (common.Drawable, color.Color, bool) {
	if res == nil || res.Image == nil {
		c := asset.ParseColor(body.Color)
		if res != nil {
			c = res.Color
		}
		return common.Circle{}, c, false
	}
	if tex, ok := tc.textures[body.ID]; ok {
		return tex, white, true
	}
	tex := tc.upload(toNRGBA(res.Image))
	tc.textures[body.ID] = tex
	return tex, white, true
}

// Forget drops the cached texture for a body
func (tc *TextureCache) Forget(id entity.ID) {
	delete(tc.textures, id)
}

// Len returns how many textures are cached
func (tc *TextureCache) Len() int {
	return len(tc.textures)
}

// toNRGBA converts a premultiplied sprite into the layout engo uploads
func toNRGBA(img *image.RGBA) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}
