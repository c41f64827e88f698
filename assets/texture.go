package assets

import (
	"image"

	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
)

// Texture is a decoded 2D image awaiting GPU upload, grounded on
// gazed-vu's texture.go (image.Image plus a GPU tag) widened with the
// texture-unit bookkeeping render.TextureRef needs once bound.
type Texture struct {
	asset.Base
	Img   image.Image
	GPUID uint32
	// Repeat matches gazed-vu's texture wrap mode toggle: true wraps
	// UVs past [0,1], false clamps to the edge pixel.
	Repeat bool
}

// NewTexture returns an unbound texture asset awaiting a Loader to set
// Img.
func NewTexture(id ids.ID, name string) *Texture {
	return &Texture{Base: asset.NewBase(id, name)}
}

// CloneTexture shares the source image (decoded images are treated as
// immutable once loaded) but leaves GPUID zero instead of copying the
// source's binding, since two live textures must never share one GPUID.
func CloneTexture(t *Texture, newID ids.ID) *Texture {
	return &Texture{Base: asset.NewBase(newID, t.Name()), Img: t.Img, Repeat: t.Repeat}
}
