package assets

import (
	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
)

// Blob is an opaque byte payload for asset kinds the engine does not
// interpret itself: shader source, level data, arbitrary config the
// application loads through the same store/GC machinery as every
// other asset kind.
type Blob struct {
	asset.Base
	Bytes []byte
}

// NewBlob returns an empty blob asset awaiting a Loader.
func NewBlob(id ids.ID, name string) *Blob {
	return &Blob{Base: asset.NewBase(id, name)}
}

// CloneBlob deep-copies b's bytes under a fresh id.
func CloneBlob(b *Blob, newID ids.ID) *Blob {
	return &Blob{Base: asset.NewBase(newID, b.Name()), Bytes: append([]byte(nil), b.Bytes...)}
}
