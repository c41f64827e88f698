// Package assets supplies the concrete asset kinds the engine's
// asset.Store tables hold: meshes, materials, textures, fonts, sounds,
// particle scripts, and raw blobs. Each type embeds asset.Base for
// identity and GC bookkeeping, grounded on gazed-vu's mesh.go/
// texture.go/font.go/sound.go asset shapes widened onto the render
// package's fuller GPU-facing types plus a Cloner matching
// asset.Store's "same data, new identity" clone contract.
package assets

import (
	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/render"
)

// Mesh is a drawable shape: the vertex streams and index buffer a
// render.Packet binds before issuing a draw call.
type Mesh struct {
	asset.Base
	Data *render.Mesh
}

// NewMesh returns an empty mesh asset, ready for a Loader to populate
// Data via Obj/Iqm.
func NewMesh(id ids.ID, name string) *Mesh {
	return &Mesh{Base: asset.NewBase(id, name), Data: render.NewMesh(name)}
}

// CloneMesh deep-copies m's vertex streams and index buffer under a
// fresh id, matching Store.Clone's contract that a clone shares no
// backing arrays with its source.
func CloneMesh(m *Mesh, newID ids.ID) *Mesh {
	clone := NewMesh(newID, m.Name())
	clone.Data.Indices = render.NewIndexData(render.Static)
	if m.Data.Indices != nil {
		clone.Data.Indices.Set(m.Data.Indices.Indices)
	}
	for attr, src := range m.Data.Streams {
		dst := render.NewVertexData(src.Spec)
		if len(src.Floats) > 0 {
			dst.SetFloats(src.Floats)
		}
		if len(src.Bytes) > 0 {
			dst.SetBytes(src.Bytes)
		}
		clone.Data.Streams[attr] = dst
	}
	return clone
}
