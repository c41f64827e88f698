package assets

import (
	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/load"
	"github.com/outpost3d/engine/render"
)

// Material is an ordered list of pipeline-state passes applied when
// drawing any mesh bound to it, grounded on gazed-vu's material.go
// kd/ka/ks/tr description widened onto render.Pass's fuller snapshot.
type Material struct {
	asset.Base
	Passes render.Material
}

// NewMaterial returns a material asset with a single default opaque
// pass, matching render.NewPass's typical-case defaults.
func NewMaterial(id ids.ID, name string) *Material {
	return &Material{Base: asset.NewBase(id, name), Passes: render.Material{render.NewPass()}}
}

// CloneMaterial deep-copies m's pass slice under a fresh id. Pass is a
// plain value type apart from its Packets slice, which Reset clears on
// every frame, so copying the slice header is sufficient: a clone
// never shares a source's in-flight packet list.
func CloneMaterial(m *Material, newID ids.ID) *Material {
	passes := make(render.Material, len(m.Passes))
	for i, p := range m.Passes {
		p.Packets = nil
		passes[i] = p
	}
	return &Material{Base: asset.NewBase(newID, m.Name()), Passes: passes}
}

// ApplyMtl overwrites m's first pass's colour channels from a parsed
// Wavefront MTL description, the shape load.Mtl populates.
func (m *Material) ApplyMtl(d *load.MtlData) {
	if len(m.Passes) == 0 {
		m.Passes = render.Material{render.NewPass()}
	}
	p := &m.Passes[0]
	p.Ambient = render.RGBA{R: d.KaR, G: d.KaG, B: d.KaB, A: 1}
	p.Diffuse = render.RGBA{R: d.KdR, G: d.KdG, B: d.KdB, A: d.Alpha}
	p.Specular = render.RGBA{R: d.KsR, G: d.KsG, B: d.KsB, A: 1}
	p.Shininess = d.Ns
	if d.Alpha < 1 {
		p.BlendFunc = render.BlendAlpha
	}
}
