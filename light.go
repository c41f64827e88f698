// Copyright © 2014-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/render"
	"github.com/outpost3d/engine/scene"
	"github.com/outpost3d/engine/spatial"
)

// LightSource is the bounded-entity wrapper around a render.Light: a
// scene.Node for world placement and octree tracking, plus the
// ambient/diffuse/specular/attenuation state the visitor uploads.
// Widened from gazed-vu's light.go (a bare R/G/B attached to a Pov) into
// the full per-light state record §4.6/§4.7 specifies.
type LightSource struct {
	Node  *scene.Node
	Light render.Light

	// Directional marks a light with no position falloff; its world
	// position uploads with W=0 instead of W=1, per the light-application
	// coordinate convention.
	Directional bool

	tree *spatial.Octree
	id   spatial.EntityID
}

// NewLightSource returns a white point light at the origin.
func NewLightSource(pool *ids.Pool, name string) *LightSource {
	return &LightSource{
		Node: scene.New(pool, name),
		Light: render.Light{
			Ambient:  render.RGBA{R: 1, G: 1, B: 1, A: 1},
			Diffuse:  render.RGBA{R: 1, G: 1, B: 1, A: 1},
			Specular: render.RGBA{R: 1, G: 1, B: 1, A: 1},
			Enabled:  true,
		},
	}
}

// SetColor is a convenience method matching gazed-vu's Light.SetColor,
// setting diffuse (and, by extension, the visible tint of the light).
func (l *LightSource) SetColor(r, g, b float64) {
	l.Light.Diffuse = render.RGBA{R: float32(r), G: float32(g), B: float32(b), A: 1}
}

// Track registers the light with tree, one of the three node-data
// families the octree carries per node (§3).
func (l *LightSource) Track(tree *spatial.Octree, id spatial.EntityID, bounds lin.AABB) {
	l.tree = tree
	l.id = id
	l.Node.SetBounds(bounds)
	l.tree.Insert(spatial.KindLight, id, bounds, l.Node.Changed())
}

// Untrack removes the light from its octree.
func (l *LightSource) Untrack() error {
	if l.tree == nil {
		return nil
	}
	err := l.tree.Remove(spatial.KindLight, l.id)
	l.tree = nil
	return err
}

// ViewSpace returns the light in view space, ready for the render-queue
// visitor to upload, per the light-application coordinate convention:
// "light positions are uploaded in view space; transform by view*world
// before upload."
func (l *LightSource) ViewSpace(view *lin.M4) render.Light {
	world := l.Node.WorldTransform()
	loc := world.GetLoc()
	w := 1.0
	if l.Directional {
		w = 0
	}
	var pos lin.V4
	pos.MultvM(&lin.V4{X: loc.X, Y: loc.Y, Z: loc.Z, W: w}, view)

	out := l.Light
	out.Position = pos
	return out
}
