// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/render"
	"github.com/outpost3d/engine/scene"
	"github.com/outpost3d/engine/spatial"
)

// Actor is the bounded-entity wrapper around a drawable mesh/material
// pair: a scene.Node for world placement and octree tracking, plus the
// render state the queue builder reads each frame. Generalizes gazed-vu's
// model.go (a Pov plus a Model holding mesh+material+textures) onto
// scene.Node, the third of the three entity families node data tracks per
// spec §3 (actors, lights, particle systems) — LightSource and
// ParticleSystem already exist; Actor was the missing family.
type Actor struct {
	Node     *scene.Node
	Mesh     *render.Mesh
	Material render.Material

	// RenderPriority orders this actor's packets against other
	// renderables in the render queue (lower first), passed straight
	// through to render.Renderable.
	RenderPriority int32

	tree *spatial.Octree
	id   spatial.EntityID
}

// NewActor returns an actor attached to a fresh scene node.
func NewActor(pool *ids.Pool, name string, mesh *render.Mesh, material render.Material) *Actor {
	return &Actor{
		Node:     scene.New(pool, name),
		Mesh:     mesh,
		Material: material,
	}
}

// Track registers the actor with tree, mirroring LightSource.Track and
// ParticleSystem.Track.
func (a *Actor) Track(tree *spatial.Octree, id spatial.EntityID, bounds lin.AABB) {
	a.tree = tree
	a.id = id
	a.Node.SetBounds(bounds)
	a.tree.Insert(spatial.KindActor, id, bounds, a.Node.Changed())
}

// Untrack removes the actor from its octree.
func (a *Actor) Untrack() error {
	if a.tree == nil {
		return nil
	}
	err := a.tree.Remove(spatial.KindActor, a.id)
	a.tree = nil
	return err
}

// Renderable converts the actor's current world pose and the lights the
// partitioner ranked for it into a render.Renderable the queue builder
// can consume.
func (a *Actor) Renderable(view *lin.M4, lights []spatial.RankedLight, lightOf func(spatial.EntityID, *lin.M4) render.Light) render.Renderable {
	views := make([]render.LightView, 0, len(lights))
	for _, rl := range lights {
		views = append(views, render.LightView{
			EntityID: uint64(rl.ID.Index)<<32 | uint64(rl.ID.Generation),
			Light:    lightOf(rl.ID, view),
		})
	}
	return render.Renderable{
		ID:             a.id,
		World:          a.Node.WorldTransform(),
		Mesh:           a.Mesh,
		Material:       a.Material,
		RenderPriority: a.RenderPriority,
		Lights:         views,
	}
}
