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

// Particle is one of the particles updated by a ParticleEffect, grounded
// on gazed-vu's particle.go Particle: a GPU-friendly point with a
// lifetime fraction rather than a full rendered entity.
type Particle struct {
	Index   float32 // Particle number.
	Alive   float32 // 1 for newly spawned, falling to 0 as it dies.
	X, Y, Z float64 // Particle location, in the system's local space.
}

// ParticleEffect is the application-supplied update function: given the
// full particle pool and the elapsed time, it returns the subset that is
// still alive this frame, matching gazed-vu's ParticleEffect signature.
type ParticleEffect func(all []*Particle, dt float64) (live []*Particle)

// ParticleSystem is the bounded-entity wrapper around a particle effect:
// a scene.Node (for world placement and octree tracking) plus a point
// mesh the visitor draws, one of the three entity families node data
// tracks per spec §3 (actors, lights, particle systems).
type ParticleSystem struct {
	Node *scene.Node
	Mesh *render.Mesh

	effect    ParticleEffect
	particles []*Particle

	tree *spatial.Octree
	id   spatial.EntityID
}

// NewParticleSystem allocates maxParticles particles up front (gazed-vu
// never resizes its particle pool mid-effect) and a point mesh sized to
// hold them, named after the system for asset-store friendliness.
func NewParticleSystem(pool *ids.Pool, name string, effect ParticleEffect, maxParticles int) *ParticleSystem {
	particles := make([]*Particle, maxParticles)
	for i := range particles {
		particles[i] = &Particle{}
	}
	mesh := render.NewMesh(name)
	mesh.Streams[render.Position] = render.NewVertexData(render.VertexSpec{
		Attribute: render.Position, Span: 3, Usage: render.Dynamic,
	})
	return &ParticleSystem{
		Node:      scene.New(pool, name),
		Mesh:      mesh,
		effect:    effect,
		particles: particles,
	}
}

// Track registers the system with tree under the given world-space bounds
// and subscribes to the node's transform-changed signal, mirroring how
// Insert wires actors and lights into the octree.
func (ps *ParticleSystem) Track(tree *spatial.Octree, id spatial.EntityID, bounds lin.AABB) {
	ps.tree = tree
	ps.id = id
	ps.Node.SetBounds(bounds)
	ps.tree.Insert(spatial.KindParticleSystem, id, bounds, ps.Node.Changed())
}

// Untrack removes the system from its octree, the counterpart to Track.
func (ps *ParticleSystem) Untrack() error {
	if ps.tree == nil {
		return nil
	}
	err := ps.tree.Remove(spatial.KindParticleSystem, ps.id)
	ps.tree = nil
	return err
}

// Update advances the particle effect by dt and rewrites the point mesh's
// position stream from the surviving particles, the per-frame work
// gazed-vu's particleEffect.update performed against a GPU-bound mesh.
func (ps *ParticleSystem) Update(dt float64) {
	live := ps.effect(ps.particles, dt)
	floats := make([]float32, 0, len(live)*3)
	for _, p := range live {
		floats = append(floats, float32(p.X), float32(p.Y), float32(p.Z))
	}
	ps.Mesh.Streams[render.Position].SetFloats(floats)
}
