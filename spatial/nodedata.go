package spatial

// NodeData holds the three id->AABB maps a single octree node carries,
// grounded on octree.h's NodeData member (three unordered_map<ActorID, AABB>
// style tables, one per tracked entity family).
type NodeData struct {
	Actors          map[EntityID]AABB
	Lights          map[EntityID]AABB
	ParticleSystems map[EntityID]AABB
}

func newNodeData() NodeData {
	return NodeData{
		Actors:          map[EntityID]AABB{},
		Lights:          map[EntityID]AABB{},
		ParticleSystems: map[EntityID]AABB{},
	}
}

func (d *NodeData) ensure() {
	if d.Actors == nil {
		d.Actors = map[EntityID]AABB{}
	}
	if d.Lights == nil {
		d.Lights = map[EntityID]AABB{}
	}
	if d.ParticleSystems == nil {
		d.ParticleSystems = map[EntityID]AABB{}
	}
}

func (d *NodeData) tableFor(kind Kind) map[EntityID]AABB {
	d.ensure()
	switch kind {
	case KindActor:
		return d.Actors
	case KindLight:
		return d.Lights
	case KindParticleSystem:
		return d.ParticleSystems
	default:
		return d.Actors
	}
}

// InsertOrUpdate records or replaces the bound for id within kind's table.
func (d *NodeData) InsertOrUpdate(kind Kind, id EntityID, aabb AABB) {
	d.tableFor(kind)[id] = aabb
}

// Erase removes id from kind's table, a no-op if absent.
func (d *NodeData) Erase(kind Kind, id EntityID) {
	delete(d.tableFor(kind), id)
}

// IsEmpty reports whether all three tables are empty.
func (d *NodeData) IsEmpty() bool {
	return len(d.Actors) == 0 && len(d.Lights) == 0 && len(d.ParticleSystems) == 0
}

// EachActor calls fn for every tracked actor.
func (d *NodeData) EachActor(fn func(EntityID, AABB)) {
	for id, aabb := range d.Actors {
		fn(id, aabb)
	}
}

// EachLight calls fn for every tracked light.
func (d *NodeData) EachLight(fn func(EntityID, AABB)) {
	for id, aabb := range d.Lights {
		fn(id, aabb)
	}
}

// EachParticleSystem calls fn for every tracked particle system.
func (d *NodeData) EachParticleSystem(fn func(EntityID, AABB)) {
	for id, aabb := range d.ParticleSystems {
		fn(id, aabb)
	}
}

// Merge folds other's entries into d, keyed by their original kind.
func (d *NodeData) Merge(other NodeData) {
	d.ensure()
	for id, aabb := range other.Actors {
		d.Actors[id] = aabb
	}
	for id, aabb := range other.Lights {
		d.Lights[id] = aabb
	}
	for id, aabb := range other.ParticleSystems {
		d.ParticleSystems[id] = aabb
	}
}

// EraseAll empties every table.
func (d *NodeData) EraseAll() {
	d.Actors = map[EntityID]AABB{}
	d.Lights = map[EntityID]AABB{}
	d.ParticleSystems = map[EntityID]AABB{}
}

// Len returns the total number of tracked entities across all tables.
func (d *NodeData) Len() int {
	return len(d.Actors) + len(d.Lights) + len(d.ParticleSystems)
}
