// Package ids provides the opaque typed handles shared by the scene graph,
// asset stores, and spatial index. A handle stays valid only as long as its
// owning Pool holds a matching generation; a stale handle resolves to
// kerrors.NotFound instead of dereferencing freed data.
//
// Grounded on the index+edition allocator in gazed-vu's entity.go, widened
// from a packed 20/12 bit uint32 to two explicit uint32 fields so non-entity
// handles (assets, octree entities) can share the same pool implementation
// without borrowing the entity-specific bit budget.
package ids

// ID is an opaque, typed, monotonically edited handle. Index is the slot
// used for array/map lookups; Generation increments every time the slot is
// reused so old handles are detected as stale.
type ID struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero-value, never-valid handle.
var Nil = ID{}

// IsNil reports whether id is the zero-value handle.
func (id ID) IsNil() bool { return id == Nil }

// Pool allocates and recycles IDs. A slot is reused only after Release,
// and reuse always bumps the slot's generation so handles captured before
// the release compare unequal to the new handle sharing the same index.
type Pool struct {
	generations []uint32 // generation currently live at each index.
	free        []uint32 // released indices available for reuse.
}

// NewPool returns an empty handle pool.
func NewPool() *Pool {
	return &Pool{generations: []uint32{}, free: []uint32{}}
}

// Create allocates a new ID, reusing a released slot when one is available.
func (p *Pool) Create() ID {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return ID{Index: idx, Generation: p.generations[idx]}
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return ID{Index: idx, Generation: 1}
}

// Valid reports whether id refers to a currently live slot.
func (p *Pool) Valid(id ID) bool {
	if id.Index >= uint32(len(p.generations)) {
		return false
	}
	return p.generations[id.Index] == id.Generation
}

// Release marks id's slot free for reuse and bumps its generation so
// previously issued handles to the slot become stale.
func (p *Pool) Release(id ID) {
	if !p.Valid(id) {
		return
	}
	p.generations[id.Index]++
	p.free = append(p.free, id.Index)
}

// Len returns the number of slots ever allocated, live or released.
func (p *Pool) Len() int { return len(p.generations) }
