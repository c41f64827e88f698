package asset

import (
	"fmt"
	"sync"
	"time"

	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/kerrors"
)

// Cloner deep-copies an asset's bytes into a freshly allocated id,
// mirroring Store.Clone's "same data, new identity" contract. Each
// concrete asset type supplies its own Cloner since only it knows
// which fields are the asset's data versus its Base bookkeeping.
type Cloner[T Asset] func(src T, newID ids.ID) T

// Store is a per-type, garbage-collected asset table: index by id,
// index by name, and optional delegation to a parent store on miss,
// grounded on gazed-vu's depot (one map per asset type, name-keyed
// cache-or-load) and widened with the store-tree chaining and
// reference-counted periodic GC the teacher never implemented.
type Store[T Asset] struct {
	mu sync.RWMutex

	parent   *Store[T]
	pool     *ids.Pool
	byID     map[ids.ID]T
	byName   map[string]ids.ID
	eviction time.Duration
	cloner   Cloner[T]
}

// NewStore returns a root store (no parent) with the given eviction
// delay for Periodic assets and the Cloner used by Clone.
func NewStore[T Asset](pool *ids.Pool, eviction time.Duration, cloner Cloner[T]) *Store[T] {
	return &Store[T]{
		pool:     pool,
		byID:     make(map[ids.ID]T),
		byName:   make(map[string]ids.ID),
		eviction: eviction,
		cloner:   cloner,
	}
}

// Child returns a new store whose Get and Find fall back to s on miss,
// the parent/child chain used to share assets between a base scene and
// layered sub-scenes.
func (s *Store[T]) Child() *Store[T] {
	return &Store[T]{
		parent:   s,
		pool:     s.pool,
		byID:     make(map[ids.ID]T),
		byName:   make(map[string]ids.ID),
		eviction: s.eviction,
		cloner:   s.cloner,
	}
}

// Create inserts asset under a freshly allocated id and indexes it by
// name, defaulting to GCMethod Never per the store contract. The asset
// is visible to Get and Find as soon as Create returns; the loading
// functions in loader.go create it before their Loader fills it in and
// destroy it again if that fails. Returns kerrors.InvalidInsertion if
// name is already present in this store.
func (s *Store[T]) Create(name string, build func(id ids.ID) T) (ids.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[name]; exists {
		return ids.Nil, fmt.Errorf("asset: create %q: %w", name, kerrors.InvalidInsertion)
	}
	id := s.pool.Create()
	a := build(id)
	s.byID[id] = a
	s.byName[name] = id
	return id, nil
}

// Get searches self then, on miss, the parent chain.
func (s *Store[T]) Get(id ids.ID) (T, bool) {
	s.mu.RLock()
	a, ok := s.byID[id]
	s.mu.RUnlock()
	if ok {
		return a, true
	}
	var zero T
	if s.parent != nil {
		return s.parent.Get(id)
	}
	return zero, false
}

// Find resolves a name to an id, searching self then the parent chain.
func (s *Store[T]) Find(name string) (ids.ID, bool) {
	s.mu.RLock()
	id, ok := s.byName[name]
	s.mu.RUnlock()
	if ok {
		return id, true
	}
	if s.parent != nil {
		return s.parent.Find(name)
	}
	return ids.Nil, false
}

// SetGC changes id's collection policy. A no-op if id is not in this
// store (it does not reach into the parent; GC policy is a per-store
// decision).
func (s *Store[T]) SetGC(id ids.ID, method GCMethod) {
	s.mu.RLock()
	a, ok := s.byID[id]
	s.mu.RUnlock()
	if ok {
		a.setGC(method)
	}
}

// Retain increments id's reference count, preventing Periodic
// collection while held.
func (s *Store[T]) Retain(id ids.ID) {
	if a, ok := s.Get(id); ok {
		a.retain()
	}
}

// Release decrements id's reference count; once it reaches zero the
// asset becomes eligible for collection on the next Update once the
// store's eviction delay has elapsed.
func (s *Store[T]) Release(id ids.ID, now time.Time) {
	if a, ok := s.Get(id); ok {
		a.release(now)
	}
}

// Update destroys every Periodic asset in this store (not the parent)
// whose ref_count is zero and whose last release is older than the
// store's eviction delay, returning the number destroyed.
func (s *Store[T]) Update(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var dead []ids.ID
	for id, a := range s.byID {
		if a.gc() != Periodic || a.refCount() != 0 {
			continue
		}
		if now.Sub(a.lastRelease()) > s.eviction {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		s.destroyLocked(id)
	}
	return len(dead)
}

// Clone deep-copies src's data into a newly allocated id via the
// store's Cloner and inserts it under "<name>-clone-<id>". Fails with
// kerrors.NotFound if src does not exist in this store (clone does not
// reach into the parent: a cloned asset belongs to the cloning store).
func (s *Store[T]) Clone(src ids.ID) (ids.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[src]
	if !ok {
		return ids.Nil, fmt.Errorf("asset: clone %v: %w", src, kerrors.NotFound)
	}
	id := s.pool.Create()
	clone := s.cloner(a, id)
	name := fmt.Sprintf("%s-clone-%d", a.Name(), id.Index)
	s.byID[id] = clone
	s.byName[name] = id
	return id, nil
}

// Destroy removes id unconditionally, even if ref_count > 0; it is the
// caller's responsibility to know the asset is truly unused.
func (s *Store[T]) Destroy(id ids.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("asset: destroy %v: %w", id, kerrors.NotFound)
	}
	s.destroyLocked(id)
	return nil
}

func (s *Store[T]) destroyLocked(id ids.ID) {
	a := s.byID[id]
	delete(s.byID, id)
	delete(s.byName, a.Name())
	s.pool.Release(id)
}

// DestroyAll force-sets every asset's GC method to Periodic then
// purges the store unconditionally, per the store contract's "force
// then purge" destroy_all semantics.
func (s *Store[T]) DestroyAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.byID {
		a.setGC(Periodic)
		s.pool.Release(id)
	}
	s.byID = make(map[ids.ID]T)
	s.byName = make(map[string]ids.ID)
}

// Len reports how many assets this store (not its parent) currently
// holds.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
