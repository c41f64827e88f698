// Package spatial implements the dynamic loose octree that is the
// engine's spatial index: it tracks bounded entities by world-space AABB,
// supports amortized constant-time insert/locate/remove, and grows or
// shrinks to fit its contents.
//
// Grounded on original_source/kglt/partitioners/impl/octree.{h,cpp}
// (Kazade/simulant-engine), re-expressed in the idiom gazed-vu uses for
// its own indexed containers (plain maps keyed by a quantized value,
// slices reused in place — see gazed-vu's grid/dense.go and
// render/packet.go). Unlike the C++ original, nodes reference each other
// with ordinary Go pointers: Go's garbage collector handles the
// parent/child reference cycle natively, so the weak-reference dance the
// original needs to avoid leaking shared_ptr cycles has no equivalent
// need here. What survives from the "avoid reference cycles" design note
// is the per-level lookup table: a node's positional identity (level,
// quantized center) is still the addressable key of the Octree Level
// abstraction, not just an implementation detail of the pointer graph.
package spatial

import (
	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/math/lin"
)

// Kind distinguishes the three families of bounded entity a node tracks.
type Kind uint8

const (
	KindActor Kind = iota
	KindLight
	KindParticleSystem
)

func (k Kind) String() string {
	switch k {
	case KindActor:
		return "actor"
	case KindLight:
		return "light"
	case KindParticleSystem:
		return "particle-system"
	default:
		return "unknown"
	}
}

// EntityID identifies a single bounded entity tracked by the octree. It is
// independent from any scene-graph or asset handle — a caller supplies it
// and is responsible for its uniqueness within a Kind.
type EntityID = ids.ID

// AABB is the axis-aligned bounding box type the octree indexes entities
// by, re-exported from math/lin so spatial callers rarely need to import
// both packages just to build one.
type AABB = lin.AABB
