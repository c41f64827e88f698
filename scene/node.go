package scene

import (
	"fmt"

	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/kerrors"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/signal"
	"github.com/outpost3d/engine/spatial"
)

// Node is one entry in the parent/child scene tree. A node with no parent
// is a root. World transforms are cached and only recomputed once per
// dirty local-transform change, following the gazed-vu pov.go style of
// keeping hot per-frame math cheap.
type Node struct {
	id   ids.ID
	name string

	local Transform
	world lin.M4
	dirty bool

	parent   *Node
	children []*Node

	bounds    lin.AABB
	hasBounds bool
	lastEmit  lin.V3
	everEmit  bool

	changed   *signal.Bus[spatial.TransformChange]
	destroyed *signal.Bus[ids.ID]
}

// New returns a detached root node with the identity transform.
func New(pool *ids.Pool, name string) *Node {
	return &Node{
		id:        pool.Create(),
		name:      name,
		local:     Identity(),
		world:     *lin.M4I,
		dirty:     true,
		changed:   signal.New[spatial.TransformChange](),
		destroyed: signal.New[ids.ID](),
	}
}

// ID returns the node's handle.
func (n *Node) ID() ids.ID { return n.id }

// Name returns the node's display name.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a snapshot of the node's current children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Changed returns the bus that fires a spatial.TransformChange whenever
// this node's world-space bounds move, the hook the spatial index
// connects to on insert.
func (n *Node) Changed() *signal.Bus[spatial.TransformChange] { return n.changed }

// Destroyed returns the bus that fires once per node when it is torn
// down, deepest descendant first.
func (n *Node) Destroyed() *signal.Bus[ids.ID] { return n.destroyed }

// SetLocalTransform replaces the node's local transform and marks it (and
// every descendant) dirty so the next WorldTransform call recomputes.
func (n *Node) SetLocalTransform(t Transform) {
	n.local = t
	n.markDirty()
}

// LocalTransform returns the node's local transform.
func (n *Node) LocalTransform() Transform { return n.local }

func (n *Node) markDirty() {
	if n.dirty {
		return
	}
	n.dirty = true
	for _, c := range n.children {
		c.markDirty()
	}
}

// WorldTransform returns the node's cached world matrix, recomputing it
// (and emitting a transform-changed event, if bounds are set and moved)
// exactly when the node is dirty.
func (n *Node) WorldTransform() lin.M4 {
	if !n.dirty {
		return n.world
	}
	local := n.local.Matrix()
	if n.parent == nil {
		n.world = local
	} else {
		parentWorld := n.parent.WorldTransform()
		n.world.Mult(&local, &parentWorld)
	}
	n.dirty = false
	n.emitIfBoundsChanged()
	return n.world
}

// SetBounds attaches an object-space AABB to the node, making it a
// bounded entity per spec §3: TransformedAABB and the transform-changed
// signal become meaningful once this is called.
func (n *Node) SetBounds(objectSpace lin.AABB) {
	n.bounds = objectSpace
	n.hasBounds = true
	n.markDirty()
}

// TransformedAABB returns the node's bounds in world space. ok is false
// if SetBounds was never called.
func (n *Node) TransformedAABB() (aabb lin.AABB, ok bool) {
	if !n.hasBounds {
		return lin.AABB{}, false
	}
	world := n.WorldTransform()
	corners := n.bounds.Corners()
	var out lin.AABB
	for i, c := range corners {
		var wc lin.V4
		wc.MultvM(&lin.V4{X: c.X, Y: c.Y, Z: c.Z, W: 1}, &world)
		if i == 0 {
			out.Min = lin.V3{X: wc.X, Y: wc.Y, Z: wc.Z}
			out.Max = out.Min
		} else {
			out.Min.Min(&out.Min, &lin.V3{X: wc.X, Y: wc.Y, Z: wc.Z})
			out.Max.Max(&out.Max, &lin.V3{X: wc.X, Y: wc.Y, Z: wc.Z})
		}
	}
	return out, true
}

func (n *Node) emitIfBoundsChanged() {
	if !n.hasBounds {
		return
	}
	aabb, _ := n.TransformedAABB()
	cx, cy, cz := aabb.Center()
	center := lin.V3{X: cx, Y: cy, Z: cz}
	if n.everEmit && center.Eq(&n.lastEmit) {
		return
	}
	n.lastEmit, n.everEmit = center, true
	n.changed.Emit(spatial.TransformChange{AABB: aabb})
}

// SetParent detaches n from its current parent (if any) and attaches it
// to p. Passing nil makes n a root. Reparenting into one of n's own
// descendants fails with kerrors.InvalidInsertion.
func (n *Node) SetParent(p *Node) error {
	if p != nil && (p == n || p.isDescendantOf(n)) {
		return fmt.Errorf("scene: reparent %s under %s: %w", n.name, p.name, kerrors.InvalidInsertion)
	}
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = p
	if p != nil {
		p.children = append(p.children, n)
	}
	n.markDirty()
	return nil
}

// isDescendantOf reports whether n appears anywhere in ancestor's subtree.
func (n *Node) isDescendantOf(ancestor *Node) bool {
	for _, c := range ancestor.children {
		if c == n || n.isDescendantOf(c) {
			return true
		}
	}
	return false
}

func (n *Node) removeChild(target *Node) {
	for i, c := range n.children {
		if c == target {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Destroy tears n and its descendants down, firing Destroyed on each node
// from deepest descendant to n itself, then detaches n from its parent.
func (n *Node) Destroy() {
	var order []*Node
	var collect func(*Node)
	collect = func(x *Node) {
		for _, c := range x.children {
			collect(c)
		}
		order = append(order, x)
	}
	collect(n)
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	for _, x := range order {
		x.destroyed.Emit(x.id)
	}
}

// Detach removes n from its parent without destroying it or its
// descendants, leaving n as a root.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
		n.markDirty()
	}
}
