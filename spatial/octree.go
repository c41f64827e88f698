// octree.go implements the dynamic loose octree described in the package
// doc comment: Insert/Locate/Remove against a level-indexed node map, with
// user-supplied split and merge predicates and a grow procedure that
// re-roots the tree to contain entities that land outside it.
//
// Grounded on original_source/kglt/partitioners/impl/octree.{h,cpp}. The
// C++ original stores children as weak_ptr and leans on shared_ptr reference
// counting to avoid leaking the parent/child cycle; here nodes simply hold
// ordinary pointers to each other (Go's collector handles the cycle) and
// Octree.levels remains the single owner that a node's positional key
// (level, quantized center) addresses into, matching the house idiom of
// map-backed indexed containers used throughout gazed-vu's grid package.
package spatial

import (
	"fmt"
	"math"
	"sync"

	"github.com/outpost3d/engine/kerrors"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/signal"
)

// SplitPredicate decides whether a node that just gained data should
// attempt to subdivide. The zero Octree uses AlwaysSplit.
type SplitPredicate func(n *Node) bool

// MergePredicate decides whether a node's leaf siblings may be folded back
// into their parent. The zero Octree uses AlwaysMerge.
type MergePredicate func(nodes []*Node) bool

// AlwaysSplit is the default SplitPredicate.
func AlwaysSplit(*Node) bool { return true }

// AlwaysMerge is the default MergePredicate.
func AlwaysMerge([]*Node) bool { return true }

// maxSplitPasses is the insert depth at which insertLocked stops consulting
// the split check. split re-inserts its stashed entities at depth 1, so
// nested splits are not counted against it; they end once a node's tight
// diameter reaches 1 or a split creates no child. See spec §9's open
// question on the original's recursive reinsert.
const maxSplitPasses = 8

// TransformChange is delivered by a bounded entity's change bus whenever
// its world-space AABB moves, letting the octree relocate it without the
// caller driving Remove/Insert by hand.
type TransformChange struct {
	AABB AABB
}

// Level holds every currently live node sharing one subdivision depth.
// Nodes in the same level share a diameter and differ only by center.
type Level struct {
	Number uint32
	nodes  map[uint64]*Node
}

func newLevel(number uint32) *Level {
	return &Level{Number: number, nodes: map[uint64]*Node{}}
}

// Octree is the dynamic loose octree spatial index. All mutating
// operations hold a single mutex for the call's duration, matching the
// original's single reentrant lock; Go's sync.Mutex is not reentrant, so
// internal helpers never call a locking entry point on themselves.
type Octree struct {
	mu sync.Mutex

	levels []*Level
	root   *Node

	lookup   [3]map[EntityID]*Node
	watchers map[EntityID]signal.Connection[TransformChange]

	SplitPred SplitPredicate
	MergePred MergePredicate
}

// NewOctree returns an empty octree with the default always-split,
// always-merge predicates.
func NewOctree() *Octree {
	return &Octree{
		lookup: [3]map[EntityID]*Node{
			KindActor:          {},
			KindLight:          {},
			KindParticleSystem: {},
		},
		watchers:  map[EntityID]signal.Connection[TransformChange]{},
		SplitPred: AlwaysSplit,
		MergePred: AlwaysMerge,
	}
}

func (o *Octree) lookupFor(kind Kind) map[EntityID]*Node { return o.lookup[kind] }

func (o *Octree) splitPred() SplitPredicate {
	if o.SplitPred == nil {
		return AlwaysSplit
	}
	return o.SplitPred
}

func (o *Octree) mergePred() MergePredicate {
	if o.MergePred == nil {
		return AlwaysMerge
	}
	return o.MergePred
}

// Root returns the tree's current root node, or nil if nothing has ever
// been inserted.
func (o *Octree) Root() *Node {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.root
}

// Levels returns the number of subdivision depths currently allocated.
func (o *Octree) Levels() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.levels)
}

// --- quantization & grid -----------------------------------------------

// nextPow2 returns the smallest power of two >= v, floored at 1.
func nextPow2(v float64) float64 {
	if v <= 1 {
		return 1
	}
	p := 1.0
	for p < v {
		p *= 2
	}
	return p
}

// QuantizeHash hashes a node's (level, center) identity, the key its Level
// map stores it under. Per spec §9's open question, precision increases
// with level so distinct centers at very fine diameters don't collide: the
// default 0.01 quantization step halves every level past 7 (where the
// tight diameter first drops under 1 for a diameter-128 root).
func QuantizeHash(level uint32, x, y, z float64) uint64 {
	precision := 100.0
	if level > 7 {
		precision *= math.Pow(2, float64(level-7))
	}
	qx := int64(math.Round(x * precision))
	qy := int64(math.Round(y * precision))
	qz := int64(math.Round(z * precision))
	return combineHash(combineHash(uint64(level), uint64(qx)), combineHash(uint64(qy), uint64(qz)))
}

func combineHash(a, b uint64) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	h = (h ^ a) * prime
	h = (h ^ b) * prime
	return h
}

// gridCenter snaps p to the level-L grid anchored at the root's center: a
// cube lattice with step root.Diameter/2^L, offset by half a step so child
// centers never coincide with their ancestors'.
func (o *Octree) gridCenter(level uint32, p lin.V3) lin.V3 {
	step := o.root.Diameter / math.Pow(2, float64(level))
	if level == 0 {
		return o.root.Center
	}
	snap := func(v, rv float64) float64 {
		n := math.Round((v-rv)/step - 0.5)
		return rv + (n+0.5)*step
	}
	rc := o.root.Center
	return lin.V3{X: snap(p.X, rc.X), Y: snap(p.Y, rc.Y), Z: snap(p.Z, rc.Z)}
}

// calculateLevel returns the deepest level whose node still contains an
// entity of the given max dimension (spec §9's open question): it descends
// while the next level's *tight* diameter is still at least the entity's
// max dimension, so for a large enough root the chosen node's tight
// diameter lies in [maxDim, 2*maxDim) and its loose (2x tight) diameter
// contains the entity with room to spare. The result is clamped so the
// corresponding tight diameter never drops below 1.
func calculateLevel(maxDim, rootDiameter float64) uint32 {
	if rootDiameter <= 1 || maxDim <= 0 {
		return 0
	}
	var level uint32
	diameter := rootDiameter
	for diameter >= 2*maxDim && diameter/2 >= 1 {
		diameter /= 2
		level++
	}
	return level
}

func (o *Octree) level(n uint32) *Level {
	for n >= uint32(len(o.levels)) {
		o.levels = append(o.levels, newLevel(uint32(len(o.levels))))
	}
	return o.levels[n]
}

func (o *Octree) addNode(n *Node) {
	lvl := o.level(n.Level)
	key := QuantizeHash(n.Level, n.Center.X, n.Center.Y, n.Center.Z)
	lvl.nodes[key] = n
}

func (o *Octree) removeNode(n *Node) {
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	if int(n.Level) < len(o.levels) {
		key := QuantizeHash(n.Level, n.Center.X, n.Center.Y, n.Center.Z)
		delete(o.levels[n.Level].nodes, key)
	}
}

func newNode(level uint32, center lin.V3, diameter float64, parent *Node) *Node {
	return &Node{Level: level, Center: center, Diameter: diameter, Data: newNodeData(), parent: parent}
}

// --- containment & growth -----------------------------------------------

func (o *Octree) insideOctree(aabb AABB) bool {
	if o.root == nil {
		return false
	}
	loose := o.root.LooseAABB()
	return loose.Contains(&aabb)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// grow creates a root (if none exists) or re-roots one level higher so the
// tree's loose bound can eventually contain aabb. Callers loop on
// insideOctree until it holds.
func (o *Octree) grow(aabb AABB) {
	if o.root == nil {
		d := nextPow2(aabb.MaxDimension() / 2)
		cx, cy, cz := aabb.Center()
		center := lin.V3{X: math.Trunc(cx), Y: math.Trunc(cy), Z: math.Trunc(cz)}
		o.root = newNode(0, center, d, nil)
		o.levels = []*Level{newLevel(0)}
		o.addNode(o.root)
		return
	}

	oldRoot := o.root
	half := oldRoot.Diameter / 2
	cx, cy, cz := aabb.Center()
	oc := oldRoot.Center
	newCenter := lin.V3{
		X: oc.X + sign(cx-oc.X)*half,
		Y: oc.Y + sign(cy-oc.Y)*half,
		Z: oc.Z + sign(cz-oc.Z)*half,
	}
	newDiameter := oldRoot.Diameter * 2
	newRoot := newNode(0, newCenter, newDiameter, nil)

	// Every existing node shifts one level deeper; keys are re-derived
	// since QuantizeHash folds in the level number.
	oldLevels := o.levels
	o.levels = []*Level{newLevel(0)}
	for _, lvl := range oldLevels {
		newLvl := o.level(lvl.Number + 1)
		for _, n := range lvl.nodes {
			n.Level = lvl.Number + 1
			key := QuantizeHash(n.Level, n.Center.X, n.Center.Y, n.Center.Z)
			newLvl.nodes[key] = n
		}
	}
	oldRoot.parent = newRoot
	newRoot.children = append(newRoot.children, oldRoot)
	o.addNode(newRoot)
	o.root = newRoot
}

func (o *Octree) ensureContains(aabb AABB) {
	for !o.insideOctree(aabb) {
		o.grow(aabb)
	}
}

// --- locate ---------------------------------------------------------------

// findBestExistingNode descends from the computed target level toward the
// root until it finds a node that already exists at (level, center hash).
func (o *Octree) findBestExistingNode(aabb AABB) *Node {
	maxDim := aabb.MaxDimension()
	target := calculateLevel(maxDim, o.root.Diameter)
	cx, cy, cz := aabb.Center()
	p := lin.V3{X: cx, Y: cy, Z: cz}
	for level := target; ; {
		center := o.gridCenter(level, p)
		key := QuantizeHash(level, center.X, center.Y, center.Z)
		if n, ok := o.level(level).nodes[key]; ok {
			return n
		}
		if level == 0 {
			return o.root
		}
		level--
	}
}

// Locate returns the node currently holding id, if any.
func (o *Octree) Locate(kind Kind, id EntityID) (*Node, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	n, ok := o.lookupFor(kind)[id]
	return n, ok
}

// --- insert / remove --------------------------------------------------

// Insert places id (with the given world AABB) into the tree, growing it
// first if necessary. changes, when non-nil, is a bus the caller emits
// TransformChange on whenever id's AABB moves; the octree subscribes to it
// and relocates id automatically, disconnecting on Remove.
func (o *Octree) Insert(kind Kind, id EntityID, aabb AABB, changes *signal.Bus[TransformChange]) *Node {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := o.insertLocked(kind, id, aabb, 0)
	if changes != nil {
		conn := changes.Connect(func(tc TransformChange) { o.onTransformChanged(kind, id, tc) })
		o.watchers[id] = conn
	}
	return n
}

func (o *Octree) insertLocked(kind Kind, id EntityID, aabb AABB, depth int) *Node {
	o.ensureContains(aabb)
	n := o.findBestExistingNode(aabb)
	n.Data.InsertOrUpdate(kind, id, aabb)
	o.lookupFor(kind)[id] = n
	if depth < maxSplitPasses {
		if split := o.splitIfNecessary(n); split != nil {
			if relocated, ok := o.lookupFor(kind)[id]; ok {
				n = relocated
			}
		}
	}
	return n
}

// Remove erases id from whichever node currently holds it.
func (o *Octree) Remove(kind Kind, id EntityID) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	n, ok := o.lookupFor(kind)[id]
	if !ok {
		return fmt.Errorf("spatial: remove %s %v: %w", kind, id, kerrors.NotFound)
	}
	n.Data.Erase(kind, id)
	delete(o.lookupFor(kind), id)
	if conn, ok := o.watchers[id]; ok {
		conn.Disconnect()
		delete(o.watchers, id)
	}
	o.mergeIfPossible(n)
	return nil
}

func (o *Octree) onTransformChanged(kind Kind, id EntityID, tc TransformChange) {
	o.mu.Lock()
	defer o.mu.Unlock()
	n, ok := o.lookupFor(kind)[id]
	if !ok {
		return
	}
	loose := n.LooseAABB()
	cx, cy, cz := tc.AABB.Center()
	if loose.ContainsPoint(cx, cy, cz) {
		n.Data.InsertOrUpdate(kind, id, tc.AABB)
		return
	}
	n.Data.Erase(kind, id)
	delete(o.lookupFor(kind), id)
	o.mergeIfPossible(n)
	o.insertLocked(kind, id, tc.AABB, 0)
}

// --- split / merge ------------------------------------------------------

var childOffsets = [8]lin.V3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
}

// splitIfNecessary calls the split predicate and subdivides n when it
// approves. Returns n when a split occurred, nil otherwise (no-op, or
// predicate declined, or diameter already at the floor).
func (o *Octree) splitIfNecessary(n *Node) *Node {
	if n.Diameter <= 1 {
		return nil
	}
	if !o.splitPred()(n) {
		return nil
	}
	if o.split(n) {
		return n
	}
	return nil
}

// split subdivides n into up to 8 children and migrates its data down
// through a fresh top-level insert so each item settles at the deepest
// node it now fits. Reports false (a no-op) when every child center was
// already occupied, meaning the tree is as deep as the data supports.
func (o *Octree) split(n *Node) bool {
	childDiameter := n.Diameter / 2
	childLevel := n.Level + 1
	half := n.Diameter / 4

	var created []*Node
	for _, off := range childOffsets {
		c := lin.V3{X: n.Center.X + off.X*half, Y: n.Center.Y + off.Y*half, Z: n.Center.Z + off.Z*half}
		key := QuantizeHash(childLevel, c.X, c.Y, c.Z)
		if _, exists := o.level(childLevel).nodes[key]; exists {
			continue
		}
		child := newNode(childLevel, c, childDiameter, n)
		n.children = append(n.children, child)
		o.level(childLevel).nodes[key] = child
		created = append(created, child)
	}
	if len(created) == 0 {
		return false
	}

	stash := n.Data
	n.Data = newNodeData()
	stash.EachActor(func(id EntityID, a AABB) { o.insertLocked(KindActor, id, a, 1) })
	stash.EachLight(func(id EntityID, a AABB) { o.insertLocked(KindLight, id, a, 1) })
	stash.EachParticleSystem(func(id EntityID, a AABB) { o.insertLocked(KindParticleSystem, id, a, 1) })

	for _, c := range created {
		if c.Empty() {
			o.removeNode(c)
		}
	}
	return true
}

// mergeIfPossible folds n's empty-of-children siblings back into their
// parent when the merge predicate allows, per the component's merge
// procedure: a rootless empty node is simply dropped, otherwise leaf
// siblings are absorbed upward regardless of their own occupancy.
func (o *Octree) mergeIfPossible(n *Node) {
	if n.parent == nil {
		if n.Empty() && n == o.root {
			o.removeNode(n)
			o.root = nil
			o.levels = nil
		}
		return
	}
	parent := n.parent
	siblings := parent.Children()
	if !o.mergePred()(siblings) {
		return
	}

	collected := newNodeData()
	for _, s := range siblings {
		if len(s.children) != 0 {
			continue
		}
		collected.Merge(s.Data)
		s.Data = NodeData{}
		o.removeNode(s)
		o.relocateLookups(s, parent)
	}
	parent.Data.Merge(collected)
}

// relocateLookups repoints id->node lookup entries that referenced a
// removed leaf at its new home so Locate keeps returning a live node.
func (o *Octree) relocateLookups(from, to *Node) {
	for _, kind := range []Kind{KindActor, KindLight, KindParticleSystem} {
		lut := o.lookupFor(kind)
		for id, n := range lut {
			if n == from {
				lut[id] = to
			}
		}
	}
}
