package spatial

import (
	"sort"

	"github.com/outpost3d/engine/math/lin"
)

// Visible is one entity the partitioner decided to render this frame,
// together with the lights relevant to shading it.
type Visible struct {
	ID     EntityID
	AABB   AABB
	Lights []RankedLight
}

// RankedLight is a light paired with its relevance score for one
// particular visible entity (higher is more relevant) and whether the
// caller's light data marked it directional.
type RankedLight struct {
	ID          EntityID
	AABB        AABB
	Directional bool
	Score       float64
}

// MaxLightsPerRenderable bounds how many lights the partitioner keeps per
// visible entity, matching the render-queue visitor's per-renderable light
// slot budget (§4.6/§4.7).
const MaxLightsPerRenderable = 4

// directionalLightScore is the large constant priority §4.8 gives every
// directional light, winning over any finite distance-based point-light
// score.
const directionalLightScore = 1e18

// DirectionalLookup reports whether id names a directional light. The
// octree itself only tracks a light's AABB, not its kind, so the caller
// (whoever owns the actual light records) supplies this; a nil lookup
// means no tracked light is directional.
type DirectionalLookup func(id EntityID) bool

// Partitioner culls an octree's actors against a camera frustum and ranks
// the lights relevant to each survivor, grounded on
// original_source/kglt/partitioners/impl/octree.cpp's depth-first
// frustum descent: a node fully inside the frustum short-circuits further
// testing for its whole subtree, a node outside is skipped outright, and
// only a straddling node pays for per-entity tests.
type Partitioner struct {
	Tree *Octree

	// LightContribution ranks a light's relevance to a point; directional
	// is true when the caller's light data marks the light directional,
	// in which case the default implementation returns a large constant
	// so it always wins, per §4.8. Point lights typically score by
	// inverse distance scaled by attenuation. A zero-value Partitioner
	// falls back to DefaultLightContribution.
	LightContribution func(point lin.V3, light AABB, directional bool) float64
}

// NewPartitioner returns a Partitioner over tree using the default light
// relevance heuristic.
func NewPartitioner(tree *Octree) *Partitioner {
	return &Partitioner{Tree: tree, LightContribution: DefaultLightContribution}
}

// DefaultLightContribution gives directional lights the large constant
// priority §4.8 names ("directional lights get a large constant
// priority"); point lights rank by inverse squared distance from the
// light's center to point, a cheap stand-in for inverse distance scaled
// by attenuation.
func DefaultLightContribution(point lin.V3, light AABB, directional bool) float64 {
	if directional {
		return directionalLightScore
	}
	cx, cy, cz := light.Center()
	dx, dy, dz := point.X-cx, point.Y-cy, point.Z-cz
	distSqr := dx*dx + dy*dy + dz*dz
	if distSqr < 1e-6 {
		distSqr = 1e-6
	}
	return 1 / distSqr
}

// Cull walks the tree against frustum and returns every visible actor
// together with its top MaxLightsPerRenderable lights, ranked using
// directional to tell point lights from directional ones. directional
// may be nil, treating every tracked light as a point light.
func (p *Partitioner) Cull(frustum *lin.Frustum, directional DirectionalLookup) []Visible {
	root := p.Tree.Root()
	if root == nil {
		return nil
	}
	if directional == nil {
		directional = func(EntityID) bool { return false }
	}
	lights := p.allLights(directional)
	var out []Visible
	p.walk(root, frustum, false, lights, &out)
	return out
}

func (p *Partitioner) allLights(directional DirectionalLookup) []RankedLight {
	var lights []RankedLight
	root := p.Tree.Root()
	if root == nil {
		return nil
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		n.Data.EachLight(func(id EntityID, a AABB) {
			lights = append(lights, RankedLight{ID: id, AABB: a, Directional: directional(id)})
		})
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return lights
}

func (p *Partitioner) walk(n *Node, frustum *lin.Frustum, parentFullyInside bool, lights []RankedLight, out *[]Visible) {
	loose := n.LooseAABB()
	class := lin.Inside
	if !parentFullyInside {
		class = frustum.Classify(&loose)
		if class == lin.Outside {
			return
		}
	}
	fullyInside := parentFullyInside || class == lin.Inside

	n.Data.EachActor(func(id EntityID, a AABB) {
		if fullyInside {
			*out = append(*out, p.visible(id, a, lights))
			return
		}
		if frustum.Classify(&a) != lin.Outside {
			*out = append(*out, p.visible(id, a, lights))
		}
	})
	for _, c := range n.children {
		p.walk(c, frustum, fullyInside, lights, out)
	}
}

func (p *Partitioner) visible(id EntityID, a AABB, lights []RankedLight) Visible {
	contribute := p.LightContribution
	if contribute == nil {
		contribute = DefaultLightContribution
	}
	cx, cy, cz := a.Center()
	center := lin.V3{X: cx, Y: cy, Z: cz}

	ranked := make([]RankedLight, len(lights))
	copy(ranked, lights)
	for i := range ranked {
		ranked[i].Score = contribute(center, ranked[i].AABB, ranked[i].Directional)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > MaxLightsPerRenderable {
		ranked = ranked[:MaxLightsPerRenderable]
	}
	return Visible{ID: id, AABB: a, Lights: ranked}
}
