package spatial

import "github.com/outpost3d/engine/math/lin"

// Node is a single cell of the octree. Diameter is the node's tight
// (subdivision grid) diameter; LooseAABB doubles it for containment tests,
// per the loose-octree policy in octree.go's doc comment.
type Node struct {
	Level    uint32
	Center   lin.V3
	Diameter float64
	Data     NodeData

	parent   *Node
	children []*Node
}

// TightAABB returns the node's subdivision-grid bound.
func (n *Node) TightAABB() AABB {
	var a AABB
	a.SetCentered(n.Center.X, n.Center.Y, n.Center.Z, n.Diameter)
	return a
}

// LooseAABB returns the node's containment bound, twice the tight diameter.
func (n *Node) LooseAABB() AABB {
	var a AABB
	a.SetCentered(n.Center.X, n.Center.Y, n.Center.Z, n.Diameter*2)
	return a
}

// Empty reports whether the node carries no data and has no children.
func (n *Node) Empty() bool {
	return n.Data.IsEmpty() && len(n.children) == 0
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's current child nodes (at most 8).
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) removeChild(target *Node) {
	for i, c := range n.children {
		if c == target {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}
