package scene

import (
	"testing"

	"github.com/outpost3d/engine/ids"
)

func TestReparentIntoDescendantFails(t *testing.T) {
	pool := ids.NewPool()
	root := New(pool, "root")
	child := New(pool, "child")
	grandchild := New(pool, "grandchild")
	_ = child.SetParent(root)
	_ = grandchild.SetParent(child)

	if err := root.SetParent(grandchild); err == nil {
		t.Fatalf("expected reparenting root under its own grandchild to fail")
	}
}

func TestWorldTransformComposesParentChild(t *testing.T) {
	pool := ids.NewPool()
	parent := New(pool, "parent")
	child := New(pool, "child")
	_ = child.SetParent(parent)

	pt := Identity()
	pt.Translation.X = 10
	parent.SetLocalTransform(pt)

	ct := Identity()
	ct.Translation.X = 5
	child.SetLocalTransform(ct)

	w := child.WorldTransform()
	if w.Wx != 15 {
		t.Fatalf("expected child world translation.x = 15, got %v", w.Wx)
	}
}

func TestDirtyClearsAfterWorldTransform(t *testing.T) {
	pool := ids.NewPool()
	n := New(pool, "n")
	_ = n.WorldTransform()
	if n.dirty {
		t.Fatalf("expected dirty to clear after computing the world transform")
	}
	n.SetLocalTransform(Identity())
	if !n.dirty {
		t.Fatalf("expected setting the local transform to mark the node dirty again")
	}
}

func TestDestroyFiresDeepestFirst(t *testing.T) {
	pool := ids.NewPool()
	root := New(pool, "root")
	child := New(pool, "child")
	grandchild := New(pool, "grandchild")
	_ = child.SetParent(root)
	_ = grandchild.SetParent(child)

	var order []string
	root.Destroyed().Connect(func(ids.ID) { order = append(order, "root") })
	child.Destroyed().Connect(func(ids.ID) { order = append(order, "child") })
	grandchild.Destroyed().Connect(func(ids.ID) { order = append(order, "grandchild") })

	root.Destroy()

	if len(order) != 3 || order[0] != "grandchild" || order[1] != "child" || order[2] != "root" {
		t.Fatalf("expected deepest-first destroy order, got %v", order)
	}
}

func TestSetParentPreservesWorldTransformRoundTrip(t *testing.T) {
	pool := ids.NewPool()
	oldParent := New(pool, "old")
	newParent := New(pool, "new")
	n := New(pool, "n")

	nt := Identity()
	nt.Translation.X = 3
	n.SetLocalTransform(nt)
	_ = n.SetParent(oldParent)
	before := n.WorldTransform()

	_ = n.SetParent(newParent)
	_ = n.SetParent(oldParent)
	after := n.WorldTransform()

	if !before.Aeq(&after) {
		t.Fatalf("expected world transform to round-trip after reparenting back, got %+v vs %+v", before, after)
	}
}
