package spatial

import (
	"testing"

	"github.com/outpost3d/engine/math/lin"
)

func TestPartitionerCullExcludesActorsBehindCamera(t *testing.T) {
	tree := NewOctree()
	tree.Insert(KindActor, EntityID{Index: 1, Generation: 1}, aabbAt(0, 0, 50, 1), nil)
	tree.Insert(KindActor, EntityID{Index: 2, Generation: 1}, aabbAt(0, 0, -50, 1), nil)

	p := NewPartitioner(tree)
	frustum := lin.NewFrustum(lin.V3{}, lin.V3{Z: 1}, lin.V3{Y: 1}, 60, 1, 0.1, 100)

	visible := p.Cull(frustum, nil)
	if len(visible) != 1 {
		t.Fatalf("expected exactly 1 visible actor in front of the camera, got %d: %+v", len(visible), visible)
	}
	if visible[0].ID != (EntityID{Index: 1, Generation: 1}) {
		t.Fatalf("expected the actor in front of the camera to be visible, got %+v", visible[0])
	}
}

func TestPartitionerCullIncludesActorsFullyInsideFrustum(t *testing.T) {
	tree := NewOctree()
	tree.Insert(KindActor, EntityID{Index: 1, Generation: 1}, aabbAt(0, 0, 5, 1), nil)

	p := NewPartitioner(tree)
	frustum := lin.NewFrustum(lin.V3{}, lin.V3{Z: 1}, lin.V3{Y: 1}, 90, 1, 0.1, 100)

	visible := p.Cull(frustum, nil)
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible actor, got %d", len(visible))
	}
}

func TestPartitionerCullRanksDirectionalLightAboveCloserPointLight(t *testing.T) {
	tree := NewOctree()
	actorID := EntityID{Index: 1, Generation: 1}
	nearPointLight := EntityID{Index: 2, Generation: 1}
	farDirectionalLight := EntityID{Index: 3, Generation: 1}

	tree.Insert(KindActor, actorID, aabbAt(0, 0, 5, 1), nil)
	tree.Insert(KindLight, nearPointLight, aabbAt(0, 0, 6, 0.1), nil)
	tree.Insert(KindLight, farDirectionalLight, aabbAt(0, 0, 10000, 0.1), nil)

	p := NewPartitioner(tree)
	frustum := lin.NewFrustum(lin.V3{}, lin.V3{Z: 1}, lin.V3{Y: 1}, 90, 1, 0.1, 100000)

	directional := func(id EntityID) bool { return id == farDirectionalLight }
	visible := p.Cull(frustum, directional)
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible actor, got %d", len(visible))
	}

	lights := visible[0].Lights
	if len(lights) != 2 {
		t.Fatalf("expected both lights ranked for the actor, got %d: %+v", len(lights), lights)
	}
	if lights[0].ID != farDirectionalLight {
		t.Fatalf("expected the directional light to rank first despite being far away, got %+v", lights)
	}
	if !lights[0].Directional {
		t.Fatalf("expected the top-ranked light to be marked directional, got %+v", lights[0])
	}
	if lights[1].ID != nearPointLight || lights[1].Directional {
		t.Fatalf("expected the near point light ranked second and not directional, got %+v", lights[1])
	}
}
