// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/outpost3d/engine/ids"
	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/render"
	"github.com/outpost3d/engine/spatial"
)

func TestActorTrackInsertsIntoOctree(t *testing.T) {
	pool := ids.NewPool()
	tree := spatial.NewOctree()
	a := NewActor(pool, "box", render.NewMesh("box"), render.Material{render.NewPass()})

	var bounds lin.AABB
	bounds.SetCentered(0, 0, 0, 2)
	a.Track(tree, spatial.EntityID{Index: 1, Generation: 1}, bounds)

	if tree.Root() == nil {
		t.Fatal("expected a root node after tracking an actor")
	}
	if err := a.Untrack(); err != nil {
		t.Fatalf("untrack: %v", err)
	}
}

func TestActorRenderableCarriesMeshMaterialAndLights(t *testing.T) {
	pool := ids.NewPool()
	mesh := render.NewMesh("box")
	material := render.Material{render.NewPass()}
	a := NewActor(pool, "box", mesh, material)
	a.RenderPriority = 7

	lightID := spatial.EntityID{Index: 9, Generation: 1}
	lights := []spatial.RankedLight{{ID: lightID, Score: 1}}
	lightOf := func(id spatial.EntityID, view *lin.M4) render.Light {
		if id != lightID {
			t.Fatalf("unexpected light id %+v", id)
		}
		return render.Light{Enabled: true}
	}

	view := lin.M4{}
	r := a.Renderable(&view, lights, lightOf)

	if r.Mesh != mesh {
		t.Fatal("expected the renderable to carry the actor's mesh")
	}
	if len(r.Material) != len(material) {
		t.Fatal("expected the renderable to carry the actor's material")
	}
	if r.RenderPriority != 7 {
		t.Fatalf("expected render priority 7, got %d", r.RenderPriority)
	}
	if len(r.Lights) != 1 || !r.Lights[0].Light.Enabled {
		t.Fatalf("expected one resolved light, got %+v", r.Lights)
	}
}
