// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import "testing"

func TestCompositorOrdersStagesByPriority(t *testing.T) {
	c := NewCompositor()
	c.AddStage(Stage{Name: "ui", Priority: 10, Target: Screen})
	c.AddStage(Stage{Name: "shadow", Priority: -10, Target: RenderTarget{Name: "shadowmap", GPUID: 1}})
	c.AddStage(Stage{Name: "main", Priority: 0, Target: Screen})

	stages := c.Stages()
	if len(stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(stages))
	}
	want := []string{"shadow", "main", "ui"}
	for i, name := range want {
		if stages[i].Name != name {
			t.Fatalf("stage %d: want %q, got %q", i, name, stages[i].Name)
		}
	}
}

func TestCompositorAddStageReplacesByName(t *testing.T) {
	c := NewCompositor()
	c.AddStage(Stage{Name: "main", Priority: 0})
	c.AddStage(Stage{Name: "main", Priority: 5})

	stages := c.Stages()
	if len(stages) != 1 || stages[0].Priority != 5 {
		t.Fatalf("expected replaced stage with priority 5, got %+v", stages)
	}
}

func TestCompositorHiddenStageIsSkipped(t *testing.T) {
	c := NewCompositor()
	c.AddStage(Stage{Name: "main", Priority: 0})
	c.SetVisible("main", false)

	if stages := c.Stages(); len(stages) != 0 {
		t.Fatalf("expected hidden stage to be excluded, got %+v", stages)
	}

	c.SetVisible("main", true)
	if stages := c.Stages(); len(stages) != 1 {
		t.Fatalf("expected stage visible again, got %+v", stages)
	}
}

func TestCompositorRemoveStage(t *testing.T) {
	c := NewCompositor()
	c.AddStage(Stage{Name: "main", Priority: 0})
	c.RemoveStage("main")
	if stages := c.Stages(); len(stages) != 0 {
		t.Fatalf("expected no stages after remove, got %+v", stages)
	}
}
