// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/outpost3d/engine/math/lin"
	"github.com/outpost3d/engine/spatial"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigRejectsMismatchedLightBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLightsPerRenderable = spatial.MaxLightsPerRenderable + 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected a mismatched light budget to fail validation")
	}
}

func TestConfigRejectsNegativeEvictionDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AssetEvictionDelay = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected a negative eviction delay to fail validation")
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	doc := "octree:\n  split_threshold: 16\nsearch_paths:\n  - assets/\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Octree.SplitThreshold != 16 {
		t.Fatalf("expected split_threshold 16, got %d", cfg.Octree.SplitThreshold)
	}
	if cfg.Octree.MergeThreshold != DefaultConfig().Octree.MergeThreshold {
		t.Fatalf("expected merge_threshold to keep its default, got %d", cfg.Octree.MergeThreshold)
	}
	if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "assets/" {
		t.Fatalf("expected search_paths [assets/], got %v", cfg.SearchPaths)
	}
}

func TestOctreeConfigSplitPredicateHonorsThreshold(t *testing.T) {
	oc := OctreeConfig{SplitThreshold: 2}
	pred := oc.SplitPredicate()
	tree := spatial.NewOctree()
	tree.SplitPred = pred
	tree.MergePred = spatial.AlwaysMerge

	var one lin.AABB
	one.SetCentered(0, 0, 0, 1)

	tree.Insert(spatial.KindActor, spatial.EntityID{Index: 1, Generation: 1}, one, nil)
	tree.Insert(spatial.KindActor, spatial.EntityID{Index: 2, Generation: 1}, one, nil)
	tree.Insert(spatial.KindActor, spatial.EntityID{Index: 3, Generation: 1}, one, nil)
	if tree.Root() == nil {
		t.Fatal("expected a root node after inserts")
	}

	var n spatial.Node
	n.Data.InsertOrUpdate(spatial.KindActor, spatial.EntityID{Index: 1, Generation: 1}, one)
	n.Data.InsertOrUpdate(spatial.KindActor, spatial.EntityID{Index: 2, Generation: 1}, one)
	if pred(&n) {
		t.Fatal("expected no split for a node carrying exactly SplitThreshold entities")
	}
	n.Data.InsertOrUpdate(spatial.KindActor, spatial.EntityID{Index: 3, Generation: 1}, one)
	if !pred(&n) {
		t.Fatal("expected a split once a node carries more than SplitThreshold entities")
	}
}
