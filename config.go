// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/outpost3d/engine/spatial"
)

// config.go generalizes gazed-vu's config.go (a flat struct of
// command-line-settable attributes: title, window size, MSAA level) into
// a declarative YAML document, matching the teacher's existing use of
// gopkg.in/yaml.v3 for on-disk shader configuration (load/shd.go) widened
// to cover engine-wide tuning knobs instead of just shader attribute
// layout.

// Config holds the tuning knobs an engine instance reads once at
// construction. Every field has a documented zero-value fallback so a
// caller can populate only the knobs they care about.
type Config struct {
	// Octree is the split/merge policy applied to every spatial.Octree
	// this engine creates.
	Octree OctreeConfig `yaml:"octree"`

	// AssetEvictionDelay is how long a Periodic asset must sit at
	// ref_count zero before Store.Update destroys it. Zero means
	// immediate eviction on the first Update after release.
	AssetEvictionDelay time.Duration `yaml:"asset_eviction_delay"`

	// MaxLightsPerRenderable documents the partitioner's per-renderable
	// light budget. It is informational only: the partitioner and
	// render queue size their light slots at spatial.MaxLightsPerRenderable
	// and render.MaxLights, both compiled-in constants, so a value here
	// that disagrees with them is rejected by Validate rather than
	// silently ignored.
	MaxLightsPerRenderable int `yaml:"max_lights_per_renderable"`

	// SearchPaths are added to the engine's vfs.FileSystem in order, so
	// the last entry shadows earlier ones for a name present in both.
	SearchPaths []string `yaml:"search_paths"`
}

// OctreeConfig parameterizes the capacity-based split/merge predicates
// DefaultConfig wires into a fresh spatial.Octree, replacing the
// teacher's nonexistent tuning surface (gazed-vu has no spatial index)
// with knobs modeled on original_source/kglt/partitioners/impl/octree.cpp's
// fixed split/merge entity-count thresholds.
type OctreeConfig struct {
	// SplitThreshold is how many entities a node must carry before it
	// attempts to subdivide. Zero or negative falls back to
	// spatial.AlwaysSplit.
	SplitThreshold int `yaml:"split_threshold"`

	// MergeThreshold is the combined entity count at or below which a node's
	// leaf children are folded back into it. Zero or negative falls
	// back to spatial.AlwaysMerge.
	MergeThreshold int `yaml:"merge_threshold"`
}

// DefaultConfig returns the engine's built-in tuning, matching the
// compiled-in constants used when no YAML document is supplied.
func DefaultConfig() Config {
	return Config{
		Octree:                 OctreeConfig{SplitThreshold: 8, MergeThreshold: 4},
		AssetEvictionDelay:     5 * time.Second,
		MaxLightsPerRenderable: spatial.MaxLightsPerRenderable,
		SearchPaths:            nil,
	}
}

// LoadConfig reads and parses a YAML document at path, overlaying it
// onto DefaultConfig so an omitted field keeps its default rather than
// zeroing out, mirroring the teacher's "defaults plus explicit
// overrides" config.go idiom.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports a descriptive error if cfg carries a value the
// engine cannot honor.
func (cfg Config) Validate() error {
	if cfg.MaxLightsPerRenderable != 0 && cfg.MaxLightsPerRenderable != spatial.MaxLightsPerRenderable {
		return fmt.Errorf("engine: config max_lights_per_renderable=%d disagrees with the compiled-in budget of %d",
			cfg.MaxLightsPerRenderable, spatial.MaxLightsPerRenderable)
	}
	if cfg.AssetEvictionDelay < 0 {
		return fmt.Errorf("engine: config asset_eviction_delay must not be negative, got %s", cfg.AssetEvictionDelay)
	}
	return nil
}

// SplitPredicate returns the spatial.SplitPredicate this config implies:
// a node subdivides once it carries more than SplitThreshold entities.
func (oc OctreeConfig) SplitPredicate() spatial.SplitPredicate {
	if oc.SplitThreshold <= 0 {
		return spatial.AlwaysSplit
	}
	threshold := oc.SplitThreshold
	return func(n *spatial.Node) bool {
		return n.Data.Len() > threshold
	}
}

// MergePredicate returns the spatial.MergePredicate this config implies:
// a set of leaf siblings folds back into their parent once their
// combined entity count drops to MergeThreshold or below.
func (oc OctreeConfig) MergePredicate() spatial.MergePredicate {
	if oc.MergeThreshold <= 0 {
		return spatial.AlwaysMerge
	}
	threshold := oc.MergeThreshold
	return func(nodes []*spatial.Node) bool {
		total := 0
		for _, n := range nodes {
			total += n.Data.Len()
		}
		return total <= threshold
	}
}

// NewOctree builds a spatial.Octree governed by cfg's split/merge
// thresholds.
func (cfg Config) NewOctree() *spatial.Octree {
	tree := spatial.NewOctree()
	tree.SplitPred = cfg.Octree.SplitPredicate()
	tree.MergePred = cfg.Octree.MergePredicate()
	return tree
}
