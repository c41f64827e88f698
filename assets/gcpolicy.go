package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/outpost3d/engine/asset"
)

// gcpolicy.go loads the default collection policy for each concrete asset
// type from a YAML manifest, another consumer of gopkg.in/yaml.v3
// alongside load/shd.go's shader attribute layout and particlescript.go's
// effect parameters. gazed-vu's depot never evicts anything (every asset
// lives until the depot itself is discarded), so there is no teacher file
// to generalize here; the shape follows simulant's asset_manager.cpp
// per-type default GC policy table.
type gcMethodName string

const (
	gcNever    gcMethodName = "never"
	gcPeriodic gcMethodName = "periodic"
)

// GCPolicy maps an asset type name (the keys used in an assets.yaml
// manifest: "mesh", "material", "texture", "font", "sound",
// "particle_script", "blob") to its default asset.GCMethod.
type GCPolicy map[string]asset.GCMethod

// DefaultGCPolicy matches the conservative default every store already
// has (asset.Never, i.e. nothing is auto-collected) for every known
// asset kind, so an engine that never loads an assets.yaml manifest
// behaves exactly as before.
func DefaultGCPolicy() GCPolicy {
	return GCPolicy{
		"mesh":            asset.Never,
		"material":        asset.Never,
		"texture":         asset.Never,
		"font":            asset.Never,
		"sound":           asset.Never,
		"particle_script": asset.Never,
		"blob":            asset.Never,
	}
}

// LoadGCPolicy reads an assets.yaml-shaped manifest from path, overlaying
// it onto DefaultGCPolicy.
func LoadGCPolicy(path string) (GCPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: load gc policy %s: %w", path, err)
	}
	var raw map[string]gcMethodName
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets: parse gc policy %s: %w", path, err)
	}
	policy := DefaultGCPolicy()
	for kind, name := range raw {
		method, err := parseGCMethod(name)
		if err != nil {
			return nil, fmt.Errorf("assets: gc policy %s: kind %q: %w", path, kind, err)
		}
		policy[kind] = method
	}
	return policy, nil
}

func parseGCMethod(name gcMethodName) (asset.GCMethod, error) {
	switch name {
	case gcNever, "":
		return asset.Never, nil
	case gcPeriodic:
		return asset.Periodic, nil
	default:
		return asset.Never, fmt.Errorf("unknown gc_method %q (want %q or %q)", name, gcNever, gcPeriodic)
	}
}

// Method returns kind's configured GC method, defaulting to asset.Never
// for a kind the policy does not mention.
func (p GCPolicy) Method(kind string) asset.GCMethod {
	if m, ok := p[kind]; ok {
		return m
	}
	return asset.Never
}
