package assets

import (
	"testing"
	"time"

	"github.com/outpost3d/engine/asset"
	"github.com/outpost3d/engine/ids"
)

func TestLoadAppliesPolicyGCMethodByKind(t *testing.T) {
	fs := fakeFS{files: map[string]string{"tri.obj": triangleObj}}
	registry := asset.NewRegistry()
	RegisterDefaults(registry)
	pool := ids.NewPool()
	store := asset.NewStore[*Mesh](pool, time.Minute, CloneMesh)

	policy := DefaultGCPolicy()
	policy["mesh"] = asset.Periodic

	id, err := Load(store, fs, registry, policy, "tri.obj", "", func(id ids.ID) *Mesh {
		return NewMesh(id, "tri.obj")
	}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mesh, ok := store.Get(id)
	if !ok {
		t.Fatalf("expected mesh in store")
	}
	if method := mesh.GCMethod(); method != asset.Periodic {
		t.Fatalf("expected asset.Periodic from policy, got %v", method)
	}
}

func TestKindOfUsesNameNotHintsForPolicyLookup(t *testing.T) {
	// IqmLoaderType answers to Resolve hints "model"/"skinned-mesh", neither
	// of which is a DefaultGCPolicy key; kindOf must key off Name() ("iqm")
	// through kindByLoaderName, not Hints()[0], or policy lookups for this
	// loader would silently always miss and fall back to asset.Never.
	if got := kindOf(IqmLoaderType{}); got != "mesh" {
		t.Fatalf("expected iqm loader to map to policy kind %q, got %q", "mesh", got)
	}
	if got := kindOf(TtfLoaderType{}); got != "font" {
		t.Fatalf("expected ttf loader to map to policy kind %q, got %q", "font", got)
	}
	if got := kindOf(ParticleScriptLoaderType{}); got != "particle_script" {
		t.Fatalf("expected particle script loader to map to policy kind %q, got %q", "particle_script", got)
	}
}
