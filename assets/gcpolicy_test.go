package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/outpost3d/engine/asset"
)

func TestDefaultGCPolicyIsNever(t *testing.T) {
	policy := DefaultGCPolicy()
	for _, kind := range []string{"mesh", "material", "texture", "font", "sound", "particle_script", "blob"} {
		if policy.Method(kind) != asset.Never {
			t.Fatalf("expected %s to default to Never, got %v", kind, policy.Method(kind))
		}
	}
	if policy.Method("unknown-kind") != asset.Never {
		t.Fatal("expected an unmentioned kind to default to Never")
	}
}

func TestLoadGCPolicyOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.yaml")
	doc := "texture: periodic\nsound: periodic\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	policy, err := LoadGCPolicy(path)
	if err != nil {
		t.Fatalf("load gc policy: %v", err)
	}
	if policy.Method("texture") != asset.Periodic {
		t.Fatalf("expected texture to be periodic, got %v", policy.Method("texture"))
	}
	if policy.Method("mesh") != asset.Never {
		t.Fatalf("expected mesh to keep its Never default, got %v", policy.Method("mesh"))
	}
}

func TestLoadGCPolicyRejectsUnknownMethod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.yaml")
	if err := os.WriteFile(path, []byte("mesh: sometimes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGCPolicy(path); err == nil {
		t.Fatal("expected an unknown gc_method to fail")
	}
}
